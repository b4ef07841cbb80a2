package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/eliseohh/predictbot/internal/bot"
	"github.com/eliseohh/predictbot/internal/config"
	"github.com/eliseohh/predictbot/internal/lib/slogcustom"
	"github.com/eliseohh/predictbot/internal/media"
	"github.com/eliseohh/predictbot/internal/recent"
	tele "gopkg.in/telebot.v3"
)

// globalKey is the history key shared by every user in global scope.
const globalKey int64 = 0

func main() {
	if err := config.LoadDotEnv(); err != nil {
		slog.Warn("env file ignored", "err", err)
	}

	cfg, err := config.FromEnv()
	if err != nil {
		fatal(slog.Default(), "config", err)
	}

	log := setupLogger(cfg.LogLevel)
	slog.SetDefault(log)
	log.Info("starting prediction bot", "images", len(cfg.Images), "recent_size", cfg.RecentSize, "scope", cfg.RecentScope)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 1. Uploaded file ids, if any
	var ids media.Mapping
	if cfg.FileIDMap != "" {
		ids, err = media.LoadMapping(ctx, cfg.FileIDMap)
		if err != nil {
			log.Warn("file id map not loaded, sending by URL", "path", cfg.FileIDMap, "err", err)
		} else {
			log.Info("file id map loaded", "path", cfg.FileIDMap, "entries", len(ids))
		}
	}

	// 2. Picker
	store, err := recent.NewStore[int64](cfg.RecentSize)
	if err != nil {
		fatal(log, "history store", err)
	}
	p, err := recent.NewPicker(cfg.Images, store)
	if err != nil {
		fatal(log, "picker", err)
	}
	var picker bot.Picker = p
	if cfg.RecentScope == config.ScopeGlobal {
		picker = recent.Shared[int64]{Picker: p, Key: globalKey}
	}

	// 3. Bot
	b, err := bot.New(bot.Config{
		Token:          cfg.Token,
		PreviewURL:     cfg.PreviewURL,
		PinnedUsername: cfg.PinnedUsername,
		PinnedMedia:    cfg.PinnedMedia,
	}, picker, media.NewResolver(ids), log)
	if err != nil {
		fatal(log, "bot init", err)
	}

	if cfg.OwnerID != 0 {
		up := media.NewTelegramUploader(b.API(), tele.ChatID(cfg.OwnerID))
		if err := b.ResolvePinned(ctx, up); err != nil {
			log.Warn("pinned media stays unresolved", "err", err)
		}
	}

	go func() {
		<-ctx.Done()
		log.Info("shutting down")
		b.Stop()
	}()

	b.Start()
}

func setupLogger(level string) *slog.Logger {
	return slog.New(slogcustom.NewCustomHandler(os.Stdout, slogcustom.ParseLevel(level)))
}

func fatal(log *slog.Logger, what string, err error) {
	log.Error(what+" failed", "err", err)
	os.Exit(1)
}
