// Command fileids uploads every image listed in a file once and saves
// the locator -> file_id mapping for the bot's FILE_ID_MAP.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strconv"

	"github.com/eliseohh/predictbot/internal/config"
	"github.com/eliseohh/predictbot/internal/lib/slogcustom"
	"github.com/eliseohh/predictbot/internal/media"
	"github.com/spf13/pflag"
	tele "gopkg.in/telebot.v3"
)

func main() {
	if err := config.LoadDotEnv(); err != nil {
		slog.Warn("env file ignored", "err", err)
	}

	in := pflag.StringP("in", "i", "images.txt", "file with one image URL per line")
	out := pflag.StringP("out", "o", "url_fileid_map.json", "mapping file to write (.json or .db)")
	chat := pflag.Int64("chat", envInt64("CHAT_ID"), "chat the photos are uploaded to")
	pflag.Parse()

	log := slog.New(slogcustom.NewCustomHandler(os.Stdout, slog.LevelInfo))

	token := os.Getenv("BOT_TOKEN")
	if token == "" {
		log.Error(config.ErrMissingToken.Error())
		os.Exit(1)
	}
	if *chat == 0 {
		log.Error("chat id is required (--chat or CHAT_ID)")
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, log, token, *chat, *in, *out); err != nil {
		log.Error("upload failed", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, log *slog.Logger, token string, chat int64, in, out string) error {
	f, err := os.Open(in)
	if err != nil {
		return err
	}
	locators, err := media.ReadLocators(f)
	f.Close()
	if err != nil {
		return err
	}

	api, err := tele.NewBot(tele.Settings{Token: token})
	if err != nil {
		return fmt.Errorf("bot init: %w", err)
	}

	up := media.NewTelegramUploader(api, tele.ChatID(chat))
	mapping, errs := media.UploadAll(ctx, up, locators, log)

	// partial results are kept even after an interrupt
	if err := media.SaveMapping(context.Background(), out, mapping); err != nil {
		return err
	}
	fmt.Printf("Saved %d items to %s\n", len(mapping), out)
	if len(errs) > 0 {
		log.Warn("some images were not uploaded", "failed", len(errs))
	}
	return nil
}

func envInt64(name string) int64 {
	n, _ := strconv.ParseInt(os.Getenv(name), 10, 64)
	return n
}
