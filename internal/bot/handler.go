// Package bot wires the prediction handlers into telebot.
//
// Delivery is best effort: a pick is recorded before the photo is sent,
// each send or edit is attempted once, and failures are logged and
// swallowed so the interaction never surfaces an error to the user.
package bot

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/eliseohh/predictbot/internal/caption"
	"github.com/eliseohh/predictbot/internal/media"
	"github.com/google/uuid"
	tele "gopkg.in/telebot.v3"
)

// Picker chooses an image locator for a requester.
type Picker interface {
	Pick(key int64) string
}

// Editor is the part of *tele.Bot used to turn placeholders into photos.
type Editor interface {
	EditMedia(msg tele.Editable, media tele.Inputtable, opts ...interface{}) (*tele.Message, error)
}

type Config struct {
	Token          string
	PreviewURL     string
	PinnedUsername string
	PinnedMedia    string
}

type Bot struct {
	api      *tele.Bot
	editor   Editor
	picker   Picker
	files    *media.Resolver
	cfg      Config
	log      *slog.Logger
	username string
	pinned   string
}

var allowedUpdates = []string{"message", "inline_query", "chosen_inline_result", "callback_query"}

func New(cfg Config, picker Picker, files *media.Resolver, log *slog.Logger) (*Bot, error) {
	pref := tele.Settings{
		Token: cfg.Token,
		Poller: &tele.LongPoller{
			Timeout:        10 * time.Second,
			AllowedUpdates: allowedUpdates,
		},
		OnError: func(err error, c tele.Context) {
			log.Error("handler failed", "err", err)
		},
	}

	api, err := tele.NewBot(pref)
	if err != nil {
		return nil, err
	}

	b := &Bot{
		api:      api,
		editor:   api,
		picker:   picker,
		files:    files,
		cfg:      cfg,
		log:      log,
		username: api.Me.Username,
		pinned:   cfg.PinnedMedia,
	}
	b.register()
	return b, nil
}

func (b *Bot) API() *tele.Bot { return b.api }

func (b *Bot) Start() {
	b.log.Info("bot started", "username", b.username)
	b.api.Start()
}

func (b *Bot) Stop() { b.api.Stop() }

func (b *Bot) register() {
	b.api.Handle("/start", b.handleStart)
	b.api.Handle("/help", b.handleStart)
	b.api.Handle("/predict", b.handlePredict)

	b.api.Handle(tele.OnQuery, b.handleQuery)
	b.api.Handle(tele.OnInlineResult, b.handleInlineResult)
	b.api.Handle(&btnReveal, b.handleReveal)
}

// ResolvePinned uploads the pinned media once so later deliveries reuse
// its file_id.
func (b *Bot) ResolvePinned(ctx context.Context, up media.Uploader) error {
	if b.cfg.PinnedUsername == "" || b.pinned == "" {
		return nil
	}
	id, err := up.Upload(ctx, b.pinned)
	if err != nil {
		return fmt.Errorf("resolve pinned media: %w", err)
	}
	b.log.Info("pinned media resolved", "locator", b.pinned, "file_id", id)
	b.pinned = id
	return nil
}

func (b *Bot) handleStart(c tele.Context) error {
	return c.Send(fmt.Sprintf(msgHelp, b.username))
}

func (b *Bot) handlePredict(c tele.Context) error {
	log := b.interaction("predict", c.Sender())

	photo := b.photoFor(c.Sender(), log)
	if err := c.Send(photo, tele.ModeHTML); err != nil {
		log.Error("send photo failed", "err", err)
	}
	return nil
}

// photoFor picks (or pins) an image for user and captions it. The pick
// is recorded here, before anything is sent.
func (b *Bot) photoFor(user *tele.User, log *slog.Logger) *tele.Photo {
	var (
		key                 int64
		username, firstName string
	)
	if user != nil {
		key, username, firstName = user.ID, user.Username, user.FirstName
	}

	var locator string
	if b.isPinned(username) {
		locator = b.pinned
		log.Debug("pinned media", "locator", locator)
	} else {
		locator = b.picker.Pick(key)
		log.Debug("picked", "locator", locator)
	}

	return b.files.Photo(locator, caption.Make(caption.DisplayName(username, firstName)))
}

func (b *Bot) isPinned(username string) bool {
	return b.pinned != "" && b.cfg.PinnedUsername != "" && strings.EqualFold(username, b.cfg.PinnedUsername)
}

// edit replaces msg with photo. A true result from Telegram means the
// inline message was edited.
func (b *Bot) edit(msg tele.Editable, photo *tele.Photo, log *slog.Logger) {
	if _, err := b.editor.EditMedia(msg, photo, tele.ModeHTML); err != nil && !errors.Is(err, tele.ErrTrueResult) {
		log.Error("edit message media failed", "err", err)
		return
	}
	log.Info("prediction delivered")
}

func (b *Bot) interaction(event string, user *tele.User) *slog.Logger {
	log := b.log.With("interaction", uuid.NewString(), "event", event)
	if user != nil {
		log = log.With("user", user.ID)
	}
	return log
}
