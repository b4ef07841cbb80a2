package media

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	tele "gopkg.in/telebot.v3"
)

// Uploader turns a locator into a Telegram file_id.
type Uploader interface {
	Upload(ctx context.Context, locator string) (string, error)
}

// Sender is the part of *tele.Bot used for uploads.
type Sender interface {
	Send(to tele.Recipient, what interface{}, opts ...interface{}) (*tele.Message, error)
}

// TelegramUploader uploads by sending each photo to a chat, captioned
// with its locator, and keeping the file_id Telegram assigns.
type TelegramUploader struct {
	bot  Sender
	chat tele.Recipient
}

func NewTelegramUploader(bot Sender, chat tele.Recipient) *TelegramUploader {
	return &TelegramUploader{bot: bot, chat: chat}
}

func (u *TelegramUploader) Upload(ctx context.Context, locator string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	msg, err := u.bot.Send(u.chat, &tele.Photo{File: SourceFile(locator), Caption: locator})
	if err != nil {
		return "", err
	}
	if msg == nil || msg.Photo == nil || msg.Photo.FileID == "" {
		return "", errors.New("telegram returned no photo")
	}
	return msg.Photo.FileID, nil
}

// ReadLocators reads one locator per line, skipping blank lines.
func ReadLocators(r io.Reader) ([]string, error) {
	var out []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		if line := strings.TrimSpace(sc.Text()); line != "" {
			out = append(out, line)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read locators: %w", err)
	}
	return out, nil
}

// UploadAll uploads each locator once, in order. A failed item is logged
// and skipped; the mapping holds only the successes.
func UploadAll(ctx context.Context, up Uploader, locators []string, log *slog.Logger) (Mapping, []error) {
	m := make(Mapping, len(locators))
	var errs []error

	for _, locator := range locators {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}

		fileID, err := up.Upload(ctx, locator)
		if err != nil {
			log.Error("ERR", "locator", locator, "err", err)
			errs = append(errs, fmt.Errorf("%s: %w", locator, err))
			continue
		}

		m[locator] = fileID
		log.Info("OK", "locator", locator, "file_id", fileID)
	}

	return m, errs
}
