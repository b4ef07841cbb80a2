package bot

import (
	tele "gopkg.in/telebot.v3"
)

// ArticleID identifies the single placeholder result offered inline.
const ArticleID = "predict_inline"

var (
	revealMenu = &tele.ReplyMarkup{}
	btnReveal  = revealMenu.Data(btnRevealText, "predict")
)

func init() {
	revealMenu.Inline(revealMenu.Row(btnReveal))
}

func (b *Bot) handleQuery(c tele.Context) error {
	q := c.Query()
	log := b.interaction("inline_query", q.Sender)
	log.Debug("inline query", "text", q.Text)

	result := &tele.ArticleResult{
		Title:       inlineTitle,
		Description: inlineDescription,
		ThumbURL:    b.cfg.PreviewURL,
	}
	result.SetResultID(ArticleID)
	result.SetContent(&tele.InputTextMessageContent{Text: msgPending})
	result.SetReplyMarkup(revealMenu)

	err := c.Answer(&tele.QueryResponse{
		Results: tele.Results{result},
		// 0 is omitted on the wire and Telegram would cache for 300s.
		CacheTime:  1,
		IsPersonal: true,
	})
	if err != nil {
		log.Error("answer inline query failed", "err", err)
	}
	return nil
}

func (b *Bot) handleInlineResult(c tele.Context) error {
	r := c.InlineResult()
	if r == nil || r.ResultID != ArticleID {
		return nil
	}

	log := b.interaction("chosen_inline_result", r.Sender)
	if r.MessageID == "" {
		log.Warn("chosen result has no inline message id, skip edit")
		return nil
	}

	b.edit(r, b.photoFor(r.Sender, log), log)
	return nil
}

// handleReveal is the button fallback for clients that never deliver
// the chosen inline result.
func (b *Bot) handleReveal(c tele.Context) error {
	cb := c.Callback()
	log := b.interaction("reveal_button", cb.Sender)

	if cb.IsInline() || cb.Message != nil {
		b.edit(cb, b.photoFor(cb.Sender, log), log)
	} else {
		log.Warn("callback has no message to edit")
	}

	if err := c.Respond(); err != nil {
		log.Warn("answer callback failed", "err", err)
	}
	return nil
}
