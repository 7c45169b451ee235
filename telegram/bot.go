// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package telegram

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/danielhkuo/quickly-poll/models"
)

// Only the update types the bot reacts to are requested from Telegram
var allowedUpdates = []string{"inline_query", "chosen_inline_result", "callback_query"}

// requester is the part of *tgbotapi.BotAPI used for outbound calls
type requester interface {
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

// Dispatcher handles one converted event
type Dispatcher interface {
	Dispatch(ctx context.Context, ev models.Event) error
}

type Bot struct {
	api     *tgbotapi.BotAPI
	out     requester
	timeout int
}

// New authorizes against the Bot API. timeout is the long-poll timeout in seconds.
func New(token string, debug bool, timeout int) (*Bot, error) {
	if err := tgbotapi.SetLogger(slog.NewLogLogger(slog.Default().Handler(), slog.LevelDebug)); err != nil {
		return nil, fmt.Errorf("failed to set bot logger: %w", err)
	}

	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to authorize bot: %w", err)
	}
	api.Debug = debug

	slog.Info("bot authorized", "username", api.Self.UserName)

	return &Bot{api: api, out: api, timeout: timeout}, nil
}

// Run long-polls for updates and dispatches them one at a time until ctx is
// cancelled. Dispatch errors are already logged by the dispatcher.
func (b *Bot) Run(ctx context.Context, d Dispatcher) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = b.timeout
	u.AllowedUpdates = allowedUpdates

	updates := b.api.GetUpdatesChan(u)
	slog.Info("polling for updates", "timeout_s", b.timeout)

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			return nil
		case upd, ok := <-updates:
			if !ok {
				return errors.New("update channel closed")
			}
			ev, ok := ToEvent(upd)
			if !ok {
				slog.Debug("skipping update", "update_id", upd.UpdateID)
				continue
			}
			_ = d.Dispatch(ctx, ev)
		}
	}
}

// ToEvent converts an update into the bot's event type. Updates the bot does
// not handle, or that lack a sender, report false.
func ToEvent(upd tgbotapi.Update) (models.Event, bool) {
	switch {
	case upd.InlineQuery != nil:
		q := upd.InlineQuery
		return models.Event{
			Kind: models.EventInlineQuery,
			Inline: &models.InlineQuery{
				ID:         q.ID,
				Text:       q.Query,
				FromUserID: userID(q.From),
			},
		}, true

	case upd.ChosenInlineResult != nil:
		r := upd.ChosenInlineResult
		if r.From == nil {
			return models.Event{}, false
		}
		return models.Event{
			Kind: models.EventChosenInlineResult,
			Chosen: &models.ChosenInlineResult{
				ResultID:        r.ResultID,
				Text:            r.Query,
				FromUserID:      r.From.ID,
				InlineMessageID: r.InlineMessageID,
			},
		}, true

	case upd.CallbackQuery != nil:
		cb := upd.CallbackQuery
		if cb.From == nil {
			return models.Event{}, false
		}
		return models.Event{
			Kind: models.EventCallbackQuery,
			Callback: &models.CallbackQuery{
				ID:              cb.ID,
				FromUserID:      cb.From.ID,
				Data:            cb.Data,
				InlineMessageID: cb.InlineMessageID,
			},
		}, true
	}

	return models.Event{}, false
}

func userID(u *tgbotapi.User) int64 {
	if u == nil {
		return 0
	}
	return u.ID
}

// AnswerInline offers the article as the only result. Answers are personal
// and uncached: the result id becomes the poll id, so two users must never
// be handed the same cached result.
func (b *Bot) AnswerInline(_ context.Context, a models.InlineArticle) error {
	article := tgbotapi.NewInlineQueryResultArticleMarkdown(a.ResultID, a.Title, a.Text)
	article.Description = a.Description
	article.ReplyMarkup = keyboard(a.Buttons)

	_, err := b.out.Request(tgbotapi.InlineConfig{
		InlineQueryID: a.QueryID,
		Results:       []interface{}{article},
		CacheTime:     0,
		IsPersonal:    true,
	})
	if err != nil {
		return fmt.Errorf("answerInlineQuery: %w", err)
	}
	return nil
}

// EditMessage replaces the text and keyboard of an inline message. An edit
// that changes nothing is not an error.
func (b *Bot) EditMessage(_ context.Context, e models.EditMessage) error {
	edit := tgbotapi.EditMessageTextConfig{
		BaseEdit: tgbotapi.BaseEdit{
			InlineMessageID: e.InlineMessageID,
			ReplyMarkup:     keyboard(e.Buttons),
		},
		Text:      e.Text,
		ParseMode: tgbotapi.ModeMarkdown,
	}

	_, err := b.out.Request(edit)
	if isNotModified(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("editMessageText: %w", err)
	}
	return nil
}

func (b *Bot) AnswerCallback(_ context.Context, callbackID, text string) error {
	if _, err := b.out.Request(tgbotapi.NewCallback(callbackID, text)); err != nil {
		return fmt.Errorf("answerCallbackQuery: %w", err)
	}
	return nil
}

// keyboard converts button rows; no rows means no keyboard at all
func keyboard(rows [][]models.Button) *tgbotapi.InlineKeyboardMarkup {
	if len(rows) == 0 {
		return nil
	}

	kb := make([][]tgbotapi.InlineKeyboardButton, len(rows))
	for i, row := range rows {
		buttons := make([]tgbotapi.InlineKeyboardButton, len(row))
		for j, btn := range row {
			buttons[j] = tgbotapi.NewInlineKeyboardButtonData(btn.Label, btn.Data)
		}
		kb[i] = tgbotapi.NewInlineKeyboardRow(buttons...)
	}

	markup := tgbotapi.NewInlineKeyboardMarkup(kb...)
	return &markup
}

func isNotModified(err error) bool {
	var apiErr *tgbotapi.Error
	return errors.As(err, &apiErr) && strings.Contains(apiErr.Message, "message is not modified")
}
