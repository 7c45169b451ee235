// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/danielhkuo/quickly-poll/events"
	"github.com/danielhkuo/quickly-poll/metrics"
	"github.com/danielhkuo/quickly-poll/models"
	"github.com/danielhkuo/quickly-poll/render"
	"github.com/danielhkuo/quickly-poll/store"
	"github.com/danielhkuo/quickly-poll/token"
)

// vote applies a button tap and edits the published message in place
func (c *Controller) vote(ctx context.Context, log *slog.Logger, cb models.CallbackQuery) (string, error) {
	if _, _, err := token.SplitOptionID(cb.Data); err != nil {
		log.Info("ignoring tap with malformed data", "data", cb.Data, "user_id", cb.FromUserID)
		c.ack(ctx, log, cb.ID)
		return metrics.OutcomeIgnored, nil
	}

	_, option, err := c.store.GetOptionByToken(ctx, cb.Data)
	if errors.Is(err, store.ErrNotFound) {
		// Poll data lost or token forged; inline mode has no way to tell the user
		log.Info("ignoring tap on unknown option", "data", cb.Data, "user_id", cb.FromUserID)
		c.ack(ctx, log, cb.ID)
		return metrics.OutcomeIgnored, nil
	}
	if err != nil {
		return metrics.OutcomeError, err
	}

	tr, err := c.engine.Toggle(ctx, cb.FromUserID, option)
	if err != nil {
		return metrics.OutcomeError, err
	}
	c.metrics.VotesToggled.WithLabelValues(string(tr.Kind)).Inc()

	log.Info("vote toggled",
		"poll_id", option.PollID,
		"option_id", option.ID,
		"user_id", cb.FromUserID,
		"transition", tr.Kind,
	)

	err = c.publisher.Publish(ctx, events.VoteEvent{
		PollID:     option.PollID,
		OptionID:   option.ID,
		UserID:     cb.FromUserID,
		Transition: string(tr.Kind),
		At:         time.Now().UTC(),
	})
	if err != nil {
		// The vote is committed; a lost event must not block the edit
		log.Warn("failed to publish vote event", "poll_id", option.PollID, "error", err)
	}

	edit, err := c.renderEdit(ctx, option.PollID, cb.InlineMessageID)
	if err != nil {
		return metrics.OutcomeError, err
	}

	if err := c.messenger.EditMessage(ctx, edit); err != nil {
		return metrics.OutcomeError, fmt.Errorf("failed to edit message: %w", err)
	}

	c.ack(ctx, log, cb.ID)
	return metrics.OutcomeOK, nil
}

// renderEdit builds the message for a poll from the latest committed tallies
func (c *Controller) renderEdit(ctx context.Context, pollID, inlineMessageID string) (models.EditMessage, error) {
	poll, err := c.store.GetPoll(ctx, pollID)
	if err != nil {
		return models.EditMessage{}, err
	}

	counts, err := c.store.Tallies(ctx, pollID)
	if err != nil {
		return models.EditMessage{}, err
	}

	titles := poll.Titles()
	return models.EditMessage{
		InlineMessageID: inlineMessageID,
		Text:            render.Message(poll.Poll.Title, titles, counts),
		Buttons:         render.Buttons(poll.Poll.ID, titles, counts),
	}, nil
}

func (c *Controller) ack(ctx context.Context, log *slog.Logger, callbackID string) {
	if err := c.messenger.AnswerCallback(ctx, callbackID, ""); err != nil {
		log.Warn("failed to answer callback", "callback_id", callbackID, "error", err)
	}
}
