// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/danielhkuo/quickly-poll/metrics"
	"github.com/danielhkuo/quickly-poll/models"
	"github.com/danielhkuo/quickly-poll/query"
	"github.com/danielhkuo/quickly-poll/render"
	"github.com/danielhkuo/quickly-poll/store"
)

// preview answers an inline query with a single article. Nothing is stored:
// the user may still abandon the compose.
func (c *Controller) preview(ctx context.Context, log *slog.Logger, iq models.InlineQuery) (string, error) {
	q, err := query.Parse(iq.Text)
	if err != nil {
		log.Debug("ignoring inline query", "text", iq.Text, "reason", err)
		return metrics.OutcomeIgnored, nil
	}

	article := models.InlineArticle{
		QueryID:  iq.ID,
		ResultID: iq.ID,
		Title:    q.Title,
	}

	if q.IsAnnouncement() {
		article.Text = render.Announcement(q.Title)
	} else {
		article.Description = render.Description(q.Options)
		article.Text = render.Message(q.Title, q.Options, nil)
		article.Buttons = render.Buttons(iq.ID, q.Options, nil)
	}

	if err := c.messenger.AnswerInline(ctx, article); err != nil {
		return metrics.OutcomeError, fmt.Errorf("failed to answer inline query: %w", err)
	}

	return metrics.OutcomeOK, nil
}

// publish creates the poll once the user actually sends the composed result.
// The result id becomes the poll id, matching the buttons built by preview.
func (c *Controller) publish(ctx context.Context, log *slog.Logger, r models.ChosenInlineResult) (string, error) {
	q, err := query.Parse(r.Text)
	if err != nil {
		log.Debug("ignoring chosen result", "text", r.Text, "reason", err)
		return metrics.OutcomeIgnored, nil
	}
	if q.IsAnnouncement() {
		log.Debug("announcement sent, no poll created", "result_id", r.ResultID)
		return metrics.OutcomeIgnored, nil
	}

	poll, err := c.store.CreatePoll(ctx, r.ResultID, q.Title, r.FromUserID, q.Options)
	if errors.Is(err, store.ErrConflict) {
		return metrics.OutcomeError, fmt.Errorf("poll %s already published: %w", r.ResultID, err)
	}
	if err != nil {
		return metrics.OutcomeError, err
	}

	c.metrics.PollsCreated.Inc()
	log.Info("poll created",
		"poll_id", poll.Poll.ID,
		"creator_id", poll.Poll.CreatorID,
		"options", len(poll.Options),
	)

	return metrics.OutcomeOK, nil
}
