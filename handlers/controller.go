// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/danielhkuo/quickly-poll/events"
	"github.com/danielhkuo/quickly-poll/metrics"
	"github.com/danielhkuo/quickly-poll/models"
	"github.com/danielhkuo/quickly-poll/store"
	"github.com/danielhkuo/quickly-poll/voting"
)

// Messenger is the outbound side of the chat platform
type Messenger interface {
	AnswerInline(ctx context.Context, article models.InlineArticle) error
	EditMessage(ctx context.Context, edit models.EditMessage) error
	AnswerCallback(ctx context.Context, callbackID, text string) error
}

// Controller turns inbound platform events into store writes and message edits
type Controller struct {
	store     *store.Store
	engine    *voting.Engine
	messenger Messenger
	publisher events.Publisher
	metrics   *metrics.Metrics
}

func NewController(s *store.Store, m Messenger, p events.Publisher, mx *metrics.Metrics) *Controller {
	if p == nil {
		p = events.NopPublisher{}
	}
	return &Controller{
		store:     s,
		engine:    voting.NewEngine(s),
		messenger: m,
		publisher: p,
		metrics:   mx,
	}
}

// Dispatch handles one event to completion. Failures are logged and
// returned; the event is not retried.
func (c *Controller) Dispatch(ctx context.Context, ev models.Event) error {
	start := time.Now()
	log := slog.With("event_id", uuid.NewString(), "event", string(ev.Kind))

	var (
		outcome string
		err     error
	)

	switch {
	case ev.Kind == models.EventInlineQuery && ev.Inline != nil:
		outcome, err = c.preview(ctx, log, *ev.Inline)
	case ev.Kind == models.EventChosenInlineResult && ev.Chosen != nil:
		outcome, err = c.publish(ctx, log, *ev.Chosen)
	case ev.Kind == models.EventCallbackQuery && ev.Callback != nil:
		outcome, err = c.vote(ctx, log, *ev.Callback)
	default:
		log.Warn("dropping malformed event")
		return fmt.Errorf("unsupported event %q", ev.Kind)
	}

	c.metrics.EventsHandled.WithLabelValues(string(ev.Kind), outcome).Inc()
	c.metrics.HandleDuration.WithLabelValues(string(ev.Kind)).Observe(time.Since(start).Seconds())

	if err != nil {
		log.Error("event failed", "error", err)
		return err
	}

	log.Debug("event handled", "outcome", outcome, "duration_ms", time.Since(start).Milliseconds())
	return nil
}
