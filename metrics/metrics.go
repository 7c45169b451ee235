// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package metrics holds the bot's Prometheus collectors.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Event outcomes
const (
	OutcomeOK      = "ok"
	OutcomeIgnored = "ignored"
	OutcomeError   = "error"
)

type Metrics struct {
	PollsCreated   prometheus.Counter
	VotesToggled   *prometheus.CounterVec
	EventsHandled  *prometheus.CounterVec
	HandleDuration *prometheus.HistogramVec
}

// New registers the bot's metrics with reg. Each registry may only be
// passed once.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)

	return &Metrics{
		PollsCreated: f.NewCounter(prometheus.CounterOpts{
			Namespace: "pollbot",
			Name:      "polls_created_total",
			Help:      "Total number of polls stored after being sent",
		}),
		VotesToggled: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "pollbot",
				Name:      "votes_toggled_total",
				Help:      "Vote transitions applied, by kind (cast, retract, switch)",
			},
			[]string{"kind"},
		),
		EventsHandled: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "pollbot",
				Name:      "events_handled_total",
				Help:      "Inbound platform events, by kind and outcome",
			},
			[]string{"event", "outcome"},
		),
		HandleDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "pollbot",
				Name:      "event_handle_seconds",
				Help:      "Time spent handling one inbound event",
				Buckets:   prometheus.ExponentialBuckets(0.001, 2, 12), // 1ms to ~4s
			},
			[]string{"event"},
		),
	}
}
