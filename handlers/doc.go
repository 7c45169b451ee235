// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers turns platform events and operator HTTP requests into
store operations.

# Controller

Controller consumes one models.Event at a time:

	ctrl := handlers.NewController(store, bot, publisher, metrics)
	err := ctrl.Dispatch(ctx, ev)

Each event is logged with a fresh event_id and counted by kind and outcome.
Failures are logged and returned; nothing is retried.

# Poll Lifecycle

	inline_query          → preview: one article, nothing stored
	chosen_inline_result  → publish: poll and options created
	callback_query        → vote: toggle, re-render, edit, acknowledge

Query text is split with shell quoting rules, so options may contain
spaces when quoted:

	"Friday lunch?" Pizza "Thai food"

A title with no options is sent as a bold announcement and never becomes
a poll. Empty or unbalanced input is ignored.

The inline query id doubles as the result id and therefore the poll id.
Button callback data is the option id (poll id followed by the option
fingerprint), so a tap resolves to its option with one lookup.

# Votes

Each tap is applied by voting.Engine in one transaction. The message is
re-rendered from live tallies after every tap, even if nothing visible
changed. Taps on unknown options are acknowledged and otherwise ignored.

# Operator API

ResultsHandler serves read-only JSON:

	GET /polls       → ListPolls (newest first, ?limit=N up to 100)
	GET /polls/{id}  → GetPoll (options with live tallies)

The outbound side of the chat platform is the Messenger interface,
implemented by telegram.Bot and by fakes in tests.
*/
package handlers
