// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the Quickly Poll Telegram bot.

Quickly Poll is an inline bot: typing

	@bot "Friday lunch?" Pizza Sushi "Thai food"

in any chat previews a poll, sending it publishes the poll, and tapping a
button casts, switches or retracts the tapper's single vote. The message
is edited in place with live tallies after every tap.

# Starting the Bot

	DATABASE_URL=file:polls.db TG_TOKEN=123:abc go run .

Or with flags:

	go run . -d "postgres://..." -t postgres -token 123:abc -p 3318

A .env file in the working directory is loaded first if present.

# Configuration

Required settings:

  - DATABASE_URL (-d): SQLite file or PostgreSQL connection string
  - TG_TOKEN (-token): Telegram bot token

Optional settings:

  - DATABASE_TYPE (-t): sqlite (default) or postgres
  - PORT (-p): HTTP port for health, metrics and poll inspection (default: 3318)
  - LOG_LEVEL (-log-level), LOG_FORMAT: slog level and text/json output
  - BOT_DEBUG (-debug), POLL_TIMEOUT: Bot API debugging and long-poll timeout
  - KAFKA_BROKERS, KAFKA_TOPIC: publish every vote transition to Kafka

# Architecture

  - telegram: long polling, update conversion, outbound Bot API calls
  - handlers: event dispatch (preview, publish, vote) and the operator API
  - voting: the per-user vote toggle, applied in one transaction
  - render: message text and keyboards
  - query: shell-style query parsing and option de-duplication
  - token: option fingerprints that double as callback data
  - store: polls, options and votes over database/sql
  - events, metrics: Kafka vote events and Prometheus counters
  - router, middleware: HTTP routes and helpers
  - db, cliparse, models: schema, configuration, shared types

See package documentation for each component.
*/
package main
