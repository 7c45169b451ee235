// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

Environment variables are bound with struct tags (caarlos0/env) and the
result is checked with go-playground/validator. A .env file is loaded by
main before ParseFlags runs, so it only ever sees the process environment.

# Config Fields

  - Port: HTTP listen port for health, metrics and poll inspection (default: 3318)
  - DatabaseURL: SQLite file or PostgreSQL connection string (required)
  - DatabaseType: "sqlite" (default) or "postgres"
  - TelegramToken: Bot API token (required)
  - BotDebug: Log raw Bot API traffic
  - LogLevel: debug, info (default), warn, error
  - LogFormat: text (default) or json
  - PollTimeout: Long-poll timeout in seconds (default: 60)
  - KafkaBrokers: Comma-separated brokers; empty disables vote events
  - KafkaTopic: Topic for vote events (default: poll-votes)

# CLI Flags

	-p          HTTP port
	-d          Database URL
	-t          Database type
	-token      Telegram bot token
	-debug      Bot API debug logging
	-log-level  Log level

# Environment Variables

	PORT           → -p
	DATABASE_URL   → -d
	DATABASE_TYPE  → -t
	TG_TOKEN       → -token
	BOT_DEBUG      → -debug
	LOG_LEVEL      → -log-level
	LOG_FORMAT
	POLL_TIMEOUT
	KAFKA_BROKERS
	KAFKA_TOPIC

CLI flags take precedence over environment variables.

# Validation

ParseFlags returns an error naming the flag and variable to set when:

  - DATABASE_URL or TG_TOKEN is missing
  - DATABASE_TYPE, LOG_LEVEL or LOG_FORMAT has an unknown value
  - PORT or POLL_TIMEOUT is out of range
*/
package cliparse
