// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines the operator HTTP routes.

The bot itself talks to Telegram by long polling; this mux only serves
health checks, Prometheus metrics, and read-only poll inspection.

# Route Registration

	mux := router.NewRouter(store, registry)

# Endpoints

	GET /health      - Liveness, plain "OK"
	GET /metrics     - Prometheus exposition of the given gatherer
	GET /polls       - Recent polls
	GET /polls/{id}  - Poll, options, live tallies
	GET /            - Banner

Any other method on these paths returns 405.
*/
package router
