// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and helper functions for the
operator API.

# Request Logging

	mux.HandleFunc("GET /polls", middleware.WithLogging(handler))

Logs request start at debug level (method, path, client) and completion
(status, duration_ms) at info level.

# CORS

	server := http.Server{Handler: middleware.CORS(mux)}

The API is read-only, so only GET and OPTIONS are advertised.

# JSON Helpers

	middleware.JSONResponse(w, http.StatusOK, data)
	middleware.ErrorResponse(w, http.StatusNotFound, "Poll not found")

# Client IP

ClientIP prefers X-Forwarded-For, then X-Real-IP, then RemoteAddr.
*/
package middleware
