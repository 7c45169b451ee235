// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/danielhkuo/quickly-poll/middleware"
	"github.com/danielhkuo/quickly-poll/models"
	"github.com/danielhkuo/quickly-poll/store"
)

const (
	defaultListLimit = 20
	maxListLimit     = 100
)

type ResultsHandler struct {
	store *store.Store
}

func NewResultsHandler(s *store.Store) *ResultsHandler {
	return &ResultsHandler{store: s}
}

// ListPolls handles GET /polls?limit=N
// Returns the most recently published polls
func (h *ResultsHandler) ListPolls(w http.ResponseWriter, r *http.Request) {
	limit := defaultListLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			middleware.ErrorResponse(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = min(n, maxListLimit)
	}

	polls, err := h.store.ListPolls(r.Context(), limit)
	if err != nil {
		slog.Error("failed to list polls", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, polls)
}

// GetPoll handles GET /polls/{id}
// Returns the poll with its options and live tallies
func (h *ResultsHandler) GetPoll(w http.ResponseWriter, r *http.Request) {
	pollID := r.PathValue("id")
	if pollID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "id is required")
		return
	}

	poll, err := h.store.GetPoll(r.Context(), pollID)
	if errors.Is(err, store.ErrNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Poll not found")
		return
	}
	if err != nil {
		slog.Error("failed to query poll", "poll_id", pollID, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	counts, err := h.store.Tallies(r.Context(), pollID)
	if err != nil {
		slog.Error("failed to count votes", "poll_id", pollID, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	response := models.PollResults{
		Poll:    poll.Poll,
		Options: make([]models.OptionResults, len(poll.Options)),
	}
	for i, opt := range poll.Options {
		response.Options[i] = models.OptionResults{Option: opt, Votes: counts[i]}
		response.TotalVotes += counts[i]
	}

	middleware.JSONResponse(w, http.StatusOK, response)
}
