// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/danielhkuo/quickly-poll/models"
	"github.com/danielhkuo/quickly-poll/store"
	"github.com/danielhkuo/quickly-poll/testutil"
)

func TestGetPoll(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	handler := NewResultsHandler(store.New(conn))

	ids := testutil.CreateTestPoll(t, conn, "p1", "Lunch?", "Pizza", "Sushi", "Tacos")
	testutil.AddTestVote(t, conn, 1, "p1", ids[0], 1)
	testutil.AddTestVote(t, conn, 2, "p1", ids[2], 2)
	testutil.AddTestVote(t, conn, 3, "p1", ids[2], 3)

	tests := []struct {
		name           string
		pollID         string
		expectedStatus int
		checkResponse  func(t *testing.T, w *httptest.ResponseRecorder)
	}{
		{
			name:           "poll with tallies",
			pollID:         "p1",
			expectedStatus: http.StatusOK,
			checkResponse: func(t *testing.T, w *httptest.ResponseRecorder) {
				var resp models.PollResults
				testutil.AssertJSON(t, w, &resp)

				if resp.Poll.ID != "p1" || resp.Poll.Title != "Lunch?" {
					t.Errorf("Unexpected poll %+v", resp.Poll)
				}
				if resp.TotalVotes != 3 {
					t.Errorf("Expected 3 total votes, got %d", resp.TotalVotes)
				}

				want := []struct {
					title string
					votes int
				}{{"Pizza", 1}, {"Sushi", 0}, {"Tacos", 2}}
				if len(resp.Options) != len(want) {
					t.Fatalf("Expected %d options, got %d", len(want), len(resp.Options))
				}
				for i, w := range want {
					if resp.Options[i].Title != w.title || resp.Options[i].Votes != w.votes {
						t.Errorf("Option %d = %s/%d, want %s/%d",
							i, resp.Options[i].Title, resp.Options[i].Votes, w.title, w.votes)
					}
					if resp.Options[i].ID != ids[i] {
						t.Errorf("Option %d id = %q, want %q", i, resp.Options[i].ID, ids[i])
					}
				}
			},
		},
		{
			name:           "unknown poll",
			pollID:         "nope",
			expectedStatus: http.StatusNotFound,
			checkResponse: func(t *testing.T, w *httptest.ResponseRecorder) {
				var resp models.ErrorResponse
				testutil.AssertJSON(t, w, &resp)
				if resp.Message != "Poll not found" {
					t.Errorf("Unexpected message %q", resp.Message)
				}
			},
		},
		{
			name:           "missing id",
			pollID:         "",
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := testutil.MakeRequest("GET", "/polls/"+tt.pollID)
			req.SetPathValue("id", tt.pollID)
			w := httptest.NewRecorder()

			handler.GetPoll(w, req)

			testutil.AssertStatus(t, w, tt.expectedStatus)
			if tt.checkResponse != nil {
				tt.checkResponse(t, w)
			}
		})
	}
}

func TestListPolls(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	handler := NewResultsHandler(store.New(conn))

	for i := 0; i < 3; i++ {
		testutil.CreateTestPoll(t, conn, fmt.Sprintf("p%d", i), "Poll", "A", "B")
	}

	tests := []struct {
		name           string
		query          string
		expectedStatus int
		expectedCount  int
	}{
		{"default limit", "", http.StatusOK, 3},
		{"explicit limit", "?limit=2", http.StatusOK, 2},
		{"limit above max is clamped", "?limit=1000", http.StatusOK, 3},
		{"zero limit", "?limit=0", http.StatusBadRequest, 0},
		{"non numeric limit", "?limit=abc", http.StatusBadRequest, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			handler.ListPolls(w, testutil.MakeRequest("GET", "/polls"+tt.query))

			testutil.AssertStatus(t, w, tt.expectedStatus)
			if tt.expectedStatus != http.StatusOK {
				return
			}

			var polls []models.PollSummary
			testutil.AssertJSON(t, w, &polls)
			if len(polls) != tt.expectedCount {
				t.Errorf("Expected %d polls, got %d", tt.expectedCount, len(polls))
			}
			for _, p := range polls {
				if p.OptionCount != 2 {
					t.Errorf("Poll %s: expected 2 options, got %d", p.ID, p.OptionCount)
				}
			}
		})
	}
}

func TestListPollsEmpty(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	handler := NewResultsHandler(store.New(conn))

	w := httptest.NewRecorder()
	handler.ListPolls(w, testutil.MakeRequest("GET", "/polls"))

	testutil.AssertStatus(t, w, http.StatusOK)
	if body := w.Body.String(); body != "[]\n" {
		t.Errorf("Expected empty JSON array, got %q", body)
	}
}
