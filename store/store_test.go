// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/danielhkuo/quickly-poll/models"
	"github.com/danielhkuo/quickly-poll/testutil"
	"github.com/danielhkuo/quickly-poll/token"
)

func TestCreatePoll(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	s := New(conn)
	ctx := context.Background()

	p, err := s.CreatePoll(ctx, "1001", "Lunch?", 42, []string{"Pizza", "Sushi"})
	if err != nil {
		t.Fatalf("CreatePoll() error = %v", err)
	}

	if p.Poll.ID != "1001" || p.Poll.Title != "Lunch?" || p.Poll.CreatorID != 42 {
		t.Errorf("Unexpected poll: %+v", p.Poll)
	}
	if len(p.Options) != 2 {
		t.Fatalf("Expected 2 options, got %d", len(p.Options))
	}

	for i, opt := range p.Options {
		if opt.Position != i {
			t.Errorf("Option %d position = %d", i, opt.Position)
		}
		// Round trip: id recomputed from stored title and poll id
		if !token.Matches(opt.ID, opt.PollID, opt.Title) {
			t.Errorf("Option %q id %q does not match its fingerprint", opt.Title, opt.ID)
		}
	}

	stored, err := s.GetPoll(ctx, "1001")
	if err != nil {
		t.Fatalf("GetPoll() error = %v", err)
	}
	if !reflect.DeepEqual(stored.Titles(), []string{"Pizza", "Sushi"}) {
		t.Errorf("Stored titles = %q", stored.Titles())
	}
	if !reflect.DeepEqual(stored.Options, p.Options) {
		t.Errorf("Stored options %+v differ from created %+v", stored.Options, p.Options)
	}
}

func TestCreatePollConflict(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	s := New(conn)
	ctx := context.Background()

	if _, err := s.CreatePoll(ctx, "dup", "First", 1, []string{"A"}); err != nil {
		t.Fatalf("CreatePoll() error = %v", err)
	}

	_, err := s.CreatePoll(ctx, "dup", "Second", 2, []string{"B"})
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("Expected ErrConflict, got %v", err)
	}

	// The failed attempt must not leave rows behind
	if n := testutil.CountRows(t, conn, "options"); n != 1 {
		t.Errorf("Expected 1 option row, got %d", n)
	}
	stored, err := s.GetPoll(ctx, "dup")
	if err != nil {
		t.Fatalf("GetPoll() error = %v", err)
	}
	if stored.Poll.Title != "First" {
		t.Errorf("Poll was overwritten: %q", stored.Poll.Title)
	}
}

func TestCreatePollRejectsDuplicateTitles(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	s := New(conn)

	_, err := s.CreatePoll(context.Background(), "p", "Q", 1, []string{"A", "A"})
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("Expected ErrConflict, got %v", err)
	}

	// Whole poll rolled back
	if n := testutil.CountRows(t, conn, "polls"); n != 0 {
		t.Errorf("Expected 0 polls, got %d", n)
	}
}

func TestCreatePollNoOptions(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	s := New(conn)

	_, err := s.CreatePoll(context.Background(), "p", "Q", 1, nil)
	if !errors.Is(err, ErrNoOptions) {
		t.Fatalf("Expected ErrNoOptions, got %v", err)
	}
}

func TestGetOptionByToken(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	s := New(conn)
	ctx := context.Background()

	ids := testutil.CreateTestPoll(t, conn, "77", "Lunch?", "Pizza", "Sushi")

	poll, opt, err := s.GetOptionByToken(ctx, ids[1])
	if err != nil {
		t.Fatalf("GetOptionByToken() error = %v", err)
	}
	if poll.ID != "77" || poll.Title != "Lunch?" {
		t.Errorf("Unexpected poll: %+v", poll)
	}
	if opt.Title != "Sushi" || opt.Position != 1 || opt.PollID != "77" {
		t.Errorf("Unexpected option: %+v", opt)
	}

	tests := []struct {
		name  string
		token string
	}{
		{"unknown fingerprint", "77" + token.Fingerprint("Tacos")},
		{"forged", "not-a-token"},
		{"empty", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := s.GetOptionByToken(ctx, tt.token)
			if !errors.Is(err, ErrNotFound) {
				t.Errorf("Expected ErrNotFound, got %v", err)
			}
		})
	}
}

func TestGetPollNotFound(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	s := New(conn)

	_, err := s.GetPoll(context.Background(), "missing")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("Expected ErrNotFound, got %v", err)
	}
}

func TestVoteOperations(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	s := New(conn)
	ctx := context.Background()

	ids := testutil.CreateTestPoll(t, conn, "9", "Q", "A", "B")
	optA := models.Option{ID: ids[0], PollID: "9", Title: "A"}

	v, err := s.FindVote(ctx, 5, ids[0])
	if err != nil || v != nil {
		t.Fatalf("FindVote() on empty store = %v, %v", v, err)
	}

	seq, err := s.NextCastAt(ctx, "9")
	if err != nil {
		t.Fatalf("NextCastAt() error = %v", err)
	}
	if seq != 1 {
		t.Errorf("First sequence = %d, want 1", seq)
	}

	if err := s.CastVote(ctx, 5, optA, seq); err != nil {
		t.Fatalf("CastVote() error = %v", err)
	}

	v, err = s.FindVote(ctx, 5, ids[0])
	if err != nil {
		t.Fatalf("FindVote() error = %v", err)
	}
	want := &models.Vote{UserID: 5, OptionID: ids[0], PollID: "9", CastAt: 1}
	if !reflect.DeepEqual(v, want) {
		t.Errorf("FindVote() = %+v, want %+v", v, want)
	}

	uv, err := s.FindUserVote(ctx, "9", 5)
	if err != nil {
		t.Fatalf("FindUserVote() error = %v", err)
	}
	if !reflect.DeepEqual(uv, want) {
		t.Errorf("FindUserVote() = %+v, want %+v", uv, want)
	}

	seq, _ = s.NextCastAt(ctx, "9")
	if seq != 2 {
		t.Errorf("Next sequence = %d, want 2", seq)
	}

	// A second vote by the same user in the same poll is rejected
	optB := models.Option{ID: ids[1], PollID: "9", Title: "B"}
	if err := s.CastVote(ctx, 5, optB, seq); !errors.Is(err, ErrConflict) {
		t.Errorf("Expected ErrConflict for second vote, got %v", err)
	}

	if err := s.RemoveVote(ctx, 5, ids[0]); err != nil {
		t.Fatalf("RemoveVote() error = %v", err)
	}
	v, _ = s.FindVote(ctx, 5, ids[0])
	if v != nil {
		t.Errorf("Vote still present after RemoveVote: %+v", v)
	}

	// Removing a missing vote is not an error
	if err := s.RemoveVote(ctx, 5, ids[0]); err != nil {
		t.Errorf("RemoveVote() of missing vote error = %v", err)
	}
}

func TestTallies(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	s := New(conn)
	ctx := context.Background()

	ids := testutil.CreateTestPoll(t, conn, "p1", "Q", "A", "B", "C")
	other := testutil.CreateTestPoll(t, conn, "p2", "Other", "A")

	testutil.AddTestVote(t, conn, 1, "p1", ids[0], 1)
	testutil.AddTestVote(t, conn, 2, "p1", ids[0], 2)
	testutil.AddTestVote(t, conn, 3, "p1", ids[2], 3)
	testutil.AddTestVote(t, conn, 1, "p2", other[0], 1)

	counts, err := s.Tallies(ctx, "p1")
	if err != nil {
		t.Fatalf("Tallies() error = %v", err)
	}
	if !reflect.DeepEqual(counts, []int{2, 0, 1}) {
		t.Errorf("Tallies() = %v, want [2 0 1]", counts)
	}

	for i, id := range ids {
		n, err := s.Tally(ctx, id)
		if err != nil {
			t.Fatalf("Tally() error = %v", err)
		}
		if n != counts[i] {
			t.Errorf("Tally(%d) = %d, Tallies() = %d", i, n, counts[i])
		}
	}

	// Conservation: sum equals distinct voters in the poll
	sum := 0
	for _, c := range counts {
		sum += c
	}
	var voters int
	conn.QueryRow(`SELECT COUNT(DISTINCT user_id) FROM votes WHERE poll_id = $1`, "p1").Scan(&voters)
	if sum != voters {
		t.Errorf("Sum of tallies %d != distinct voters %d", sum, voters)
	}

	empty, err := s.Tallies(ctx, "missing")
	if err != nil {
		t.Fatalf("Tallies() error = %v", err)
	}
	if len(empty) != 0 {
		t.Errorf("Expected no tallies for unknown poll, got %v", empty)
	}
}

func TestRunInTx(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	s := New(conn)
	ctx := context.Background()

	ids := testutil.CreateTestPoll(t, conn, "tx", "Q", "A", "B")
	optA := models.Option{ID: ids[0], PollID: "tx"}
	optB := models.Option{ID: ids[1], PollID: "tx"}

	t.Run("commit", func(t *testing.T) {
		err := s.RunInTx(ctx, func(tx *Tx) error {
			return tx.CastVote(ctx, 1, optA, 1)
		})
		if err != nil {
			t.Fatalf("RunInTx() error = %v", err)
		}
		if testutil.CountVotes(t, conn, "tx", 1) != 1 {
			t.Error("Committed vote not visible")
		}
	})

	t.Run("rollback on error", func(t *testing.T) {
		sentinel := errors.New("boom")
		err := s.RunInTx(ctx, func(tx *Tx) error {
			if err := tx.RemoveVote(ctx, 1, optA.ID); err != nil {
				return err
			}
			return sentinel
		})
		if !errors.Is(err, sentinel) {
			t.Fatalf("Expected sentinel error, got %v", err)
		}
		v, _ := s.FindVote(ctx, 1, optA.ID)
		if v == nil {
			t.Error("Rolled back delete was applied")
		}
	})

	t.Run("rollback on panic", func(t *testing.T) {
		defer func() {
			if recover() == nil {
				t.Error("Expected panic to propagate")
			}
			v, _ := s.FindVote(ctx, 1, optA.ID)
			if v == nil {
				t.Error("Rolled back delete was applied")
			}
		}()
		s.RunInTx(ctx, func(tx *Tx) error {
			tx.RemoveVote(ctx, 1, optA.ID)
			panic("boom")
		})
	})

	t.Run("switch inside one transaction", func(t *testing.T) {
		err := s.RunInTx(ctx, func(tx *Tx) error {
			if err := tx.RemoveVote(ctx, 1, optA.ID); err != nil {
				return err
			}
			seq, err := tx.NextCastAt(ctx, "tx")
			if err != nil {
				return err
			}
			return tx.CastVote(ctx, 1, optB, seq)
		})
		if err != nil {
			t.Fatalf("RunInTx() error = %v", err)
		}
		v, _ := s.FindUserVote(ctx, "tx", 1)
		if v == nil || v.OptionID != optB.ID {
			t.Errorf("Expected vote for B, got %+v", v)
		}
		if testutil.CountVotes(t, conn, "tx", 1) != 1 {
			t.Error("Expected exactly one vote row")
		}
	})
}

func TestListPolls(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	s := New(conn)
	ctx := context.Background()

	if _, err := s.CreatePoll(ctx, "a", "First", 1, []string{"x", "y"}); err != nil {
		t.Fatal(err)
	}
	if _, err := s.CreatePoll(ctx, "b", "Second", 2, []string{"z"}); err != nil {
		t.Fatal(err)
	}

	polls, err := s.ListPolls(ctx, 10)
	if err != nil {
		t.Fatalf("ListPolls() error = %v", err)
	}
	if len(polls) != 2 {
		t.Fatalf("Expected 2 polls, got %d", len(polls))
	}

	counts := map[string]int{}
	for _, p := range polls {
		counts[p.ID] = p.OptionCount
	}
	if counts["a"] != 2 || counts["b"] != 1 {
		t.Errorf("Unexpected option counts: %v", counts)
	}

	limited, err := s.ListPolls(ctx, 1)
	if err != nil {
		t.Fatalf("ListPolls() error = %v", err)
	}
	if len(limited) != 1 {
		t.Errorf("Expected 1 poll with limit, got %d", len(limited))
	}
}
