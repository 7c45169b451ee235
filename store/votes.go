// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/danielhkuo/quickly-poll/models"
)

// Tally counts distinct users currently voting for an option.
// Counted live on every call; nothing is cached.
func (s *Store) Tally(ctx context.Context, optionID string) (int, error) {
	return tally(ctx, s.db, optionID)
}

// Tallies returns the vote count of every option of a poll in display order
func (s *Store) Tallies(ctx context.Context, pollID string) ([]int, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT o.id, COUNT(DISTINCT v.user_id)
		FROM options o
		LEFT JOIN votes v ON v.option_id = o.id
		WHERE o.poll_id = $1
		GROUP BY o.id, o.position
		ORDER BY o.position
	`, pollID)
	if err != nil {
		return nil, fmt.Errorf("failed to query tallies: %w", err)
	}
	defer rows.Close()

	counts := []int{}
	for rows.Next() {
		var (
			optionID string
			count    int
		)
		if err := rows.Scan(&optionID, &count); err != nil {
			return nil, fmt.Errorf("failed to scan tally: %w", err)
		}
		counts = append(counts, count)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read tallies: %w", err)
	}

	return counts, nil
}

func (s *Store) FindVote(ctx context.Context, userID int64, optionID string) (*models.Vote, error) {
	return findVote(ctx, s.db, userID, optionID)
}

func (s *Store) FindUserVote(ctx context.Context, pollID string, userID int64) (*models.Vote, error) {
	return findUserVote(ctx, s.db, pollID, userID)
}

func (s *Store) CastVote(ctx context.Context, userID int64, option models.Option, castAt int64) error {
	return castVote(ctx, s.db, userID, option, castAt)
}

func (s *Store) RemoveVote(ctx context.Context, userID int64, optionID string) error {
	return removeVote(ctx, s.db, userID, optionID)
}

func (s *Store) NextCastAt(ctx context.Context, pollID string) (int64, error) {
	return nextCastAt(ctx, s.db, pollID)
}

func (t *Tx) FindVote(ctx context.Context, userID int64, optionID string) (*models.Vote, error) {
	return findVote(ctx, t.tx, userID, optionID)
}

func (t *Tx) FindUserVote(ctx context.Context, pollID string, userID int64) (*models.Vote, error) {
	return findUserVote(ctx, t.tx, pollID, userID)
}

func (t *Tx) CastVote(ctx context.Context, userID int64, option models.Option, castAt int64) error {
	return castVote(ctx, t.tx, userID, option, castAt)
}

func (t *Tx) RemoveVote(ctx context.Context, userID int64, optionID string) error {
	return removeVote(ctx, t.tx, userID, optionID)
}

func (t *Tx) NextCastAt(ctx context.Context, pollID string) (int64, error) {
	return nextCastAt(ctx, t.tx, pollID)
}

func tally(ctx context.Context, q querier, optionID string) (int, error) {
	var count int
	err := q.QueryRowContext(ctx, `
		SELECT COUNT(DISTINCT user_id) FROM votes WHERE option_id = $1
	`, optionID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count votes: %w", err)
	}
	return count, nil
}

func findVote(ctx context.Context, q querier, userID int64, optionID string) (*models.Vote, error) {
	var v models.Vote
	err := q.QueryRowContext(ctx, `
		SELECT user_id, option_id, poll_id, cast_at
		FROM votes
		WHERE user_id = $1 AND option_id = $2
	`, userID, optionID).Scan(&v.UserID, &v.OptionID, &v.PollID, &v.CastAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query vote: %w", err)
	}
	return &v, nil
}

// findUserVote returns the user's earliest vote in the poll, or nil
func findUserVote(ctx context.Context, q querier, pollID string, userID int64) (*models.Vote, error) {
	var v models.Vote
	err := q.QueryRowContext(ctx, `
		SELECT user_id, option_id, poll_id, cast_at
		FROM votes
		WHERE poll_id = $1 AND user_id = $2
		ORDER BY cast_at ASC
		LIMIT 1
	`, pollID, userID).Scan(&v.UserID, &v.OptionID, &v.PollID, &v.CastAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query user vote: %w", err)
	}
	return &v, nil
}

// castVote inserts one vote row. A second vote by the same user in the same
// poll violates UNIQUE (poll_id, user_id) and returns ErrConflict.
func castVote(ctx context.Context, q querier, userID int64, option models.Option, castAt int64) error {
	_, err := q.ExecContext(ctx, `
		INSERT INTO votes (user_id, option_id, poll_id, cast_at)
		VALUES ($1, $2, $3, $4)
	`, userID, option.ID, option.PollID, castAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("vote by %d in poll %s: %w", userID, option.PollID, ErrConflict)
		}
		return fmt.Errorf("failed to insert vote: %w", err)
	}
	return nil
}

func removeVote(ctx context.Context, q querier, userID int64, optionID string) error {
	_, err := q.ExecContext(ctx, `
		DELETE FROM votes WHERE user_id = $1 AND option_id = $2
	`, userID, optionID)
	if err != nil {
		return fmt.Errorf("failed to delete vote: %w", err)
	}
	return nil
}

// nextCastAt returns one past the highest sequence used in the poll.
// Concurrent writers may draw the same value; it only orders one user's rows.
func nextCastAt(ctx context.Context, q querier, pollID string) (int64, error) {
	var next int64
	err := q.QueryRowContext(ctx, `
		SELECT COALESCE(MAX(cast_at), 0) + 1 FROM votes WHERE poll_id = $1
	`, pollID).Scan(&next)
	if err != nil {
		return 0, fmt.Errorf("failed to read vote sequence: %w", err)
	}
	return next, nil
}
