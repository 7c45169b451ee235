// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/danielhkuo/quickly-poll/models"
	"github.com/danielhkuo/quickly-poll/token"
)

// CreatePoll stores a poll and one option per title, in order.
// Titles must already be unique. Returns ErrConflict if the poll id is taken.
func (s *Store) CreatePoll(ctx context.Context, id, title string, creatorID int64, optionTitles []string) (models.PollWithOptions, error) {
	if len(optionTitles) == 0 {
		return models.PollWithOptions{}, ErrNoOptions
	}

	poll := models.Poll{
		ID:        id,
		Title:     title,
		CreatorID: creatorID,
		CreatedAt: time.Now().UTC(),
	}

	options := make([]models.Option, len(optionTitles))
	for i, optTitle := range optionTitles {
		options[i] = models.Option{
			ID:       token.OptionID(id, optTitle),
			PollID:   id,
			Title:    optTitle,
			Position: i,
		}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return models.PollWithOptions{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var exists bool
	err = tx.QueryRowContext(ctx, `
		SELECT EXISTS(SELECT 1 FROM polls WHERE id = $1)
	`, id).Scan(&exists)
	if err != nil {
		return models.PollWithOptions{}, fmt.Errorf("failed to check poll: %w", err)
	}
	if exists {
		return models.PollWithOptions{}, fmt.Errorf("poll %s: %w", id, ErrConflict)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO polls (id, title, creator_id, created_at)
		VALUES ($1, $2, $3, $4)
	`, poll.ID, poll.Title, poll.CreatorID, poll.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return models.PollWithOptions{}, fmt.Errorf("poll %s: %w", id, ErrConflict)
		}
		return models.PollWithOptions{}, fmt.Errorf("failed to insert poll: %w", err)
	}

	for _, opt := range options {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO options (id, poll_id, title, position)
			VALUES ($1, $2, $3, $4)
		`, opt.ID, opt.PollID, opt.Title, opt.Position)
		if err != nil {
			if isUniqueViolation(err) {
				return models.PollWithOptions{}, fmt.Errorf("option %q: %w", opt.Title, ErrConflict)
			}
			return models.PollWithOptions{}, fmt.Errorf("failed to insert option: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return models.PollWithOptions{}, fmt.Errorf("failed to commit poll: %w", err)
	}

	return models.PollWithOptions{Poll: poll, Options: options}, nil
}

// GetPoll returns a poll and its options in display order
func (s *Store) GetPoll(ctx context.Context, id string) (models.PollWithOptions, error) {
	var poll models.Poll
	err := s.db.QueryRowContext(ctx, `
		SELECT id, title, creator_id, created_at
		FROM polls
		WHERE id = $1
	`, id).Scan(&poll.ID, &poll.Title, &poll.CreatorID, &poll.CreatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return models.PollWithOptions{}, fmt.Errorf("poll %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return models.PollWithOptions{}, fmt.Errorf("failed to query poll: %w", err)
	}

	options, err := s.ListOptions(ctx, id)
	if err != nil {
		return models.PollWithOptions{}, err
	}

	return models.PollWithOptions{Poll: poll, Options: options}, nil
}

// ListOptions returns the options of a poll ordered by position
func (s *Store) ListOptions(ctx context.Context, pollID string) ([]models.Option, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, poll_id, title, position
		FROM options
		WHERE poll_id = $1
		ORDER BY position
	`, pollID)
	if err != nil {
		return nil, fmt.Errorf("failed to query options: %w", err)
	}
	defer rows.Close()

	options := []models.Option{}
	for rows.Next() {
		var opt models.Option
		if err := rows.Scan(&opt.ID, &opt.PollID, &opt.Title, &opt.Position); err != nil {
			return nil, fmt.Errorf("failed to scan option: %w", err)
		}
		options = append(options, opt)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read options: %w", err)
	}

	return options, nil
}

// GetOptionByToken resolves button callback data to its option and poll
func (s *Store) GetOptionByToken(ctx context.Context, optionToken string) (models.Poll, models.Option, error) {
	var (
		poll models.Poll
		opt  models.Option
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT o.id, o.poll_id, o.title, o.position,
		       p.id, p.title, p.creator_id, p.created_at
		FROM options o
		JOIN polls p ON p.id = o.poll_id
		WHERE o.id = $1
	`, optionToken).Scan(
		&opt.ID, &opt.PollID, &opt.Title, &opt.Position,
		&poll.ID, &poll.Title, &poll.CreatorID, &poll.CreatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return models.Poll{}, models.Option{}, fmt.Errorf("option %s: %w", optionToken, ErrNotFound)
	}
	if err != nil {
		return models.Poll{}, models.Option{}, fmt.Errorf("failed to query option: %w", err)
	}

	return poll, opt, nil
}

// ListPolls returns the most recently created polls
func (s *Store) ListPolls(ctx context.Context, limit int) ([]models.PollSummary, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT p.id, p.title, p.creator_id, p.created_at, COUNT(o.id)
		FROM polls p
		LEFT JOIN options o ON o.poll_id = p.id
		GROUP BY p.id, p.title, p.creator_id, p.created_at
		ORDER BY p.created_at DESC, p.id
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query polls: %w", err)
	}
	defer rows.Close()

	polls := []models.PollSummary{}
	for rows.Next() {
		var p models.PollSummary
		if err := rows.Scan(&p.ID, &p.Title, &p.CreatorID, &p.CreatedAt, &p.OptionCount); err != nil {
			return nil, fmt.Errorf("failed to scan poll: %w", err)
		}
		polls = append(polls, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read polls: %w", err)
	}

	return polls, nil
}
