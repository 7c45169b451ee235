// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package voting

import (
	"context"
	"fmt"

	"github.com/danielhkuo/quickly-poll/models"
	"github.com/danielhkuo/quickly-poll/store"
)

type Kind string

const (
	// Cast: the user had no vote and now votes for the tapped option
	Cast Kind = "cast"
	// Retract: the user tapped the option they already voted for
	Retract Kind = "retract"
	// Switch: the user moved their vote to a different option
	Switch Kind = "switch"
)

// Transition is the change a tap makes to one user's vote in one poll.
// Remove and Insert are option ids; empty means no row is touched.
type Transition struct {
	Kind   Kind
	Remove string
	Insert string
}

// Decide maps the user's current vote (nil for none) and the tapped option
// to the resulting transition.
func Decide(current *models.Vote, tapped string) Transition {
	switch {
	case current == nil:
		return Transition{Kind: Cast, Insert: tapped}
	case current.OptionID == tapped:
		return Transition{Kind: Retract, Remove: tapped}
	default:
		return Transition{Kind: Switch, Remove: current.OptionID, Insert: tapped}
	}
}

// Engine applies taps to the store
type Engine struct {
	store *store.Store
}

func NewEngine(s *store.Store) *Engine {
	return &Engine{store: s}
}

// Toggle records a tap by userID on option. The read, the delete of the old
// vote, and the insert of the new one share one transaction, so no reader
// sees the user with zero or two votes in between.
//
// If another transaction inserts a vote for the same user first, Toggle
// returns store.ErrConflict and nothing is applied.
func (e *Engine) Toggle(ctx context.Context, userID int64, option models.Option) (Transition, error) {
	var tr Transition

	err := e.store.RunInTx(ctx, func(tx *store.Tx) error {
		current, err := tx.FindUserVote(ctx, option.PollID, userID)
		if err != nil {
			return err
		}

		tr = Decide(current, option.ID)

		if tr.Remove != "" {
			if err := tx.RemoveVote(ctx, userID, tr.Remove); err != nil {
				return err
			}
		}

		if tr.Insert != "" {
			castAt, err := tx.NextCastAt(ctx, option.PollID)
			if err != nil {
				return err
			}
			if err := tx.CastVote(ctx, userID, option, castAt); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return Transition{}, fmt.Errorf("failed to toggle vote: %w", err)
	}

	return tr, nil
}
