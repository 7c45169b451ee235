// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package store persists polls, options, and votes.

	s := store.New(conn)
	p, err := s.CreatePoll(ctx, resultID, "Lunch?", userID, []string{"Pizza", "Sushi"})

Every query runs through database/sql with $n placeholders, which both the
PostgreSQL and SQLite drivers accept.

# Errors

  - ErrNotFound: no poll or option with that id
  - ErrConflict: the poll id is taken, or a user already has a vote in the poll
  - ErrNoOptions: CreatePoll was given no option titles

Errors are wrapped; compare with errors.Is.

# Tallies

Tally and Tallies count rows on every call. There is no running counter, so
a tally always reflects the last committed vote state. This is a full count
per render and is the first thing to revisit if vote volume grows.

# Transactions

RunInTx gives a Tx carrying the vote operations. The vote toggle uses it so
that removing an old vote and casting a new one commit together.
*/
package store
