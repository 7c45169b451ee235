// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package voting applies button taps to a user's vote in a poll.

Each user holds at most one vote per poll. A tap moves between two states:

	no vote       + tap X  → voted for X   (Cast)
	voted for X   + tap X  → no vote       (Retract)
	voted for X   + tap Y  → voted for Y   (Switch)

Decide is the pure transition; Engine.Toggle reads the current vote and
applies the transition inside store.RunInTx. The UNIQUE(poll_id, user_id)
constraint on votes rejects a second concurrent insert with
store.ErrConflict.
*/
package voting
