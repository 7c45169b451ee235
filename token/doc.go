// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package token derives stable identifiers for poll options.

# Fingerprints

Fingerprint hashes UTF-8 text with SHA-256 and keeps the first 32 hex
characters (128 bits):

	fp := token.Fingerprint("Pizza")

There is no salt. A button tapped after a restart must still resolve to the
same option, so the digest depends on the text alone.

# Option IDs

An option id is the poll id followed by the fingerprint of the option title:

	id := token.OptionID(pollID, "Pizza")

The id is the primary key of the option row and also the callback data of its
button. Telegram limits callback data to 64 bytes, which leaves room for
inline result ids of up to 32 characters.

SplitOptionID reverses the concatenation; Matches recomputes an id from its
parts and compares.

# Collisions

Two titles in the same poll whose digests share a 128-bit prefix would map to
the same id. This is not defended against.
*/
package token
