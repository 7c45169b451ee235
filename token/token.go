// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package token

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
)

// FingerprintLen is the number of hex characters kept from the digest.
const FingerprintLen = 32

var ErrInvalidToken = errors.New("invalid option token")

// Fingerprint returns the first FingerprintLen hex characters of the
// SHA-256 digest of text. It is unsalted so ids survive restarts.
func Fingerprint(text string) string {
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])[:FingerprintLen]
}

// OptionID derives the id of an option from its poll and title.
// The same string is used as the button callback data, so a tap can be
// resolved to an option without a lookup table.
//
// Two titles whose digests share a 128-bit prefix collide; that is accepted.
func OptionID(pollID, title string) string {
	return pollID + Fingerprint(title)
}

// SplitOptionID separates an option id into its poll id and fingerprint
func SplitOptionID(id string) (pollID, fingerprint string, err error) {
	if len(id) <= FingerprintLen {
		return "", "", ErrInvalidToken
	}
	cut := len(id) - FingerprintLen
	fingerprint = id[cut:]
	if _, err := hex.DecodeString(fingerprint); err != nil {
		return "", "", ErrInvalidToken
	}
	return id[:cut], fingerprint, nil
}

// Matches reports whether id was derived from pollID and title
func Matches(id, pollID, title string) bool {
	return id == OptionID(pollID, title)
}
