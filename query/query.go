// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package query splits inline query text into a poll title and options.
package query

import (
	"errors"
	"fmt"

	"github.com/kballard/go-shellquote"
)

var (
	ErrEmpty     = errors.New("empty query")
	ErrMalformed = errors.New("malformed query")
)

// Query is inline query text split into a poll question and its options
type Query struct {
	Title   string
	Options []string
}

// IsAnnouncement reports whether the query carried only a title.
// Such queries are echoed back as plain text and never become polls.
func (q Query) IsAnnouncement() bool {
	return len(q.Options) == 0
}

// Parse splits text using POSIX shell quoting, so options containing spaces
// can be wrapped in quotes. The first word is the title; the rest are
// deduplicated into options.
func Parse(text string) (Query, error) {
	if text == "" {
		return Query{}, ErrEmpty
	}

	words, err := shellquote.Split(text)
	if err != nil {
		return Query{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if len(words) == 0 {
		return Query{}, ErrEmpty
	}

	return Query{
		Title:   words[0],
		Options: Dedupe(words[1:]),
	}, nil
}

// Dedupe removes repeated entries, keeping the first occurrence of each.
// Comparison is exact and case sensitive.
func Dedupe(items []string) []string {
	seen := make(map[string]struct{}, len(items))
	out := make([]string, 0, len(items))
	for _, item := range items {
		if _, ok := seen[item]; ok {
			continue
		}
		seen[item] = struct{}{}
		out = append(out, item)
	}
	return out
}
