// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package render builds poll message text and button rows. All functions are
// pure; the same title, options and counts always give the same output.
package render
