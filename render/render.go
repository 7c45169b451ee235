// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package render

import (
	"fmt"
	"math"
	"strings"

	"github.com/danielhkuo/quickly-poll/models"
	"github.com/danielhkuo/quickly-poll/token"
)

const (
	// BarWidth is the bar length of an option holding every vote
	BarWidth = 15
	BarGlyph = "👍"

	zeroMarker = "▫️  0%"
)

// Line renders one option. Options without votes never divide by total.
func Line(title string, count, total int) string {
	if count == 0 {
		return title + "\n" + zeroMarker
	}

	share := float64(count) / float64(total)
	bar := strings.Repeat(BarGlyph, int(math.RoundToEven(share*BarWidth)))
	return fmt.Sprintf("%s - %d\n%s %.0f%%", title, count, bar, share*100)
}

// Message renders the poll card: the title in bold, then one line per option
// separated by blank lines. A nil counts slice renders every option at zero.
func Message(title string, options []string, counts []int) string {
	counts = padCounts(counts, len(options))

	total := 0
	for _, c := range counts {
		total += c
	}

	lines := make([]string, len(options))
	for i, opt := range options {
		lines[i] = Line(opt, counts[i], total)
	}

	return "*" + title + "*\n\n" + strings.Join(lines, "\n\n")
}

// Buttons builds one row per option. The callback data of each button is
// the option id, so a tap resolves straight back to the option.
func Buttons(pollID string, options []string, counts []int) [][]models.Button {
	counts = padCounts(counts, len(options))

	rows := make([][]models.Button, len(options))
	for i, opt := range options {
		label := opt
		if counts[i] != 0 {
			label = fmt.Sprintf("%s - %d", opt, counts[i])
		}
		rows[i] = []models.Button{{Label: label, Data: token.OptionID(pollID, opt)}}
	}
	return rows
}

// Description lists the options for the inline result preview
func Description(options []string) string {
	return strings.Join(options, " / ")
}

// Announcement renders a title-only query as a bold message
func Announcement(title string) string {
	return "*" + title + "*"
}

func padCounts(counts []int, n int) []int {
	if len(counts) >= n {
		return counts
	}
	padded := make([]int, n)
	copy(padded, counts)
	return padded
}
