package models

import "time"

// Domain types

type Poll struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	CreatorID int64     `json:"creator_id"`
	CreatedAt time.Time `json:"created_at"`
}

type Option struct {
	ID       string `json:"id"`
	PollID   string `json:"poll_id"`
	Title    string `json:"title"`
	Position int    `json:"position"`
}

type PollWithOptions struct {
	Poll    Poll     `json:"poll"`
	Options []Option `json:"options"`
}

// Titles returns the option titles in display order
func (p PollWithOptions) Titles() []string {
	titles := make([]string, len(p.Options))
	for i, opt := range p.Options {
		titles[i] = opt.Title
	}
	return titles
}

// Vote is one user's choice of one option.
// CastAt is a logical sequence number, not wall-clock time.
type Vote struct {
	UserID   int64  `json:"user_id"`
	OptionID string `json:"option_id"`
	PollID   string `json:"poll_id"`
	CastAt   int64  `json:"cast_at"`
}

// Button is one inline keyboard button. Data is sent back on tap.
type Button struct {
	Label string `json:"label"`
	Data  string `json:"data"`
}

// Inbound events

type EventKind string

const (
	EventInlineQuery        EventKind = "inline_query"
	EventChosenInlineResult EventKind = "chosen_inline_result"
	EventCallbackQuery      EventKind = "callback_query"
)

// Event is a single inbound platform event. Exactly one of the pointer
// fields is set, matching Kind.
type Event struct {
	Kind     EventKind
	Inline   *InlineQuery
	Chosen   *ChosenInlineResult
	Callback *CallbackQuery
}

type InlineQuery struct {
	ID         string
	Text       string
	FromUserID int64
}

type ChosenInlineResult struct {
	ResultID        string
	Text            string
	FromUserID      int64
	InlineMessageID string
}

type CallbackQuery struct {
	ID              string
	FromUserID      int64
	Data            string
	InlineMessageID string
}

// Outbound effects

// InlineArticle is the single result offered in answer to an inline query
type InlineArticle struct {
	QueryID     string
	ResultID    string
	Title       string
	Description string
	Text        string
	Buttons     [][]Button
}

type EditMessage struct {
	InlineMessageID string
	Text            string
	Buttons         [][]Button
}

// Response types (operator API)

type PollResults struct {
	Poll       Poll            `json:"poll"`
	Options    []OptionResults `json:"options"`
	TotalVotes int             `json:"total_votes"`
}

type OptionResults struct {
	Option
	Votes int `json:"votes"`
}

type PollSummary struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	CreatorID   int64     `json:"creator_id"`
	OptionCount int       `json:"option_count"`
	CreatedAt   time.Time `json:"created_at"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
