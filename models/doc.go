// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines domain, event, and response types shared by the bot.

# Domain Types

  - Poll: question, creator, and inline result id
  - Option: one answer; ID doubles as button callback data
  - PollWithOptions: a poll and its options in display order
  - Vote: one user's current choice in a poll
  - Button: label and callback data of an inline keyboard button

# Events

Inbound platform events are folded into one Event value:

	EventInlineQuery        → Inline   (user is typing; answer with a preview)
	EventChosenInlineResult → Chosen   (user sent the preview; create the poll)
	EventCallbackQuery      → Callback (user tapped an option)

Outbound effects are InlineArticle (the preview) and EditMessage (the live
re-render of a sent poll).

# Response Types

JSON types for the operator API:

  - PollResults: poll, options with vote counts, total_votes
  - PollSummary: id, title, creator_id, option_count, created_at
  - ErrorResponse: error, message
*/
package models
