// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package telegram connects the bot to the Telegram Bot API.

Bot long-polls for inline queries, chosen inline results and callback
queries, converts each update with ToEvent, and hands it to a Dispatcher.
It also implements handlers.Messenger for the three outbound calls:

	answerInlineQuery    ← AnswerInline
	editMessageText      ← EditMessage
	answerCallbackQuery  ← AnswerCallback

Messages are sent with Markdown parse mode. Edits that Telegram rejects as
"message is not modified" count as success.
*/
package telegram
