package model

import (
	"time"

	"shopmate/catalog"
)

// WelcomeText is the greeting the assistant shows at the start of every
// conversation and after a reset.
const WelcomeText = "Hello! How can I help you today?"

// FallbackText is shown in place of an answer when a request fails for
// any reason. The real cause goes to the debug log only.
const FallbackText = "Sorry, there was an error processing your request. Please try again later."

// Message represents a chat message in the conversation
type Message struct {
	Text           string
	FromAssistant  bool
	Rendered       string // Cached rendered markdown
	Products       []catalog.Product
	PresentAsCards bool // Products render as a card strip instead of inline markdown
	Timestamp      time.Time
}

// WelcomeMessage returns the assistant greeting that seeds a fresh conversation.
func WelcomeMessage() Message {
	return Message{
		Text:          WelcomeText,
		FromAssistant: true,
		Timestamp:     time.Now(),
	}
}

// UserMessage wraps user input as a log entry.
func UserMessage(text string) Message {
	return Message{
		Text:      text,
		Timestamp: time.Now(),
	}
}
