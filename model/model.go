package model

import (
	"strings"

	"shopmate/assistant"
	"shopmate/audio"
	"shopmate/config"
	"shopmate/speech"
	"shopmate/storage"
)

// Model holds the core application data and business logic state
type Model struct {
	// Core dependencies
	Config    *config.Config
	Assistant *assistant.Client
	Catalog   *storage.CatalogStore
	Capture   *speech.Capture
	Arbiter   *audio.Arbiter

	// Application data
	Messages []Message

	// Runtime state (not UI)
	Pending            bool // A question is in flight; input is ignored until it settles
	NeedsInitialRender bool
	Quitting           bool

	// Product whose detail was already injected for the current selection.
	// Zero means no detail injected yet.
	detailInjectedFor int64

	// Conversation generation, bumped on every reset. In-flight requests
	// are stamped with it so their results can be matched to the
	// conversation they were asked in.
	generation int

	// Application metadata
	Version string
}

// NewModel creates a new Model with the given configuration.
// The conversation always opens with the assistant greeting.
func NewModel(cfg *config.Config, client *assistant.Client, catalogStore *storage.CatalogStore, capture *speech.Capture, arbiter *audio.Arbiter, version string) *Model {
	return &Model{
		Config:             cfg,
		Assistant:          client,
		Catalog:            catalogStore,
		Capture:            capture,
		Arbiter:            arbiter,
		Messages:           []Message{WelcomeMessage()},
		Pending:            false,
		NeedsInitialRender: true,
		Quitting:           false,
		Version:            version,
	}
}

// Reset discards the conversation and starts over with a single greeting.
// Any running capture or playback is stopped so the fresh conversation
// does not inherit audio from the old one. The in-flight request flag is
// cleared and the generation bumped; a reply still in flight carries the
// old generation and HandleReply drops it when it lands.
func (m *Model) Reset() {
	if m.Capture != nil {
		m.Capture.Stop()
	}
	if m.Arbiter != nil {
		m.Arbiter.StopAll()
	}
	m.Messages = []Message{WelcomeMessage()}
	m.Pending = false
	m.detailInjectedFor = 0
	m.generation++
	m.NeedsInitialRender = true
}

// LastAssistantText returns the text of the most recent assistant message,
// or empty when the log has none.
func (m *Model) LastAssistantText() string {
	for i := len(m.Messages) - 1; i >= 0; i-- {
		if m.Messages[i].FromAssistant {
			return m.Messages[i].Text
		}
	}
	return ""
}

// ConversationText renders the whole log as plain text, one speaker-prefixed
// block per message, suitable for the clipboard.
func (m *Model) ConversationText() string {
	var b strings.Builder
	for i, msg := range m.Messages {
		if i > 0 {
			b.WriteString("\n\n")
		}
		if msg.FromAssistant {
			b.WriteString("Assistant: ")
		} else {
			b.WriteString("You: ")
		}
		b.WriteString(msg.Text)
	}
	return b.String()
}
