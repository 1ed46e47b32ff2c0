package model

import (
	"context"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"shopmate/catalog"
	"shopmate/config"
	"shopmate/speech"
	"shopmate/storage"
)

// Submit appends the user's question to the log and returns a command that
// sends it to the assistant. Blank input and input while a question is
// already in flight are ignored; the returned command is nil and the log
// is unchanged.
//
// The request itself carries no timeout; the pending flag blocks
// resubmission until the transport resolves either way.
func (m *Model) Submit(input string) tea.Cmd {
	text := strings.TrimSpace(input)
	if text == "" || m.Pending {
		return nil
	}

	m.Messages = append(m.Messages, UserMessage(text))
	m.Pending = true

	client := m.Assistant
	gen := m.generation
	return func() tea.Msg {
		if config.DebugLog != nil {
			config.DebugLog.Printf("[Model] submitting question (%d chars)", len(text))
		}

		start := time.Now()
		reply, err := client.Ask(context.Background(), text)
		if err != nil {
			if config.DebugLog != nil {
				config.DebugLog.Printf("[Model] ask failed after %v: %v", time.Since(start), err)
			}
			return AssistantErrorMsg{Err: err, Generation: gen}
		}

		if config.DebugLog != nil {
			config.DebugLog.Printf("[Model] ask succeeded after %v - %d chars, %d products, audio=%v",
				time.Since(start), len(reply.Answer), len(reply.Products), reply.AudioFile != "")
		}
		return AssistantReplyMsg{Reply: *reply, Generation: gen}
	}
}

// HandleReply appends the assistant's answer to the log and clears the
// in-flight flag. When the reply carries an audio reference, the returned
// command downloads the clip; playback starts when AudioReadyMsg arrives.
// A reply from a conversation that was since reset is dropped whole.
func (m *Model) HandleReply(msg AssistantReplyMsg) tea.Cmd {
	if msg.Generation != m.generation {
		if config.DebugLog != nil {
			config.DebugLog.Printf("[Model] dropping reply from a reset conversation")
		}
		return nil
	}
	m.Messages = append(m.Messages, Message{
		Text:           msg.Reply.Answer,
		FromAssistant:  true,
		Products:       msg.Reply.Products,
		PresentAsCards: true,
		Timestamp:      time.Now(),
	})
	m.Pending = false

	if msg.Reply.AudioFile == "" {
		return nil
	}
	return m.fetchAudio(msg.Reply.AudioFile)
}

// HandleAskError records the fixed fallback answer in place of the reply.
// The conversation keeps its strict exchange shape either way.
func (m *Model) HandleAskError(msg AssistantErrorMsg) {
	if msg.Generation != m.generation {
		if config.DebugLog != nil {
			config.DebugLog.Printf("[Model] dropping error from a reset conversation")
		}
		return
	}
	if config.DebugLog != nil {
		config.DebugLog.Printf("[Model] showing fallback answer: %v", msg.Err)
	}
	m.Messages = append(m.Messages, Message{
		Text:          FallbackText,
		FromAssistant: true,
		Timestamp:     time.Now(),
	})
	m.Pending = false
}

func (m *Model) fetchAudio(ref string) tea.Cmd {
	client := m.Assistant
	dir := config.GetAudioCacheDir()
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		path, err := client.FetchAudio(ctx, ref, dir)
		if err != nil {
			if config.DebugLog != nil {
				config.DebugLog.Printf("[Model] audio fetch failed: %v", err)
			}
			return AudioErrorMsg{Err: err}
		}
		return AudioReadyMsg{Path: path}
	}
}

// StartCapture begins a speech capture and returns a command that blocks
// on the transcription. speech.ErrUnsupported and speech.ErrBusy come back
// synchronously so the caller can show a notice instead of spinning.
func (m *Model) StartCapture() (tea.Cmd, error) {
	ctx, err := m.Capture.Start()
	if err != nil {
		return nil, err
	}

	capture := m.Capture
	return func() tea.Msg {
		text, err := capture.Transcribe(ctx)
		if err != nil {
			return CaptureErrorMsg{Err: err}
		}
		return TranscriptMsg{Text: text}
	}, nil
}

// HandleTranscript finishes the capture. The recognized text does not enter
// the log here; the caller places it into the draft input so the user can
// review and edit it before sending.
func (m *Model) HandleTranscript(msg TranscriptMsg) {
	if m.Capture != nil {
		m.Capture.End()
	}
}

// HandleCaptureError finishes the capture. Cancellation is silent; real
// engine failures go to the debug log.
func (m *Model) HandleCaptureError(msg CaptureErrorMsg) {
	if m.Capture != nil {
		m.Capture.End()
	}
	if msg.Err != nil && msg.Err != speech.ErrStopped && config.DebugLog != nil {
		config.DebugLog.Printf("[Model] capture failed: %v", msg.Err)
	}
}

// InjectProductDetail appends a product spec sheet to the conversation.
// Each selection injects at most once; re-opening the same selection is a
// no-op. Detail messages never render as cards.
func (m *Model) InjectProductDetail(p catalog.Product) bool {
	if p.ID != 0 && p.ID == m.detailInjectedFor {
		return false
	}
	m.Messages = append(m.Messages, Message{
		Text:          catalog.DetailMarkdown(p),
		FromAssistant: true,
		Products:      []catalog.Product{p},
		Timestamp:     time.Now(),
	})
	m.detailInjectedFor = p.ID
	return true
}

// ExportTranscript writes the conversation to a JSON file in the user's
// download directory, named after the first question when there is one.
func (m *Model) ExportTranscript() tea.Cmd {
	label := ""
	for _, msg := range m.Messages {
		if !msg.FromAssistant {
			label = msg.Text
			break
		}
	}

	messages := make([]storage.TranscriptMessage, 0, len(m.Messages))
	for _, msg := range m.Messages {
		messages = append(messages, storage.TranscriptMessage{
			Text:          msg.Text,
			FromAssistant: msg.FromAssistant,
			Timestamp:     msg.Timestamp,
			Products:      msg.Products,
		})
	}

	return func() tea.Msg {
		path := storage.GenerateExportPath(label)
		err := storage.ExportTranscript(messages, path)
		return TranscriptExportedMsg{Path: path, Err: err}
	}
}
