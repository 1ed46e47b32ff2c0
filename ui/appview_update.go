package ui

import (
	"errors"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"shopmate/config"
	"shopmate/speech"
)

func (a AppView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var (
		cmd  tea.Cmd
		cmds []tea.Cmd
	)

	// Update spinner FIRST to handle TickMsg before anything else
	if a.dataModel.Pending {
		a.loadingSpinner, cmd = a.loadingSpinner.Update(msg)
		cmds = append(cmds, cmd)
		a.updateViewportContent(true)
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height

		// Reserve space for title (1), separator (1), textarea (3), status bar (1)
		viewportHeight := a.height - 6
		a.viewport.Width = a.width
		a.viewport.Height = viewportHeight
		a.textarea.SetWidth(a.width)

		a.ready = true
		a.updateViewportContent(true)

		if a.dataModel.NeedsInitialRender {
			a.dataModel.NeedsInitialRender = false
			var renderCmds []tea.Cmd
			for i, m := range a.dataModel.Messages {
				if m.Rendered == "" {
					renderCmds = append(renderCmds, a.renderMarkdownAsync(i, m.Text))
				}
			}
			return a, tea.Batch(renderCmds...)
		}

		return a, nil

	case tea.KeyMsg:
		// Always-global quit
		if msg.String() == "alt+q" {
			a.dataModel.Quitting = true
			a.closeChat()
			return a, tea.Quit
		}

		if a.showNotice {
			switch msg.String() {
			case "enter", "esc":
				a.showNotice = false
			}
			return a, nil
		}

		if a.showHelp {
			switch msg.String() {
			case "alt+h", "esc", "enter":
				a.showHelp = false
			}
			return a, nil
		}

		if msg.String() == "alt+h" {
			a.showHelp = true
			return a, nil
		}

		if !a.shell.IsOpen() {
			return a.updateBrowse(msg)
		}
		return a.updateChat(msg)

	case assistantReplyMsg:
		audioCmd := a.dataModel.HandleReply(msg)
		idx := len(a.dataModel.Messages) - 1
		a.updateViewportContent(true)
		return a, tea.Batch(a.renderMarkdownAsync(idx, a.dataModel.Messages[idx].Text), audioCmd)

	case assistantErrorMsg:
		a.dataModel.HandleAskError(msg)
		idx := len(a.dataModel.Messages) - 1
		a.updateViewportContent(true)
		return a, a.renderMarkdownAsync(idx, a.dataModel.Messages[idx].Text)

	case transcriptMsg:
		a.dataModel.HandleTranscript(msg)
		// Recognized speech becomes the draft input; the user reviews and
		// sends it with Enter like a typed question
		a.textarea.SetValue(msg.Text)
		a.textarea.CursorEnd()
		return a, nil

	case captureErrorMsg:
		a.dataModel.HandleCaptureError(msg)
		if msg.Err != nil && !errors.Is(msg.Err, speech.ErrStopped) {
			a.showNoticeModal("Voice Input Failed", "Speech could not be recognized. Please type your question instead.")
		}
		return a, nil

	case audioReadyMsg:
		a.playClip(msg.Path)
		return a, nil

	case audioErrorMsg:
		// The text answer is already on screen; a missing clip is not
		// worth interrupting the user for.
		if config.DebugLog != nil {
			config.DebugLog.Printf("[UI] audio unavailable: %v", msg.Err)
		}
		return a, nil

	case markdownRenderedMsg:
		if msg.MessageIndex >= 0 && msg.MessageIndex < len(a.dataModel.Messages) {
			a.dataModel.Messages[msg.MessageIndex].Rendered = msg.Rendered
			a.updateViewportContent(true)
		}
		return a, nil

	case transcriptExportedMsg:
		if msg.Err != nil {
			a.showNoticeModal("Export Failed", "The conversation could not be saved.")
		} else {
			a.showNoticeModal("Conversation Exported", "Saved to "+msg.Path)
		}
		return a, nil
	}

	// Forward remaining messages to the focused components
	if a.shell.IsOpen() {
		a.textarea, cmd = a.textarea.Update(msg)
		cmds = append(cmds, cmd)
	}
	a.viewport, cmd = a.viewport.Update(msg)
	cmds = append(cmds, cmd)

	return a, tea.Batch(cmds...)
}

// updateBrowse handles keys while the storefront has focus.
func (a AppView) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if a.filterMode {
		switch msg.String() {
		case "esc":
			a.filterMode = false
			a.filterInput.Blur()
			a.filterInput.Reset()
			a.filteredProducts = nil
			a.selectedIdx = 0
			return a, nil
		case "enter":
			a.filterMode = false
			a.filterInput.Blur()
			return a, nil
		default:
			var cmd tea.Cmd
			a.filterInput, cmd = a.filterInput.Update(msg)
			a.applyFilter()
			return a, cmd
		}
	}

	list := a.browseList()

	switch msg.String() {
	case "j", "down":
		if a.selectedIdx < len(list)-1 {
			a.selectedIdx++
		}
		return a, nil

	case "k", "up":
		if a.selectedIdx > 0 {
			a.selectedIdx--
		}
		return a, nil

	case "/":
		a.filterMode = true
		a.filterInput.Focus()
		return a, nil

	case "enter":
		if a.selectedIdx >= 0 && a.selectedIdx < len(list) {
			selected := list[a.selectedIdx]
			return a, a.openChat(&selected)
		}
		return a, nil

	case "a":
		return a, a.openChat(nil)
	}

	return a, nil
}

// updateChat handles keys while the chat overlay has focus.
func (a AppView) updateChat(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Enter sends; Alt+Enter inserts a newline via the textarea keymap
	if msg.Type == tea.KeyEnter && !msg.Alt {
		submitCmd := a.dataModel.Submit(a.textarea.Value())
		if submitCmd == nil {
			// Blank input or a question already in flight
			return a, nil
		}
		a.textarea.Reset()

		if config.DebugLog != nil {
			config.DebugLog.Printf("[UI] Enter pressed - sending message")
		}

		idx := len(a.dataModel.Messages) - 1
		a.updateViewportContent(true)

		return a, tea.Batch(
			a.renderMarkdownAsync(idx, a.dataModel.Messages[idx].Text),
			submitCmd,
			a.loadingSpinner.Tick,
		)
	}

	switch msg.String() {
	case "esc":
		a.closeChat()
		return a, nil

	case "alt+v":
		captureCmd, err := a.dataModel.StartCapture()
		if err != nil {
			switch {
			case errors.Is(err, speech.ErrUnsupported):
				a.showNoticeModal("Voice Input Unavailable", "No speech recognizer was found on this system.\nSet speech_command in config.toml to enable voice input.")
			case errors.Is(err, speech.ErrBusy):
				// Already listening; second press stops the capture
				a.dataModel.Capture.Stop()
			}
			return a, nil
		}
		return a, captureCmd

	case "alt+r":
		a.dataModel.Reset()
		a.carousel.Reset()
		a.updateViewportContent(true)
		return a, a.renderMarkdownAsync(0, a.dataModel.Messages[0].Text)

	case "alt+y":
		if text := a.dataModel.LastAssistantText(); text != "" {
			_ = clipboard.WriteAll(text)
		}
		return a, nil

	case "alt+c":
		_ = clipboard.WriteAll(a.dataModel.ConversationText())
		return a, nil

	case "alt+x":
		return a, a.dataModel.ExportTranscript()

	case "alt+left":
		return a.scrollCards(-1), nil

	case "alt+right":
		return a.scrollCards(1), nil
	}

	var cmd tea.Cmd
	a.textarea, cmd = a.textarea.Update(msg)
	return a, cmd
}

func (a AppView) scrollCards(direction int) AppView {
	idx := a.lastCardMessageIndex()
	if idx < 0 {
		return a
	}
	if a.carousel.ScrollBy(idx, direction, len(a.dataModel.Messages[idx].Products)) {
		a.updateViewportContent(false)
	}
	return a
}
