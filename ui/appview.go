package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"shopmate/audio"
	"shopmate/catalog"
	"shopmate/config"
	appmodel "shopmate/model"
	"shopmate/storage"
)

type AppView struct {
	// Reference to core data model
	dataModel *appmodel.Model

	// UI Components
	viewport viewport.Model
	textarea textarea.Model

	// Window state
	width  int
	height int
	ready  bool

	// The chat overlay. When closed the storefront underneath has focus;
	// opening it moves focus to the input, closing it returns to browsing.
	shell Store

	// Storefront state
	products         []catalog.Product
	filteredProducts []catalog.Product
	selectedIdx      int
	filterMode       bool
	filterInput      textinput.Model

	// Carousel scroll positions per message
	carousel carouselState

	// Loading spinner (bubbles/spinner)
	loadingSpinner spinner.Model

	showHelp bool

	// Notice modal for blocking acknowledgements (missing microphone,
	// export results, playback problems)
	showNotice  bool
	noticeTitle string
	noticeMsg   string

	// Detected audio player command, empty when the host has none
	player string
}

func NewAppView(dataModel *appmodel.Model, player string) AppView {
	ta := textarea.New()
	ta.Placeholder = "Ask about our products..."
	ta.Focus()
	ta.CharLimit = 0
	ta.ShowLineNumbers = false
	ta.SetHeight(3)
	ta.SetWidth(80)

	// Custom KeyMap: Alt+Enter for newline, Enter alone sends (handled separately)
	ta.KeyMap.InsertNewline = key.NewBinding(key.WithKeys("alt+enter"))

	ta.SetPromptFunc(2, func(lineIdx int) string {
		if lineIdx == 0 {
			return "> "
		}
		return "| "
	})

	vp := viewport.New(0, 0)

	filterInput := textinput.New()
	filterInput.Prompt = "Filter: "
	filterInput.CharLimit = 64

	var products []catalog.Product
	if dataModel.Catalog != nil {
		var err error
		products, err = dataModel.Catalog.List()
		if err != nil {
			if config.DebugLog != nil {
				config.DebugLog.Printf("[AppView] catalog load failed: %v", err)
			}
			products = nil
		}
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("15"))

	return AppView{
		dataModel:      dataModel,
		textarea:       ta,
		viewport:       vp,
		filterInput:    filterInput,
		products:       products,
		carousel:       newCarouselState(),
		loadingSpinner: sp,
		ready:          false,
		player:         player,
	}
}

func (a AppView) Init() tea.Cmd {
	// Markdown rendering waits for WindowSizeMsg so widths are correct
	return textarea.Blink
}

func (a AppView) View() string {
	if !a.ready {
		return "Loading ShopMate..."
	}

	// Modal rendering order: notice on top, then help, then the views
	if a.showNotice {
		return renderNoticeModal(a.noticeTitle, a.noticeMsg, a.width, a.height)
	}

	if a.showHelp {
		return renderHelpModal(a.width, a.height)
	}

	if !a.shell.IsOpen() {
		return renderBrowse(a.browseList(), a.selectedIdx, a.filterMode, a.filterInput, a.dataModel.Pending, a.width, a.height)
	}

	// Title bar - "ShopMate - Assistant" plus live state indicators
	title := AssistantStyle.Render("ShopMate") + TitleStyle.Render(" - Assistant")
	if p := a.shell.Selected(); p != nil {
		title += DimStyle.Render("  " + p.FullName())
	}
	if a.dataModel.Capture != nil && a.dataModel.Capture.Listening() {
		title += UserStyle.Render("  ● listening")
	}
	if a.dataModel.Arbiter != nil && a.dataModel.Arbiter.Playing() {
		title += DimStyle.Render("  ♪ playing")
	}

	separator := ""

	viewportView := a.viewport.View()
	inputView := a.textarea.View()

	descStyle := lipgloss.NewStyle().Foreground(successColor).Bold(true)
	statusBar := fmt.Sprintf("Enter %s  Alt+V %s  Alt+←/→ %s  Alt+Y %s  Alt+R %s  Alt+X %s  Esc %s",
		descStyle.Render("Send"),
		descStyle.Render("Voice"),
		descStyle.Render("Cards"),
		descStyle.Render("Copy"),
		descStyle.Render("Restart"),
		descStyle.Render("Export"),
		descStyle.Render("Close"),
	)
	statusBar = StatusStyle.Render(statusBar)

	return lipgloss.JoinVertical(
		lipgloss.Left,
		title,
		separator,
		viewportView,
		inputView,
		statusBar,
	)
}

// browseList returns the product list the storefront shows, honoring an
// active filter.
func (a AppView) browseList() []catalog.Product {
	if a.filterMode && a.filterInput.Value() != "" {
		return a.filteredProducts
	}
	return a.products
}

// lastCardMessageIndex finds the most recent message with a card strip,
// which is the strip the scroll keys address.
func (a AppView) lastCardMessageIndex() int {
	for i := len(a.dataModel.Messages) - 1; i >= 0; i-- {
		msg := a.dataModel.Messages[i]
		if msg.PresentAsCards && len(msg.Products) > 0 {
			return i
		}
	}
	return -1
}

// openChat shows the overlay, optionally injecting the selected product's
// spec sheet into the conversation.
func (a *AppView) openChat(selected *catalog.Product) tea.Cmd {
	// The browse row may be a filtered or stale copy; the catalog record is
	// what the spec sheet is built from
	if selected != nil && a.dataModel.Catalog != nil {
		if fresh, err := a.dataModel.Catalog.Lookup(selected.ID); err == nil && fresh != nil {
			selected = fresh
		}
	}

	a.shell.Open(selected)
	a.textarea.Focus()

	var cmd tea.Cmd
	if selected != nil {
		if a.dataModel.InjectProductDetail(*selected) {
			idx := len(a.dataModel.Messages) - 1
			cmd = a.renderMarkdownAsync(idx, a.dataModel.Messages[idx].Text)
		}
	}
	a.updateViewportContent(true)
	return cmd
}

// closeChat hides the overlay and silences the widget: capture and playback
// stop so nothing keeps running behind the storefront. The conversation log
// itself is preserved for the next open.
func (a *AppView) closeChat() {
	a.shell.Close()
	if a.dataModel.Capture != nil {
		a.dataModel.Capture.Stop()
	}
	if a.dataModel.Arbiter != nil {
		a.dataModel.Arbiter.StopAll()
	}
	a.textarea.Blur()
}

func (a *AppView) applyFilter() {
	a.filteredProducts = storage.FilterProducts(a.products, a.filterInput.Value())
	if a.selectedIdx >= len(a.browseList()) {
		a.selectedIdx = 0
	}
}

func (a *AppView) showNoticeModal(title, msg string) {
	a.showNotice = true
	a.noticeTitle = title
	a.noticeMsg = msg
}

// playClip hands a downloaded answer clip to the arbiter. Any clip still
// playing is stopped first so only one voice speaks at a time.
func (a *AppView) playClip(path string) {
	if a.player == "" {
		return
	}
	clip := audio.NewClip(a.player, path)
	if err := a.dataModel.Arbiter.Play(clip); err != nil {
		if config.DebugLog != nil {
			config.DebugLog.Printf("[AppView] playback failed: %v", err)
		}
	}
}
