package ui

import (
	"github.com/charmbracelet/lipgloss"
)

func renderHelpModal(width, height int) string {
	green := lipgloss.NewStyle().
		Bold(true).
		Foreground(successColor)

	title := green.Render("ShopMate - Keyboard Shortcuts")

	blue := lipgloss.NewStyle().Foreground(accentColor)

	storeActions := lipgloss.JoinVertical(
		lipgloss.Left,
		blue.Render("## Store"),
		"• j/k, ↑/↓     Navigate products",
		"• /            Filter products",
		"• Enter        Ask about product",
		"• a            Open assistant",
		"• Alt+Q        Quit",
	)

	chatActions := lipgloss.JoinVertical(
		lipgloss.Left,
		blue.Render("## Assistant"),
		"• Enter        Send message",
		"• Alt+Enter    New line",
		"• Alt+V        Start/stop voice input",
		"• Alt+←/→      Scroll product cards",
		"• Alt+Y        Copy last answer",
		"• Alt+C        Copy whole conversation",
		"• Alt+R        Restart conversation",
		"• Alt+X        Export conversation",
		"• Esc          Back to store",
	)

	tips := lipgloss.JoinVertical(
		lipgloss.Left,
		blue.Render("## Tips"),
		"• Spoken answers play automatically",
		"• Closing the assistant keeps your chat",
	)

	column1 := lipgloss.JoinVertical(
		lipgloss.Left,
		storeActions,
		"",
		tips,
	)

	columnStyle := lipgloss.NewStyle().Width(42).PaddingLeft(4)

	twoColumns := lipgloss.JoinHorizontal(
		lipgloss.Top,
		columnStyle.Render(column1),
		"    ",
		columnStyle.Render(chatActions),
	)

	footer := lipgloss.NewStyle().
		Foreground(dimColor).
		Render("      Press Alt+H or Esc to close this help")

	content := lipgloss.JoinVertical(
		lipgloss.Center,
		title,
		"",
		twoColumns,
		"",
		footer,
	)

	helpBox := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("8")).
		Padding(1, 2).
		Width(96)

	return lipgloss.Place(
		width,
		height,
		lipgloss.Center,
		lipgloss.Center,
		helpBox.Render(content),
	)
}
