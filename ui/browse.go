package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"

	"shopmate/catalog"
)

// renderBrowse draws the storefront: the product list the user browses
// before (or instead of) opening the chat overlay.
func renderBrowse(products []catalog.Product, selectedIdx int, filterMode bool, filterInput textinput.Model, chatPending bool, width, height int) string {
	title := AssistantStyle.Render("ShopMate") + TitleStyle.Render(" - Store")

	var list strings.Builder
	if len(products) == 0 {
		list.WriteString(DimStyle.Render("No products match."))
		list.WriteString("\n")
	}

	// Keep the selection visible when the list is taller than the window
	listHeight := height - 5
	if listHeight < 1 {
		listHeight = 1
	}
	start := 0
	if selectedIdx >= listHeight {
		start = selectedIdx - listHeight + 1
	}
	end := start + listHeight
	if end > len(products) {
		end = len(products)
	}

	for i := start; i < end; i++ {
		p := products[i]
		line := formatProductLine(p)
		if i == selectedIdx {
			list.WriteString(SelectedStyle.Render("> " + line))
		} else {
			list.WriteString("  " + line)
		}
		list.WriteString("\n")
	}

	var filterView string
	if filterMode {
		filterView = filterInput.View()
	} else {
		filterView = ""
	}

	statusBar := FormatFooter(
		"j/k", "Navigate",
		"Enter", "Ask about product",
		"a", "Open assistant",
		"/", "Filter",
		"Alt+Q", "Quit",
	)
	if chatPending {
		statusBar += "  " + DimStyle.Render("(assistant is replying)")
	}
	statusBar = StatusStyle.Render(statusBar)

	body := lipgloss.NewStyle().Height(listHeight).Render(list.String())

	return lipgloss.JoinVertical(
		lipgloss.Left,
		title,
		"",
		body,
		filterView,
		statusBar,
	)
}

func formatProductLine(p catalog.Product) string {
	price := "N/A"
	if p.Price > 0 {
		price = fmt.Sprintf("$%.2f", p.Price)
	}
	return fmt.Sprintf("%-40s %10s", p.FullName(), price)
}
