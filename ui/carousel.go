package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"shopmate/catalog"
)

const (
	cardInnerWidth = 22
	maxCardLines   = 3
)

// carouselState tracks horizontal scroll positions for card strips,
// keyed by message index so every strip scrolls independently.
type carouselState struct {
	offsets map[int]int
}

func newCarouselState() carouselState {
	return carouselState{offsets: make(map[int]int)}
}

func (c *carouselState) Offset(messageIndex int) int {
	return c.offsets[messageIndex]
}

// ScrollBy moves a strip one card in the given direction (-1 left, +1 right).
// Strips with a single product never scroll. Offsets clamp to the card range.
// Returns true when the offset actually changed.
func (c *carouselState) ScrollBy(messageIndex, direction int, productCount int) bool {
	if productCount <= 1 {
		return false
	}

	current := c.offsets[messageIndex]
	next := current + direction
	if next < 0 {
		next = 0
	}
	if next > productCount-1 {
		next = productCount - 1
	}
	if next == current {
		return false
	}

	c.offsets[messageIndex] = next
	return true
}

// Reset drops all scroll positions. Called when the conversation resets.
func (c *carouselState) Reset() {
	c.offsets = make(map[int]int)
}

// renderCarousel builds the card strip for one message, showing as many
// cards as fit in the viewport width starting from the scroll offset.
// Edge markers hint at off-screen cards.
func renderCarousel(products []catalog.Product, offset, width int) string {
	if len(products) == 0 {
		return ""
	}

	cardWidth := cardInnerWidth + 4 // border and padding
	visible := (width - 4) / cardWidth
	if visible < 1 {
		visible = 1
	}

	if offset > len(products)-1 {
		offset = len(products) - 1
	}
	if offset < 0 {
		offset = 0
	}

	end := offset + visible
	if end > len(products) {
		end = len(products)
	}

	cards := make([]string, 0, end-offset)
	for _, p := range products[offset:end] {
		cards = append(cards, renderCard(p))
	}

	strip := lipgloss.JoinHorizontal(lipgloss.Top, cards...)

	var markers []string
	if offset > 0 {
		markers = append(markers, "‹ more")
	}
	if end < len(products) {
		markers = append(markers, "more ›")
	}
	footer := DimStyle.Render(fmt.Sprintf("%d-%d of %d", offset+1, end, len(products)))
	if len(markers) > 0 {
		footer += "  " + DimStyle.Render(strings.Join(markers, "  "))
	}

	return strip + "\n" + footer
}

func renderCard(p catalog.Product) string {
	lines := make([]string, 0, maxCardLines)
	lines = append(lines, CardTitleStyle.Render(fitCardLine(p.FullName())))

	price := "Price N/A"
	if p.Price > 0 {
		price = fmt.Sprintf("$%.2f", p.Price)
	}
	lines = append(lines, CardPriceStyle.Render(fitCardLine(price)))

	if p.QualityScore != nil {
		lines = append(lines, DimStyle.Render(fitCardLine(fmt.Sprintf("Rating %.0f/100", *p.QualityScore))))
	} else {
		lines = append(lines, fitCardLine(""))
	}

	return CardStyle.Render(strings.Join(lines, "\n"))
}

// fitCardLine truncates or pads to the fixed card width so every card in a
// strip lines up. runewidth handles wide characters in product names.
func fitCardLine(s string) string {
	if runewidth.StringWidth(s) > cardInnerWidth {
		return runewidth.Truncate(s, cardInnerWidth, "…")
	}
	return s + strings.Repeat(" ", cardInnerWidth-runewidth.StringWidth(s))
}
