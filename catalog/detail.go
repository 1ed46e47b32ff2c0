package catalog

import (
	"fmt"
	"strconv"
	"strings"
)

// DetailMarkdown builds the Markdown body of a synthetic product-detail
// message. Brand, price and quality score always render, with "N/A"
// substituted when absent; the remaining spec lines appear only when the
// record carries them, and the two capability flags render as Yes/No.
func DetailMarkdown(p Product) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("### %s\n\n", p.FullName()))

	brand := p.BrandName
	if strings.TrimSpace(brand) == "" {
		brand = "N/A"
	}
	b.WriteString(fmt.Sprintf("**Brand:** %s\n\n", brand))

	price := "N/A"
	if p.Price > 0 {
		price = "$" + strconv.FormatFloat(p.Price, 'f', -1, 64)
	}
	b.WriteString(fmt.Sprintf("**Price:** %s\n\n", price))

	score := "N/A"
	if p.QualityScore != nil {
		score = fmt.Sprintf("%s/100", strconv.FormatFloat(*p.QualityScore, 'f', -1, 64))
	}
	b.WriteString(fmt.Sprintf("**Quality score:** %s\n\n", score))

	if p.ProcessorBrand != "" {
		b.WriteString(fmt.Sprintf("**Processor:** %s\n\n", p.ProcessorBrand))
	}
	if p.RAMCapacityGB.IsSet() {
		b.WriteString(fmt.Sprintf("**RAM:** %s\n\n", p.RAMCapacityGB.WithUnit("GB")))
	}
	if p.InternalStorage.IsSet() {
		b.WriteString(fmt.Sprintf("**Storage:** %s\n\n", p.InternalStorage.WithUnit("GB")))
	}
	if p.ScreenSize.IsSet() {
		b.WriteString(fmt.Sprintf("**Screen:** %s\n\n", p.ScreenSize.WithUnit("inches")))
	}
	if p.Has5G != nil {
		b.WriteString(fmt.Sprintf("**5G:** %s\n\n", yesNo(*p.Has5G)))
	}
	if p.HasNFC != nil {
		b.WriteString(fmt.Sprintf("**NFC:** %s\n\n", yesNo(*p.HasNFC)))
	}

	return strings.TrimSuffix(b.String(), "\n")
}

func yesNo(v bool) string {
	if v {
		return "Yes"
	}
	return "No"
}
