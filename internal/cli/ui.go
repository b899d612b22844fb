package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/franciscosanchezn/gin-pizza-console/internal/console"
	"github.com/franciscosanchezn/gin-pizza-console/internal/pricing"
)

var (
	colorRed   = lipgloss.Color("167") // Soft red - headings
	colorAmber = lipgloss.Color("220") // Amber - prices
	colorGray  = lipgloss.Color("245") // Gray - secondary text
	colorError = lipgloss.Color("196")
)

var (
	styleTitle   = lipgloss.NewStyle().Bold(true).Foreground(colorRed)
	styleSection = lipgloss.NewStyle().Bold(true).Underline(true)
	stylePrice   = lipgloss.NewStyle().Foreground(colorAmber)
	styleDim     = lipgloss.NewStyle().Foreground(colorGray)
	styleError   = lipgloss.NewStyle().Foreground(colorError)
)

const iconError = "✗"

// menuSections lists the sections in print order
var menuSections = []console.SectionKind{
	console.SectionPizzas,
	console.SectionSizes,
	console.SectionSauces,
	console.SectionCrusts,
	console.SectionToppings,
}

// renderMenu formats a loaded menu page for the terminal
func renderMenu(page *console.MenuPage) string {
	var b strings.Builder
	b.WriteString(styleTitle.Render("Pizza Menu") + "\n")

	for _, kind := range menuSections {
		b.WriteString("\n" + styleSection.Render(sectionTitle(kind)) + "\n")
		if page.Failed(string(kind)) {
			b.WriteString(styleError.Render(iconError+" failed to load "+string(kind)) + "\n")
			continue
		}
		lines := sectionLines(page, kind)
		if len(lines) == 0 {
			b.WriteString(styleDim.Render("  nothing yet") + "\n")
		}
		for _, line := range lines {
			b.WriteString(line + "\n")
		}
	}
	return b.String()
}

func sectionTitle(kind console.SectionKind) string {
	s := string(kind)
	return strings.ToUpper(s[:1]) + s[1:]
}

func sectionLines(page *console.MenuPage, kind console.SectionKind) []string {
	var lines []string
	switch kind {
	case console.SectionPizzas:
		for _, p := range page.Pizzas {
			lines = append(lines, "  "+lipgloss.NewStyle().Bold(true).Render(p.Name))
			if p.Description != "" {
				lines = append(lines, "    "+styleDim.Render(p.Description))
			}
			for _, u := range p.Units {
				lines = append(lines, fmt.Sprintf("    %-10s %s", u.Size.Size, stylePrice.Render(pricing.Format(u.Price))))
			}
		}
	case console.SectionSizes:
		for _, s := range page.Sizes {
			lines = append(lines, priced(s.Size, s.BasePrice))
		}
	case console.SectionSauces:
		for _, s := range page.Sauces {
			lines = append(lines, priced(s.Name, s.Price))
		}
	case console.SectionCrusts:
		for _, c := range page.Crusts {
			lines = append(lines, priced(c.Name, c.Price))
		}
	case console.SectionToppings:
		for _, t := range page.Toppings {
			line := priced(t.Name, t.Price)
			if len(t.Categories) > 0 {
				names := make([]string, 0, len(t.Categories))
				for _, c := range t.Categories {
					names = append(names, c.Name)
				}
				line += " " + styleDim.Render("("+strings.Join(names, ", ")+")")
			}
			lines = append(lines, line)
		}
	}
	return lines
}

func priced(name string, price float64) string {
	return fmt.Sprintf("  %-14s %s", name, stylePrice.Render(pricing.FormatFloat(price)))
}
