package legend

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/tagkit/pkg/palette"
)

const swatchCells = 3

// RenderTerminal draws each item as a coloured swatch followed by its text.
func RenderTerminal(l Layout) string {
	items := make([]string, len(l.Items))
	for i, it := range l.Items {
		swatch := lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, true).Render(strings.Repeat(" ", swatchCells))
		if c, err := palette.Parse(it.Color); it.Color != "" && err == nil {
			swatch = lipgloss.NewStyle().Background(lipgloss.Color(c.Hex())).Render(strings.Repeat(" ", swatchCells+2))
		}
		items[i] = swatch + " " + it.Text
	}
	if l.Direction == Row {
		return strings.Join(items, "  ")
	}
	return strings.Join(items, "\n")
}
