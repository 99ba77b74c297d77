package heatmap

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const (
	minTermCellWidth = 2
	maxTermCellWidth = 6
	termColorBarLen  = 12
)

// RenderTerminal draws l with one coloured block per cell. Canvas geometry
// is ignored; cells are sized to fit the x labels.
func RenderTerminal(l Layout) string {
	cellW := minTermCellWidth
	for _, lb := range l.XLabels {
		cellW = max(cellW, lipgloss.Width(lb.Text))
	}
	cellW = min(cellW, maxTermCellWidth)

	rows := len(l.Cells)
	yLabels := make([]string, rows)
	for i, lb := range l.YLabels {
		yLabels[len(l.YLabels)-1-i] = lb.Text
	}
	labelW := 0
	for _, s := range yLabels {
		labelW = max(labelW, lipgloss.Width(s))
	}
	gutter := lipgloss.NewStyle().Width(labelW).Align(lipgloss.Right)
	indent := strings.Repeat(" ", labelW+1)

	block := func(fill string) string {
		return lipgloss.NewStyle().Background(lipgloss.Color(fill)).Render(strings.Repeat(" ", cellW))
	}

	var lines []string
	if len(l.TopBar) > 0 {
		var b strings.Builder
		b.WriteString(indent)
		for _, c := range l.TopBar {
			b.WriteString(block(c.Fill))
		}
		lines = append(lines, b.String(), "")
	}

	for i, row := range l.Cells {
		var b strings.Builder
		b.WriteString(gutter.Render(yLabels[i]))
		b.WriteString(" ")
		for _, c := range row {
			b.WriteString(block(c.Fill))
		}
		if i < len(l.RightBar) {
			b.WriteString(" ")
			b.WriteString(block(l.RightBar[i].Fill))
		}
		lines = append(lines, b.String())
	}

	if len(l.XLabels) > 0 {
		var b strings.Builder
		b.WriteString(indent)
		for _, lb := range l.XLabels {
			text := lipgloss.NewStyle().MaxWidth(cellW).Render(lb.Text)
			b.WriteString(lipgloss.PlaceHorizontal(cellW, lipgloss.Center, text))
		}
		lines = append(lines, b.String())
	}

	if cb := l.ColorBar; cb != nil && len(cb.Colors) > 0 {
		var b strings.Builder
		b.WriteString(indent)
		b.WriteString(cb.MinLabel.Text)
		b.WriteString(" ")
		for k := 0; k < termColorBarLen; k++ {
			idx := k * (len(cb.Colors) - 1) / (termColorBarLen - 1)
			b.WriteString(lipgloss.NewStyle().Background(lipgloss.Color(cb.Colors[idx])).Render(" "))
		}
		b.WriteString(" ")
		b.WriteString(cb.MaxLabel.Text)
		lines = append(lines, "", b.String())
	}

	return strings.Join(lines, "\n")
}
