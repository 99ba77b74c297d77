package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// =============================================================================
// Color Palette
// =============================================================================

var (
	colorTeal  = lipgloss.Color("36")  // headings, spinner
	colorGreen = lipgloss.Color("35")  // success, cache hits
	colorAmber = lipgloss.Color("220") // warnings
	colorRed   = lipgloss.Color("167") // errors
	colorBlue  = lipgloss.Color("75")  // links, commands
	colorWhite = lipgloss.Color("255") // values
	colorGray  = lipgloss.Color("245") // labels
	colorDim   = lipgloss.Color("240") // muted text
	colorChip  = lipgloss.Color("237") // tag chip background
)

// =============================================================================
// Styles
// =============================================================================

var (
	// StyleTitle renders table headers and headings.
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorTeal)

	// StyleLink renders URLs.
	StyleLink = lipgloss.NewStyle().Foreground(colorBlue).Underline(true)

	// StyleChip renders a committed tag the way the widget does.
	StyleChip = lipgloss.NewStyle().Padding(0, 1).Background(colorChip).Foreground(colorWhite)

	// StyleDim renders secondary text.
	StyleDim = lipgloss.NewStyle().Foreground(colorDim)

	// StyleValue renders paths, counts and other values.
	StyleValue = lipgloss.NewStyle().Foreground(colorWhite)

	styleLabel   = lipgloss.NewStyle().Foreground(colorGray).Width(12)
	styleCommand = lipgloss.NewStyle().Foreground(colorBlue)
	styleSpinner = lipgloss.NewStyle().Foreground(colorTeal)
)

// mark is a one-glyph prefix of a status line.
type mark struct {
	icon  string
	style lipgloss.Style
}

var (
	statusOK   = mark{"✓", lipgloss.NewStyle().Foreground(colorGreen)}
	statusFail = mark{"✗", lipgloss.NewStyle().Foreground(colorRed)}
	statusWarn = mark{"!", lipgloss.NewStyle().Foreground(colorAmber)}
	statusInfo = mark{"›", lipgloss.NewStyle().Foreground(colorGray)}
)

// =============================================================================
// Printer
// =============================================================================

// printer writes the human-facing lines of a command. Diagnostics go to the
// logger instead.
type printer struct {
	w io.Writer
}

func newPrinter(w io.Writer) printer { return printer{w: w} }

func (p printer) line(st mark, format string, args ...any) {
	fmt.Fprintln(p.w, st.style.Render(st.icon)+" "+fmt.Sprintf(format, args...))
}

func (p printer) success(format string, args ...any) { p.line(statusOK, format, args...) }
func (p printer) failure(format string, args ...any) { p.line(statusFail, format, args...) }
func (p printer) info(format string, args ...any)    { p.line(statusInfo, format, args...) }

func (p printer) warning(format string, args ...any) {
	p.line(statusWarn, "%s", statusWarn.style.Render(fmt.Sprintf(format, args...)))
}

// detail prints an indented, muted line under the previous status line.
func (p printer) detail(format string, args ...any) {
	fmt.Fprintln(p.w, "  "+StyleDim.Render(fmt.Sprintf(format, args...)))
}

// file prints a written output path.
func (p printer) file(path string) {
	fmt.Fprintln(p.w, "  "+StyleDim.Render("→")+" "+StyleValue.Render(path))
}

func (p printer) keyValue(key, value string) {
	fmt.Fprintln(p.w, styleLabel.Render(key)+" "+StyleValue.Render(value))
}

// nextStep suggests a follow-up command.
func (p printer) nextStep(description, cmd string) {
	fmt.Fprintln(p.w, StyleDim.Render(description+":")+" "+styleCommand.Render(cmd))
}

// stats prints the size of a drawing and whether it came from the cache,
// e.g. "6 cells · 90x60 · cached".
func (p printer) stats(kind string, items int, width, height float64, cached bool) {
	origin := StyleDim.Render("fresh")
	if cached {
		origin = statusOK.style.Render("cached")
	}
	sep := StyleDim.Render(" · ")
	parts := []string{
		StyleDim.Render(fmt.Sprintf("%d %s", items, itemNoun(kind, items))),
		StyleDim.Render(fmt.Sprintf("%gx%g", width, height)),
		origin,
	}
	fmt.Fprintln(p.w, "  "+strings.Join(parts, sep))
}

// itemNoun names the unit counted by stats: heatmap cells or legend entries.
func itemNoun(kind string, n int) string {
	switch {
	case kind == "heatmap" && n == 1:
		return "cell"
	case kind == "heatmap":
		return "cells"
	case n == 1:
		return "entry"
	default:
		return "entries"
	}
}
