package legend

import (
	"bytes"
	"encoding/xml"
	"fmt"
)

// SVGOption customizes RenderSVG.
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	background string
	textColor  string
}

// WithBackground sets the canvas fill. An empty string leaves it transparent.
func WithBackground(color string) SVGOption { return func(r *svgRenderer) { r.background = color } }

// WithTextColor sets the label colour.
func WithTextColor(color string) SVGOption { return func(r *svgRenderer) { r.textColor = color } }

// RenderSVG writes l as a standalone SVG document.
func RenderSVG(l Layout, opts ...SVGOption) []byte {
	r := svgRenderer{background: "#ffffff", textColor: "#000000"}
	for _, opt := range opts {
		opt(&r)
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		l.Width, l.Height, l.Width, l.Height)
	if r.background != "" {
		fmt.Fprintf(&buf, `  <rect width="100%%" height="100%%" fill="%s"/>`+"\n", escapeXML(r.background))
	}

	fmt.Fprintf(&buf, `  <g class="legend" font-family="%s" font-size="%.1f" font-weight="%s">`+"\n",
		escapeXML(l.Font.Family), l.Font.Size, escapeXML(l.Font.Weight))
	for _, it := range l.Items {
		fill := "none"
		if it.Color != "" {
			fill = escapeXML(it.Color)
		}
		fmt.Fprintf(&buf, `    <rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="%s" stroke="#000000" stroke-width="1"/>`+"\n",
			it.SwatchX, it.SwatchY, it.SwatchW, it.SwatchH, fill)
		fmt.Fprintf(&buf, `    <text x="%.1f" y="%.1f" dominant-baseline="central" fill="%s">%s</text>`+"\n",
			it.TextX, it.TextY, escapeXML(r.textColor), escapeXML(it.Text))
	}
	buf.WriteString("  </g>\n</svg>\n")
	return buf.Bytes()
}

func escapeXML(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
