package heatmap

import (
	"bytes"
	"encoding/xml"
	"fmt"
)

const (
	defaultBackground = "#ffffff"
	defaultStroke     = "#000000"
	defaultFontFamily = "Arial"

	colorBarGradientID = "heatmap-colorbar"
)

// SVGOption customizes RenderSVG.
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	background string
	stroke     string
	fontFamily string
}

// WithBackground sets the canvas fill. An empty string leaves it transparent.
func WithBackground(color string) SVGOption { return func(r *svgRenderer) { r.background = color } }

// WithStroke sets the cell border colour. An empty string removes borders.
func WithStroke(color string) SVGOption { return func(r *svgRenderer) { r.stroke = color } }

// WithFontFamily sets the label font.
func WithFontFamily(family string) SVGOption { return func(r *svgRenderer) { r.fontFamily = family } }

// RenderSVG writes l as a standalone SVG document.
func RenderSVG(l Layout, opts ...SVGOption) []byte {
	r := svgRenderer{background: defaultBackground, stroke: defaultStroke, fontFamily: defaultFontFamily}
	for _, opt := range opts {
		opt(&r)
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f" font-family="%s" font-size="%.1f">`+"\n",
		l.Width, l.Height, l.Width, l.Height, escapeXML(r.fontFamily), l.FontSize)

	if r.background != "" {
		fmt.Fprintf(&buf, `  <rect width="100%%" height="100%%" fill="%s"/>`+"\n", escapeXML(r.background))
	}

	buf.WriteString(`  <g class="cells"` + r.strokeAttrs() + ">\n")
	for _, row := range l.Cells {
		for _, c := range row {
			writeRect(&buf, c)
		}
	}
	buf.WriteString("  </g>\n")

	if len(l.TopBar) > 0 {
		buf.WriteString(`  <g class="top-bar"` + r.strokeAttrs() + ">\n")
		for _, c := range l.TopBar {
			writeRect(&buf, c)
		}
		buf.WriteString("  </g>\n")
	}
	if len(l.RightBar) > 0 {
		buf.WriteString(`  <g class="right-bar"` + r.strokeAttrs() + ">\n")
		for _, c := range l.RightBar {
			writeRect(&buf, c)
		}
		buf.WriteString("  </g>\n")
	}

	if len(l.XLabels)+len(l.YLabels) > 0 {
		buf.WriteString(`  <g class="labels" fill="#000000">` + "\n")
		for _, lb := range l.YLabels {
			writeLabel(&buf, lb)
		}
		for _, lb := range l.XLabels {
			writeLabel(&buf, lb)
		}
		buf.WriteString("  </g>\n")
	}

	if cb := l.ColorBar; cb != nil {
		writeColorBar(&buf, cb)
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func (r svgRenderer) strokeAttrs() string {
	if r.stroke == "" {
		return ""
	}
	return fmt.Sprintf(` stroke="%s" stroke-width="1"`, escapeXML(r.stroke))
}

func writeRect(buf *bytes.Buffer, c Rect) {
	fmt.Fprintf(buf, `    <rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="%s"><title>%g</title></rect>`+"\n",
		c.X, c.Y, c.W, c.H, c.Fill, c.Value)
}

func writeLabel(buf *bytes.Buffer, lb Label) {
	baseline := "hanging"
	if lb.Bottom {
		baseline = "text-after-edge"
	}
	fmt.Fprintf(buf, `    <text x="%.1f" y="%.1f" text-anchor="%s" dominant-baseline="%s">%s</text>`+"\n",
		lb.X, lb.Y, lb.Anchor, baseline, escapeXML(lb.Text))
}

func writeColorBar(buf *bytes.Buffer, cb *ColorBar) {
	buf.WriteString("  <defs>\n")
	fmt.Fprintf(buf, `    <linearGradient id="%s" x1="0" y1="1" x2="0" y2="0">`+"\n", colorBarGradientID)
	n := len(cb.Colors)
	for i, c := range cb.Colors {
		fmt.Fprintf(buf, `      <stop offset="%.4f" stop-color="%s"/>`+"\n", float64(i)/float64(n), c)
	}
	buf.WriteString("    </linearGradient>\n  </defs>\n")

	buf.WriteString(`  <g class="color-bar">` + "\n")
	fmt.Fprintf(buf, `    <rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="url(#%s)"/>`+"\n",
		cb.X, cb.Y, cb.W, cb.H, colorBarGradientID)
	writeLabel(buf, cb.MinLabel)
	writeLabel(buf, cb.MaxLabel)
	buf.WriteString("  </g>\n")
}

func escapeXML(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
