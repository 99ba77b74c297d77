// Package render converts SVG documents into the other output formats.
//
// Heatmaps and legends are drawn as SVG by their own packages. [Convert]
// turns that SVG into PNG or PDF using the external rsvg-convert tool (from
// librsvg):
//
//	svg := heatmap.RenderSVG(layout)
//	pdf, err := render.Convert(ctx, svg, render.FormatPDF, 0)
//	png, err := render.Convert(ctx, svg, render.FormatPNG, 2.0) // 2x scale
//
// [Available] reports whether rsvg-convert is on PATH, so callers can fail
// before doing any work.
package render
