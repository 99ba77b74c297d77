// Package heatmap renders a numeric grid as a coloured heatmap.
//
// Rendering is split in two stages:
//
//  1. [Build] validates the grid, computes [Stats] and produces a [Layout]
//     with every cell, bar and label positioned in canvas units.
//  2. A sink turns the layout into output: [RenderSVG] for vector output
//     (and, through package render, PNG and PDF) or [RenderTerminal] for a
//     lipgloss block rendering.
//
// # Colours
//
// Values are mapped onto [Options.Shades] colours sampled from the named
// colormap (see package palette). By default the scale runs from the
// last colormap stop for the minimum to the first stop for the maximum, so
// with "summer" low values are yellow and high values are green. Set
// [Options.Invert] to flip it.
//
// The optional top bar colours column sums and the optional right bar
// colours row sums, each over its own min/max range. The optional colour
// bar shows the gradient with the grid's minimum and maximum written in
// exponent notation ("1e+2").
package heatmap
