package pipeline

import (
	"context"
	"fmt"

	"github.com/matzehuels/tagkit/pkg/heatmap"
	"github.com/matzehuels/tagkit/pkg/legend"
	"github.com/matzehuels/tagkit/pkg/render"
)

// Drawing is a built heatmap or legend, ready to be rendered. Exactly one
// of Heatmap and Legend is set.
type Drawing struct {
	Kind    string
	Heatmap *heatmap.Layout
	Legend  *legend.Layout
}

// Build validates the input of opts and positions every element.
func Build(opts Options) (*Drawing, error) {
	switch opts.Kind {
	case KindHeatmap:
		l, err := heatmap.Build(opts.Heatmap, opts.HeatmapOptions)
		if err != nil {
			return nil, err
		}
		return &Drawing{Kind: opts.Kind, Heatmap: &l}, nil
	case KindLegend:
		l, err := legend.Build(legend.Pairs(opts.Texts, opts.Colors), opts.LegendOptions)
		if err != nil {
			return nil, err
		}
		return &Drawing{Kind: opts.Kind, Legend: &l}, nil
	default:
		return nil, ValidateKind(opts.Kind)
	}
}

// Items returns the number of drawn cells or legend entries.
func (d *Drawing) Items() int {
	if d.Heatmap != nil {
		return d.Heatmap.Stats.Rows * d.Heatmap.Stats.Cols
	}
	if d.Legend != nil {
		return len(d.Legend.Items)
	}
	return 0
}

// Size returns the canvas size.
func (d *Drawing) Size() (w, h float64) {
	if d.Heatmap != nil {
		return d.Heatmap.Width, d.Heatmap.Height
	}
	if d.Legend != nil {
		return d.Legend.Width, d.Legend.Height
	}
	return 0, 0
}

// SVG writes the drawing as SVG.
func (d *Drawing) SVG() []byte {
	if d.Heatmap != nil {
		return heatmap.RenderSVG(*d.Heatmap)
	}
	return legend.RenderSVG(*d.Legend)
}

// Terminal writes the drawing as lipgloss-styled text.
func (d *Drawing) Terminal() string {
	if d.Heatmap != nil {
		return heatmap.RenderTerminal(*d.Heatmap)
	}
	return legend.RenderTerminal(*d.Legend)
}

// Render generates output artifacts in the requested formats. The SVG is
// produced once and shared by the converted formats.
func Render(ctx context.Context, d *Drawing, formats []string, scale float64) (map[string][]byte, error) {
	artifacts := make(map[string][]byte, len(formats))
	var svg []byte
	for _, name := range formats {
		data, err := renderFormat(ctx, d, name, scale, &svg)
		if err != nil {
			return nil, err
		}
		artifacts[name] = data
	}
	return artifacts, nil
}

func renderFormat(ctx context.Context, d *Drawing, name string, scale float64, svg *[]byte) ([]byte, error) {
	f, err := render.ParseFormat(name)
	if err != nil {
		return nil, err
	}
	if f == render.FormatTerm {
		return []byte(d.Terminal() + "\n"), nil
	}
	if *svg == nil {
		*svg = d.SVG()
	}
	data, err := render.Convert(ctx, *svg, f, scale)
	if err != nil {
		return nil, fmt.Errorf("render %s: %w", name, err)
	}
	return data, nil
}
