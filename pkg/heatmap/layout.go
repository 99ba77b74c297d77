package heatmap

import (
	"github.com/matzehuels/tagkit/pkg/errors"
)

// Heatmap is the input of a render: a rectangular grid plus optional axis
// labels. Ys are listed bottom-up, so Ys[0] labels the last row.
type Heatmap struct {
	Data [][]float64 `json:"data" toml:"data"`
	Xs   []string    `json:"xs,omitempty" toml:"xs"`
	Ys   []string    `json:"ys,omitempty" toml:"ys"`
}

// Rect is a filled rectangle in canvas units.
type Rect struct {
	X, Y, W, H float64
	Fill       string
	Value      float64
}

// Anchor is the horizontal alignment of a label.
type Anchor string

const (
	AnchorStart  Anchor = "start"
	AnchorMiddle Anchor = "middle"
	AnchorEnd    Anchor = "end"
)

// Label is a text positioned in canvas units. Y is the top edge of the
// text unless Bottom is set.
type Label struct {
	Text   string
	X, Y   float64
	Anchor Anchor
	Bottom bool
}

// ColorBar is the gradient legend of the value range.
type ColorBar struct {
	X, Y, W, H float64  // Y is the top edge
	Colors     []string // lowest value first, drawn bottom-up
	MinLabel   Label
	MaxLabel   Label
}

// Layout is a fully positioned heatmap.
type Layout struct {
	Width, Height float64
	FontSize      float64
	Stats         Stats

	// Cells holds the grid row by row.
	Cells [][]Rect

	// TopBar and RightBar are empty when disabled.
	TopBar   []Rect
	RightBar []Rect

	XLabels []Label
	YLabels []Label

	// ColorBar is nil when disabled.
	ColorBar *ColorBar
}

// Build validates h and positions every element.
func Build(h Heatmap, opts Options) (Layout, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return Layout{}, err
	}
	stats, err := ComputeStats(h.Data)
	if err != nil {
		return Layout{}, err
	}
	if err := validateLabels(h, stats); err != nil {
		return Layout{}, err
	}
	colors, err := opts.colors()
	if err != nil {
		return Layout{}, err
	}

	cw, ch, gap := opts.Cell.Width, opts.Cell.Height, opts.BarGap
	ox, oy := opts.Padding.Left, opts.Padding.Top
	gridY := oy
	if opts.TopBar {
		gridY += ch + gap
	}
	gridW := float64(stats.Cols) * cw
	gridH := float64(stats.Rows) * ch

	l := Layout{
		Width:    opts.Padding.Left + opts.Padding.Right + gridW,
		Height:   opts.Padding.Top + opts.Padding.Bottom + gridH,
		FontSize: opts.FontSize,
		Stats:    stats,
	}
	if opts.RightBar {
		l.Width += cw + gap
	}
	if opts.ColorBar {
		l.Width += gap + cw
	}
	if opts.TopBar {
		l.Height += ch + gap
	}

	pick := func(v, lo, hi float64) string {
		return colors[ColorIndex(v, lo, hi, len(colors))]
	}

	l.Cells = make([][]Rect, stats.Rows)
	for i, row := range h.Data {
		l.Cells[i] = make([]Rect, stats.Cols)
		for j, v := range row {
			l.Cells[i][j] = Rect{
				X: ox + float64(j)*cw, Y: gridY + float64(i)*ch, W: cw, H: ch,
				Fill: pick(v, stats.Min, stats.Max), Value: v,
			}
		}
	}

	if opts.TopBar {
		sums := ColumnSums(h.Data)
		lo, hi := bounds(sums)
		for j, v := range sums {
			l.TopBar = append(l.TopBar, Rect{
				X: ox + float64(j)*cw, Y: oy, W: cw, H: ch,
				Fill: pick(v, lo, hi), Value: v,
			})
		}
	}

	if opts.RightBar {
		sums := RowSums(h.Data)
		lo, hi := bounds(sums)
		for i, v := range sums {
			l.RightBar = append(l.RightBar, Rect{
				X: ox + gridW + gap, Y: gridY + float64(i)*ch, W: cw, H: ch,
				Fill: pick(v, lo, hi), Value: v,
			})
		}
	}

	for i, text := range h.Ys {
		l.YLabels = append(l.YLabels, Label{
			Text:   text,
			X:      ox - labelGap,
			Y:      gridY + ch*float64(len(h.Ys)-i-1),
			Anchor: AnchorEnd,
		})
	}
	for j, text := range h.Xs {
		l.XLabels = append(l.XLabels, Label{
			Text:   text,
			X:      ox + cw*float64(j) + cw/2,
			Y:      gridY + gridH + labelGap,
			Anchor: AnchorMiddle,
		})
	}

	if opts.ColorBar {
		x := ox + gridW + gap
		if opts.RightBar {
			x += cw + gap
		}
		bottom := gridY + gridH
		l.ColorBar = &ColorBar{
			X: x, Y: gridY, W: cw, H: gridH,
			Colors: colors,
			MinLabel: Label{
				Text: FormatExp(stats.Min), X: x + cw/2, Y: bottom + labelGap, Anchor: AnchorMiddle,
			},
			MaxLabel: Label{
				Text: FormatExp(stats.Max), X: x + cw/2, Y: gridY - 5, Anchor: AnchorMiddle, Bottom: true,
			},
		}
	}

	return l, nil
}

func validateLabels(h Heatmap, s Stats) error {
	if len(h.Xs) > s.Cols {
		return errors.New(errors.ErrCodeInvalidInput, "%d x labels for %d columns", len(h.Xs), s.Cols)
	}
	if len(h.Ys) > s.Rows {
		return errors.New(errors.ErrCodeInvalidInput, "%d y labels for %d rows", len(h.Ys), s.Rows)
	}
	for _, labels := range [][]string{h.Xs, h.Ys} {
		for _, text := range labels {
			if err := errors.ValidateLabel(text); err != nil {
				return err
			}
		}
	}
	return nil
}
