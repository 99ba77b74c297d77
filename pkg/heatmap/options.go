package heatmap

import (
	"github.com/matzehuels/tagkit/pkg/errors"
	"github.com/matzehuels/tagkit/pkg/palette"
)

// Defaults, in canvas units (SVG user units / pixels).
const (
	DefaultCellWidth  = 20
	DefaultCellHeight = 20
	DefaultFontSize   = 10
	DefaultPadding    = 20
	DefaultBarGap     = 10
	DefaultColormap   = "summer"
	DefaultShades     = 100

	// labelGap separates axis labels from the grid.
	labelGap = 10
)

// Cell is the size of one grid cell.
type Cell struct {
	Width  float64 `json:"width" toml:"width"`
	Height float64 `json:"height" toml:"height"`
}

// Padding is the space around the drawing, in CSS order.
type Padding struct {
	Top    float64 `json:"top" toml:"top"`
	Right  float64 `json:"right" toml:"right"`
	Bottom float64 `json:"bottom" toml:"bottom"`
	Left   float64 `json:"left" toml:"left"`
}

// Options configures a heatmap. Start from [DefaultOptions]; the zero value
// has no padding and no bar gap.
type Options struct {
	// Cell is the size of one grid cell. Default 20x20.
	Cell Cell `json:"cell" toml:"cell"`

	// FontSize is the label font size. Default 10.
	FontSize float64 `json:"font_size" toml:"font_size"`

	// Padding around the drawing. Default 20 on every side.
	Padding Padding `json:"padding" toml:"padding"`

	// TopBar adds a row of column sums above the grid.
	TopBar bool `json:"top_bar" toml:"top_bar"`

	// RightBar adds a column of row sums right of the grid.
	RightBar bool `json:"right_bar" toml:"right_bar"`

	// ColorBar adds a gradient bar with min/max labels on the right.
	ColorBar bool `json:"color_bar" toml:"color_bar"`

	// BarGap separates bars from the grid. Default 10.
	BarGap float64 `json:"bar_gap" toml:"bar_gap"`

	// Colormap names a palette colormap. Default "summer".
	Colormap string `json:"colormap" toml:"colormap"`

	// Shades is the number of discrete colours. Default 100.
	Shades int `json:"shades" toml:"shades"`

	// Invert maps the minimum onto the first colormap stop.
	Invert bool `json:"invert" toml:"invert"`
}

// DefaultOptions returns the options with every default applied.
func DefaultOptions() Options {
	return Options{
		Cell:     Cell{Width: DefaultCellWidth, Height: DefaultCellHeight},
		FontSize: DefaultFontSize,
		Padding:  Padding{DefaultPadding, DefaultPadding, DefaultPadding, DefaultPadding},
		BarGap:   DefaultBarGap,
		Colormap: DefaultColormap,
		Shades:   DefaultShades,
	}
}

// ValidateAndSetDefaults fills unset sizes and the colormap, and rejects
// negative geometry. Padding and BarGap keep their values since zero is a
// meaningful setting for both.
func (o *Options) ValidateAndSetDefaults() error {
	if o.Cell.Width == 0 {
		o.Cell.Width = DefaultCellWidth
	}
	if o.Cell.Height == 0 {
		o.Cell.Height = DefaultCellHeight
	}
	if o.FontSize == 0 {
		o.FontSize = DefaultFontSize
	}
	if o.Colormap == "" {
		o.Colormap = DefaultColormap
	}
	if o.Shades == 0 {
		o.Shades = DefaultShades
	}

	switch {
	case o.Cell.Width < 0 || o.Cell.Height < 0:
		return errors.New(errors.ErrCodeInvalidInput, "cell size must be positive, got %gx%g", o.Cell.Width, o.Cell.Height)
	case o.FontSize < 0:
		return errors.New(errors.ErrCodeInvalidInput, "font size must be positive, got %g", o.FontSize)
	case o.Padding.Top < 0 || o.Padding.Right < 0 || o.Padding.Bottom < 0 || o.Padding.Left < 0:
		return errors.New(errors.ErrCodeInvalidInput, "padding must not be negative")
	case o.BarGap < 0:
		return errors.New(errors.ErrCodeInvalidInput, "bar gap must not be negative, got %g", o.BarGap)
	case o.Shades < 2:
		return errors.New(errors.ErrCodeInvalidInput, "shades must be at least 2, got %d", o.Shades)
	}
	if _, err := palette.Named(o.Colormap); err != nil {
		return err
	}
	return nil
}

// colors returns the shade table, lowest value first.
func (o Options) colors() ([]string, error) {
	cm, err := palette.Named(o.Colormap)
	if err != nil {
		return nil, err
	}
	shades := cm.Shades(o.Shades)
	if !o.Invert {
		shades = palette.Reverse(shades)
	}
	return palette.Hex(shades), nil
}
