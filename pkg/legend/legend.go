// Package legend renders text/colour pairs as a column or row of swatches.
package legend

import (
	"github.com/matzehuels/tagkit/pkg/errors"
	"github.com/matzehuels/tagkit/pkg/palette"
)

// Direction is the stacking direction of the items.
type Direction string

const (
	Column Direction = "column"
	Row    Direction = "row"
)

// Defaults. Width and Height are per item, in canvas units.
const (
	DefaultDirection  = Column
	DefaultFontSize   = 20
	DefaultFontWeight = "normal"
	DefaultFontFamily = "sans-serif"
	DefaultWidth      = 160
	DefaultHeight     = 40

	itemPadding = 10
	textGap     = 15
)

// Font describes the label font.
type Font struct {
	Size   float64 `json:"size" toml:"size"`
	Weight string  `json:"weight" toml:"weight"`
	Family string  `json:"family" toml:"family"`
}

// Options configures a legend. Zero fields take the defaults.
type Options struct {
	// Direction stacks items vertically (column, default) or horizontally.
	Direction Direction `json:"direction" toml:"direction"`

	// Font of the labels. Default 20 normal sans-serif.
	Font Font `json:"font" toml:"font"`

	// Width and Height of one item. Default 160x40.
	Width  float64 `json:"width" toml:"width"`
	Height float64 `json:"height" toml:"height"`
}

// DefaultOptions returns the options with every default applied.
func DefaultOptions() Options {
	return Options{
		Direction: DefaultDirection,
		Font:      Font{Size: DefaultFontSize, Weight: DefaultFontWeight, Family: DefaultFontFamily},
		Width:     DefaultWidth,
		Height:    DefaultHeight,
	}
}

// ValidateAndSetDefaults fills zero fields and rejects impossible sizes.
func (o *Options) ValidateAndSetDefaults() error {
	if o.Direction == "" {
		o.Direction = DefaultDirection
	}
	if o.Font.Size == 0 {
		o.Font.Size = DefaultFontSize
	}
	if o.Font.Weight == "" {
		o.Font.Weight = DefaultFontWeight
	}
	if o.Font.Family == "" {
		o.Font.Family = DefaultFontFamily
	}
	if o.Width == 0 {
		o.Width = DefaultWidth
	}
	if o.Height == 0 {
		o.Height = DefaultHeight
	}

	if o.Direction != Column && o.Direction != Row {
		return errors.New(errors.ErrCodeInvalidInput, "direction must be %q or %q, got %q", Column, Row, o.Direction)
	}
	if o.Font.Size < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "font size must be positive, got %g", o.Font.Size)
	}
	if o.Height <= 2*itemPadding {
		return errors.New(errors.ErrCodeInvalidInput, "item height must exceed %d, got %g", 2*itemPadding, o.Height)
	}
	if o.Width < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "item width must be positive, got %g", o.Width)
	}
	return nil
}

// Pair is one legend entry. An empty Color renders the swatch unfilled.
type Pair struct {
	Text  string `json:"text" toml:"text"`
	Color string `json:"color,omitempty" toml:"color"`
}

// Pairs zips texts with colors. A repeated text keeps its first position
// and takes the colour of its last occurrence. Texts without a colour get
// an empty colour; colours without a text are ignored.
func Pairs(texts, colors []string) []Pair {
	out := make([]Pair, 0, len(texts))
	index := make(map[string]int, len(texts))
	for i, text := range texts {
		var color string
		if i < len(colors) {
			color = colors[i]
		}
		if at, ok := index[text]; ok {
			out[at].Color = color
			continue
		}
		index[text] = len(out)
		out = append(out, Pair{Text: text, Color: color})
	}
	return out
}

// Item is a positioned legend entry.
type Item struct {
	Pair

	// X and Y are the item's top-left corner.
	X, Y float64

	// Swatch rectangle, absolute.
	SwatchX, SwatchY, SwatchW, SwatchH float64

	// TextX is the label's left edge; TextY its vertical centre.
	TextX, TextY float64
}

// Layout is a fully positioned legend.
type Layout struct {
	Width, Height float64
	Font          Font
	Direction     Direction
	Items         []Item
}

// Build validates pairs and positions every item.
func Build(pairs []Pair, opts Options) (Layout, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return Layout{}, err
	}
	for _, p := range pairs {
		if err := errors.ValidateLabel(p.Text); err != nil {
			return Layout{}, err
		}
		if p.Color != "" {
			if _, err := palette.Parse(p.Color); err != nil {
				return Layout{}, err
			}
		}
	}

	l := Layout{Font: opts.Font, Direction: opts.Direction}
	switch opts.Direction {
	case Row:
		l.Width, l.Height = opts.Width*float64(len(pairs)), opts.Height
	default:
		l.Width, l.Height = opts.Width, opts.Height*float64(len(pairs))
	}

	swatchH := opts.Height - 2*itemPadding
	swatchW := swatchH * 5 / 3
	for i, p := range pairs {
		var x, y float64
		if opts.Direction == Row {
			x = opts.Width * float64(i)
		} else {
			y = opts.Height * float64(i)
		}
		l.Items = append(l.Items, Item{
			Pair: p,
			X:    x, Y: y,
			SwatchX: x + itemPadding, SwatchY: y + itemPadding,
			SwatchW: swatchW, SwatchH: swatchH,
			TextX: x + itemPadding + swatchW + textGap,
			TextY: y + opts.Height/2,
		})
	}
	return l, nil
}
