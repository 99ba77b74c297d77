// Package palette provides colour scales for the heatmap and legend renderers.
//
// A [Colormap] is a list of colour stops on [0, 1]. [Colormap.Shades]
// samples it into a fixed number of evenly spaced colours, interpolating
// linearly in RGB between neighbouring stops.
package palette

import (
	"fmt"
	"sort"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/matzehuels/tagkit/pkg/errors"
)

// Stop is a colour at a position on [0, 1].
type Stop struct {
	Pos   float64
	Color colorful.Color
}

// Colormap is an ordered list of stops. The first stop must be at 0 and the
// last at 1.
type Colormap []Stop

func rgb(r, g, b uint8) colorful.Color {
	return colorful.Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255}
}

var named = map[string]Colormap{
	"summer": {{0, rgb(0, 128, 102)}, {1, rgb(255, 255, 102)}},
	"greys":  {{0, rgb(0, 0, 0)}, {1, rgb(255, 255, 255)}},
	"hot":    {{0, rgb(0, 0, 0)}, {0.3, rgb(230, 0, 0)}, {0.6, rgb(255, 210, 0)}, {1, rgb(255, 255, 255)}},
	"jet": {
		{0, rgb(0, 0, 131)}, {0.125, rgb(0, 60, 170)}, {0.375, rgb(5, 255, 255)},
		{0.625, rgb(255, 255, 0)}, {0.875, rgb(250, 0, 0)}, {1, rgb(128, 0, 0)},
	},
	"viridis": {
		{0, rgb(68, 1, 84)}, {0.13, rgb(71, 44, 122)}, {0.25, rgb(59, 81, 139)},
		{0.38, rgb(44, 113, 142)}, {0.5, rgb(33, 144, 141)}, {0.63, rgb(39, 173, 129)},
		{0.75, rgb(92, 200, 99)}, {0.88, rgb(170, 220, 50)}, {1, rgb(253, 231, 37)},
	},
}

// Names returns the names of the built-in colormaps, sorted.
func Names() []string {
	out := make([]string, 0, len(named))
	for k := range named {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Named looks up a built-in colormap.
func Named(name string) (Colormap, error) {
	cm, ok := named[strings.ToLower(name)]
	if !ok {
		return nil, errors.New(errors.ErrCodeInvalidColormap, "unknown colormap %q (available: %s)", name, strings.Join(Names(), ", "))
	}
	return cm, nil
}

// At returns the colour at position t, clamped to [0, 1].
func (c Colormap) At(t float64) colorful.Color {
	if len(c) == 0 {
		return colorful.Color{}
	}
	t = min(max(t, 0), 1)
	for i := 1; i < len(c); i++ {
		lo, hi := c[i-1], c[i]
		if t <= hi.Pos {
			span := hi.Pos - lo.Pos
			if span <= 0 {
				return hi.Color
			}
			return lo.Color.BlendRgb(hi.Color, (t-lo.Pos)/span).Clamped()
		}
	}
	return c[len(c)-1].Color
}

// Shades samples n evenly spaced colours from the map, first stop first.
func (c Colormap) Shades(n int) []colorful.Color {
	if n <= 0 {
		return nil
	}
	out := make([]colorful.Color, n)
	if n == 1 {
		out[0] = c.At(0)
		return out
	}
	for i := range out {
		out[i] = c.At(float64(i) / float64(n-1))
	}
	return out
}

// Reverse returns colors in reverse order.
func Reverse(colors []colorful.Color) []colorful.Color {
	out := make([]colorful.Color, len(colors))
	for i, c := range colors {
		out[len(colors)-1-i] = c
	}
	return out
}

// Hex formats colors as "#rrggbb" strings.
func Hex(colors []colorful.Color) []string {
	out := make([]string, len(colors))
	for i, c := range colors {
		out[i] = c.Hex()
	}
	return out
}

var cssNames = map[string]string{
	"black": "#000000", "white": "#ffffff", "red": "#ff0000", "green": "#008000",
	"blue": "#0000ff", "yellow": "#ffff00", "orange": "#ffa500", "purple": "#800080",
	"gray": "#808080", "grey": "#808080", "silver": "#c0c0c0", "maroon": "#800000",
	"olive": "#808000", "lime": "#00ff00", "aqua": "#00ffff", "teal": "#008080",
	"navy": "#000080", "fuchsia": "#ff00ff", "pink": "#ffc0cb", "brown": "#a52a2a",
}

// Parse reads a colour written as "#rgb", "#rrggbb" or a basic CSS name.
func Parse(s string) (colorful.Color, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	if hex, ok := cssNames[v]; ok {
		v = hex
	}
	if len(v) == 4 && v[0] == '#' {
		v = fmt.Sprintf("#%c%c%c%c%c%c", v[1], v[1], v[2], v[2], v[3], v[3])
	}
	c, err := colorful.Hex(v)
	if err != nil {
		return colorful.Color{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid colour %q", s)
	}
	return c, nil
}
