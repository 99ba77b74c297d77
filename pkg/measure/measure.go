// Package measure collects post-render widths of tag chips.
//
// A [Bridge] is the boundary between the rendering surface and the overflow
// engine. Each render pass starts with [Bridge.Begin], registers every chip
// element in render order, and is read back with [Bridge.Measure] once the
// chips have been laid out. Handles never carry over between passes, so a
// measurement can only ever see the chips of the current render.
package measure

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/tagkit/pkg/tags"
)

// Element is a rendered chip that can report its laid-out width.
// ok is false when the element no longer exists; such elements are left out
// of the measurement. An element that exists but has not been laid out yet
// reports 0.
type Element interface {
	Width() (w int, ok bool)
}

// Func adapts a function to Element.
type Func func() (int, bool)

// Width calls f.
func (f Func) Width() (int, bool) { return f() }

// Text is a rendered terminal string. Its width is the widest line in
// cells, ignoring ANSI sequences.
type Text string

// Width returns the cell width of t.
func (t Text) Width() (int, bool) { return lipgloss.Width(string(t)), true }

// Measurement is the width of one chip.
type Measurement struct {
	TagID tags.ID
	Width int
}

type handle struct {
	id tags.ID
	el Element
}

// Bridge holds the element handles of the current render pass.
// The zero value is ready to use.
type Bridge struct {
	handles []handle
	pass    uint64
}

// Begin starts a new render pass and drops all handles of the previous one.
func (b *Bridge) Begin() {
	b.handles = b.handles[:0]
	b.pass++
}

// Register records the element rendered for id. Call it in render order.
func (b *Bridge) Register(id tags.ID, el Element) {
	if el == nil {
		return
	}
	b.handles = append(b.handles, handle{id: id, el: el})
}

// Measure reads the width of every element registered since the last Begin,
// in registration order. Elements that have disappeared are omitted;
// negative widths are reported as 0.
func (b *Bridge) Measure() []Measurement {
	out := make([]Measurement, 0, len(b.handles))
	for _, h := range b.handles {
		w, ok := h.el.Width()
		if !ok {
			continue
		}
		out = append(out, Measurement{TagID: h.id, Width: max(w, 0)})
	}
	return out
}

// Len returns the number of handles registered in the current pass.
func (b *Bridge) Len() int { return len(b.handles) }

// Pass returns the generation of the current pass. It starts at 0 and
// increments on every Begin.
func (b *Bridge) Pass() uint64 { return b.pass }

// Widths extracts the widths of ms in order.
func Widths(ms []Measurement) []int {
	out := make([]int, len(ms))
	for i, m := range ms {
		out[i] = m.Width
	}
	return out
}

// IDs extracts the tag ids of ms in order.
func IDs(ms []Measurement) []tags.ID {
	out := make([]tags.ID, len(ms))
	for i, m := range ms {
		out[i] = m.TagID
	}
	return out
}
