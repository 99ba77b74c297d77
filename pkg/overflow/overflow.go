// Package overflow computes how many chips of a row fit a constraint.
//
// The engine is a pure function of the measured chip widths and a
// [Constraint]. It returns a single cut index: chips before the index are
// shown, chips at or after it collapse into the "+N" indicator. Because the
// result depends only on its arguments, the reconciliation loop can treat
// identical inputs as a fixed point and never measure twice for them.
//
// Widths are plain integers in whatever unit the caller measured in
// (terminal cells for the tag-input widget, pixels elsewhere).
package overflow

import "fmt"

// Constraint bounds the shown prefix of a row. The zero value is
// unconstrained. Constraint is comparable.
type Constraint struct {
	count    int
	width    int
	hasCount bool
	hasWidth bool
}

// None returns an unconstrained Constraint.
func None() Constraint { return Constraint{} }

// MaxCount shows at most n chips.
func MaxCount(n int) Constraint { return Constraint{count: n, hasCount: true} }

// MaxWidth shows chips while their running width plus the reserved trailing
// space stays within w.
func MaxWidth(w int) Constraint { return Constraint{width: w, hasWidth: true} }

// Both applies MaxCount(n) first and MaxWidth(w) to the surviving prefix.
func Both(n, w int) Constraint {
	return Constraint{count: n, width: w, hasCount: true, hasWidth: true}
}

// WithMaxCount returns c with a count limit added or replaced.
func (c Constraint) WithMaxCount(n int) Constraint {
	c.count, c.hasCount = n, true
	return c
}

// WithMaxWidth returns c with a width budget added or replaced.
func (c Constraint) WithMaxWidth(w int) Constraint {
	c.width, c.hasWidth = w, true
	return c
}

// MaxCountValue returns the count limit and whether one is set.
func (c Constraint) MaxCountValue() (int, bool) { return c.count, c.hasCount }

// MaxWidthValue returns the width budget and whether one is set.
func (c Constraint) MaxWidthValue() (int, bool) { return c.width, c.hasWidth }

// IsNone reports whether no limit is set.
func (c Constraint) IsNone() bool { return !c.hasCount && !c.hasWidth }

func (c Constraint) String() string {
	switch {
	case c.hasCount && c.hasWidth:
		return fmt.Sprintf("max-count=%d,max-width=%d", c.count, c.width)
	case c.hasCount:
		return fmt.Sprintf("max-count=%d", c.count)
	case c.hasWidth:
		return fmt.Sprintf("max-width=%d", c.width)
	}
	return "none"
}

// Params are the fixed spacing terms of a width evaluation.
type Params struct {
	// SeparatorMargin is added after every chip.
	SeparatorMargin int

	// ReservedTrailing is space that must stay free after the shown chips
	// (the input box plus the "+N" indicator's minimum width).
	ReservedTrailing int
}

// ComputeCut returns the index of the first overflowed chip, or len(sizes)
// when everything fits.
//
// A count limit is applied first. A width budget is then evaluated over the
// surviving prefix: the cut is the first i whose running width (sizes[0..i]
// each plus SeparatorMargin) plus ReservedTrailing exceeds the budget.
// Landing exactly on the budget still fits.
func ComputeCut(sizes []int, c Constraint, p Params) int {
	n := len(sizes)
	if c.hasCount {
		n = min(max(c.count, 0), n)
	}
	if !c.hasWidth {
		return n
	}
	running := 0
	for i := 0; i < n; i++ {
		running += sizes[i] + p.SeparatorMargin
		if running+p.ReservedTrailing > c.width {
			return i
		}
	}
	return n
}

// Partition splits items at cut into the shown prefix and the overflowed
// suffix. cut is clamped to [0, len(items)].
func Partition[T any](items []T, cut int) (shown, overflowed []T) {
	cut = min(max(cut, 0), len(items))
	return items[:cut:cut], items[cut:]
}
