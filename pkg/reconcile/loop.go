// Package reconcile drives the two-pass render of an overflowing chip row.
//
// Chip widths are only known after the chips have been rendered, so every
// change to the row goes through three states:
//
//	Unmeasured  the input changed; render every chip as shown
//	Measuring   the post-layout pass reads widths and computes the cut
//	Stable      the cut is applied; nothing is scheduled
//
// A measurement pass is scheduled only by [Loop.Sync] observing a new
// [Input]. The computed cut is never part of the input, so applying it
// cannot schedule another pass: each input change costs exactly one
// measurement and at most one corrective re-render.
package reconcile

import (
	"github.com/matzehuels/tagkit/pkg/overflow"
)

// State is the phase of the loop.
type State int

const (
	Unmeasured State = iota
	Measuring
	Stable
)

func (s State) String() string {
	switch s {
	case Unmeasured:
		return "unmeasured"
	case Measuring:
		return "measuring"
	case Stable:
		return "stable"
	}
	return "unknown"
}

// Input is everything the cut depends on besides the widths themselves.
// Version is the identity of the tag sequence (see tags.Store.Version).
type Input struct {
	Version    uint64
	Constraint overflow.Constraint
	Params     overflow.Params
}

// Loop is the reconciliation state machine. The zero value is Unmeasured
// with no input seen.
type Loop struct {
	state  State
	input  Input
	seen   bool
	cut    int
	passes int
}

// Sync records the input of the current render. It reports whether the
// input differs from the last one, in which case the loop is Unmeasured and
// the caller must schedule a measurement pass for in.
func (l *Loop) Sync(in Input) bool {
	if l.seen && in == l.input {
		return false
	}
	l.input = in
	l.seen = true
	l.state = Unmeasured
	return true
}

// Measure runs the measurement pass for in with the widths read after
// layout. A pass for an input that has since been replaced is stale and is
// ignored. It returns the new cut and whether the row must be re-rendered
// to apply it.
func (l *Loop) Measure(in Input, sizes []int) (cut int, rerender bool) {
	if !l.seen || in != l.input || l.state == Stable {
		return l.cut, false
	}
	l.state = Measuring
	l.passes++
	l.cut = overflow.ComputeCut(sizes, in.Constraint, in.Params)
	l.state = Stable
	// The Unmeasured render showed every chip; only a real cut changes it.
	return l.cut, l.cut < len(sizes)
}

// State returns the current phase.
func (l *Loop) State() State { return l.state }

// ShowAll reports whether every chip must be rendered as shown, which is
// the case until the current input has been measured.
func (l *Loop) ShowAll() bool { return l.state != Stable }

// Cut returns the cut to apply to a row of n chips. Before the current input
// is measured nothing is cut.
func (l *Loop) Cut(n int) int {
	if l.state != Stable {
		return n
	}
	return min(max(l.cut, 0), n)
}

// Pending returns the input awaiting measurement and whether there is one.
func (l *Loop) Pending() (Input, bool) {
	return l.input, l.seen && l.state != Stable
}

// Passes returns how many measurement passes have run.
func (l *Loop) Passes() int { return l.passes }
