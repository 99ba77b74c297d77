package overflow

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestComputeCut(t *testing.T) {
	tests := []struct {
		name  string
		sizes []int
		c     Constraint
		p     Params
		want  int
	}{
		{
			name:  "no constraint shows everything",
			sizes: []int{10, 20, 30},
			c:     None(),
			want:  3,
		},
		{
			name:  "no constraint on empty row",
			sizes: nil,
			c:     None(),
			want:  0,
		},
		{
			name:  "max count below length",
			sizes: []int{10, 20, 30},
			c:     MaxCount(2),
			want:  2,
		},
		{
			name:  "max count above length",
			sizes: []int{10, 20, 30},
			c:     MaxCount(10),
			want:  3,
		},
		{
			name:  "max count zero hides everything",
			sizes: []int{10, 20, 30},
			c:     MaxCount(0),
			want:  0,
		},
		{
			name:  "negative count behaves like zero",
			sizes: []int{10},
			c:     MaxCount(-1),
			want:  0,
		},
		{
			name:  "width with reserved trailing space",
			sizes: []int{40, 60, 50, 70},
			c:     MaxWidth(200),
			p:     Params{SeparatorMargin: 10, ReservedTrailing: 40},
			// running 50, 120, 180: 180+40 exceeds 200
			want: 2,
		},
		{
			name:  "width without reserved trailing space",
			sizes: []int{40, 60, 50, 70},
			c:     MaxWidth(200),
			p:     Params{SeparatorMargin: 10},
			// running 50, 120, 180, 260: only 260 exceeds 200
			want: 3,
		},
		{
			name:  "exact fit is kept",
			sizes: []int{40, 60},
			c:     MaxWidth(120),
			p:     Params{SeparatorMargin: 10, ReservedTrailing: 0},
			want:  2,
		},
		{
			name:  "exact fit with reserve is kept",
			sizes: []int{40, 60},
			c:     MaxWidth(140),
			p:     Params{SeparatorMargin: 10, ReservedTrailing: 20},
			want:  2,
		},
		{
			name:  "first chip too wide",
			sizes: []int{500, 10},
			c:     MaxWidth(100),
			want:  0,
		},
		{
			name:  "reserve alone exceeds budget",
			sizes: []int{1, 1},
			c:     MaxWidth(10),
			p:     Params{ReservedTrailing: 50},
			want:  0,
		},
		{
			name:  "count takes priority over a roomy width",
			sizes: []int{10, 10, 10, 10, 10},
			c:     Both(2, 1000),
			p:     Params{SeparatorMargin: 1},
			want:  2,
		},
		{
			name:  "width cuts inside the counted prefix",
			sizes: []int{50, 50, 50, 50},
			c:     Both(3, 100),
			want:  2,
		},
		{
			name:  "zero count with both constraints",
			sizes: []int{1, 2, 3},
			c:     Both(0, 1),
			want:  0,
		},
		{
			name:  "unmeasured zero widths fit",
			sizes: []int{0, 0, 0},
			c:     MaxWidth(5),
			p:     Params{SeparatorMargin: 1},
			want:  3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ComputeCut(tt.sizes, tt.c, tt.p); got != tt.want {
				t.Errorf("ComputeCut(%v, %v, %+v) = %d, want %d", tt.sizes, tt.c, tt.p, got, tt.want)
			}
		})
	}
}

func TestComputeCutIsDeterministic(t *testing.T) {
	sizes := []int{12, 7, 30, 4, 18, 9}
	c := Both(5, 60)
	p := Params{SeparatorMargin: 1, ReservedTrailing: 8}

	first := ComputeCut(sizes, c, p)
	for i := 0; i < 10; i++ {
		if got := ComputeCut(sizes, c, p); got != first {
			t.Fatalf("call %d returned %d, first call returned %d", i, got, first)
		}
	}
	if !cmp.Equal(sizes, []int{12, 7, 30, 4, 18, 9}) {
		t.Error("ComputeCut modified its input")
	}
}

func TestComputeCutMonotonicAppend(t *testing.T) {
	c := MaxWidth(100)
	p := Params{SeparatorMargin: 2, ReservedTrailing: 10}

	var sizes []int
	for _, w := range []int{10, 25, 8, 30, 14, 40, 3} {
		before := ComputeCut(sizes, c, p)
		sizes = append(sizes, w)
		after := ComputeCut(sizes, c, p)

		if before < len(sizes)-1 {
			// already overflowing: appending never changes the cut
			if after != before {
				t.Errorf("append %d: cut moved from %d to %d on an overflowing row", w, before, after)
			}
			continue
		}
		// fitting row: either still no cut, or the new chip is the first to overflow
		if after != len(sizes) && after != len(sizes)-1 {
			t.Errorf("append %d: cut = %d, want %d or %d", w, after, len(sizes), len(sizes)-1)
		}
		if after < before {
			t.Errorf("append %d: previously shown chip overflowed (cut %d -> %d)", w, before, after)
		}
	}
}

func TestConstraintAccessors(t *testing.T) {
	c := None()
	if !c.IsNone() {
		t.Error("None() should report IsNone")
	}
	c = c.WithMaxCount(3).WithMaxWidth(80)
	if n, ok := c.MaxCountValue(); !ok || n != 3 {
		t.Errorf("MaxCountValue() = %d, %v", n, ok)
	}
	if w, ok := c.MaxWidthValue(); !ok || w != 80 {
		t.Errorf("MaxWidthValue() = %d, %v", w, ok)
	}
	if c != Both(3, 80) {
		t.Error("builder and Both should produce equal constraints")
	}
	if got := c.String(); got != "max-count=3,max-width=80" {
		t.Errorf("String() = %q", got)
	}
}

func TestPartition(t *testing.T) {
	items := []string{"a", "b", "c", "d"}
	tests := []struct {
		cut       int
		shown     []string
		overflown []string
	}{
		{cut: 0, shown: []string{}, overflown: []string{"a", "b", "c", "d"}},
		{cut: 2, shown: []string{"a", "b"}, overflown: []string{"c", "d"}},
		{cut: 4, shown: []string{"a", "b", "c", "d"}, overflown: []string{}},
		{cut: 9, shown: []string{"a", "b", "c", "d"}, overflown: []string{}},
		{cut: -1, shown: []string{}, overflown: []string{"a", "b", "c", "d"}},
	}
	for _, tt := range tests {
		shown, over := Partition(items, tt.cut)
		if !cmp.Equal(shown, tt.shown) || !cmp.Equal(over, tt.overflown) {
			t.Errorf("Partition(cut=%d) = %v, %v; want %v, %v", tt.cut, shown, over, tt.shown, tt.overflown)
		}
	}
}

func TestPartitionShownDoesNotAliasOverflow(t *testing.T) {
	items := []int{1, 2, 3}
	shown, _ := Partition(items, 1)
	shown = append(shown, 99)
	if items[1] != 2 {
		t.Error("appending to the shown slice overwrote the overflowed items")
	}
}
