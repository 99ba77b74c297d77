package heatmap

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/matzehuels/tagkit/pkg/errors"
)

// Stats summarizes a grid.
type Stats struct {
	Rows int     `json:"rows"`
	Cols int     `json:"cols"`
	Min  float64 `json:"min"`
	Max  float64 `json:"max"`
}

// ComputeStats validates data and returns its dimensions and value range.
// The grid must be non-empty, rectangular and finite.
func ComputeStats(data [][]float64) (Stats, error) {
	if len(data) == 0 || len(data[0]) == 0 {
		return Stats{}, errors.New(errors.ErrCodeInvalidInput, "heatmap data is empty")
	}
	s := Stats{
		Rows: len(data),
		Cols: len(data[0]),
		Min:  math.Inf(1),
		Max:  math.Inf(-1),
	}
	for i, row := range data {
		if len(row) != s.Cols {
			return Stats{}, errors.New(errors.ErrCodeInvalidInput, "row %d has %d values, want %d", i, len(row), s.Cols)
		}
		for j, v := range row {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return Stats{}, errors.New(errors.ErrCodeInvalidInput, "value at [%d][%d] is not finite", i, j)
			}
			s.Min = min(s.Min, v)
			s.Max = max(s.Max, v)
		}
	}
	return s, nil
}

// ColorIndex maps v onto one of splits buckets spanning [lo, hi]. The
// result is clamped to [0, splits-1]; a degenerate range maps to 0.
func ColorIndex(v, lo, hi float64, splits int) int {
	if splits <= 1 || hi <= lo {
		return 0
	}
	idx := int(math.Floor((v - lo) * float64(splits-1) / (hi - lo)))
	return min(max(idx, 0), splits-1)
}

// ColumnSums returns the sum of every column.
func ColumnSums(data [][]float64) []float64 {
	if len(data) == 0 {
		return nil
	}
	sums := make([]float64, len(data[0]))
	for _, row := range data {
		for j, v := range row {
			if j < len(sums) {
				sums[j] += v
			}
		}
	}
	return sums
}

// RowSums returns the sum of every row.
func RowSums(data [][]float64) []float64 {
	sums := make([]float64, len(data))
	for i, row := range data {
		for _, v := range row {
			sums[i] += v
		}
	}
	return sums
}

func bounds(vs []float64) (lo, hi float64) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, v := range vs {
		lo, hi = min(lo, v), max(hi, v)
	}
	return lo, hi
}

// FormatExp writes v with a one-digit mantissa and an unpadded signed
// exponent: 123 becomes "1e+2", 0.0042 becomes "4e-3".
func FormatExp(v float64) string {
	s := strconv.FormatFloat(v, 'e', 0, 64)
	mant, exp, ok := strings.Cut(s, "e")
	if !ok {
		return s
	}
	sign := exp[:1]
	digits := strings.TrimLeft(exp[1:], "0")
	if digits == "" {
		digits = "0"
	}
	return fmt.Sprintf("%se%s%s", mant, sign, digits)
}
