package overflow_test

import (
	"fmt"

	"github.com/matzehuels/tagkit/pkg/overflow"
)

func ExampleComputeCut() {
	sizes := []int{40, 60, 50, 70}
	p := overflow.Params{SeparatorMargin: 10, ReservedTrailing: 40}

	fmt.Println(overflow.ComputeCut(sizes, overflow.None(), p))
	fmt.Println(overflow.ComputeCut(sizes, overflow.MaxCount(2), p))
	fmt.Println(overflow.ComputeCut(sizes, overflow.MaxWidth(200), p))
	// Output:
	// 4
	// 2
	// 2
}

func ExamplePartition() {
	shown, rest := overflow.Partition([]string{"go", "rust", "zig", "odin"}, 2)
	fmt.Println(shown, fmt.Sprintf("+%d", len(rest)))
	// Output: [go rust] +2
}
