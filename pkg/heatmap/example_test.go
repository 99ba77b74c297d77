package heatmap_test

import (
	"fmt"

	"github.com/matzehuels/tagkit/pkg/heatmap"
)

func ExampleBuild() {
	l, err := heatmap.Build(heatmap.Heatmap{
		Data: [][]float64{{1, 2}, {3, 400}},
	}, heatmap.DefaultOptions())
	if err != nil {
		panic(err)
	}
	fmt.Println(l.Width, l.Height)
	fmt.Println(l.Stats.Min, l.Stats.Max)
	fmt.Println(heatmap.FormatExp(l.Stats.Max))
	// Output:
	// 80 80
	// 1 400
	// 4e+2
}
