// Package pkg provides the core libraries of tagkit.
//
// # Overview
//
// tagkit has two halves that share one ambient stack:
//
//  1. The tag input: [tags] holds the ordered tag set, [measure] reads the
//     rendered chip widths after layout, [overflow] computes how many chips
//     fit, [reconcile] schedules one measurement pass per input change and
//     [inputtag] wires them into a bubbletea component.
//  2. The renderers: [heatmap] and [legend] turn data into positioned
//     layouts written as SVG or terminal text, [render] converts SVG to
//     PNG and PDF, and [pipeline] runs build and render behind a [cache].
//     [server] exposes the pipeline over HTTP.
//
// Supporting packages: [palette] (colour scales), [errors] (coded errors),
// [config] (TOML configuration), [observability] (hooks) and [buildinfo].
//
// # Quick Start
//
// Embed the tag input in a bubbletea program:
//
//	input := inputtag.New(inputtag.WithWidth(60), inputtag.WithAutoCollapse())
//	input.Focus()
//
// Render a heatmap:
//
//	runner := pipeline.NewRunner(nil, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Kind:    pipeline.KindHeatmap,
//	    Heatmap: heatmap.Heatmap{Data: [][]float64{{1, 2}, {3, 4}}},
//	    Formats: []string{"svg"},
//	})
//
// [tags]: github.com/matzehuels/tagkit/pkg/tags
// [measure]: github.com/matzehuels/tagkit/pkg/measure
// [overflow]: github.com/matzehuels/tagkit/pkg/overflow
// [reconcile]: github.com/matzehuels/tagkit/pkg/reconcile
// [inputtag]: github.com/matzehuels/tagkit/pkg/inputtag
// [heatmap]: github.com/matzehuels/tagkit/pkg/heatmap
// [legend]: github.com/matzehuels/tagkit/pkg/legend
// [render]: github.com/matzehuels/tagkit/pkg/render
// [pipeline]: github.com/matzehuels/tagkit/pkg/pipeline
// [cache]: github.com/matzehuels/tagkit/pkg/cache
// [server]: github.com/matzehuels/tagkit/pkg/server
// [palette]: github.com/matzehuels/tagkit/pkg/palette
// [errors]: github.com/matzehuels/tagkit/pkg/errors
// [config]: github.com/matzehuels/tagkit/pkg/config
// [observability]: github.com/matzehuels/tagkit/pkg/observability
// [buildinfo]: github.com/matzehuels/tagkit/pkg/buildinfo
package pkg
