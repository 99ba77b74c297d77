package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"github.com/matzehuels/tagkit/pkg/errors"
	"github.com/matzehuels/tagkit/pkg/heatmap"
	"github.com/matzehuels/tagkit/pkg/legend"
	"github.com/matzehuels/tagkit/pkg/palette"
	"github.com/matzehuels/tagkit/pkg/pipeline"
	"github.com/matzehuels/tagkit/pkg/render"
)

// drawFlags are the output flags shared by heatmap and legend.
type drawFlags struct {
	output  string
	formats string
	scale   float64
	noCache bool
	refresh bool
}

func (f *drawFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&f.formats, "format", "f", "", "output format(s): svg (default), png, pdf, term (comma-separated)")
	cmd.Flags().Float64Var(&f.scale, "scale", pipeline.DefaultScale, "png scale factor")
	cmd.Flags().BoolVar(&f.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&f.refresh, "refresh", false, "re-render even if cached")
}

// heatmapFile is the heatmap input file: the grid plus optional options.
type heatmapFile struct {
	heatmap.Heatmap
	Options heatmap.Options `json:"options" toml:"options"`
}

// legendFile is the legend input file. Legend options sit at the top level.
type legendFile struct {
	Texts  []string `json:"texts" toml:"texts"`
	Colors []string `json:"colors" toml:"colors"`
	legend.Options
}

// heatmapCommand creates the heatmap command.
func (c *CLI) heatmapCommand() *cobra.Command {
	var (
		flags    drawFlags
		colormap string
		invert   bool
		topBar   bool
		rightBar bool
		colorBar bool
	)

	cmd := &cobra.Command{
		Use:   "heatmap FILE",
		Short: "Render a heatmap from a JSON or TOML grid",
		Long: `Render a heatmap from a JSON or TOML grid.

The input holds the grid under "data", optional column labels under "xs",
optional row labels (bottom-up) under "ys" and heatmap options under
"options". Options missing from the file come from the [heatmap] section of
the config file; flags override both.

Results are cached, so re-rendering an unchanged grid is instant.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in := heatmapFile{Options: c.Config.Heatmap}
			if err := readInput(args[0], &in); err != nil {
				return err
			}

			f := cmd.Flags()
			if f.Changed("colormap") {
				in.Options.Colormap = colormap
			}
			if f.Changed("invert") {
				in.Options.Invert = invert
			}
			if f.Changed("top-bar") {
				in.Options.TopBar = topBar
			}
			if f.Changed("right-bar") {
				in.Options.RightBar = rightBar
			}
			if f.Changed("color-bar") {
				in.Options.ColorBar = colorBar
			}

			return c.runDraw(cmd, args[0], flags, pipeline.Options{
				Kind:           pipeline.KindHeatmap,
				Heatmap:        in.Heatmap,
				HeatmapOptions: in.Options,
			})
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVar(&colormap, "colormap", "", "colormap: summer (default), viridis, hot, jet, greys")
	_ = cmd.RegisterFlagCompletionFunc("colormap", cobra.FixedCompletions(palette.Names(), cobra.ShellCompDirectiveNoFileComp))
	cmd.Flags().BoolVar(&invert, "invert", false, "map low values to the first colormap stop")
	cmd.Flags().BoolVar(&topBar, "top-bar", false, "draw column sums above the grid")
	cmd.Flags().BoolVar(&rightBar, "right-bar", false, "draw row sums right of the grid")
	cmd.Flags().BoolVar(&colorBar, "color-bar", false, "draw the value gradient")

	return cmd
}

// legendCommand creates the legend command.
func (c *CLI) legendCommand() *cobra.Command {
	var (
		flags     drawFlags
		direction string
	)

	cmd := &cobra.Command{
		Use:   "legend FILE",
		Short: "Render a colour legend from texts and colours",
		Long: `Render a colour legend from texts and colours.

The input lists "texts" and "colors" pairwise. A repeated text keeps its
first position and takes its last colour; texts without a colour are drawn
with an empty swatch. Layout options (direction, font, width, height) may sit
next to them and default to the [legend] section of the config file.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in := legendFile{Options: c.Config.Legend}
			if err := readInput(args[0], &in); err != nil {
				return err
			}
			if cmd.Flags().Changed("direction") {
				in.Direction = legend.Direction(direction)
			}
			return c.runDraw(cmd, args[0], flags, pipeline.Options{
				Kind:          pipeline.KindLegend,
				Texts:         in.Texts,
				Colors:        in.Colors,
				LegendOptions: in.Options,
			})
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVar(&direction, "direction", "", "stack items in a column (default) or a row")
	_ = cmd.RegisterFlagCompletionFunc("direction", cobra.FixedCompletions(
		[]string{string(legend.Column), string(legend.Row)}, cobra.ShellCompDirectiveNoFileComp))

	return cmd
}

// runDraw renders opts and writes one output per format. Status lines go
// to stderr so the terminal format can be piped from stdout.
func (c *CLI) runDraw(cmd *cobra.Command, input string, flags drawFlags, opts pipeline.Options) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)
	opts.Formats = parseFormats(flags.formats)
	if err := pipeline.ValidateFormats(opts.Formats); err != nil {
		return err
	}
	opts.Scale = flags.scale
	opts.Refresh = flags.refresh
	opts.Logger = logger

	runner, err := c.newRunner(ctx, flags.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	t := startTimer(logger, "draw", "input", input, "kind", opts.Kind)
	spin := startSpinner(ctx, cmd.ErrOrStderr(), fmt.Sprintf("Rendering %s...", opts.Kind))

	result, err := runner.Execute(ctx, opts)
	if err != nil {
		spin.fail("Rendering %s failed", input)
		return fmt.Errorf("%s: %w", opts.Kind, err)
	}
	spin.succeed("Rendered %s as %s", input, strings.Join(opts.Formats, ", "))
	t.done("cached", result.CacheInfo.RenderHit)

	out := newPrinter(cmd.ErrOrStderr())
	paths := outputPaths(input, flags.output, opts.Formats)
	for _, format := range opts.Formats {
		if err := writeArtifact(cmd.OutOrStdout(), paths[format], result.Artifacts[format]); err != nil {
			return err
		}
		if paths[format] != "" {
			out.file(paths[format])
		}
	}
	out.stats(result.Kind, result.Stats.Items, result.Stats.Width, result.Stats.Height, result.CacheInfo.RenderHit)
	return nil
}

// readInput decodes a JSON or TOML file into v, chosen by extension.
func readInput(path string, v any) error {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return errors.New(errors.ErrCodeFileNotFound, "input file %s not found", path)
	}
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		md, err := toml.Decode(string(data), v)
		if err != nil {
			return errors.Wrap(errors.ErrCodeInvalidInput, err, "parse %s", path)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return errors.New(errors.ErrCodeInvalidInput, "%s: unknown key %s", path, undecoded[0])
		}
	default:
		dec := json.NewDecoder(strings.NewReader(string(data)))
		dec.DisallowUnknownFields()
		if err := dec.Decode(v); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidInput, err, "parse %s", path)
		}
	}
	return nil
}

// outputPaths maps each format to its output file. An empty path means
// stdout: the terminal format goes there unless an output is named.
func outputPaths(input, output string, formats []string) map[string]string {
	paths := make(map[string]string, len(formats))
	if len(formats) == 1 && output != "" {
		paths[formats[0]] = output
		return paths
	}
	base := basePath(output, input)
	for _, f := range formats {
		if f == string(render.FormatTerm) && output == "" {
			paths[f] = ""
			continue
		}
		paths[f] = base + "." + render.Format(f).Ext()
	}
	return paths
}

// basePath derives the base output path from the output and input file paths.
// If output is empty, it strips the extension from input.
// If output has a format extension (.svg, .pdf, etc.), it strips that extension.
func basePath(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if _, err := render.ParseFormat(strings.TrimPrefix(ext, ".")); err == nil || ext == ".txt" {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

// writeArtifact writes data to path, or to stdout when path is empty.
func writeArtifact(stdout io.Writer, path string, data []byte) error {
	out, err := openOutput(stdout, path)
	if err != nil {
		return err
	}
	defer out.Close()
	if _, err := out.Write(data); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// openOutput returns a writer for path, or stdout if path is empty.
func openOutput(stdout io.Writer, path string) (io.WriteCloser, error) {
	if path == "" {
		return nopCloser{stdout}, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}
	return os.Create(path)
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }
