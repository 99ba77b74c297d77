// Package pipeline provides the build → render pipeline shared by the CLI
// and the preview server.
//
// # Architecture
//
// The pipeline consists of two stages:
//
//  1. Build: validate the input and position every element (a heatmap or
//     legend [Drawing])
//  2. Render: write the drawing in each requested format (SVG, PNG, PDF or
//     terminal text)
//
// [Runner] wraps both stages with an artifact cache keyed by the hash of the
// request, so repeated renders of the same input are served from the cache.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    Kind:    pipeline.KindHeatmap,
//	    Heatmap: heatmap.Heatmap{Data: data},
//	    Formats: []string{"svg", "png"},
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"io"
	"slices"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/tagkit/pkg/cache"
	"github.com/matzehuels/tagkit/pkg/errors"
	"github.com/matzehuels/tagkit/pkg/heatmap"
	"github.com/matzehuels/tagkit/pkg/legend"
	"github.com/matzehuels/tagkit/pkg/render"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and server
// =============================================================================

// Drawing kinds.
const (
	KindHeatmap = "heatmap"
	KindLegend  = "legend"
)

// ValidKinds is the set of supported drawing kinds.
var ValidKinds = map[string]bool{
	KindHeatmap: true,
	KindLegend:  true,
}

// DefaultFormat is rendered when no format is requested.
const DefaultFormat = string(render.FormatSVG)

// DefaultScale is the PNG scale factor.
const DefaultScale = render.DefaultScale

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for one pipeline run.
// This struct supports JSON serialization for API requests.
type Options struct {
	Kind string `json:"kind"`

	// Heatmap input
	Heatmap        heatmap.Heatmap `json:"heatmap"`
	HeatmapOptions heatmap.Options `json:"heatmap_options"`

	// Legend input
	Texts         []string       `json:"texts,omitempty"`
	Colors        []string       `json:"colors,omitempty"`
	LegendOptions legend.Options `json:"legend_options"`

	// Render options
	Formats []string `json:"formats,omitempty"`
	Scale   float64  `json:"scale,omitempty"`
	Refresh bool     `json:"refresh,omitempty"` // Ignore cached artifacts

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Kind is the drawing kind.
	Kind string

	// RequestHash is the content hash of the input and its options.
	RequestHash string

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which formats came from the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Items      int // cells or legend entries
	Width      float64
	Height     float64
	BuildTime  time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits.
type CacheInfo struct {
	RenderHit bool     // Whether all artifacts came from cache
	Hits      []string // Formats served from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	f, err := render.ParseFormat(format)
	if err != nil {
		return err
	}
	if string(f) != format {
		return errors.New(errors.ErrCodeInvalidFormat, "format %q must be lowercase", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateKind checks that a drawing kind is valid.
func ValidateKind(kind string) error {
	if !ValidKinds[kind] {
		return errors.New(errors.ErrCodeInvalidInput, "invalid kind: %q (must be one of: heatmap, legend)", kind)
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks required fields and applies defaults.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := ValidateKind(o.Kind); err != nil {
		return err
	}
	o.SetRenderDefaults()
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if o.Scale < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "scale must be positive, got %g", o.Scale)
	}

	switch o.Kind {
	case KindHeatmap:
		if _, err := heatmap.ComputeStats(o.Heatmap.Data); err != nil {
			return err
		}
		if err := o.HeatmapOptions.ValidateAndSetDefaults(); err != nil {
			return err
		}
	case KindLegend:
		if len(o.Texts) == 0 {
			return errors.New(errors.ErrCodeInvalidInput, "legend needs at least one text")
		}
		if err := o.LegendOptions.ValidateAndSetDefaults(); err != nil {
			return err
		}
	}

	o.validated = true
	return nil
}

// SetRenderDefaults sets default values for rendering. Unset heatmap and
// legend options take every default, including padding.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{DefaultFormat}
	}
	o.Formats = dedupe(o.Formats)
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	if o.HeatmapOptions == (heatmap.Options{}) {
		o.HeatmapOptions = heatmap.DefaultOptions()
	}
	if o.LegendOptions == (legend.Options{}) {
		o.LegendOptions = legend.DefaultOptions()
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

func dedupe(formats []string) []string {
	out := make([]string, 0, len(formats))
	for _, f := range formats {
		if !slices.Contains(out, f) {
			out = append(out, f)
		}
	}
	return out
}

// requestKey is the hashed part of Options: everything that changes the
// drawing, nothing that only changes how it is written.
type requestKey struct {
	Kind           string
	Heatmap        *heatmap.Heatmap `json:",omitempty"`
	HeatmapOptions *heatmap.Options `json:",omitempty"`
	Texts          []string         `json:",omitempty"`
	Colors         []string         `json:",omitempty"`
	LegendOptions  *legend.Options  `json:",omitempty"`
}

// RequestHash returns the content hash of the drawing input.
func (o *Options) RequestHash() (string, error) {
	k := requestKey{Kind: o.Kind}
	switch o.Kind {
	case KindHeatmap:
		k.Heatmap, k.HeatmapOptions = &o.Heatmap, &o.HeatmapOptions
	case KindLegend:
		k.Texts, k.Colors, k.LegendOptions = o.Texts, o.Colors, &o.LegendOptions
	}
	h, err := cache.HashJSON(k)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInternal, err, "hash request")
	}
	return h, nil
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	opts := cache.ArtifactKeyOpts{Kind: o.Kind, Format: format}
	if format == string(render.FormatPNG) {
		opts.Scale = o.Scale
	}
	return opts
}
