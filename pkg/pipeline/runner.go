package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/tagkit/pkg/cache"
	"github.com/matzehuels/tagkit/pkg/observability"
)

// keyTypeArtifact labels artifact cache events.
const keyTypeArtifact = "artifact"

// Runner encapsulates pipeline execution with caching.
// Both CLI and server use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger

	// TTL bounds cached artifacts. Zero uses cache.TTLArtifact.
	TTL time.Duration
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs build → render with caching. Formats found in the cache are
// not rendered again; if every format is cached the build stage is skipped.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	hash, err := opts.RequestHash()
	if err != nil {
		return nil, err
	}
	result := &Result{
		Kind:        opts.Kind,
		RequestHash: hash,
		Artifacts:   make(map[string][]byte, len(opts.Formats)),
	}

	missing := r.lookup(ctx, opts, hash, result)
	if len(missing) == 0 {
		result.CacheInfo.RenderHit = true
		opts.Logger.Debug("served from cache", "kind", opts.Kind, "formats", opts.Formats)
		return result, nil
	}

	// Stage 1: Build
	buildStart := time.Now()
	observability.Pipeline().OnBuildStart(ctx, opts.Kind)
	d, err := Build(opts)
	result.Stats.BuildTime = time.Since(buildStart)
	if err != nil {
		observability.Pipeline().OnBuildComplete(ctx, opts.Kind, 0, result.Stats.BuildTime, err)
		return nil, fmt.Errorf("build: %w", err)
	}
	result.Stats.Items = d.Items()
	result.Stats.Width, result.Stats.Height = d.Size()
	observability.Pipeline().OnBuildComplete(ctx, opts.Kind, result.Stats.Items, result.Stats.BuildTime, nil)

	opts.Logger.Debug("built drawing",
		"kind", opts.Kind,
		"items", result.Stats.Items,
		"width", result.Stats.Width,
		"height", result.Stats.Height,
		"duration", result.Stats.BuildTime)

	// Stage 2: Render
	renderStart := time.Now()
	var svg []byte
	for _, format := range missing {
		start := time.Now()
		observability.Pipeline().OnRenderStart(ctx, opts.Kind, format)
		data, err := renderFormat(ctx, d, format, opts.Scale, &svg)
		observability.Pipeline().OnRenderComplete(ctx, opts.Kind, format, len(data), time.Since(start), err)
		if err != nil {
			return nil, fmt.Errorf("render: %w", err)
		}
		result.Artifacts[format] = data

		key := r.Keyer.ArtifactKey(hash, opts.ArtifactKeyOpts(format))
		if err := r.Cache.Set(ctx, key, data, r.ttl()); err != nil {
			opts.Logger.Warn("cache write failed", "format", format, "error", err)
		} else {
			observability.Cache().OnCacheSet(ctx, keyTypeArtifact, len(data))
		}
	}
	result.Stats.RenderTime = time.Since(renderStart)

	opts.Logger.Info("rendered outputs",
		"kind", opts.Kind,
		"formats", missing,
		"cached", result.CacheInfo.Hits,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// lookup fills result with cached artifacts and returns the formats that
// still need rendering. Cache errors count as misses.
func (r *Runner) lookup(ctx context.Context, opts Options, hash string, result *Result) []string {
	if opts.Refresh {
		return opts.Formats
	}
	var missing []string
	for _, format := range opts.Formats {
		key := r.Keyer.ArtifactKey(hash, opts.ArtifactKeyOpts(format))
		data, hit, err := r.Cache.Get(ctx, key)
		if err != nil {
			opts.Logger.Warn("cache read failed", "format", format, "error", err)
		}
		if err != nil || !hit {
			observability.Cache().OnCacheMiss(ctx, keyTypeArtifact)
			missing = append(missing, format)
			continue
		}
		observability.Cache().OnCacheHit(ctx, keyTypeArtifact)
		result.Artifacts[format] = data
		result.CacheInfo.Hits = append(result.CacheInfo.Hits, format)
	}
	return missing
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

func (r *Runner) ttl() time.Duration {
	if r.TTL > 0 {
		return r.TTL
	}
	return cache.TTLArtifact
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
