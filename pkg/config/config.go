// Package config loads the tagkit configuration file.
//
// The file is TOML, read from $XDG_CONFIG_HOME/tagkit/config.toml (or
// ~/.config/tagkit/config.toml). Every field is optional; [Default] lists
// the value each one takes when absent:
//
//	[tags]
//	width = 60
//	max_count = 5
//	collapse = true
//
//	[heatmap]
//	colormap = "viridis"
//	color_bar = true
//
//	[heatmap.cell]
//	width = 24
//
//	[cache]
//	backend = "redis"
//	ttl = "72h"
//
//	[cache.redis]
//	addr = "localhost:6379"
//
//	[server]
//	addr = ":8080"
//
// Keys the loader does not know are an error, so a misspelt option never
// falls back to its default silently.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/tagkit/pkg/cache"
	"github.com/matzehuels/tagkit/pkg/errors"
	"github.com/matzehuels/tagkit/pkg/heatmap"
	"github.com/matzehuels/tagkit/pkg/legend"
)

const (
	appName  = "tagkit"
	fileName = "config.toml"
)

// Config is the parsed configuration file.
type Config struct {
	Tags    Tags            `toml:"tags"`
	Heatmap heatmap.Options `toml:"heatmap"`
	Legend  legend.Options  `toml:"legend"`
	Cache   Cache           `toml:"cache"`
	Server  Server          `toml:"server"`
}

// Tags configures the interactive tag input. A nil limit is unset and a
// zero width follows the terminal.
type Tags struct {
	Width       int    `toml:"width"`
	MaxCount    *int   `toml:"max_count"`
	MaxWidth    *int   `toml:"max_width"`
	Collapse    bool   `toml:"collapse"`
	Placeholder string `toml:"placeholder"`
}

// Cache selects the artifact cache backend.
type Cache struct {
	// Backend is file, redis, mongo or none.
	Backend string `toml:"backend"`

	// Dir is the file backend directory. Empty means the XDG cache dir.
	Dir string `toml:"dir"`

	// TTL bounds rendered artifacts.
	TTL time.Duration `toml:"ttl"`

	// Prefix scopes every key, so several deployments can share a backend.
	Prefix string `toml:"prefix"`

	Redis Redis `toml:"redis"`
	Mongo Mongo `toml:"mongo"`
}

// Redis configures the redis backend.
type Redis struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
}

// Mongo configures the mongo backend.
type Mongo struct {
	URI        string `toml:"uri"`
	Database   string `toml:"database"`
	Collection string `toml:"collection"`
}

// Server configures the preview server.
type Server struct {
	Addr string `toml:"addr"`
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		Tags: Tags{
			Placeholder: "Enter a tag...",
		},
		Heatmap: heatmap.DefaultOptions(),
		Legend:  legend.DefaultOptions(),
		Cache: Cache{
			Backend: cache.BackendFile,
			TTL:     cache.TTLArtifact,
			Redis:   Redis{Addr: "localhost:6379"},
			Mongo:   Mongo{Database: "tagkit", Collection: "artifacts"},
		},
		Server: Server{Addr: "127.0.0.1:8080"},
	}
}

// Path returns the default config file location.
func Path() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, appName, fileName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInvalidPath, err, "locate home directory")
	}
	return filepath.Join(home, ".config", appName, fileName), nil
}

// Load reads the file at path over the defaults. An empty path reads the
// default location, where a missing file is not an error.
func Load(path string) (Config, error) {
	explicit := path != ""
	if !explicit {
		p, err := Path()
		if err != nil {
			return Default(), nil
		}
		path = p
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) && !explicit {
		return Default(), nil
	}
	if os.IsNotExist(err) {
		return Config{}, errors.New(errors.ErrCodeFileNotFound, "config file %s not found", path)
	}
	if err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read %s", path)
	}

	cfg, err := Parse(string(data))
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes TOML over the defaults and validates the result.
func Parse(data string) (Config, error) {
	cfg := Default()
	md, err := toml.Decode(data, &cfg)
	if err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse config")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		sort.Strings(keys)
		return Config{}, errors.New(errors.ErrCodeInvalidConfig, "unknown keys: %s", strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks every section.
func (c *Config) Validate() error {
	if c.Tags.Width < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "tags.width must not be negative, got %d", c.Tags.Width)
	}
	if c.Tags.MaxCount != nil && *c.Tags.MaxCount < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "tags.max_count must not be negative")
	}
	if c.Tags.MaxWidth != nil && *c.Tags.MaxWidth < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "tags.max_width must not be negative")
	}
	if err := c.Heatmap.ValidateAndSetDefaults(); err != nil {
		return fmt.Errorf("heatmap: %w", err)
	}
	if err := c.Legend.ValidateAndSetDefaults(); err != nil {
		return fmt.Errorf("legend: %w", err)
	}
	switch c.Cache.Backend {
	case cache.BackendFile, cache.BackendRedis, cache.BackendMongo, cache.BackendNone:
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "unknown cache backend %q (valid: file, redis, mongo, none)", c.Cache.Backend)
	}
	if c.Cache.Dir != "" {
		if err := errors.ValidatePath(c.Cache.Dir); err != nil {
			return fmt.Errorf("cache.dir: %w", err)
		}
	}
	if c.Cache.TTL < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "cache.ttl must not be negative")
	}
	return nil
}

// Keyer returns the cache keyer for the configured prefix.
func (c Config) Keyer() cache.Keyer {
	if c.Cache.Prefix == "" {
		return cache.NewDefaultKeyer()
	}
	return cache.NewScopedKeyer(cache.NewDefaultKeyer(), c.Cache.Prefix)
}

// CacheOptions returns the backend options. dir is used when the file
// backend has no directory configured.
func (c Config) CacheOptions(dir string) cache.Options {
	if c.Cache.Dir != "" {
		dir = c.Cache.Dir
	}
	return cache.Options{
		Backend: c.Cache.Backend,
		Dir:     dir,
		Redis: cache.RedisConfig{
			Addr:     c.Cache.Redis.Addr,
			Password: c.Cache.Redis.Password,
			DB:       c.Cache.Redis.DB,
		},
		Mongo: cache.MongoConfig{
			URI:        c.Cache.Mongo.URI,
			Database:   c.Cache.Mongo.Database,
			Collection: c.Cache.Mongo.Collection,
		},
	}
}
