// Package cli implements the tagkit command-line interface.
//
// # Commands
//
// The main commands are:
//   - tags: Interactive tag input with overflow collapsing
//   - heatmap: Render a heatmap from a JSON or TOML grid
//   - legend: Render a colour legend from texts and colours
//   - serve: Run the HTTP preview server
//   - cache: Manage the artifact cache
//
// # Configuration
//
// Defaults come from the TOML file loaded by [config.Load]; flags override
// file values.
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging, which also
// routes render, cache and layout events to the log. Loggers are passed
// through context.Context.
//
// # Example
//
//	import "github.com/matzehuels/tagkit/internal/cli"
//
//	func main() {
//	    if err := cli.Execute(ctx); err != nil {
//	        os.Exit(1)
//	    }
//	}
package cli

import (
	"context"
	"os"

	"github.com/matzehuels/tagkit/pkg/buildinfo"
)

// SetVersion overrides the build information displayed by --version.
// Empty values keep the ldflags defaults.
func SetVersion(v, c, d string) {
	if v != "" {
		buildinfo.Version = v
	}
	if c != "" {
		buildinfo.Commit = c
	}
	if d != "" {
		buildinfo.Date = d
	}
}

// Execute runs the tagkit CLI and returns an error if any command fails.
//
// Logging:
//   - Default: info level (logs to stderr)
//   - With --verbose (-v): debug level
func Execute(ctx context.Context, args ...string) error {
	c := New(os.Stderr, LogInfo)
	root := c.RootCommand()
	if args != nil {
		root.SetArgs(args)
	}
	return root.ExecuteContext(ctx)
}
