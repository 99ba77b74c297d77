package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/tagkit/pkg/observability"
)

func TestRegisterDebugHooks(t *testing.T) {
	defer observability.Reset()

	var buf bytes.Buffer
	registerDebugHooks(newLogger(&buf, log.DebugLevel))

	ctx := context.Background()
	observability.Pipeline().OnRenderComplete(ctx, "heatmap", "svg", 128, time.Millisecond, nil)
	observability.Cache().OnCacheHit(ctx, "artifact")
	observability.Layout().OnMeasure(1, 5, 3)

	out := buf.String()
	for _, want := range []string{"render finished", "cache hit", "tag layout", "cut=3"} {
		if !strings.Contains(out, want) {
			t.Errorf("log missing %q:\n%s", want, out)
		}
	}
}
