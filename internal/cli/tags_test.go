package cli

import (
	"bytes"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/tagkit/pkg/config"
	"github.com/matzehuels/tagkit/pkg/tags"
)

func TestMergeTagsConfig(t *testing.T) {
	three := 3
	cfg := config.Tags{Width: 40, MaxCount: &three, Placeholder: "tag"}

	cmd := (&CLI{}).tagsCommand()
	if err := cmd.Flags().Parse([]string{"--max-count", "5"}); err != nil {
		t.Fatal(err)
	}
	opts := tagsOpts{maxCount: 5}
	mergeTagsConfig(cmd, &opts, cfg)

	want := tagsOpts{width: 40, maxCount: 5, maxWidth: -1, placeholder: "tag"}
	if diff := cmp.Diff(want, opts, cmp.AllowUnexported(tagsOpts{})); diff != "" {
		t.Errorf("merged options mismatch (-want +got):\n%s", diff)
	}
}

func TestTagsModelSeedAndQuit(t *testing.T) {
	m := newTagsModel(tagsOpts{width: 40, maxCount: 1, maxWidth: -1, initial: []string{"go", "rust", "go"}})

	if diff := cmp.Diff([]string{"go", "rust"}, m.input.Values()); diff != "" {
		t.Errorf("values mismatch (-want +got):\n%s", diff)
	}

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlD})
	got := next.(tagsModel)
	if got.cancelled || !got.quitting {
		t.Errorf("ctrl+d should finish: %+v", got)
	}
	if cmd == nil {
		t.Fatal("ctrl+d should quit")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("ctrl+d should return tea.Quit")
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	if !next.(tagsModel).cancelled {
		t.Error("ctrl+c should cancel")
	}
}

func TestTagsModelFollowsWindow(t *testing.T) {
	m := newTagsModel(tagsOpts{maxCount: -1, maxWidth: -1, collapse: true})
	next, _ := m.Update(tea.WindowSizeMsg{Width: 30, Height: 10})
	got := next.(tagsModel)
	if w, ok := got.input.Constraint().MaxWidthValue(); !ok || w != 28 {
		t.Errorf("constraint = %s, want max-width=28", got.input.Constraint())
	}
	if !strings.Contains(got.View(), "Tags") {
		t.Error("view should have a title")
	}
}

func TestWriteTags(t *testing.T) {
	ts := []tags.Tag{{ID: 1, Value: "go"}, {ID: 2, Value: "rust"}}

	var plain bytes.Buffer
	writeTags(&plain, ts, true)
	if plain.String() != "go\nrust\n" {
		t.Errorf("plain = %q", plain.String())
	}

	var tbl bytes.Buffer
	writeTags(&tbl, ts, false)
	for _, want := range []string{"TAG", "go", "rust"} {
		if !strings.Contains(tbl.String(), want) {
			t.Errorf("table missing %q:\n%s", want, tbl.String())
		}
	}
}
