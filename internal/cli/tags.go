package cli

import (
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/tagkit/pkg/config"
	"github.com/matzehuels/tagkit/pkg/inputtag"
	"github.com/matzehuels/tagkit/pkg/tags"
)

// tagsOpts holds the flags of the tags command.
type tagsOpts struct {
	width       int
	maxCount    int
	maxWidth    int
	collapse    bool
	placeholder string
	plain       bool
	initial     []string
}

// tagsCommand creates the interactive tag input command.
func (c *CLI) tagsCommand() *cobra.Command {
	var opts tagsOpts

	cmd := &cobra.Command{
		Use:   "tags [tag...]",
		Short: "Edit tags interactively",
		Long: `Edit a list of tags in an interactive input.

Type a tag and press enter to add it. Tags that do not fit the width budget
collapse into a "+N" indicator; press tab to open it and remove hidden tags.
The final tags are printed on exit (ctrl+d), ctrl+c discards them.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.initial = args
			mergeTagsConfig(cmd, &opts, c.Config.Tags)
			return c.runTags(cmd, opts)
		},
	}

	cmd.Flags().IntVar(&opts.width, "width", 0, "container width in cells (default: terminal width)")
	cmd.Flags().IntVar(&opts.maxCount, "max-count", 0, "show at most this many tags")
	cmd.Flags().IntVar(&opts.maxWidth, "max-width", 0, "width budget of the tag area in cells")
	cmd.Flags().BoolVar(&opts.collapse, "collapse", false, "collapse tags that overflow the container width")
	cmd.Flags().StringVar(&opts.placeholder, "placeholder", "", "input placeholder")
	cmd.Flags().BoolVar(&opts.plain, "plain", false, "print one tag per line instead of a table")

	return cmd
}

// mergeTagsConfig fills flags the user did not set from the config file.
// Limits are -1 when unset.
func mergeTagsConfig(cmd *cobra.Command, opts *tagsOpts, cfg config.Tags) {
	flags := cmd.Flags()
	if !flags.Changed("width") {
		opts.width = cfg.Width
	}
	if !flags.Changed("max-count") {
		opts.maxCount = -1
		if cfg.MaxCount != nil {
			opts.maxCount = *cfg.MaxCount
		}
	}
	if !flags.Changed("max-width") {
		opts.maxWidth = -1
		if cfg.MaxWidth != nil {
			opts.maxWidth = *cfg.MaxWidth
		}
	}
	if !flags.Changed("collapse") {
		opts.collapse = cfg.Collapse
	}
	if !flags.Changed("placeholder") {
		opts.placeholder = cfg.Placeholder
	}
}

// widgetOptions converts flags into widget options.
func (o tagsOpts) widgetOptions() []inputtag.Option {
	var out []inputtag.Option
	if o.width > 0 {
		out = append(out, inputtag.WithWidth(o.width))
	}
	if o.maxCount >= 0 {
		out = append(out, inputtag.WithMaxCount(o.maxCount))
	}
	if o.maxWidth >= 0 {
		out = append(out, inputtag.WithMaxWidth(o.maxWidth))
	}
	if o.collapse {
		out = append(out, inputtag.WithAutoCollapse())
	}
	if o.placeholder != "" {
		out = append(out, inputtag.WithPlaceholder(o.placeholder))
	}
	return out
}

func (c *CLI) runTags(cmd *cobra.Command, opts tagsOpts) error {
	logger := loggerFromContext(cmd.Context())
	m := newTagsModel(opts)
	logger.Debug("starting tag input", "width", opts.width, "max_count", opts.maxCount, "max_width", opts.maxWidth)

	final, err := tea.NewProgram(m, tea.WithContext(cmd.Context()), tea.WithOutput(cmd.ErrOrStderr())).Run()
	if err != nil {
		return fmt.Errorf("tag input: %w", err)
	}
	result := final.(tagsModel)
	if result.cancelled {
		newPrinter(cmd.ErrOrStderr()).info("Cancelled")
		return nil
	}
	writeTags(cmd.OutOrStdout(), result.input.Tags(), opts.plain)
	return nil
}

// tagsKeyMap adds the program keys to the widget bindings.
type tagsKeyMap struct {
	inputtag.KeyMap
	Done   key.Binding
	Cancel key.Binding
}

func (k tagsKeyMap) ShortHelp() []key.Binding {
	return append(k.KeyMap.ShortHelp(), k.Done, k.Cancel)
}

func (k tagsKeyMap) FullHelp() [][]key.Binding {
	return append(k.KeyMap.FullHelp(), []key.Binding{k.Done, k.Cancel})
}

// tagsModel hosts the tag input widget.
type tagsModel struct {
	input      inputtag.Model
	help       help.Model
	keys       tagsKeyMap
	fixedWidth bool
	cancelled  bool
	quitting   bool
}

func newTagsModel(opts tagsOpts) tagsModel {
	input := inputtag.New(opts.widgetOptions()...)
	input.Focus()
	return tagsModel{
		input: input,
		help:  help.New(),
		keys: tagsKeyMap{
			KeyMap: inputtag.DefaultKeyMap(),
			Done:   key.NewBinding(key.WithKeys("ctrl+d"), key.WithHelp("ctrl+d", "done")),
			Cancel: key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "cancel")),
		},
		fixedWidth: opts.width > 0,
	}.seed(opts.initial)
}

// seed commits initial tags by replaying them through the widget.
func (m tagsModel) seed(values []string) tagsModel {
	for _, v := range values {
		for _, r := range v {
			m.input = m.forward(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
		}
		m.input = m.forward(tea.KeyMsg{Type: tea.KeyEnter})
	}
	return m
}

func (m tagsModel) forward(msg tea.Msg) inputtag.Model {
	next, _ := m.input.Update(msg)
	return next.(inputtag.Model)
}

func (m tagsModel) Init() tea.Cmd {
	return m.input.Init()
}

func (m tagsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Cancel):
			m.cancelled, m.quitting = true, true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Done):
			m.quitting = true
			return m, tea.Quit
		case msg.String() == "?":
			if m.input.Pending() == "" {
				m.help.ShowAll = !m.help.ShowAll
				return m, nil
			}
		}
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
		if !m.fixedWidth {
			// Leave room for the container border.
			cmd := m.input.SetWidth(max(msg.Width-2, 1))
			return m, cmd
		}
		return m, nil
	}

	next, cmd := m.input.Update(msg)
	m.input = next.(inputtag.Model)
	return m, cmd
}

func (m tagsModel) View() string {
	if m.quitting {
		return ""
	}
	status := StyleDim.Render(fmt.Sprintf("%d tags, %d hidden", len(m.input.Tags()), len(m.input.Overflowed())))
	return lipgloss.JoinVertical(lipgloss.Left,
		StyleTitle.Render("Tags"),
		m.input.View(),
		status,
		m.help.View(m.keys),
	) + "\n"
}

// headerRow is the row index lipgloss/table passes for the header.
const headerRow = -1

// writeTags prints the final tags as a table, or one per line when plain.
func writeTags(w io.Writer, ts []tags.Tag, plain bool) {
	if plain {
		for _, t := range ts {
			fmt.Fprintln(w, t.Value)
		}
		return
	}
	if len(ts) == 0 {
		fmt.Fprintln(w, StyleDim.Render("no tags"))
		return
	}
	tbl := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(StyleDim).
		Headers("#", "TAG").
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == headerRow {
				return StyleTitle.Padding(0, 1)
			}
			if col == 0 {
				return StyleDim.Padding(0, 1)
			}
			return lipgloss.NewStyle().Padding(0, 1)
		})
	for i, t := range ts {
		tbl.Row(strconv.Itoa(i+1), StyleChip.Render(t.Value))
	}
	fmt.Fprintln(w, tbl.Render())
}
