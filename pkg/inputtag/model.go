package inputtag

import (
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/tagkit/pkg/measure"
	"github.com/matzehuels/tagkit/pkg/observability"
	"github.com/matzehuels/tagkit/pkg/overflow"
	"github.com/matzehuels/tagkit/pkg/reconcile"
	"github.com/matzehuels/tagkit/pkg/tags"
)

var lastID atomic.Int64

// ChangedMsg is emitted after the tag sequence of widget ID changed.
type ChangedMsg struct {
	ID   int
	Tags []tags.Tag
}

// layoutMsg is the post-layout phase of a render pass for input.
type layoutMsg struct {
	id    int
	input reconcile.Input
}

// Frame is the element that hosts the "+N" trigger.
type Frame struct {
	// Style renders the trigger.
	Style lipgloss.Style

	// Children is overwritten with the "+N" trigger text.
	Children string

	// Popover is shown under the row while the overflow panel is open.
	Popover string
}

// Wrapper builds the overflow frame from the rendered overflowed chips.
type Wrapper func(items []string) Frame

// Model is the tag-input widget.
type Model struct {
	id    int
	store *tags.Store
	input textinput.Model

	loop   reconcile.Loop
	bridge measure.Bridge

	width          int
	maxCount       int
	hasMaxCount    bool
	maxWidth       int
	hasMaxWidth    bool
	autoCollapse   bool
	tagMargin      int
	minInputWidth  int
	indicatorWidth int

	wrapper Wrapper
	keys    KeyMap
	styles  Styles

	popoverOpen bool
	selected    int
}

// New creates a widget. The widget starts blurred; call Focus to accept
// input.
func New(opts ...Option) Model {
	ti := textinput.New()
	ti.Placeholder = DefaultPlaceholder
	ti.Prompt = ""

	m := Model{
		id:             int(lastID.Add(1)),
		store:          tags.NewStore(),
		input:          ti,
		width:          DefaultWidth,
		tagMargin:      DefaultTagMargin,
		minInputWidth:  DefaultMinInputWidth,
		indicatorWidth: DefaultIndicatorWidth,
		keys:           DefaultKeyMap(),
		styles:         DefaultStyles(),
	}
	for _, opt := range opts {
		opt(&m)
	}
	m.input.Width = m.minInputWidth
	m.loop.Sync(m.layoutInput())
	return m
}

// ID returns the widget id carried by its messages.
func (m Model) ID() int { return m.id }

// Init schedules the first layout pass.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.pendingLayout())
}

// Focus forwards focus to the text input.
func (m *Model) Focus() tea.Cmd { return m.input.Focus() }

// Blur removes focus from the text input.
func (m *Model) Blur() {
	m.input.Blur()
	m.popoverOpen = false
}

// Focused reports whether the text input has focus.
func (m Model) Focused() bool { return m.input.Focused() }

// Tags returns the committed tags in order.
func (m Model) Tags() []tags.Tag { return m.store.Tags() }

// Values returns the committed tag values in order.
func (m Model) Values() []string { return m.store.Values() }

// Pending returns the uncommitted input text.
func (m Model) Pending() string { return m.store.Pending() }

// CutIndex returns the index of the first overflowed tag.
func (m Model) CutIndex() int { return m.loop.Cut(m.store.Len()) }

// Shown returns the tags rendered in the row.
func (m Model) Shown() []tags.Tag {
	shown, _ := overflow.Partition(m.store.Tags(), m.CutIndex())
	return shown
}

// Overflowed returns the tags collapsed into the indicator.
func (m Model) Overflowed() []tags.Tag {
	_, rest := overflow.Partition(m.store.Tags(), m.CutIndex())
	return rest
}

// Constraint returns the constraint derived from the widget's options.
func (m Model) Constraint() overflow.Constraint {
	c := overflow.None()
	if m.hasMaxCount {
		c = c.WithMaxCount(m.maxCount)
	}
	switch {
	case m.hasMaxWidth:
		c = c.WithMaxWidth(m.maxWidth)
	case m.autoCollapse:
		c = c.WithMaxWidth(m.width)
	}
	return c
}

// RemoveTag removes the tag with the given id.
func (m *Model) RemoveTag(id tags.ID) tea.Cmd {
	v := m.store.Version()
	m.store.Remove(id)
	return m.afterChange(v)
}

// SetWidth changes the container width.
func (m *Model) SetWidth(w int) tea.Cmd {
	m.width = w
	return m.afterChange(m.store.Version())
}

// SetMaxCount changes the visible count limit.
func (m *Model) SetMaxCount(n int) tea.Cmd {
	m.maxCount, m.hasMaxCount = n, true
	return m.afterChange(m.store.Version())
}

// ClearMaxCount removes the visible count limit.
func (m *Model) ClearMaxCount() tea.Cmd {
	m.maxCount, m.hasMaxCount = 0, false
	return m.afterChange(m.store.Version())
}

// SetMaxWidth changes the width budget.
func (m *Model) SetMaxWidth(w int) tea.Cmd {
	m.maxWidth, m.hasMaxWidth = w, true
	return m.afterChange(m.store.Version())
}

// ClearMaxWidth removes the explicit width budget.
func (m *Model) ClearMaxWidth() tea.Cmd {
	m.maxWidth, m.hasMaxWidth = 0, false
	return m.afterChange(m.store.Version())
}

// Update handles key input and layout messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case layoutMsg:
		if msg.id == m.id {
			m.measure(msg.input)
		}
		return m, nil
	case tea.KeyMsg:
		if !m.input.Focused() {
			return m, nil
		}
		if m.popoverOpen {
			return m, m.updatePopover(msg)
		}
		if cmd, handled := m.handleKey(msg); handled {
			return m, cmd
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.store.SetPending(m.input.Value())
	return m, cmd
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	v := m.store.Version()
	switch {
	case key.Matches(msg, m.keys.Commit):
		m.store.SetPending(m.input.Value())
		if _, ok := m.store.Commit(); ok {
			m.input.SetValue("")
		}
		return m.afterChange(v), true
	case key.Matches(msg, m.keys.RemoveLast) && m.input.Value() == "":
		if n := m.store.Len(); n > 0 {
			m.store.Remove(m.store.Tags()[n-1].ID)
		}
		return m.afterChange(v), true
	case key.Matches(msg, m.keys.Clear):
		m.store.Clear()
		return m.afterChange(v), true
	case key.Matches(msg, m.keys.ToggleOverflow):
		if len(m.Overflowed()) > 0 {
			m.popoverOpen = true
			m.selected = 0
		}
		return nil, true
	}
	return nil, false
}

func (m *Model) updatePopover(msg tea.KeyMsg) tea.Cmd {
	hidden := m.Overflowed()
	switch {
	case key.Matches(msg, m.keys.Close):
		m.popoverOpen = false
	case key.Matches(msg, m.keys.Prev):
		if m.selected > 0 {
			m.selected--
		}
	case key.Matches(msg, m.keys.Next):
		if m.selected < len(hidden)-1 {
			m.selected++
		}
	case key.Matches(msg, m.keys.RemoveSelected):
		if m.selected < len(hidden) {
			return m.RemoveTag(hidden[m.selected].ID)
		}
	}
	return nil
}

// afterChange syncs the layout input and emits the follow-up commands.
// prev is the store version before the change.
func (m *Model) afterChange(prev uint64) tea.Cmd {
	var cmds []tea.Cmd
	if m.loop.Sync(m.layoutInput()) {
		cmds = append(cmds, m.pendingLayout())
	}
	if m.store.Version() != prev {
		msg := ChangedMsg{ID: m.id, Tags: m.store.Tags()}
		cmds = append(cmds, func() tea.Msg { return msg })
	}
	return tea.Batch(cmds...)
}

func (m Model) layoutInput() reconcile.Input {
	return reconcile.Input{
		Version:    m.store.Version(),
		Constraint: m.Constraint(),
		Params: overflow.Params{
			SeparatorMargin:  m.tagMargin,
			ReservedTrailing: m.minInputWidth + m.indicatorWidth,
		},
	}
}

func (m Model) pendingLayout() tea.Cmd {
	in, ok := m.loop.Pending()
	if !ok {
		return nil
	}
	msg := layoutMsg{id: m.id, input: in}
	return func() tea.Msg { return msg }
}

// chip is a rendered tag as seen by the measurement bridge.
type chip struct {
	store *tags.Store
	id    tags.ID
	view  string
}

func (c chip) Width() (int, bool) {
	if !c.store.Contains(c.id) {
		return 0, false
	}
	return lipgloss.Width(c.view), true
}

// measure is the post-layout pass: every chip of the current sequence is
// rendered and registered, then the cut is computed from the read widths.
func (m *Model) measure(in reconcile.Input) {
	m.bridge.Begin()
	for _, t := range m.store.Tags() {
		m.bridge.Register(t.ID, chip{store: m.store, id: t.ID, view: m.styles.Chip.Render(t.Value)})
	}
	ms := m.bridge.Measure()
	before := m.loop.Passes()
	cut, rerender := m.loop.Measure(in, measure.Widths(ms))
	if m.loop.Passes() == before {
		return
	}
	observability.Layout().OnMeasure(m.id, len(ms), cut)
	if !rerender {
		// Everything fits: nothing is left to pick from.
		m.popoverOpen = false
		m.selected = 0
		return
	}
	if hidden := len(ms) - cut; m.selected >= hidden {
		m.selected = hidden - 1
	}
}

// View renders the row and, when open, the overflow popover.
func (m Model) View() string {
	shown, hidden := overflow.Partition(m.store.Tags(), m.CutIndex())

	gap := strings.Repeat(" ", max(m.tagMargin, 0))
	var row strings.Builder
	for _, t := range shown {
		row.WriteString(m.styles.Chip.Render(t.Value))
		row.WriteString(gap)
	}

	var frame Frame
	if len(hidden) > 0 {
		items := make([]string, len(hidden))
		for i, t := range hidden {
			style := m.styles.Chip
			if m.popoverOpen && i == m.selected {
				style = m.styles.Selected
			}
			items[i] = style.Render(t.Value)
		}
		frame = m.wrap(items)
		frame.Children = fmt.Sprintf("+%d", len(hidden))
		row.WriteString(frame.Style.Render(frame.Children))
		row.WriteString(gap)
	}

	in := m.input
	in.Width = max(m.minInputWidth, m.width-lipgloss.Width(row.String())-1)
	row.WriteString(in.View())

	out := m.styles.Container.Width(m.width).Render(row.String())
	if m.popoverOpen && frame.Popover != "" {
		out = lipgloss.JoinVertical(lipgloss.Left, out, m.styles.Popover.Render(frame.Popover))
	}
	return out
}

func (m Model) wrap(items []string) Frame {
	if m.wrapper != nil {
		return m.wrapper(items)
	}
	return Frame{
		Style:   m.styles.Indicator,
		Popover: strings.Join(items, strings.Repeat(" ", max(m.tagMargin, 1))),
	}
}
