package inputtag

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
)

// Defaults, in terminal cells.
const (
	DefaultWidth          = 60
	DefaultTagMargin      = 1
	DefaultMinInputWidth  = 10
	DefaultIndicatorWidth = 5
	DefaultPlaceholder    = "Enter a tag..."
)

// Option configures a Model.
type Option func(*Model)

// WithWidth sets the container width.
func WithWidth(w int) Option {
	return func(m *Model) { m.width = w }
}

// WithMaxCount caps the number of shown chips.
func WithMaxCount(n int) Option {
	return func(m *Model) { m.maxCount, m.hasMaxCount = n, true }
}

// WithMaxWidth sets the width budget of the chip area, independent of the
// container width.
func WithMaxWidth(w int) Option {
	return func(m *Model) { m.maxWidth, m.hasMaxWidth = w, true }
}

// WithAutoCollapse uses the container width as the width budget when no
// explicit max width is set.
func WithAutoCollapse() Option {
	return func(m *Model) { m.autoCollapse = true }
}

// WithSpacing sets the gap after each chip, the minimum width kept for the
// text input, and the width reserved for the "+N" indicator.
func WithSpacing(tagMargin, minInputWidth, indicatorWidth int) Option {
	return func(m *Model) {
		m.tagMargin = tagMargin
		m.minInputWidth = minInputWidth
		m.indicatorWidth = indicatorWidth
	}
}

// WithPlaceholder sets the input placeholder.
func WithPlaceholder(s string) Option {
	return func(m *Model) { m.input.Placeholder = s }
}

// WithWrapper customizes the overflow presentation.
func WithWrapper(w Wrapper) Option {
	return func(m *Model) { m.wrapper = w }
}

// WithKeyMap replaces the key bindings.
func WithKeyMap(k KeyMap) Option {
	return func(m *Model) { m.keys = k }
}

// WithStyles replaces the styles.
func WithStyles(s Styles) Option {
	return func(m *Model) { m.styles = s }
}

// KeyMap holds the widget's key bindings.
type KeyMap struct {
	Commit         key.Binding
	RemoveLast     key.Binding
	Clear          key.Binding
	ToggleOverflow key.Binding

	// Active while the overflow popover is open.
	Prev           key.Binding
	Next           key.Binding
	RemoveSelected key.Binding
	Close          key.Binding
}

// DefaultKeyMap returns the default bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Commit:         key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "add tag")),
		RemoveLast:     key.NewBinding(key.WithKeys("backspace"), key.WithHelp("backspace", "remove last")),
		Clear:          key.NewBinding(key.WithKeys("ctrl+x"), key.WithHelp("ctrl+x", "clear")),
		ToggleOverflow: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "show hidden")),
		Prev:           key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←", "prev")),
		Next:           key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→", "next")),
		RemoveSelected: key.NewBinding(key.WithKeys("backspace", "delete", "x"), key.WithHelp("x", "remove")),
		Close:          key.NewBinding(key.WithKeys("esc", "tab"), key.WithHelp("esc", "close")),
	}
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Commit, k.RemoveLast, k.Clear, k.ToggleOverflow}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		k.ShortHelp(),
		{k.Prev, k.Next, k.RemoveSelected, k.Close},
	}
}

var (
	colorChipBg   = lipgloss.Color("237")
	colorChipFg   = lipgloss.Color("255")
	colorAccent   = lipgloss.Color("36")
	colorBorder   = lipgloss.Color("240")
	colorSelected = lipgloss.Color("220")
)

// Styles controls the widget's appearance.
type Styles struct {
	Container lipgloss.Style
	Chip      lipgloss.Style
	Indicator lipgloss.Style
	Popover   lipgloss.Style
	Selected  lipgloss.Style
}

// DefaultStyles returns the default styles.
func DefaultStyles() Styles {
	chip := lipgloss.NewStyle().Padding(0, 1).Background(colorChipBg).Foreground(colorChipFg)
	return Styles{
		Container: lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorBorder),
		Chip:      chip,
		Indicator: chip.Foreground(colorAccent).Bold(true),
		Popover:   lipgloss.NewStyle().Border(lipgloss.NormalBorder()).BorderForeground(colorAccent).Padding(0, 1),
		Selected:  chip.Foreground(colorSelected).Bold(true),
	}
}
