// Package inputtag is a collapsible tag-input widget for bubbletea programs.
//
// The widget shows committed tags as chips in front of a text input. When
// the chips do not fit the configured width budget or visible count, the
// tail of the row collapses into a "+N" indicator whose contents can be
// opened as a popover.
//
// # Layout
//
// Chip widths are measured after rendering, so the row is laid out in two
// passes. Every change to the tag sequence or to the constraint first
// renders all chips as shown, then a layout message measures them and
// applies the cut (see package reconcile). Re-rendering with the cut applied
// does not change the layout input, so the row settles after one corrective
// render.
//
// # Usage
//
//	m := inputtag.New(
//	    inputtag.WithWidth(60),
//	    inputtag.WithMaxCount(5),
//	    inputtag.WithAutoCollapse(),
//	)
//	cmd := m.Focus()
//
// Embed the model in a parent and forward messages to [Model.Update]. A
// [ChangedMsg] is emitted after every change to the tag sequence.
//
// # Overflow presentation
//
// [WithWrapper] customizes how overflowed chips are presented. The wrapper
// receives the rendered overflow chips and returns a [Frame]; the widget
// overwrites [Frame.Children] with the "+N" trigger.
package inputtag
