// Package tags owns the ordered tag collection behind the tag-input widget.
//
// A [Store] holds the committed tags in insertion order together with the
// pending (not yet committed) input text. Tags are identified by an [ID]
// handed out by a per-store counter, so identity survives reordering and
// removal of neighbours and never depends on the tag's value.
//
// # Identity and Versions
//
// Consumers address tags by [ID]. Indices shift whenever an earlier tag is
// removed, so the only index-based view of the collection is the final
// shown/overflowed partition computed by the layout packages.
//
// Every mutation that changes the ordered sequence bumps [Store.Version].
// Layout code compares versions to decide whether a new measurement pass is
// needed; editing the pending text never changes the version.
//
// # Errors
//
// All operations are total. Adding a duplicate value and removing an
// unknown id are silent no-ops because removal clicks routinely race with
// re-renders.
package tags
