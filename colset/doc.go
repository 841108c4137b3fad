// Package colset stores many sparse vectors — the columns of an LP
// constraint matrix — in one arena, identified by stable opaque keys.
//
// # Storage model
//
// All index/value pairs live in two parallel backing slices. Each column
// is an (offset, used, max) triple into that store. Keys survive the
// insertion and removal of other columns: a key table maps every
// external Key to its current internal slot, so removal may freely swap
// a victim with the tail slot without disturbing anyone's handle.
//
// Removing or growing columns leaves holes in the backing store. When
// the free fraction exceeds CompactThreshold the arena compacts: columns
// are rewritten front-to-back and their offsets updated. Because access
// always goes through the Set (offsets, never raw pointers), compaction
// is invisible to callers — no key changes, no relocation callbacks.
//
// # Removal with permutation
//
// RemoveMany deletes a batch of columns and returns a permutation array
// mapping every old slot to its new slot (or -1 for removed ones).
// Callers that hold per-column state — a basis, a pricer — migrate that
// state under the returned permutation.
//
// Views obtained from ColView are short-lived: any mutation of the Set
// invalidates them.
package colset
