package colset

import (
	"github.com/katalvlaran/splx/vec"
)

// Key is a stable opaque handle naming one column of a Set. Keys survive
// insertion and removal of other columns; only Clear invalidates them.
type Key int

// InvalidKey is returned alongside errors from key-issuing operations.
const InvalidKey Key = -1

// CompactThreshold is the free fraction of the backing store above which
// the arena compacts.
const CompactThreshold = 0.5

// minCompactSize suppresses compaction for tiny stores where the sweep
// would cost more than the holes.
const minCompactSize = 256

// entry describes one resident column: a block [off, off+max) of the
// backing store, of which the first used positions hold entries.
type entry struct {
	key  Key
	off  int
	used int
	max  int
}

// Set is an arena of sparse columns with stable keys.
// The zero value is not usable; construct with NewSet.
type Set struct {
	idx      []int     // backing row indices
	val      []float64 // backing values, parallel to idx
	entries  []entry   // one per resident column, slot-ordered
	slotOf   []int     // key -> slot, -1 when the key is free
	freeKeys []Key     // recycled keys
	reserved int       // sum of entry.max over residents
}

// NewSet creates an empty column set.
func NewSet() *Set {
	return &Set{}
}

// Num returns the number of resident columns.
func (s *Set) Num() int { return len(s.entries) }

// Nonzeros returns the total number of stored entries over all columns.
// Complexity: O(num columns).
func (s *Set) Nonzeros() int {
	var n int
	for i := range s.entries {
		n += s.entries[i].used
	}

	return n
}

// KeyAt returns the key of the column at the given slot. Slots are dense
// in [0, Num()) but are reassigned by removals; out-of-range slot panics.
func (s *Set) KeyAt(slot int) Key { return s.entries[slot].key }

// SlotOf returns the current slot of key, or an error for unknown keys.
func (s *Set) SlotOf(k Key) (int, error) {
	if k < 0 || int(k) >= len(s.slotOf) || s.slotOf[k] < 0 {
		return 0, ErrUnknownKey
	}

	return s.slotOf[k], nil
}

// issueKey hands out a fresh or recycled key for the given slot.
func (s *Set) issueKey(slot int) Key {
	if n := len(s.freeKeys); n > 0 {
		k := s.freeKeys[n-1]
		s.freeKeys = s.freeKeys[:n-1]
		s.slotOf[k] = slot

		return k
	}
	s.slotOf = append(s.slotOf, slot)

	return Key(len(s.slotOf) - 1)
}

// Create reserves an empty column able to hold maxNNZ entries and
// returns its key.
// Complexity: amortized O(maxNNZ).
func (s *Set) Create(maxNNZ int) (Key, error) {
	if maxNNZ < 0 {
		return InvalidKey, ErrNegativeCapacity
	}
	off := len(s.idx)
	s.idx = append(s.idx, make([]int, maxNNZ)...)
	s.val = append(s.val, make([]float64, maxNNZ)...)
	slot := len(s.entries)
	k := s.issueKey(slot)
	s.entries = append(s.entries, entry{key: k, off: off, used: 0, max: maxNNZ})
	s.reserved += maxNNZ

	return k, nil
}

// Add appends a copy of sv as a new column and returns its key.
// Complexity: amortized O(nnz(sv)).
func (s *Set) Add(sv *vec.Sparse) (Key, error) {
	k, err := s.Create(sv.Size())
	if err != nil {
		return InvalidKey, err
	}
	for j := 0; j < sv.Size(); j++ {
		if err = s.AppendEntry(k, sv.Index(j), sv.Value(j)); err != nil {
			return InvalidKey, err
		}
	}

	return k, nil
}

// AppendEntry appends (row, x) to the column named by k, growing its
// reservation in the arena when exhausted.
// Complexity: amortized O(1).
func (s *Set) AppendEntry(k Key, row int, x float64) error {
	slot, err := s.SlotOf(k)
	if err != nil {
		return err
	}
	if row < 0 {
		return ErrNegativeIndex
	}
	if s.entries[slot].used == s.entries[slot].max {
		s.growColumn(slot)
	}
	e := &s.entries[slot]
	s.idx[e.off+e.used] = row
	s.val[e.off+e.used] = x
	e.used++

	return nil
}

// growColumn relocates the column at slot to the tail of the backing
// store with a doubled reservation, leaving its old block as a hole.
func (s *Set) growColumn(slot int) {
	e := &s.entries[slot]
	newMax := e.max * 2
	if newMax < 4 {
		newMax = 4
	}
	off := len(s.idx)
	s.idx = append(s.idx, make([]int, newMax)...)
	s.val = append(s.val, make([]float64, newMax)...)
	copy(s.idx[off:off+e.used], s.idx[e.off:e.off+e.used])
	copy(s.val[off:off+e.used], s.val[e.off:e.off+e.used])
	s.reserved += newMax - e.max
	e.off = off
	e.max = newMax
	s.maybeCompact()
}

// Remove deletes the column named by k. The tail slot is swapped into the
// vacated slot; keys of surviving columns are unaffected.
// Complexity: O(1) plus a possible compaction sweep.
func (s *Set) Remove(k Key) error {
	slot, err := s.SlotOf(k)
	if err != nil {
		return err
	}
	s.reserved -= s.entries[slot].max
	last := len(s.entries) - 1
	if slot != last {
		s.entries[slot] = s.entries[last]
		s.slotOf[s.entries[slot].key] = slot
	}
	s.entries = s.entries[:last]
	s.slotOf[k] = -1
	s.freeKeys = append(s.freeKeys, k)
	s.maybeCompact()

	return nil
}

// RemoveMany deletes a batch of columns and returns the permutation
// mapping every old slot to its new slot, with -1 for removed slots.
// Surviving columns keep their relative order. Callers holding
// per-column state migrate it under the returned permutation.
// Complexity: O(num columns).
func (s *Set) RemoveMany(keys []Key) ([]int, error) {
	doomed := make([]bool, len(s.entries))
	for _, k := range keys {
		slot, err := s.SlotOf(k)
		if err != nil {
			return nil, err
		}
		doomed[slot] = true
	}

	perm := make([]int, len(s.entries))
	kept := 0
	for slot := range s.entries {
		if doomed[slot] {
			perm[slot] = -1
			k := s.entries[slot].key
			s.reserved -= s.entries[slot].max
			s.slotOf[k] = -1
			s.freeKeys = append(s.freeKeys, k)

			continue
		}
		perm[slot] = kept
		s.entries[kept] = s.entries[slot]
		s.slotOf[s.entries[kept].key] = kept
		kept++
	}
	s.entries = s.entries[:kept]
	s.maybeCompact()

	return perm, nil
}

// ReplaceCol overwrites the column named by k with a copy of sv, keeping
// the key. The existing reservation is reused when it suffices; otherwise
// the column relocates to the tail of the store.
// Complexity: O(nnz(sv)).
func (s *Set) ReplaceCol(k Key, sv *vec.Sparse) error {
	slot, err := s.SlotOf(k)
	if err != nil {
		return err
	}
	n := sv.Size()
	if n > s.entries[slot].max {
		e := &s.entries[slot]
		off := len(s.idx)
		s.idx = append(s.idx, make([]int, n)...)
		s.val = append(s.val, make([]float64, n)...)
		s.reserved += n - e.max
		e.off = off
		e.max = n
	}
	e := &s.entries[slot]
	for j := 0; j < n; j++ {
		s.idx[e.off+j] = sv.Index(j)
		s.val[e.off+j] = sv.Value(j)
	}
	e.used = n
	s.maybeCompact()

	return nil
}

// Clear removes every column and invalidates all keys.
func (s *Set) Clear() {
	s.idx = s.idx[:0]
	s.val = s.val[:0]
	s.entries = s.entries[:0]
	s.slotOf = s.slotOf[:0]
	s.freeKeys = s.freeKeys[:0]
	s.reserved = 0
}

// maybeCompact sweeps the backing store when the free fraction exceeds
// CompactThreshold. Offsets are rewritten; keys are untouched.
func (s *Set) maybeCompact() {
	total := len(s.idx)
	if total < minCompactSize {
		return
	}
	if float64(total-s.reserved) <= CompactThreshold*float64(total) {
		return
	}
	idx := make([]int, 0, s.reserved)
	val := make([]float64, 0, s.reserved)
	for i := range s.entries {
		e := &s.entries[i]
		off := len(idx)
		idx = append(idx, s.idx[e.off:e.off+e.max]...)
		val = append(val, s.val[e.off:e.off+e.max]...)
		e.off = off
	}
	s.idx = idx
	s.val = val
}

// View is a read-only window onto one column. Any mutation of the Set
// invalidates it.
type View struct {
	set  *Set
	slot int
}

// ColView returns a view of the column named by k.
func (s *Set) ColView(k Key) (View, error) {
	slot, err := s.SlotOf(k)
	if err != nil {
		return View{}, err
	}

	return View{set: s, slot: slot}, nil
}

// ColViewAt returns a view of the column at the given slot.
// Out-of-range slot panics.
func (s *Set) ColViewAt(slot int) View {
	_ = s.entries[slot]

	return View{set: s, slot: slot}
}

// Size returns the number of entries in the viewed column.
func (v View) Size() int { return v.set.entries[v.slot].used }

// Index returns the row index of the k-th entry.
func (v View) Index(k int) int {
	e := &v.set.entries[v.slot]

	return v.set.idx[e.off+k]
}

// Value returns the value of the k-th entry.
func (v View) Value(k int) float64 {
	e := &v.set.entries[v.slot]

	return v.set.val[e.off+k]
}

// DotDense returns the inner product of the viewed column with d.
// Complexity: O(nnz).
func (v View) DotDense(d *vec.Dense) float64 {
	e := &v.set.entries[v.slot]
	var sum float64
	for k := 0; k < e.used; k++ {
		sum += v.set.val[e.off+k] * d.At(v.set.idx[e.off+k])
	}

	return sum
}

// ToSparse copies the viewed column into a fresh vec.Sparse.
func (v View) ToSparse() *vec.Sparse {
	e := &v.set.entries[v.slot]
	out := vec.NewSparse(e.used)
	for k := 0; k < e.used; k++ {
		_ = out.Add(v.set.idx[e.off+k], v.set.val[e.off+k])
	}

	return out
}
