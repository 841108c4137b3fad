package vec

// Update is a dense vector x together with a pending increment
// alpha * delta, where delta is semi-sparse. The logical value is
// x + alpha·delta, but the addition is deferred until Apply.
//
// The split serves the pivot step of the simplex engine: the ratio test
// reads x before the update to select a step size, the selected step
// becomes alpha, and the pricer consults delta for its weight
// maintenance — all before the expensive vector update is committed.
type Update struct {
	x     Dense
	val   float64
	delta SemiSparse
}

// NewUpdate creates an Update of the given dimension whose delta uses
// the zero threshold eps.
func NewUpdate(dim int, eps float64) *Update {
	u := &Update{}
	u.x.ReDim(dim)
	u.delta = *NewSemiSparse(dim, eps)

	return u
}

// Dim returns the dimension.
func (u *Update) Dim() int { return u.x.Dim() }

// Value returns the update multiplicator alpha.
func (u *Update) Value() float64 { return u.val }

// SetValue overwrites the update multiplicator alpha.
func (u *Update) SetValue(alpha float64) { u.val = alpha }

// Dense returns the carried dense vector x. The vector aliases u.
func (u *Update) Dense() *Dense { return &u.x }

// Delta returns the update direction delta, writeable. Aliases u.
func (u *Update) Delta() *SemiSparse { return &u.delta }

// Idx returns the nonzero cover of delta.
func (u *Update) Idx() *IdxSet { return u.delta.Indices() }

// Apply folds alpha·delta into x, touching only the cover of delta.
// The pending update is kept; call ClearUpdate to reset it.
// Complexity: O(cover size).
func (u *Update) Apply() {
	xs := u.x.Values()
	ds := u.delta.Values()
	idx := u.delta.Indices()
	for k := 0; k < idx.Size(); k++ {
		i := idx.Index(k)
		xs[i] += u.val * ds[i]
	}
}

// ClearUpdate resets alpha to zero and empties delta.
func (u *Update) ClearUpdate() {
	u.val = 0
	u.delta.Clear()
}

// Clear zeroes x and resets the pending update.
func (u *Update) Clear() {
	u.x.Clear()
	u.ClearUpdate()
}

// ReDim resizes x and delta together, preserving prefixes.
func (u *Update) ReDim(n int) {
	u.x.ReDim(n)
	u.delta.ReDim(n)
}
