package lp

import (
	"github.com/katalvlaran/splx/vec"
)

// AddCol appends a structural variable with objective coefficient obj,
// bounds [lo, up] and the given sparse column over existing rows.
// Returns the new column index.
// Complexity: O(nnz(col)).
func (m *Model) AddCol(obj, lo float64, col *vec.Sparse, up float64) (int, error) {
	if err := checkBounds(lo, up); err != nil {
		return 0, err
	}
	if err := checkSparse(col, m.NumRows()); err != nil {
		return 0, err
	}
	k, err := m.cols.Add(col)
	if err != nil {
		return 0, err
	}
	j := len(m.keys)
	m.keys = append(m.keys, k)
	m.obj.ReDim(j + 1)
	m.lower.ReDim(j + 1)
	m.upper.ReDim(j + 1)
	m.obj.Set(j, obj)
	m.lower.Set(j, lo)
	m.upper.Set(j, up)
	m.version++

	return j, nil
}

// AddRow appends a constraint row lhs <= row·x <= rhs. The row's entries
// name column indices and are scattered into the column vectors.
// Returns the new row index.
// Complexity: O(nnz(row)).
func (m *Model) AddRow(lhs float64, row *vec.Sparse, rhs float64) (int, error) {
	if err := checkBounds(lhs, rhs); err != nil {
		return 0, err
	}
	if err := checkSparse(row, m.NumCols()); err != nil {
		return 0, err
	}
	r := m.NumRows()
	for k := 0; k < row.Size(); k++ {
		j := row.Index(k)
		if err := m.cols.AppendEntry(m.keys[j], r, row.Value(k)); err != nil {
			return 0, err
		}
	}
	m.lhs.ReDim(r + 1)
	m.rhs.ReDim(r + 1)
	m.lhs.Set(r, lhs)
	m.rhs.Set(r, rhs)
	m.version++

	return r, nil
}

// RemoveCol deletes column j. The last column moves into position j, so
// only the former last index is renumbered (to j), exactly as the
// arena's swap-with-tail removal does; the arena key of the moved column
// is untouched.
// Complexity: O(1) plus a possible arena compaction.
func (m *Model) RemoveCol(j int) error {
	n := m.NumCols()
	if j < 0 || j >= n {
		return ErrIndexOutOfRange
	}
	if err := m.cols.Remove(m.keys[j]); err != nil {
		return err
	}
	last := n - 1
	m.keys[j] = m.keys[last]
	m.keys = m.keys[:last]
	m.obj.Set(j, m.obj.At(last))
	m.lower.Set(j, m.lower.At(last))
	m.upper.Set(j, m.upper.At(last))
	m.obj.ReDim(last)
	m.lower.ReDim(last)
	m.upper.ReDim(last)
	m.version++

	return nil
}

// RemoveRow deletes row r. The last row is renumbered to r, and every
// column is rewritten without the victim entry.
// Complexity: O(nnz(A)).
func (m *Model) RemoveRow(r int) error {
	nRows := m.NumRows()
	if r < 0 || r >= nRows {
		return ErrIndexOutOfRange
	}
	last := nRows - 1
	for _, key := range m.keys {
		view, err := m.cols.ColView(key)
		if err != nil {
			return err
		}
		rebuilt := vec.NewSparse(view.Size())
		changed := false
		for k := 0; k < view.Size(); k++ {
			row, val := view.Index(k), view.Value(k)
			switch row {
			case r:
				changed = true

				continue
			case last:
				row = r
				changed = true
			}
			_ = rebuilt.Add(row, val)
		}
		if !changed {
			continue
		}
		if err = m.cols.ReplaceCol(key, rebuilt); err != nil {
			return err
		}
	}
	m.lhs.Set(r, m.lhs.At(last))
	m.rhs.Set(r, m.rhs.At(last))
	m.lhs.ReDim(last)
	m.rhs.ReDim(last)
	m.version++

	return nil
}

// ChangeObj overwrites the objective coefficient of column j.
func (m *Model) ChangeObj(j int, v float64) error {
	if j < 0 || j >= m.NumCols() {
		return ErrIndexOutOfRange
	}
	m.obj.Set(j, v)
	m.version++

	return nil
}

// ChangeBounds overwrites the bounds of column j.
func (m *Model) ChangeBounds(j int, lo, up float64) error {
	if j < 0 || j >= m.NumCols() {
		return ErrIndexOutOfRange
	}
	if err := checkBounds(lo, up); err != nil {
		return err
	}
	m.lower.Set(j, lo)
	m.upper.Set(j, up)
	m.version++

	return nil
}

// ChangeSides overwrites the range of row r.
func (m *Model) ChangeSides(r int, lhs, rhs float64) error {
	if r < 0 || r >= m.NumRows() {
		return ErrIndexOutOfRange
	}
	if err := checkBounds(lhs, rhs); err != nil {
		return err
	}
	m.lhs.Set(r, lhs)
	m.rhs.Set(r, rhs)
	m.version++

	return nil
}

// ChangeSense flips the optimization direction.
func (m *Model) ChangeSense(s Sense) {
	if m.sense == s {
		return
	}
	m.sense = s
	m.version++
}
