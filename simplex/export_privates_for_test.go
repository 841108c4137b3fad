// Test-only exports: the _test.go suffix keeps these helpers out of
// the shipped API while letting the external test package reach pricer
// internals.

package simplex

// Penalty returns the structural-side Devex weight of variable i.
func (d *DevexPricer) Penalty(i int) float64 { return d.penalty.At(i) }

// CoPenalty returns the basic-side Devex weight of position i.
func (d *DevexPricer) CoPenalty(i int) float64 { return d.coPenalty.At(i) }

// SetPenalty overwrites a structural-side Devex weight.
func (d *DevexPricer) SetPenalty(i int, v float64) { d.penalty.Set(i, v) }
