// Package splx is a sequential revised-simplex linear-programming
// solver core: sparse linear algebra, arena-backed matrix storage, and
// a simplex engine with pluggable pricing, ratio testing and
// factorization.
//
// 🚀 What is splx?
//
//	A pure-Go LP solver core that brings together:
//		• Algebra primitives: dense, sparse and semi-sparse vectors with
//		  nonzero-index tracking, and deferred update vectors
//		• Column arena: stable-key sparse column storage with compaction
//		• LP model: two-sided rows, two-sided bounds, live mutation
//		• Engine: revised simplex with ENTER and LEAVE kernels,
//		  Devex/Dantzig pricing, eta-updated LU factorization
//		• Certificates: primal rays and Farkas duals
//
// ✨ Why choose splx?
//
//   - Deterministic – no global state, reproducible pivot sequences
//   - Rock-solid guarantees – sentinel errors, documented invariants
//   - Pure Go core – gonum for the dense kernels, no cgo
//   - Extensible – implement Pricer, RatioTester or Factorizer to swap
//     any collaborator
//
// Everything is organized under four subpackages:
//
//	vec/     — dense, sparse, semi-sparse and update vectors, index sets
//	colset/  — arena of sparse columns with stable keys
//	lp/      — LP problem data and plain-text serialization
//	simplex/ — basis, factorization, pricing and the iteration engine
//
// Quick example:
//
//	m := lp.New()
//	x, _ := m.AddCol(1, 0, vec.NewSparse(0), lp.Infinity)
//	y, _ := m.AddCol(1, 0, vec.NewSparse(0), lp.Infinity)
//	row := vec.NewSparse(2)
//	_ = row.Add(x, 1)
//	_ = row.Add(y, 1)
//	_, _ = m.AddRow(1, row, lp.Infinity) // x + y >= 1
//
//	s := simplex.New()
//	_ = s.Load(m)
//	status, _ := s.Optimize() // OPTIMAL, objective 1
//	_ = status
//
// Dive into DESIGN.md for the component map and the engineering notes.
package splx
