// Package lp holds the problem data of a linear program in the form the
// splx simplex engine consumes:
//
//	minimize (or maximize)  c·x
//	subject to              lhs ≤ A·x ≤ rhs
//	                        lo  ≤   x ≤ up
//
// The constraint matrix A is stored column-wise in a colset.Set — one
// sparse column of length m per structural variable. Objective and the
// four bound vectors are dense. Rows and columns may be added and
// removed after construction; every structural mutation bumps an
// internal version counter so an attached engine can invalidate its
// factorization and basis.
//
// Bounds use the Infinity sentinel: any value of magnitude ≥ Infinity is
// treated as an absent bound.
//
// The package also reads and writes a plain-text serialization of the
// problem (Write / Read) whose round trip reproduces the model exactly.
package lp
