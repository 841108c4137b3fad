// SPDX-License-Identifier: MIT
// Package vec: sentinel error set.
// This file defines ONLY package-level sentinel errors used across the
// vec package. Callers match them via errors.Is; wrapping with context is
// done at outer boundaries with fmt.Errorf("ctx: %w", ErrX).

package vec

import "errors"

var (
	// ErrDimensionMismatch indicates incompatible dimensions between two
	// operands, e.g. Add over vectors of different length.
	ErrDimensionMismatch = errors.New("vec: dimension mismatch")

	// ErrCapacityExceeded indicates that a Sparse vector ran out of its
	// declared capacity; enlarge it with SetMax before adding.
	ErrCapacityExceeded = errors.New("vec: sparse capacity exceeded")

	// ErrDuplicateIndex indicates that a Sparse vector holds the same
	// index twice; the Add contract was violated by the caller.
	ErrDuplicateIndex = errors.New("vec: duplicate sparse index")

	// ErrNegativeIndex indicates a negative position was supplied where a
	// nonnegative one is required.
	ErrNegativeIndex = errors.New("vec: negative index")
)
