// SPDX-License-Identifier: MIT
// Package lp: sentinel error set.

package lp

import "errors"

var (
	// ErrBoundReversal indicates lower > upper on a column, or lhs > rhs
	// on a row (beyond the infinity sentinel).
	ErrBoundReversal = errors.New("lp: reversed bounds")

	// ErrDuplicateIndex indicates a supplied sparse vector names the same
	// position twice.
	ErrDuplicateIndex = errors.New("lp: duplicate index in sparse vector")

	// ErrIndexOutOfRange indicates a row or column index outside the
	// current model dimensions.
	ErrIndexOutOfRange = errors.New("lp: index out of range")

	// ErrBadFormat indicates a malformed serialized model.
	ErrBadFormat = errors.New("lp: malformed model file")
)
