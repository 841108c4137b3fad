// SPDX-License-Identifier: MIT
// Package colset: sentinel error set.

package colset

import "errors"

var (
	// ErrUnknownKey indicates that a Key does not name a resident column
	// (never issued, already removed, or invalidated by Clear).
	ErrUnknownKey = errors.New("colset: unknown key")

	// ErrNegativeCapacity indicates a negative nonzero reservation.
	ErrNegativeCapacity = errors.New("colset: negative capacity")

	// ErrNegativeIndex indicates a negative row index in an entry.
	ErrNegativeIndex = errors.New("colset: negative row index")
)
