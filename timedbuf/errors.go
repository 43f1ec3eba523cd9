// SPDX-License-Identifier: EPL-2.0

package timedbuf

import "errors"

var (
	// ErrInvalidDuration is returned for a negative expected or maximum duration.
	ErrInvalidDuration = errors.New("duration must not be negative")

	// ErrNegativeStartTime is returned when a read or write starts before time 0.
	ErrNegativeStartTime = errors.New("start time must not be negative")

	// ErrInvalidSampleRate is returned for a sample rate that is not positive.
	ErrInvalidSampleRate = errors.New("sample rate must be positive")

	// ErrInvalidTime is returned for NaN, infinite or unaddressable times.
	ErrInvalidTime = errors.New("time is not addressable")

	// ErrCapacityExceeded is returned when a write or load would grow the
	// buffer beyond its configured maximum duration.
	ErrCapacityExceeded = errors.New("buffer capacity limit exceeded")
)
