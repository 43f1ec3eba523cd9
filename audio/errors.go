// SPDX-License-Identifier: EPL-2.0

package audio

import "errors"

var (
	ErrInvalidDstSize = errors.New("dst size must be multiple of channels")

	// ErrInvalidSampleRate is returned when a pipeline targets a rate that is not positive.
	ErrInvalidSampleRate = errors.New("target sample rate must be positive")

	// ErrNoChannels is returned for a source reporting zero channels.
	ErrNoChannels = errors.New("source has no channels")
)
