// SPDX-License-Identifier: EPL-2.0

package score

import "errors"

var (
	// ErrUnsupportedTimeFormat is returned for SMPTE-timed files.
	ErrUnsupportedTimeFormat = errors.New("only metric (ticks per quarter note) time format is supported")

	// ErrInvalidScore is returned when the input cannot be parsed as a
	// Standard MIDI File.
	ErrInvalidScore = errors.New("invalid MIDI file")
)
