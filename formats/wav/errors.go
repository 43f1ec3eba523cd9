// SPDX-License-Identifier: EPL-2.0

package wav

import "errors"

var (
	ErrNotWavFile = errors.New("not a WAV file")

	// ErrNotPCM is returned for compressed or floating-point WAV encodings.
	ErrNotPCM = errors.New("only integer PCM WAV is supported")

	// ErrInvalidSampleRate is returned when encoding at a rate that is not positive.
	ErrInvalidSampleRate = errors.New("sample rate must be positive")
)
