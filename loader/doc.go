// SPDX-License-Identifier: EPL-2.0

// Package loader builds timed buffers from encoded audio files and writes
// them back out as WAV.
//
// A file is decoded by the codec registered for its extension, resampled
// to the buffer's rate and mixed down to mono:
//
//	buf, err := loader.LoadFile("take.mp3", 44100)
//	if errors.Is(err, loader.ErrDecodeFailure) {
//	    // the file exists but the codec rejected it
//	}
//
// Any failure leaves the caller without a buffer; nothing is partially
// loaded.
package loader
