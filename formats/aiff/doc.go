// SPDX-License-Identifier: EPL-2.0

// Package aiff decodes AIFF files through github.com/go-audio/aiff.
//
// Integer PCM at 8, 16, 24 or 32 bits is supported. Samples are returned as
// float32 values in [-1.0, 1.0].
package aiff
