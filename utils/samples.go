// SPDX-License-Identifier: EPL-2.0

package utils

import (
	"encoding/binary"
	"math"
)

// Float32ToInt16 scales x by 32768 and clamps it to the 16-bit PCM range.
// It is the exact inverse of Int16ToFloat32.
func Float32ToInt16(x float32) int16 {
	v := x * 32768.0
	switch {
	case v >= math.MaxInt16:
		return math.MaxInt16
	case v <= math.MinInt16:
		return math.MinInt16
	default:
		return int16(v)
	}
}

// Int16ToFloat32 maps 16-bit PCM to [-1, 1).
func Int16ToFloat32(v int16) float32 {
	return float32(v) / 32768.0
}

// DecodeFloat32LE decodes little-endian IEEE-754 float32 samples from src
// into dst and returns how many were decoded. A trailing partial sample in
// src is ignored.
func DecodeFloat32LE(dst []float32, src []byte) int {
	n := min(len(dst), len(src)/4)
	for i := range n {
		dst[i] = math.Float32frombits(binary.LittleEndian.Uint32(src[4*i:]))
	}
	return n
}

// EncodeFloat32LE is the inverse of DecodeFloat32LE. dst must hold
// 4*len(src) bytes.
func EncodeFloat32LE(dst []byte, src []float32) {
	for i, v := range src {
		binary.LittleEndian.PutUint32(dst[4*i:], math.Float32bits(v))
	}
}
