// SPDX-License-Identifier: EPL-2.0

// Package wav decodes and encodes WAV files through github.com/go-audio/wav.
//
// Decoder accepts integer PCM at 8, 16, 24 or 32 bits, any channel count and
// any sample rate, and yields float32 samples in [-1.0, 1.0]:
//
//	src, err := wav.Decoder{}.Decode(file)
//
// WriteMono16 stores a mono float32 recording as 16-bit PCM:
//
//	out, _ := os.Create("take.wav")
//	err := wav.WriteMono16(out, 44100, samples)
package wav
