// SPDX-License-Identifier: EPL-2.0

// Package audio provides the streaming primitives used to turn a decoded file
// into the flat mono samples a practice buffer stores.
//
// # Source Interface
//
// Every decoder in formats/ returns a Source:
//
//	type Source interface {
//	    SampleRate() int
//	    Channels() int
//	    ReadSamples(dst []float32) (int, error)
//	    BufSize() int
//	    Close() error
//	}
//
// Samples are interleaved float32 values in [-1.0, 1.0]. ReadSamples returns
// io.EOF once the stream is exhausted.
//
// # Pipeline
//
// Resampler converts to the session sample rate with cubic interpolation and
// MonoMixer averages channels. CollectMono chains both and drains the result:
//
//	samples, err := audio.CollectMono(src, 44100, audio.DefaultBufferSize)
//
// # Format Registry
//
// A Registry resolves decoders by format key or by file extension:
//
//	registry := audio.NewRegistry()
//	registry.Register("wav", wav.Decoder{})
//	decoder, ok := registry.ForPath("take1.WAV")
package audio
