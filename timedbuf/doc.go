// SPDX-License-Identifier: EPL-2.0

// Package timedbuf provides a mono sample store addressed by transport time.
//
// A Buffer holds one float32 audio stream at a fixed sample rate. Index 0 is
// time 0 and every read or write is expressed in seconds, which the buffer
// converts to sample indices with floor semantics:
//
//	buf, _ := timedbuf.New(1.0, 100)       // 100 zeroed samples
//	_ = buf.Write([]float32{1, 1, 1}, 0.5) // samples 50..52
//	out, _ := buf.Read(0.49, 0.53)         // [0 1 1 1]
//
// # Growth
//
// A write that runs past the current capacity doubles the capacity until the
// write fits, preserving existing content and zero-filling the new tail.
// Capacity never shrinks. WithMaxDuration bounds the growth for long sessions.
//
// # Concurrency
//
// A recorder goroutine may Write while a playback goroutine calls Read or
// ReadInto. Access to the sample storage is serialized by a read-write lock:
// a reader never observes a partially applied write, and every read returns
// a copy, never a view of the backing array.
//
// # Reads past the end
//
// Read and ReadInto clamp their range into [0, capacity]. Running past the
// end yields fewer samples, or none, rather than an error, so a player may
// briefly overrun at end of stream.
package timedbuf
