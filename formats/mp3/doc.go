// SPDX-License-Identifier: EPL-2.0

// Package mp3 decodes MPEG-1/2 Layer III audio through
// github.com/hajimehoshi/go-mp3.
//
// The decoder always produces interleaved stereo; mono files are duplicated
// to both channels by go-mp3, and audio.MonoMixer folds them back.
package mp3
