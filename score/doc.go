// SPDX-License-Identifier: EPL-2.0

// Package score measures Standard MIDI Files with gitlab.com/gomidi/midi/v2.
//
// A practice session sizes its recording buffer from the score, so the only
// thing read here is how long the score plays.
package score
