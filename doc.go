// SPDX-License-Identifier: EPL-2.0

// Package pitchpractice wires the parts of a pitch practice take together.
//
// A Session owns one mono recording buffer addressed by time. The buffer is
// sized from the length of the reference score and grows when a recording
// runs past it. A recorder writes capture chunks at the transport position
// while a player streams the same buffer back out.
//
// # Quick Start
//
//	cfg := pitchpractice.DefaultConfig()
//	cfg.Logger = slog.Default()
//
//	s, err := pitchpractice.NewSessionFromScore(cfg, "etude.mid")
//	if err != nil {
//	    return err
//	}
//
//	// Start from an earlier take instead of silence.
//	_ = s.LoadUserAudio("take1.wav")
//
//	s.Transport().Play()
//	_ = s.StartRecording()
//	// in the capture callback:
//	_ = s.Recorder().WriteBytes(input)
//
// # Packages
//
//   - timedbuf: the time addressed sample store
//   - audio and formats/...: streaming decoders for WAV, MP3, Ogg Vorbis and AIFF
//   - loader: file to buffer and buffer to WAV
//   - score: MIDI file length
//   - transport: play, pause and seek clock
//   - stream: Recorder and beep Player over a buffer
//
// All parts of a session share Config.SampleRate. Nothing is resampled after
// loading, so a recorder or player at another rate is rejected up front.
package pitchpractice
