// SPDX-License-Identifier: EPL-2.0

// Package stream connects a timedbuf.Buffer to live audio.
//
// A Recorder writes capture chunks into the buffer at a moving cursor. A
// Player streams the buffer out as a beep.Streamer. Both may run at the
// same time on the same buffer:
//
//	rec, _ := stream.NewRecorder(buf, 44100)
//	_ = rec.Start(clock.Position())
//	// in the capture callback:
//	_ = rec.WriteBytes(input)
//
//	player, _ := stream.NewPlayer(buf, 44100)
//	speaker.Play(player)
package stream
