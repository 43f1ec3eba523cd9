// SPDX-License-Identifier: EPL-2.0

package main

import (
	"fmt"
	"log/slog"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/speaker"
	"github.com/ik5/pitchpractice"
)

// startPlayback streams the session buffer to the default output from the
// player's cursor. The returned channel closes when the buffer drains.
func startPlayback(s *pitchpractice.Session, log *slog.Logger) (<-chan struct{}, error) {
	cfg := s.Config()

	if err := speaker.Init(beep.SampleRate(cfg.SampleRate), cfg.ChunkSize); err != nil {
		return nil, fmt.Errorf("failed to initialize speaker: %w", err)
	}

	done := make(chan struct{})
	player := s.Player()

	speaker.Play(beep.Seq(player, beep.Callback(func() {
		if err := player.Err(); err != nil {
			log.Warn("playback stopped", slog.Any("error", err))
		}
		close(done)
	})))

	log.Info("playing", slog.Float64("from", player.Position()))
	return done, nil
}

func stopPlayback() {
	speaker.Clear()
	speaker.Close()
}
