// SPDX-License-Identifier: EPL-2.0

package score

import (
	"fmt"
	"io"
	"os"
	"slices"

	"gitlab.com/gomidi/midi/v2/smf"
)

// DefaultBPM applies until the first tempo event.
const DefaultBPM = 120.0

type tempoChange struct {
	tick uint64
	bpm  float64
}

// Duration reads a Standard MIDI File from r and returns its length in
// seconds: the time of the last event of the longest track, honoring every
// tempo change of every track.
func Duration(r io.Reader) (float64, error) {
	s, err := smf.ReadFrom(r)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrInvalidScore, err)
	}
	return fileDuration(s)
}

// DurationFile is Duration for the file at path.
func DurationFile(path string) (float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("%w", err)
	}
	defer f.Close()

	seconds, err := Duration(f)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", path, err)
	}
	return seconds, nil
}

func fileDuration(s *smf.SMF) (float64, error) {
	ticks, ok := s.TimeFormat.(smf.MetricTicks)
	if !ok {
		return 0, fmt.Errorf("%v: %w", s.TimeFormat, ErrUnsupportedTimeFormat)
	}
	if ticks.Resolution() == 0 {
		return 0, fmt.Errorf("zero resolution: %w", ErrInvalidScore)
	}

	var (
		tempos []tempoChange
		end    uint64
	)
	for _, track := range s.Tracks {
		var abs uint64
		for _, ev := range track {
			abs += uint64(ev.Delta)

			var bpm float64
			if ev.Message.GetMetaTempo(&bpm) && bpm > 0 {
				tempos = append(tempos, tempoChange{tick: abs, bpm: bpm})
			}
		}
		end = max(end, abs)
	}

	// Tracks are merged by tick; within a tick the later track wins.
	slices.SortStableFunc(tempos, func(a, b tempoChange) int {
		switch {
		case a.tick < b.tick:
			return -1
		case a.tick > b.tick:
			return 1
		}
		return 0
	})

	var (
		seconds float64
		at      uint64
		bpm     = DefaultBPM
	)
	for _, tc := range tempos {
		if tc.tick >= end {
			break
		}
		seconds += span(ticks, bpm, tc.tick-at)
		at, bpm = tc.tick, tc.bpm
	}
	seconds += span(ticks, bpm, end-at)

	return seconds, nil
}

func span(ticks smf.MetricTicks, bpm float64, delta uint64) float64 {
	return ticks.Duration(bpm, uint32(delta)).Seconds()
}
