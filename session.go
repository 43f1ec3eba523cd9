// SPDX-License-Identifier: EPL-2.0

package pitchpractice

import (
	"fmt"
	"log/slog"

	"github.com/ik5/pitchpractice/loader"
	"github.com/ik5/pitchpractice/score"
	"github.com/ik5/pitchpractice/stream"
	"github.com/ik5/pitchpractice/timedbuf"
	"github.com/ik5/pitchpractice/transport"
)

// Session is one practice take: a score length, the recording buffer and
// the recorder, player and transport clock that share it.
type Session struct {
	cfg          Config
	log          *slog.Logger
	scoreSeconds float64

	buf    *timedbuf.Buffer
	loader *loader.Loader
	clock  *transport.Clock
	rec    *stream.Recorder
	player *stream.Player
}

// NewSession sizes an empty buffer for scoreSeconds of audio. A zero score
// length falls back to cfg.DefaultDuration.
func NewSession(cfg Config, scoreSeconds float64) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if !finite(scoreSeconds) || scoreSeconds < 0 {
		return nil, fmt.Errorf("%v: %w", scoreSeconds, ErrInvalidScoreLength)
	}

	expected := scoreSeconds
	if expected == 0 {
		expected = cfg.DefaultDuration
	}

	opts := []timedbuf.Option{timedbuf.WithMaxDuration(cfg.MaxDuration)}

	buf, err := timedbuf.New(expected, cfg.SampleRate, opts...)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	ld, err := loader.New(loader.DefaultRegistry(), cfg.SampleRate, opts...)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	s := &Session{
		cfg:          cfg,
		log:          cfg.logger(),
		scoreSeconds: scoreSeconds,
		buf:          buf,
		loader:       ld,
		clock:        transport.New(),
	}
	if err := s.attach(); err != nil {
		return nil, err
	}

	s.log.Debug("session created",
		slog.Float64("score_seconds", scoreSeconds),
		slog.Int("sample_rate", cfg.SampleRate),
		slog.Int("capacity", buf.Capacity()))

	return s, nil
}

// NewSessionFromScore reads the MIDI file at midiPath and sizes the session
// from its length.
func NewSessionFromScore(cfg Config, midiPath string) (*Session, error) {
	seconds, err := score.DurationFile(midiPath)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	cfg.logger().Info("score loaded", slog.String("path", midiPath), slog.Float64("seconds", seconds))
	return NewSession(cfg, seconds)
}

func (s *Session) attach() error {
	rec, err := stream.NewRecorder(s.buf, s.cfg.SampleRate)
	if err != nil {
		return fmt.Errorf("%w", err)
	}
	player, err := stream.NewPlayer(s.buf, s.cfg.SampleRate)
	if err != nil {
		return fmt.Errorf("%w", err)
	}

	s.rec, s.player = rec, player
	return nil
}

// LoadUserAudio replaces the recording with the decoded content of the file
// at path. On failure the current recording is left untouched.
func (s *Session) LoadUserAudio(path string) error {
	samples, err := s.loader.DecodeFile(path)
	if err != nil {
		s.log.Warn("user audio rejected", slog.String("path", path), slog.Any("error", err))
		return fmt.Errorf("%w", err)
	}

	if err := s.buf.Replace(samples); err != nil {
		return fmt.Errorf("%w", err)
	}

	s.log.Info("user audio loaded",
		slog.String("path", path),
		slog.Int("samples", len(samples)),
		slog.Duration("duration", s.buf.Duration()))
	return nil
}

// Export writes the recording to path as a mono 16-bit WAV.
func (s *Session) Export(path string) error {
	if err := loader.ExportFile(path, s.buf); err != nil {
		return fmt.Errorf("%w", err)
	}

	s.log.Info("recording exported", slog.String("path", path), slog.Duration("duration", s.buf.Duration()))
	return nil
}

// StartRecording points the recorder at the current transport position.
func (s *Session) StartRecording() error {
	if err := s.rec.Start(s.clock.Position()); err != nil {
		return fmt.Errorf("%w", err)
	}
	return nil
}

// Record stores chunk at the recorder cursor and advances it.
func (s *Session) Record(chunk []float32) error {
	return s.recorded(func() error { return s.rec.Write(chunk) })
}

// RecordBytes is Record for little-endian float32 capture data.
func (s *Session) RecordBytes(p []byte) error {
	return s.recorded(func() error { return s.rec.WriteBytes(p) })
}

func (s *Session) recorded(write func() error) error {
	before := s.buf.Capacity()
	if err := write(); err != nil {
		return fmt.Errorf("%w", err)
	}

	if after := s.buf.Capacity(); after != before {
		s.log.Debug("buffer grown",
			slog.Int("from", before),
			slog.Int("to", after),
			slog.Float64("position", s.rec.Position()))
	}
	return nil
}

// SeekPlayback moves the transport and the player to seconds.
func (s *Session) SeekPlayback(seconds float64) error {
	if err := s.clock.Seek(seconds); err != nil {
		return fmt.Errorf("%w", err)
	}
	if err := s.player.Seek(seconds); err != nil {
		return fmt.Errorf("%w", err)
	}
	return nil
}

// Length is the extent of the session in seconds: the longer of the score
// and the recording.
func (s *Session) Length() float64 {
	return max(s.scoreSeconds, s.buf.Seconds())
}

// Config returns the configuration the session was created with.
func (s *Session) Config() Config { return s.cfg }

// ScoreSeconds is the score length, 0 when the session has no score.
func (s *Session) ScoreSeconds() float64 { return s.scoreSeconds }

// Buffer is the recording shared by the recorder and the player.
func (s *Session) Buffer() *timedbuf.Buffer { return s.buf }

// Recorder writes into Buffer. Writes made through it directly are not logged.
func (s *Session) Recorder() *stream.Recorder { return s.rec }

// Player streams Buffer to an output device.
func (s *Session) Player() *stream.Player { return s.player }

// Transport is the session clock.
func (s *Session) Transport() *transport.Clock { return s.clock }

// Loader decodes files at the session sample rate.
func (s *Session) Loader() *loader.Loader { return s.loader }
