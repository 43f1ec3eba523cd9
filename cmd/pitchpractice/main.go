// SPDX-License-Identifier: EPL-2.0

// Command pitchpractice records a take against a MIDI score, plays it back
// and exports it as WAV.
//
//	pitchpractice -score etude.mid -record 30s -out take.wav
//	pitchpractice -load take.mp3 -play
//	pitchpractice -load take.ogg -rate 8000 -out take8k.wav
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ik5/pitchpractice"
)

type options struct {
	score   string
	load    string
	out     string
	record  time.Duration
	at      float64
	play    bool
	verbose bool

	cfg pitchpractice.Config
}

var errNothingToDo = errors.New("nothing to do: pass -record, -play or -out")

func parseFlags(args []string, output io.Writer) (options, error) {
	opts := options{cfg: pitchpractice.DefaultConfig()}

	fs := flag.NewFlagSet("pitchpractice", flag.ContinueOnError)
	fs.SetOutput(output)

	fs.StringVar(&opts.score, "score", "", "MIDI file whose length sizes the recording")
	fs.StringVar(&opts.load, "load", "", "audio file (wav, mp3, ogg, aiff) to start from")
	fs.StringVar(&opts.out, "out", "", "write the recording to this WAV file")
	fs.DurationVar(&opts.record, "record", 0, "record from the default input for this long")
	fs.Float64Var(&opts.at, "at", 0, "transport position in seconds where recording and playback start")
	fs.BoolVar(&opts.play, "play", false, "play the recording through the default output")
	fs.BoolVar(&opts.verbose, "v", false, "debug logging")
	fs.IntVar(&opts.cfg.SampleRate, "rate", opts.cfg.SampleRate, "session sample rate in Hz")
	fs.IntVar(&opts.cfg.ChunkSize, "chunk", opts.cfg.ChunkSize, "samples per device callback")
	fs.Float64Var(&opts.cfg.DefaultDuration, "default-duration", opts.cfg.DefaultDuration, "buffer length in seconds when there is no score")
	fs.Float64Var(&opts.cfg.MaxDuration, "max-duration", 0, "stop growing the recording past this many seconds (0 = unbounded)")

	if err := fs.Parse(args); err != nil {
		return opts, err
	}
	if fs.NArg() > 0 {
		return opts, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}
	if opts.record <= 0 && !opts.play && opts.out == "" {
		return opts, errNothingToDo
	}
	if opts.record < 0 {
		return opts, fmt.Errorf("record duration %v must not be negative", opts.record)
	}
	if err := opts.cfg.Validate(); err != nil {
		return opts, err
	}
	return opts, nil
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func main() {
	opts, err := parseFlags(os.Args[1:], os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	log := newLogger(os.Stderr, opts.verbose)
	opts.cfg.Logger = log

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, opts, log); err != nil {
		log.Error("pitchpractice failed", slog.Any("error", err))
		os.Exit(1)
	}
}

func newSession(opts options) (*pitchpractice.Session, error) {
	if opts.score != "" {
		return pitchpractice.NewSessionFromScore(opts.cfg, opts.score)
	}
	return pitchpractice.NewSession(opts.cfg, 0)
}

func run(ctx context.Context, opts options, log *slog.Logger) error {
	s, err := newSession(opts)
	if err != nil {
		return err
	}

	if opts.load != "" {
		if err := s.LoadUserAudio(opts.load); err != nil {
			return err
		}
	}

	if err := s.SeekPlayback(opts.at); err != nil {
		return err
	}

	var playing <-chan struct{}
	if opts.play {
		done, err := startPlayback(s, log)
		if err != nil {
			return err
		}
		defer stopPlayback()
		playing = done
	}

	if opts.record > 0 {
		if err := record(ctx, s, opts.record, log); err != nil {
			return err
		}
	} else if playing != nil {
		select {
		case <-playing:
		case <-ctx.Done():
		}
	}

	log.Info("session done",
		slog.Float64("length_seconds", s.Length()),
		slog.Int("samples", s.Buffer().Capacity()))

	if opts.out != "" {
		if err := s.Export(opts.out); err != nil {
			return err
		}
	}
	return nil
}
