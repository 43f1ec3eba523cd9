// SPDX-License-Identifier: EPL-2.0

package main

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/gen2brain/malgo"
	"github.com/ik5/pitchpractice"
)

// record captures mono float32 from the default input into the session
// until d has elapsed or ctx ends.
func record(ctx context.Context, s *pitchpractice.Session, d time.Duration, log *slog.Logger) error {
	mctx, err := malgo.InitContext(nil, malgo.ContextConfig{}, func(msg string) {
		log.Debug("malgo", slog.String("message", msg))
	})
	if err != nil {
		return fmt.Errorf("failed to initialize audio context: %w", err)
	}
	defer func() {
		_ = mctx.Uninit()
		mctx.Free()
	}()

	cfg := s.Config()

	deviceConfig := malgo.DefaultDeviceConfig(malgo.Capture)
	deviceConfig.Capture.Format = malgo.FormatF32
	deviceConfig.Capture.Channels = 1
	deviceConfig.SampleRate = uint32(cfg.SampleRate)
	deviceConfig.PeriodSizeInFrames = uint32(cfg.ChunkSize)

	var (
		once     sync.Once
		writeErr = make(chan error, 1)
	)
	rec := s.Recorder()

	callbacks := malgo.DeviceCallbacks{
		Data: func(_, input []byte, _ uint32) {
			if err := s.RecordBytes(input); err != nil {
				once.Do(func() { writeErr <- err })
			}
		},
	}

	device, err := malgo.InitDevice(mctx.Context, deviceConfig, callbacks)
	if err != nil {
		return fmt.Errorf("failed to initialize capture device: %w", err)
	}
	defer device.Uninit()

	s.Transport().Play()
	defer s.Transport().Pause()

	if err := s.StartRecording(); err != nil {
		return err
	}
	if err := device.Start(); err != nil {
		return fmt.Errorf("failed to start capture device: %w", err)
	}
	log.Info("recording", slog.Duration("duration", d), slog.Float64("at", rec.Position()))

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
	case <-ctx.Done():
		log.Info("recording interrupted")
	case err = <-writeErr:
	}

	if stopErr := device.Stop(); stopErr != nil {
		log.Warn("failed to stop capture device", slog.Any("error", stopErr))
	}
	if err != nil {
		return fmt.Errorf("recording: %w", err)
	}

	log.Info("recording stopped", slog.Float64("position", rec.Position()))
	return nil
}
