// SPDX-License-Identifier: EPL-2.0

package pitchpractice_test

import (
	"fmt"

	"github.com/ik5/pitchpractice"
)

func ExampleNewSession() {
	cfg := pitchpractice.DefaultConfig()
	cfg.SampleRate = 100

	s, err := pitchpractice.NewSession(cfg, 1)
	if err != nil {
		fmt.Println(err)
		return
	}

	_ = s.SeekPlayback(0.5)
	_ = s.StartRecording()
	_ = s.Recorder().Write([]float32{1, 1, 1})

	window, _ := s.Buffer().Read(0.49, 0.53)
	fmt.Println(window)
	fmt.Println(s.Length())
	// Output:
	// [0 1 1 1]
	// 1
}
