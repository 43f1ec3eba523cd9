// SPDX-License-Identifier: EPL-2.0

package pitchpractice

import "errors"

var (
	// ErrInvalidConfig is returned by Config.Validate and by constructors
	// given a config that fails it.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrInvalidScoreLength is returned for a negative or non-finite score
	// duration.
	ErrInvalidScoreLength = errors.New("score length must be a non-negative number")
)
