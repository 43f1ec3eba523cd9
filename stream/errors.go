// SPDX-License-Identifier: EPL-2.0

package stream

import "errors"

// ErrSampleRateMismatch is returned when a producer or consumer runs at a
// different rate than the buffer it is attached to.
var ErrSampleRateMismatch = errors.New("sample rate does not match the buffer")
