// SPDX-License-Identifier: EPL-2.0

package loader

import "errors"

var (
	// ErrDecodeFailure wraps every error raised while decoding a file. The
	// codec's own error stays reachable with errors.Is and errors.As.
	ErrDecodeFailure = errors.New("decode failure")

	// ErrUnsupportedFormat is returned when no decoder is registered for a
	// format or file extension.
	ErrUnsupportedFormat = errors.New("unsupported audio format")
)
