package providers

import "errors"

// ErrProviderUnavailable is returned when no usable upstream is configured.
var ErrProviderUnavailable = errors.New("game log provider unavailable")
