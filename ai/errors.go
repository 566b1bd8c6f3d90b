package ai

import "errors"

// ErrModelUnavailable indicates the embedding or suggestion backend could not
// be reached or returned a transport-level failure. Callers that support a
// degraded mode can test for it with errors.Is.
var ErrModelUnavailable = errors.New("model unavailable")
