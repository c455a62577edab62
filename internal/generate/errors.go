package generate

import "errors"

// ErrMissingAPIKey means no backend key is configured. The user must
// reconfigure; retrying cannot help. Checked before any network
// attempt.
var ErrMissingAPIKey = errors.New("generate: api key not configured")

// ErrEmptyInput means the message or profile text was blank after
// trimming. Caller-correctable, no retry.
var ErrEmptyInput = errors.New("generate: empty input")
