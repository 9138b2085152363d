package assistant

import "errors"

// errUnavailable signals that no generative client is configured.
var errUnavailable = errors.New("assistant: no client configured")
