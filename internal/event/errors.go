package event

import "errors"

// ErrEventNotFound signals that no event matched the request.
var ErrEventNotFound = errors.New("event not found")
