package booking

import "errors"

// ErrUnknownKind is returned for a reservation kind with no table.
var ErrUnknownKind = errors.New("unknown booking kind")
