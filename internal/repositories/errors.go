package repositories

import "errors"

// ErrNotFound is returned when a lookup matches no row for the requesting
// owner. Callers use errors.Is to distinguish it from store failures.
var ErrNotFound = errors.New("record not found")
