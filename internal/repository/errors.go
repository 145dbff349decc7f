package repository

import "errors"

// ErrNotFound is returned when a requested product doesn't exist.
// Every backend maps its driver-specific "no rows"/"no documents" error to
// this value so the service layer stays driver agnostic.
var ErrNotFound = errors.New("not found")
