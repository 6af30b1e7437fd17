package domain

import "errors"

// ErrNotFound is returned by document stores for lookups of unknown ids.
var ErrNotFound = errors.New("document not found")
