package domain

import "errors"

// ErrNotFound signals that a requested entity does not exist.
var ErrNotFound = errors.New("raumbuch: not found")
