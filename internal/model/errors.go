package model

import "errors"

// Storage-level outcomes shared by both backends. Services turn them into
// client-facing apperr values.
var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("duplicate record")
)
