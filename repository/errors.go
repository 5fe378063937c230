package repository

import "errors"

// Store-level sentinel errors. Implementations map their driver's failures
// onto these so services never see driver types.
var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("duplicate key")
)
