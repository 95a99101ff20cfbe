package usecase

import "errors"

var (
	// ErrSpellNotFound is returned when no spell has the requested slug.
	ErrSpellNotFound = errors.New("spell not found")

	// ErrInvalidRecord is returned when a seed record fails decoding or validation.
	ErrInvalidRecord = errors.New("invalid spell record")
)
