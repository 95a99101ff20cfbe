package usecase

import "errors"

var (
	// ErrMonsterNotFound is returned when no monster has the requested slug.
	ErrMonsterNotFound = errors.New("monster not found")

	// ErrInvalidRecord is returned when a seed record fails decoding or validation.
	ErrInvalidRecord = errors.New("invalid monster record")
)
