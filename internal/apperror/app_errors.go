package apperror

import "errors"

var (
	ErrGameNotFound = errors.New("game not found")
	ErrInvalidInput = errors.New("invalid input")
)
