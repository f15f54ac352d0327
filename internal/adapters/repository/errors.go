package repository

import "errors"

// Sentinel kinds for save document errors.
var (
	ErrNotFound  = errors.New("no saved game")
	ErrCorrupted = errors.New("save document corrupted")
)
