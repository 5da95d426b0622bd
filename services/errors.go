package services

import "errors"

// Handlers match these with errors.Is to pick a status code; anything else
// is treated as an internal failure and only its generic shape leaves the
// process.
var (
	ErrInvalidArgument = errors.New("invalid argument")
	ErrNotFound        = errors.New("not found")
	ErrAlreadyExists   = errors.New("already exists")
	ErrUnauthorized    = errors.New("unauthorized")
)
