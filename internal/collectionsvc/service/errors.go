package service

import "errors"

// Sentinel errors the handlers translate to HTTP statuses. Wrapped
// causes are logged at the service layer and never reach the client.
var (
	ErrNotFound     = errors.New("not found")
	ErrValidation   = errors.New("invalid input")
	ErrConflict     = errors.New("already exists")
	ErrUnauthorized = errors.New("unauthorized")
	ErrUpstream     = errors.New("upstream service failure")
)
