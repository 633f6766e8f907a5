package binder

import "errors"

var (
	ErrInvalidJSON  = errors.New("invalid JSON")
	ErrEmptyBody    = errors.New("empty request body")
	ErrBodyTooLarge = errors.New("request body too large")
)
