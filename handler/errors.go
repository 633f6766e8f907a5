package handler

import "errors"

var (
	// ErrNilResponse indicates a handler returned nil instead of a Response
	ErrNilResponse = errors.New("handler returned nil response")
	// ErrNilHandler indicates Wrap was called without a handler function
	ErrNilHandler = errors.New("handler function is nil")
)
