// Package binder turns HTTP request bodies into typed values for the
// handler package.
//
// A binder has the signature func(r *http.Request, v any) error and is
// registered with handler.WithBinder. Every failure wraps a sentinel from
// errors.go so error handlers can classify it with errors.Is.
package binder
