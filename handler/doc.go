// Package handler adapts typed request handlers to net/http.
//
// A HandlerFunc receives a Context and a request value R that Wrap fills in
// with the configured binder. It returns a Response, which Wrap renders.
// Any failure along the way is passed to an ErrorHandler, so every route can
// decide how its own errors look on the wire.
//
//	h := handler.Wrap(
//		func(ctx handler.Context, req Form) handler.Response {
//			return handler.JSON(result)
//		},
//		handler.WithBinder[Form](binder.JSONObject(0)),
//		handler.WithErrorHandler[Form](onError),
//	)
package handler
