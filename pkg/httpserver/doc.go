// Package httpserver runs an http.Handler with sane timeouts and graceful
// shutdown.
//
// Run binds the listener synchronously, so a bad address is reported as
// ErrStart before any request is accepted, then serves until the context is
// cancelled or the process receives SIGINT/SIGTERM. Shutdown drains
// in-flight requests for at most the configured shutdown timeout; with the
// mail relay being called inside the request, that timeout should exceed the
// relay's typical round-trip.
//
//	srv := httpserver.NewFromConfig(cfg, httpserver.WithLogger(log))
//	if err := srv.Run(ctx, router); err != nil {
//		log.Error("server stopped", logger.Error(err))
//	}
package httpserver
