// Package logger builds *slog.Logger instances for the service.
//
// New applies functional options over production-safe defaults (JSON, INFO,
// stdout). WithEnvironment switches to readable text output with DEBUG level
// outside production. Context extractors registered with
// WithContextExtractors run on every record, which is how request ids reach
// the log lines emitted deep inside handlers:
//
//	log := logger.New(
//		logger.WithEnvironment(environment.Production, "learn"),
//		logger.WithContextExtractors(requestid.LoggerExtractor()),
//	)
//	log.InfoContext(r.Context(), "submission received", logger.Route("/api/contact"))
//
// The attribute helpers in attr.go keep key names consistent across packages.
package logger
