// Package requestid tags every request with a correlation id.
//
// Middleware reuses a well-formed X-Request-ID header sent by a proxy or the
// frontend and generates a UUIDv4 otherwise. The id is echoed in the response
// header, stored in the request context and, through LoggerExtractor, added
// to every log record written with that context.
package requestid
