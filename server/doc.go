// Package server runs the HTTP surface: a Gin engine behind
// handler-level middleware (CORS, body size limit), served
// over HTTP/1.1 and h2c, or over HTTPS when server.tls is configured.
//
// CORS and the body limit wrap the whole handler so that they also apply to
// requests no route matches. Gin-level middleware (server/middleware)
// handles panic recovery, request IDs, tracing and request logging. The
// bearer-token gate is applied per route group by the API package.
//
// Unmatched routes answer 404 {"error":"Route not found"}.
package server
