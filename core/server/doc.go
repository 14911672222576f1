// Package server holds the HTTP server configuration.
//
// The start command builds the Fiber application from it: the listen
// address, the API key required by the auth middleware, and the read and
// write timeouts.
package server
