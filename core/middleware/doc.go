// Package middleware contains HTTP middleware for the Fiber application.
//
// # Components
//
//   - auth: API key validation (X-API-Key header or api_key query) for every
//     route except the configured public prefixes.
//   - rayid: a unique request id (RayID) per request, stored in fiber locals
//     for logger.WithRayID and echoed in the X-Ray-ID response header.
//
// RayID is registered first so every later log line carries it.
package middleware
