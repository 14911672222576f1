// Package discord implements platform.Platform over the Discord REST API
// using a bot token.
//
// Requests share one rate limiter. Rate-limited (429) and server-side (5xx)
// answers are retried with exponential backoff, waiting at least as long as
// the Retry-After header asks.
package discord
