// Package utils provides loose value conversions for data that arrives from
// external JSON (indexer payloads, command options) where the same field may
// be encoded as a string, a number or a bool.
package utils
