// Package storage provides an abstraction layer for S3-compatible object
// storage.
//
// It wraps the MinIO Go client behind the Client interface so the rule
// configuration store and the integrity checks can be tested against the
// mock in core/storage/mocks. Both AWS S3 and self-hosted MinIO work.
//
// GetObject reports a missing object as ErrNotFound up front instead of
// failing on the first read.
//
// # Usage
//
//	client, err := storage.NewClient(cfg.Storage)
//	exists, err := client.BucketExists(ctx, cfg.Storage.Bucket)
package storage
