// Package storage provides an abstraction layer for object storage services.
//
// It wraps the MinIO Go client behind the Client interface so services can be
// tested with core/storage/mocks. The validator keeps its rule snapshot in the
// bucket (rules/current.json by default).
//
// PutJSON and GetBytes cover the common upload and download paths.
//
// # Usage
//
//	client, err := storage.NewClient(cfg.Storage)
//	exists, err := client.BucketExists(ctx, cfg.Storage.Bucket)
package storage
