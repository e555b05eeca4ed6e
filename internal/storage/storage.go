// Package storage abstracts the object store that holds uploaded report
// files. Implementations must be safe for concurrent use.
package storage

import "context"

// UploadResult holds the durable references returned by the store.
type UploadResult struct {
	// URL is the public URL of the stored object.
	URL string
	// StorageID is the provider-side identifier, used only for deletion.
	StorageID string
}

// Client is the object storage boundary used by the ingestion pipeline.
type Client interface {
	// Upload stores data under the given logical folder, letting the
	// provider infer the content type from the payload.
	Upload(ctx context.Context, data []byte, folder string) (*UploadResult, error)
	// Delete removes a previously uploaded object by its storage id.
	Delete(ctx context.Context, storageID string) error
}
