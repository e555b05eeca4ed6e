package storage

import (
	"bytes"
	"context"
	"fmt"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"

	"healthmate-server/internal/config"
)

// CloudinaryClient implements Client on top of the Cloudinary upload API.
type CloudinaryClient struct {
	cld *cloudinary.Cloudinary
}

// NewCloudinary creates a Cloudinary-backed storage client. A CLOUDINARY_URL
// style URL wins over the individual credential parameters.
func NewCloudinary(cfg config.CloudinaryConfig) (*CloudinaryClient, error) {
	var (
		cld *cloudinary.Cloudinary
		err error
	)
	if cfg.URL != "" {
		cld, err = cloudinary.NewFromURL(cfg.URL)
	} else {
		cld, err = cloudinary.NewFromParams(cfg.CloudName, cfg.APIKey, cfg.APISecret)
	}
	if err != nil {
		return nil, fmt.Errorf("initializing cloudinary: %w", err)
	}
	return &CloudinaryClient{cld: cld}, nil
}

// Upload stores the payload under folder with resource type auto, so the
// provider sniffs PDFs versus images itself.
func (c *CloudinaryClient) Upload(ctx context.Context, data []byte, folder string) (*UploadResult, error) {
	res, err := c.cld.Upload.Upload(ctx, bytes.NewReader(data), uploader.UploadParams{
		Folder:       folder,
		ResourceType: "auto",
	})
	if err != nil {
		return nil, fmt.Errorf("cloudinary upload: %w", err)
	}
	if res.Error.Message != "" {
		return nil, fmt.Errorf("cloudinary upload: %s", res.Error.Message)
	}
	return &UploadResult{
		URL:       res.SecureURL,
		StorageID: res.PublicID,
	}, nil
}

// Delete destroys the stored object. A "not found" result is treated as
// success so deletes stay retryable.
func (c *CloudinaryClient) Delete(ctx context.Context, storageID string) error {
	res, err := c.cld.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: storageID})
	if err != nil {
		return fmt.Errorf("cloudinary destroy: %w", err)
	}
	if res.Result != "ok" && res.Result != "not found" {
		return fmt.Errorf("cloudinary destroy: unexpected result %q", res.Result)
	}
	return nil
}
