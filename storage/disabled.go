package storage

import (
	"context"
	"errors"
	"io"
)

var ErrUploadsDisabled = errors.New("object storage is not configured")

type disabledUploader struct{}

// NewDisabledUploader is used when the R2 environment variables are absent.
// Logo uploads fail cleanly and logo URLs stay empty.
func NewDisabledUploader() FileUploader {
	return disabledUploader{}
}

func (disabledUploader) Upload(ctx context.Context, key string, contentType string, reader io.Reader) (*UploadResult, error) {
	return nil, ErrUploadsDisabled
}

func (disabledUploader) Delete(ctx context.Context, key string) error {
	return ErrUploadsDisabled
}

func (disabledUploader) GetPublicURL(key string) string {
	return ""
}
