package backend

import (
	"context"
	"errors"
	"fmt"

	gcs "cloud.google.com/go/storage"
)

// BucketObjects uploads into one GCS bucket and hands back the public
// download URL.
type BucketObjects struct {
	client *gcs.Client
	bucket string
}

func NewBucketObjects(client *gcs.Client, bucket string) *BucketObjects {
	return &BucketObjects{client: client, bucket: bucket}
}

func (o *BucketObjects) UploadFile(ctx context.Context, path string, data []byte, contentType string) (string, error) {
	if o.bucket == "" {
		return "", errors.New("upload bucket not configured")
	}
	w := o.client.Bucket(o.bucket).Object(path).NewWriter(ctx)
	w.ContentType = contentType
	if _, err := w.Write(data); err != nil {
		_ = w.Close()
		return "", fmt.Errorf("upload %s: %w", path, err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("finalize %s: %w", path, err)
	}
	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", o.bucket, path), nil
}
