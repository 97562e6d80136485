package storage

import (
	"bytes"
	"context"
	"path"

	"cloud.google.com/go/storage"

	"github.com/oksasatya/urex-bootcamp/pkg/helpers"
)

const exportPrefix = "exports"

// ExportArchive keeps a copy of every registration export in a GCS bucket.
type ExportArchive struct {
	Client *storage.Client
	Bucket string
}

func NewExportArchive(client *storage.Client, bucket string) *ExportArchive {
	return &ExportArchive{Client: client, Bucket: bucket}
}

// ObjectPath is where an export named filename is stored in the bucket.
func ObjectPath(filename string) string {
	return path.Join(exportPrefix, filename)
}

func (a *ExportArchive) Archive(ctx context.Context, filename, contentType string, body []byte) (string, error) {
	return helpers.UploadObject(ctx, a.Client, a.Bucket, ObjectPath(filename), contentType, bytes.NewReader(body))
}
