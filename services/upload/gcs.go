package uploadsvc

import (
	"context"
	"io"
	"mime"
	"path/filepath"
	"time"

	"cloud.google.com/go/storage"
	"github.com/pkg/errors"

	"github.com/gurumantra/backend/core"
)

const (
	gcsPublicHost = "https://storage.googleapis.com"
	gcsTimeout    = 2 * time.Minute
)

// GCSService writes uploads to a Google Cloud Storage bucket.
type GCSService struct {
	client *storage.Client
	bucket string
	now    func() time.Time
}

var _ core.UploadService = (*GCSService)(nil)

// NewGCSService uses Application Default Credentials.
func NewGCSService(ctx context.Context, conf *core.Config) (*GCSService, error) {
	if conf.Uploads.Bucket == "" {
		return nil, errors.New("uploads.bucket is required by the gcs engine")
	}
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "creating storage client")
	}
	return &GCSService{client: client, bucket: conf.Uploads.Bucket, now: time.Now}, nil
}

func (svc *GCSService) Store(ctx context.Context, filename string, r io.Reader) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, gcsTimeout)
	defer cancel()

	name := objectName(filename, svc.now())
	w := svc.client.Bucket(svc.bucket).Object(name).NewWriter(ctx)
	if ct := mime.TypeByExtension(filepath.Ext(name)); ct != "" {
		w.ContentType = ct
	}
	if _, err := io.Copy(w, r); err != nil {
		_ = w.Close()
		return "", errors.Wrap(err, "writing object")
	}
	if err := w.Close(); err != nil {
		return "", errors.Wrap(err, "closing object writer")
	}
	return joinURL(gcsPublicHost+"/"+svc.bucket, name), nil
}

func (svc *GCSService) Close() error {
	return svc.client.Close()
}
