package uploadsvc

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/pkg/errors"

	"github.com/gurumantra/backend/core"
)

// DiskService writes uploads under a local directory served by the API at MountPath.
type DiskService struct {
	dir       string
	mountPath string
	now       func() time.Time
}

var _ core.UploadService = (*DiskService)(nil)

func NewDiskService(conf *core.Config) (*DiskService, error) {
	dir := conf.UploadsDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrap(err, "creating uploads dir")
	}
	return &DiskService{dir: dir, mountPath: conf.Uploads.MountPath, now: time.Now}, nil
}

func (svc *DiskService) Dir() string {
	return svc.dir
}

func (svc *DiskService) Store(ctx context.Context, filename string, r io.Reader) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	name := objectName(filename, svc.now())

	f, err := os.OpenFile(filepath.Join(svc.dir, name), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", errors.Wrap(err, "creating upload file")
	}
	if _, err = io.Copy(f, r); err != nil {
		_ = f.Close()
		_ = os.Remove(f.Name())
		return "", errors.Wrap(err, "writing upload file")
	}
	if err = f.Close(); err != nil {
		return "", errors.Wrap(err, "closing upload file")
	}
	return joinURL(svc.mountPath, name), nil
}
