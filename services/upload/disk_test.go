package uploadsvc

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/gurumantra/backend/core"
)

func TestObjectName(t *testing.T) {
	now := time.UnixMilli(1700000000123)
	tests := []struct {
		filename string
		want     string
	}{
		{"avatar.png", "1700000000123-avatar.png"},
		{"../../etc/passwd", "1700000000123-passwd"},
		{`C:\pics\me now.jpg`, "1700000000123-me_now.jpg"},
		{"", "1700000000123-file"},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, objectName(tc.filename, now), tc.filename)
	}
}

func TestDiskService_Store(t *testing.T) {
	dir := t.TempDir()
	conf := &core.Config{Uploads: core.UploadsConfig{Dir: dir, MountPath: "/uploads"}}

	svc, err := NewDiskService(conf)
	if err != nil {
		t.Fatalf("NewDiskService() failed: %v", err)
	}
	svc.now = func() time.Time { return time.UnixMilli(42) }

	url, err := svc.Store(context.Background(), "photo.jpg", strings.NewReader("jpeg bytes"))
	assert.NoError(t, err)
	assert.Equal(t, "/uploads/42-photo.jpg", url)

	content, err := os.ReadFile(filepath.Join(dir, "42-photo.jpg"))
	if assert.NoError(t, err) {
		assert.Equal(t, "jpeg bytes", string(content))
	}

	// same name in the same millisecond is refused, never overwritten
	_, err = svc.Store(context.Background(), "photo.jpg", strings.NewReader("other"))
	assert.Error(t, err)
}
