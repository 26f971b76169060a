// Package uploadsvc stores uploaded files and returns the URL they are served from.
package uploadsvc

import (
	"path"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gurumantra/backend/core"
)

// objectName makes a collision-resistant name: "<unix millis>-<base name>".
func objectName(filename string, now time.Time) string {
	base := filepath.Base(strings.ReplaceAll(filename, "\\", "/"))
	base = strings.Map(func(r rune) rune {
		if r == ' ' || r == '/' {
			return '_'
		}
		return r
	}, core.CleanString(base))
	if base == "" || base == "." {
		base = "file"
	}
	return strconv.FormatInt(now.UnixMilli(), 10) + "-" + base
}

func joinURL(base, name string) string {
	if strings.Contains(base, "://") {
		return strings.TrimRight(base, "/") + "/" + name
	}
	return path.Join("/", base, name)
}
