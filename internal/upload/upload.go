// Package upload stores uploaded profile images on local disk under
// server-generated names and maps those names to their static URLs.
package upload

import (
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Sink 是上傳檔案的落地位置
type Sink interface {
	Store(r io.Reader, originalName string) (string, error)
	URLFor(name string) string
}

// Dir is a Sink backed by a single directory.
type Dir struct {
	root       string
	staticRoot string
}

var (
	timeNow = time.Now
	newUUID = uuid.NewString
)

// NewDir 建立（必要時新增）上傳目錄；staticRoot 為對外提供靜態檔案的路徑前綴
func NewDir(root, staticRoot string) (*Dir, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("upload: create dir: %w", err)
	}
	return &Dir{root: root, staticRoot: staticRoot}, nil
}

// Root returns the directory files are written to.
func (d *Dir) Root() string { return d.root }

// Store writes r under a new unique name and returns that name. The file is
// created exclusively, so an existing file is never overwritten.
func (d *Dir) Store(r io.Reader, originalName string) (string, error) {
	name := generateName(originalName)
	f, err := os.OpenFile(filepath.Join(d.root, name), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("upload: create %s: %w", name, err)
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		os.Remove(f.Name())
		return "", fmt.Errorf("upload: write %s: %w", name, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return "", fmt.Errorf("upload: close %s: %w", name, err)
	}
	return name, nil
}

// URLFor 回傳檔案對外的靜態路徑
func (d *Dir) URLFor(name string) string {
	return path.Join("/", d.staticRoot, name)
}

// Exists reports whether name is a regular file in the directory.
func (d *Dir) Exists(name string) bool {
	if name == "" || name != filepath.Base(name) {
		return false
	}
	info, err := os.Stat(filepath.Join(d.root, name))
	if err != nil {
		return false
	}
	return info.Mode().IsRegular()
}

// generateName 產生 <毫秒時間戳>-<8 碼 uuid>-<清理後原始檔名>
func generateName(originalName string) string {
	id := strings.ReplaceAll(newUUID(), "-", "")
	if len(id) > 8 {
		id = id[:8]
	}
	return fmt.Sprintf("%d-%s-%s", timeNow().UnixMilli(), id, Sanitize(originalName))
}

// Sanitize strips any directory part of name and replaces every rune outside
// [A-Za-z0-9._-] with '_'.
func Sanitize(name string) string {
	name = filepath.Base(strings.ReplaceAll(name, `\`, "/"))
	if name == "." || name == "/" || name == ".." {
		name = ""
	}
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '.', r == '_', r == '-':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	if b.Len() == 0 {
		return "upload"
	}
	return b.String()
}
