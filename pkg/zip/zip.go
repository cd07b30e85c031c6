package zip

import (
	"archive/zip"
	"bytes"
	"errors"
	"fmt"
	"path"
	"strings"
	"time"
)

type Asset struct {
	Filename string
	MIME     string
	Data     []byte
}

// ArchiveAssets deflates assets into one archive. Empty assets are skipped
// and duplicate names are rejected.
func ArchiveAssets(assets []Asset, modified time.Time) ([]byte, error) {
	buf := &bytes.Buffer{}
	zw := zip.NewWriter(buf)
	seen := make(map[string]struct{}, len(assets))
	for _, asset := range assets {
		if len(asset.Data) == 0 {
			continue
		}
		name := path.Clean(strings.TrimLeft(strings.ReplaceAll(asset.Filename, "\\", "/"), "/"))
		if name == "." || strings.HasPrefix(name, "../") {
			return nil, fmt.Errorf("zip: invalid name %q", asset.Filename)
		}
		if _, dup := seen[name]; dup {
			return nil, fmt.Errorf("zip: duplicate name %q", name)
		}
		seen[name] = struct{}{}

		w, err := zw.CreateHeader(&zip.FileHeader{Name: name, Method: zip.Deflate, Modified: modified})
		if err != nil {
			return nil, fmt.Errorf("zip: create %s: %w", name, err)
		}
		if _, err := w.Write(asset.Data); err != nil {
			return nil, fmt.Errorf("zip: write %s: %w", name, err)
		}
	}
	if len(seen) == 0 {
		return nil, errors.New("zip: nothing to archive")
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("zip: close: %w", err)
	}
	return buf.Bytes(), nil
}
