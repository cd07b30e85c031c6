// Package export packages a finished infographic for download.
package export

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"infographic/internal/domain"
	"infographic/internal/render"
	"infographic/pkg/zip"
)

const (
	HTMLName       = "infographic.html"
	JSONName       = "infographic.json"
	BackgroundName = "background.png"
)

// Bundle builds a zip with the rendered page, the outline as JSON and, when
// the background is an inline image, the decoded background.
func Bundle(r *render.Renderer, data domain.Infographic, bg domain.Background, now time.Time) ([]byte, error) {
	var page bytes.Buffer
	if err := r.RenderPage(&page, data, bg); err != nil {
		return nil, fmt.Errorf("export: render: %w", err)
	}
	outline, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("export: encode outline: %w", err)
	}

	assets := []zip.Asset{
		{Filename: HTMLName, MIME: "text/html", Data: page.Bytes()},
		{Filename: JSONName, MIME: "application/json", Data: outline},
	}
	if img, ok := DecodeDataURI(bg.URI); ok {
		assets = append(assets, zip.Asset{Filename: BackgroundName, MIME: "image/png", Data: img})
	}
	return zip.ArchiveAssets(assets, now)
}

// DecodeDataURI returns the payload of a base64 image data URI.
func DecodeDataURI(uri string) ([]byte, bool) {
	if !strings.HasPrefix(uri, "data:image/") {
		return nil, false
	}
	idx := strings.Index(uri, ";base64,")
	if idx < 0 {
		return nil, false
	}
	raw, err := base64.StdEncoding.DecodeString(uri[idx+len(";base64,"):])
	if err != nil || len(raw) == 0 {
		return nil, false
	}
	return raw, true
}
