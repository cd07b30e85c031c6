package zip

import (
	"archive/zip"
	"bytes"
	"io"
	"testing"
	"time"
)

func TestArchiveAssets(t *testing.T) {
	data, err := ArchiveAssets([]Asset{
		{Filename: "infographic.html", Data: []byte("<html></html>")},
		{Filename: "/nested/infographic.json", Data: []byte("{}")},
		{Filename: "empty.png"},
	}, time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC))
	if err != nil {
		t.Fatalf("ArchiveAssets() error = %v", err)
	}

	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("open archive: %v", err)
	}
	if len(zr.File) != 2 {
		t.Fatalf("files = %d, want 2", len(zr.File))
	}
	if zr.File[1].Name != "nested/infographic.json" {
		t.Fatalf("name = %q", zr.File[1].Name)
	}
	rc, err := zr.File[0].Open()
	if err != nil {
		t.Fatalf("open entry: %v", err)
	}
	defer rc.Close()
	body, _ := io.ReadAll(rc)
	if string(body) != "<html></html>" {
		t.Fatalf("body = %q", body)
	}
}

func TestArchiveAssetsRejects(t *testing.T) {
	tests := []struct {
		name   string
		assets []Asset
	}{
		{name: "nothing", assets: nil},
		{name: "traversal", assets: []Asset{{Filename: "../etc/passwd", Data: []byte("x")}}},
		{name: "duplicate", assets: []Asset{{Filename: "a", Data: []byte("1")}, {Filename: "a", Data: []byte("2")}}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := ArchiveAssets(tc.assets, time.Now()); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}
