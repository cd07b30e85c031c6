package export

import (
	"archive/zip"
	"bytes"
	"encoding/base64"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"infographic/internal/domain"
	"infographic/internal/render"
)

func outline() domain.Infographic {
	return domain.Infographic{
		Topic:   "Nước",
		Summary: "Nước là nguồn sống.",
		Palette: domain.DefaultPalette,
		Layout:  domain.LayoutConnectedFlow,
		Points: []domain.Point{
			{Title: "Bay hơi", Content: "a"}, {Title: "Ngưng tụ", Content: "b"},
			{Title: "Mưa", Content: "c"}, {Title: "Thấm", Content: "d"},
		},
	}
}

func names(t *testing.T, data []byte) []string {
	t.Helper()
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)
	var out []string
	for _, f := range zr.File {
		out = append(out, f.Name)
	}
	return out
}

func TestBundleWithBackground(t *testing.T) {
	bg := domain.Background{URI: "data:image/png;base64," + base64.StdEncoding.EncodeToString([]byte("png-bytes"))}
	data, err := Bundle(render.MustNew(), outline(), bg, time.Now())
	require.NoError(t, err)
	assert.Equal(t, []string{HTMLName, JSONName, BackgroundName}, names(t, data))
}

func TestBundleWithoutBackground(t *testing.T) {
	data, err := Bundle(render.MustNew(), outline(), domain.NoBackground, time.Now())
	require.NoError(t, err)
	assert.Equal(t, []string{HTMLName, JSONName}, names(t, data))
}

func TestDecodeDataURI(t *testing.T) {
	raw, ok := DecodeDataURI("data:image/png;base64,aGk=")
	require.True(t, ok)
	assert.Equal(t, "hi", string(raw))

	for _, uri := range []string{"", "https://example.com/a.png", "data:image/png;base64,@@", "data:text/plain;base64,aGk="} {
		_, ok := DecodeDataURI(uri)
		assert.False(t, ok, uri)
	}
}
