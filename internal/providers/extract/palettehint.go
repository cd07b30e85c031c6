package extract

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/EdlinOrg/prominentcolor"

	"infographic/internal/domain"
)

const (
	maxHintColors = 3
	// Images are decoded in full before clustering; larger ones are skipped.
	maxHintPixelsSide = 4096
)

// PaletteHint returns the dominant colours of the first decodable image as hex
// strings. Undecodable or oversized images yield no hint.
func PaletteHint(images []domain.SourceImage) []string {
	for _, src := range images {
		cfg, _, err := image.DecodeConfig(bytes.NewReader(src.Data))
		if err != nil || !withinHintLimits(cfg) {
			continue
		}
		img, _, err := image.Decode(bytes.NewReader(src.Data))
		if err != nil {
			continue
		}
		colors, err := prominentcolor.KmeansWithArgs(prominentcolor.ArgumentNoCropping, img)
		if err != nil || len(colors) == 0 {
			continue
		}
		out := make([]string, 0, maxHintColors)
		for _, c := range colors {
			out = append(out, fmt.Sprintf("#%02x%02x%02x", uint8(c.Color.R), uint8(c.Color.G), uint8(c.Color.B)))
			if len(out) == maxHintColors {
				break
			}
		}
		return out
	}
	return nil
}

func withinHintLimits(cfg image.Config) bool {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return false
	}
	return cfg.Width <= maxHintPixelsSide && cfg.Height <= maxHintPixelsSide
}
