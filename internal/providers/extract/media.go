package extract

import (
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"infographic/internal/domain"
)

// EncodedImage is the transport form of an uploaded image.
type EncodedImage struct {
	MimeType string
	Data     string
}

// DataURL renders the image as a data: URI.
func (e EncodedImage) DataURL() string {
	return "data:" + e.MimeType + ";base64," + e.Data
}

// DetectMIME sniffs the image type from its bytes. Non-image payloads are
// rejected with ErrValidation.
func DetectMIME(img domain.SourceImage) (string, error) {
	if len(img.Data) == 0 {
		return "", fmt.Errorf("%w: image %q is empty", domain.ErrValidation, img.Filename)
	}
	detected := mimetype.Detect(img.Data)
	mime := detected.String()
	if idx := strings.Index(mime, ";"); idx >= 0 {
		mime = mime[:idx]
	}
	if !strings.HasPrefix(mime, "image/") {
		return "", fmt.Errorf("%w: %q is not an image (%s)", domain.ErrValidation, img.Filename, mime)
	}
	return mime, nil
}

// EncodeImage base64-encodes the image bytes unchanged and keeps its media type.
func EncodeImage(img domain.SourceImage) (EncodedImage, error) {
	mime, err := DetectMIME(img)
	if err != nil {
		return EncodedImage{}, err
	}
	return EncodedImage{MimeType: mime, Data: base64.StdEncoding.EncodeToString(img.Data)}, nil
}

// ValidateInput rejects a request with blank text and no images, or one that
// carries a payload which does not sniff as an image.
func ValidateInput(text string, images []domain.SourceImage) error {
	if strings.TrimSpace(text) == "" && len(images) == 0 {
		return domain.ErrNoInput
	}
	for _, img := range images {
		if _, err := DetectMIME(img); err != nil {
			return err
		}
	}
	return nil
}

func encodeAll(images []domain.SourceImage) ([]EncodedImage, error) {
	out := make([]EncodedImage, 0, len(images))
	for _, img := range images {
		enc, err := EncodeImage(img)
		if err != nil {
			return nil, err
		}
		out = append(out, enc)
	}
	return out, nil
}
