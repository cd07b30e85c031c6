package handlers

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"

	"infographic/internal/domain"
	"infographic/internal/providers/extract"
)

type imagePayload struct {
	Filename string `json:"filename"`
	MIME     string `json:"mime"`
	Data     string `json:"data"`
}

type generateRequest struct {
	Text   string         `json:"text"`
	Images []imagePayload `json:"images"`
}

// readGenerateRequest accepts multipart form uploads and JSON bodies with
// base64 images. Every image is sniffed before the request is accepted.
func (a *App) readGenerateRequest(w http.ResponseWriter, r *http.Request) (string, []domain.SourceImage, error) {
	maxBytes := a.Config.MaxUploadBytes
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	var (
		text   string
		images []domain.SourceImage
		err    error
	)
	switch mediaType {
	case "multipart/form-data":
		text, images, err = readMultipart(r, maxBytes)
	case "application/json", "":
		text, images, err = readJSON(r.Body)
	default:
		return "", nil, fmt.Errorf("%w: unsupported content type %q", domain.ErrValidation, mediaType)
	}
	if err != nil {
		return "", nil, err
	}

	if len(images) > a.Config.MaxImages {
		return "", nil, fmt.Errorf("%w: at most %d images are allowed", domain.ErrValidation, a.Config.MaxImages)
	}
	for i := range images {
		detected, err := extract.DetectMIME(images[i])
		if err != nil {
			return "", nil, err
		}
		images[i].MIME = detected
	}
	return text, images, nil
}

func readMultipart(r *http.Request, maxBytes int64) (string, []domain.SourceImage, error) {
	if err := r.ParseMultipartForm(maxBytes); err != nil {
		return "", nil, fmt.Errorf("%w: %v", domain.ErrValidation, uploadError(err))
	}
	text := r.FormValue("text")
	var images []domain.SourceImage
	for _, fh := range r.MultipartForm.File["images"] {
		f, err := fh.Open()
		if err != nil {
			return "", nil, fmt.Errorf("%w: open %s: %v", domain.ErrValidation, fh.Filename, err)
		}
		data, err := io.ReadAll(f)
		_ = f.Close()
		if err != nil {
			return "", nil, fmt.Errorf("%w: read %s: %v", domain.ErrValidation, fh.Filename, err)
		}
		if len(data) == 0 {
			continue
		}
		images = append(images, domain.SourceImage{Filename: fh.Filename, MIME: fh.Header.Get("Content-Type"), Data: data})
	}
	return text, images, nil
}

func readJSON(body io.Reader) (string, []domain.SourceImage, error) {
	var req generateRequest
	if err := json.NewDecoder(body).Decode(&req); err != nil {
		if errors.Is(err, io.EOF) {
			return "", nil, domain.ErrNoInput
		}
		return "", nil, fmt.Errorf("%w: invalid payload: %v", domain.ErrValidation, uploadError(err))
	}
	images := make([]domain.SourceImage, 0, len(req.Images))
	for i, img := range req.Images {
		encoded := img.Data
		if idx := strings.Index(encoded, ";base64,"); strings.HasPrefix(encoded, "data:") && idx >= 0 {
			encoded = encoded[idx+len(";base64,"):]
		}
		data, err := base64.StdEncoding.DecodeString(strings.TrimSpace(encoded))
		if err != nil {
			return "", nil, fmt.Errorf("%w: image %d is not valid base64", domain.ErrValidation, i+1)
		}
		images = append(images, domain.SourceImage{Filename: img.Filename, MIME: img.MIME, Data: data})
	}
	return req.Text, images, nil
}

func uploadError(err error) error {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return fmt.Errorf("upload exceeds %d MB", tooLarge.Limit>>20)
	}
	return err
}
