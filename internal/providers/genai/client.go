// Package genai is a thin REST client for the Gemini generateContent API.
package genai

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"infographic/internal/infra"
)

const (
	DefaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"
	defaultTimeout = 90 * time.Second
)

// ErrNoAPIKey is returned before any request when the client has no key.
var ErrNoAPIKey = errors.New("genai: api key is not configured")

// Options controls how the Gemini client is configured.
type Options struct {
	APIKey     string
	BaseURL    string
	HTTPClient *http.Client
	Logger     *infra.Logger
}

// Client issues generateContent calls. It is safe for concurrent use.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	logger     *infra.Logger
}

// Content is one turn of the conversation sent to the model.
type Content struct {
	Role  string `json:"role,omitempty"`
	Parts []Part `json:"parts,omitempty"`
}

// Part is a text, inline media or file reference fragment.
type Part struct {
	Text       string      `json:"text,omitempty"`
	InlineData *InlineData `json:"inlineData,omitempty"`
	FileData   *FileData   `json:"fileData,omitempty"`
}

// InlineData carries base64 encoded media.
type InlineData struct {
	MimeType string `json:"mimeType,omitempty"`
	Data     string `json:"data,omitempty"`
}

// FileData references media hosted by the API.
type FileData struct {
	MimeType string `json:"mimeType,omitempty"`
	FileURI  string `json:"fileUri,omitempty"`
}

// Schema is the OpenAPI subset accepted as responseSchema.
type Schema struct {
	Type        string             `json:"type"`
	Description string             `json:"description,omitempty"`
	Properties  map[string]*Schema `json:"properties,omitempty"`
	Required    []string           `json:"required,omitempty"`
	Items       *Schema            `json:"items,omitempty"`
	MinItems    int                `json:"minItems,omitempty"`
	MaxItems    int                `json:"maxItems,omitempty"`
}

// ImageConfig shapes image output of image-capable models.
type ImageConfig struct {
	AspectRatio string `json:"aspectRatio,omitempty"`
	ImageSize   string `json:"imageSize,omitempty"`
}

// GenerationConfig mirrors the generationConfig object of the API.
type GenerationConfig struct {
	Temperature        float64      `json:"temperature,omitempty"`
	CandidateCount     int          `json:"candidateCount,omitempty"`
	ResponseMimeType   string       `json:"responseMimeType,omitempty"`
	ResponseSchema     *Schema      `json:"responseSchema,omitempty"`
	ResponseModalities []string     `json:"responseModalities,omitempty"`
	ImageConfig        *ImageConfig `json:"imageConfig,omitempty"`
}

// Request is the generateContent request body.
type Request struct {
	Contents          []Content         `json:"contents"`
	SystemInstruction *Content          `json:"systemInstruction,omitempty"`
	GenerationConfig  *GenerationConfig `json:"generationConfig,omitempty"`
}

// Candidate is one model answer.
type Candidate struct {
	Content      Content `json:"content"`
	FinishReason string  `json:"finishReason,omitempty"`
}

// Response is the generateContent response body.
type Response struct {
	Candidates     []Candidate `json:"candidates"`
	PromptFeedback *struct {
		BlockReason string `json:"blockReason,omitempty"`
	} `json:"promptFeedback,omitempty"`
}

// Media is decoded inline or downloaded output media.
type Media struct {
	MimeType string
	Data     []byte
}

type errorResponse struct {
	Error struct {
		Code    int    `json:"code,omitempty"`
		Message string `json:"message,omitempty"`
	} `json:"error"`
}

// NewClient constructs a Gemini client with sane defaults. Callers may provide
// a nil HTTP client; a reusable one with sensible timeouts will be created.
func NewClient(opts Options) *Client {
	client := opts.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: defaultTimeout}
	}

	baseURL := strings.TrimRight(strings.TrimSpace(opts.BaseURL), "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	logger := opts.Logger
	if logger == nil {
		l := infra.Logger(zerolog.New(io.Discard))
		logger = &l
	}

	return &Client{
		apiKey:     strings.TrimSpace(opts.APIKey),
		baseURL:    baseURL,
		httpClient: client,
		logger:     logger,
	}
}

// Configured reports whether an API key is available.
func (c *Client) Configured() bool {
	return c != nil && c.apiKey != ""
}

// TextPart builds a text part.
func TextPart(text string) Part {
	return Part{Text: text}
}

// BlobPart builds an inline media part from raw bytes.
func BlobPart(mimeType string, data []byte) Part {
	return Part{InlineData: &InlineData{MimeType: mimeType, Data: base64.StdEncoding.EncodeToString(data)}}
}

// GenerateContent performs exactly one generateContent call against model.
func (c *Client) GenerateContent(ctx context.Context, model string, req Request) (*Response, error) {
	if !c.Configured() {
		return nil, ErrNoAPIKey
	}
	start := time.Now()
	var out Response
	path := fmt.Sprintf("/models/%s:generateContent", url.PathEscape(model))
	if err := c.invoke(ctx, path, req, &out); err != nil {
		return nil, err
	}
	c.logger.Debug().
		Str("model", model).
		Int("candidates", len(out.Candidates)).
		Dur("elapsed", time.Since(start)).
		Msg("genai: generateContent finished")
	if len(out.Candidates) == 0 && out.PromptFeedback != nil && out.PromptFeedback.BlockReason != "" {
		return &out, fmt.Errorf("genai: prompt blocked: %s", out.PromptFeedback.BlockReason)
	}
	return &out, nil
}

// Text returns the first non-blank text part of the response.
func (r *Response) Text() string {
	if r == nil {
		return ""
	}
	for _, cand := range r.Candidates {
		for _, part := range cand.Content.Parts {
			if strings.TrimSpace(part.Text) != "" {
				return part.Text
			}
		}
	}
	return ""
}

// FirstMedia returns the first decodable media part of the response.
func (c *Client) FirstMedia(ctx context.Context, r *Response) (*Media, error) {
	if r == nil {
		return nil, errors.New("genai: empty response")
	}
	for _, cand := range r.Candidates {
		for _, part := range cand.Content.Parts {
			media, err := c.decodeMedia(ctx, part)
			if err != nil {
				c.logger.Debug().Err(err).Msg("genai: skipping undecodable part")
				continue
			}
			if media != nil && len(media.Data) > 0 {
				return media, nil
			}
		}
	}
	return nil, errors.New("genai: no media in response")
}

func (c *Client) invoke(ctx context.Context, path string, payload any, out any) error {
	endpoint := c.baseURL + path
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("invoke gemini: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		data, _ := io.ReadAll(resp.Body)
		var apiErr errorResponse
		if err := json.Unmarshal(data, &apiErr); err == nil && apiErr.Error.Message != "" {
			return fmt.Errorf("gemini status %d: %s", resp.StatusCode, apiErr.Error.Message)
		}
		if len(data) > 0 {
			return fmt.Errorf("gemini status %d: %s", resp.StatusCode, strings.TrimSpace(string(data)))
		}
		return fmt.Errorf("gemini status %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode gemini response: %w", err)
	}
	return nil
}

func (c *Client) decodeMedia(ctx context.Context, part Part) (*Media, error) {
	if part.InlineData != nil && part.InlineData.Data != "" {
		data, err := base64.StdEncoding.DecodeString(part.InlineData.Data)
		if err != nil {
			return nil, fmt.Errorf("decode inline data: %w", err)
		}
		return &Media{MimeType: part.InlineData.MimeType, Data: data}, nil
	}

	if part.FileData != nil && part.FileData.FileURI != "" {
		data, mime, err := c.downloadFile(ctx, part.FileData.FileURI)
		if err != nil {
			return nil, err
		}
		return &Media{MimeType: firstNonEmpty(part.FileData.MimeType, mime), Data: data}, nil
	}

	return nil, nil
}

func (c *Client) downloadFile(ctx context.Context, uri string) ([]byte, string, error) {
	target := uri
	if !strings.HasPrefix(uri, "http://") && !strings.HasPrefix(uri, "https://") {
		target = c.baseURL + "/" + strings.TrimLeft(uri, "/")
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, "", fmt.Errorf("create download request: %w", err)
	}
	req.Header.Set("x-goog-api-key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("download file: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		data, _ := io.ReadAll(resp.Body)
		return nil, "", fmt.Errorf("download file status %d: %s", resp.StatusCode, strings.TrimSpace(string(data)))
	}

	blob, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", fmt.Errorf("read file: %w", err)
	}
	return blob, resp.Header.Get("Content-Type"), nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
