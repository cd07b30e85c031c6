package extract

import (
	"context"
	"fmt"
	"strings"

	"infographic/internal/domain"
	"infographic/internal/infra"
	"infographic/internal/providers/genai"
)

const defaultGeminiModel = "gemini-2.5-flash"

// GeminiOptions configures the Gemini extractor.
type GeminiOptions struct {
	Client *genai.Client
	Model  string
	Logger *infra.Logger
}

// GeminiExtractor asks Gemini for the outline with a native response schema.
type GeminiExtractor struct {
	client *genai.Client
	model  string
	logger *infra.Logger
}

// NewGeminiExtractor builds an extractor over a shared genai client.
func NewGeminiExtractor(opts GeminiOptions) *GeminiExtractor {
	model := strings.TrimSpace(opts.Model)
	if model == "" {
		model = defaultGeminiModel
	}
	logger := opts.Logger
	if logger == nil {
		logger = infra.NopLogger()
	}
	return &GeminiExtractor{client: opts.Client, model: model, logger: logger}
}

// Extract sends the instruction, the raw text and every image as inline data.
func (g *GeminiExtractor) Extract(ctx context.Context, text string, images []domain.SourceImage) (*domain.Infographic, error) {
	if err := ValidateInput(text, images); err != nil {
		return nil, err
	}
	encoded, err := encodeAll(images)
	if err != nil {
		return nil, err
	}

	parts := []genai.Part{genai.TextPart(BuildInstruction(PaletteHint(images)))}
	if strings.TrimSpace(text) != "" {
		parts = append(parts, genai.TextPart(text))
	}
	for _, img := range encoded {
		parts = append(parts, genai.Part{InlineData: &genai.InlineData{MimeType: img.MimeType, Data: img.Data}})
	}

	req := genai.Request{
		Contents: []genai.Content{{Role: "user", Parts: parts}},
		SystemInstruction: &genai.Content{
			Parts: []genai.Part{genai.TextPart(SystemInstruction)},
		},
		GenerationConfig: &genai.GenerationConfig{
			ResponseMimeType: "application/json",
			ResponseSchema:   ResponseSchema(),
		},
	}

	resp, err := g.client.GenerateContent(ctx, g.model, req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrExtraction, err)
	}
	data, err := Parse(resp.Text())
	if err != nil {
		return nil, err
	}

	g.logger.Debug().
		Str("model", g.model).
		Str("topic", data.Topic).
		Int("points", len(data.Points)).
		Int("images", len(images)).
		Msg("extract: outline received")
	return data, nil
}

var _ Extractor = (*GeminiExtractor)(nil)
