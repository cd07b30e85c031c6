// Package background produces the decorative backdrop behind an infographic.
// Synthesis is best effort: failures are logged and reported as the absence
// of a background, never as an error.
package background

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	"infographic/internal/domain"
	"infographic/internal/infra"
	"infographic/internal/providers/genai"
)

const (
	defaultModel = "gemini-3-pro-image-preview"
	AspectRatio  = "16:9"
	ImageSize    = "2K"
	dataURIPNG   = "data:image/png;base64,"
)

// Synthesizer returns domain.NoBackground on any failure.
type Synthesizer interface {
	Synthesize(ctx context.Context, topic string, palette domain.Palette) domain.Background
}

// Options configures the Gemini synthesizer.
type Options struct {
	Client *genai.Client
	Model  string
	Logger *infra.Logger
}

// GeminiSynthesizer renders backgrounds with a Gemini image model.
type GeminiSynthesizer struct {
	client *genai.Client
	model  string
	logger *infra.Logger
}

// NewGeminiSynthesizer builds a synthesizer over a shared genai client.
func NewGeminiSynthesizer(opts Options) *GeminiSynthesizer {
	model := strings.TrimSpace(opts.Model)
	if model == "" {
		model = defaultModel
	}
	logger := opts.Logger
	if logger == nil {
		logger = infra.NopLogger()
	}
	return &GeminiSynthesizer{client: opts.Client, model: model, logger: logger}
}

// Synthesize issues one image request and inlines the first image returned.
func (g *GeminiSynthesizer) Synthesize(ctx context.Context, topic string, palette domain.Palette) domain.Background {
	bg, err := g.synthesize(ctx, topic, palette)
	if err != nil {
		g.logger.Warn().
			Err(err).
			Str("model", g.model).
			Str("topic", topic).
			Msg("background: synthesis failed; falling back to palette gradient")
		return domain.NoBackground
	}
	return bg
}

func (g *GeminiSynthesizer) synthesize(ctx context.Context, topic string, palette domain.Palette) (domain.Background, error) {
	if g.client == nil {
		return domain.NoBackground, genai.ErrNoAPIKey
	}
	req := genai.Request{
		Contents: []genai.Content{{
			Role:  "user",
			Parts: []genai.Part{genai.TextPart(BuildPrompt(topic, palette))},
		}},
		GenerationConfig: &genai.GenerationConfig{
			ResponseModalities: []string{"IMAGE"},
			ImageConfig:        &genai.ImageConfig{AspectRatio: AspectRatio, ImageSize: ImageSize},
		},
	}
	resp, err := g.client.GenerateContent(ctx, g.model, req)
	if err != nil {
		return domain.NoBackground, err
	}
	media, err := g.client.FirstMedia(ctx, resp)
	if err != nil {
		return domain.NoBackground, err
	}
	if !strings.HasPrefix(media.MimeType, "image/") && media.MimeType != "" {
		return domain.NoBackground, fmt.Errorf("unexpected media type %q", media.MimeType)
	}
	return domain.Background{URI: dataURIPNG + base64.StdEncoding.EncodeToString(media.Data)}, nil
}

// BuildPrompt describes a textless, soft 16:9 backdrop with an empty centre.
func BuildPrompt(topic string, palette domain.Palette) string {
	p := palette.Complete()
	lines := []string{
		fmt.Sprintf("A high quality, abstract, minimal educational background texture for an infographic about %q.", strings.TrimSpace(topic)),
		fmt.Sprintf("Soft, harmonious colors matching this palette: main %s, secondary %s.", p.Primary, p.Secondary),
		"No text, no letters, no numbers. High resolution, 16:9 aspect ratio.",
		"Clean, modern vector art style or soft watercolor.",
		"Leave the center empty with generous white space for overlaid text content.",
	}
	return strings.Join(lines, "\n")
}

// Disabled never synthesizes a background.
type Disabled struct{}

// Synthesize always returns domain.NoBackground.
func (Disabled) Synthesize(context.Context, string, domain.Palette) domain.Background {
	return domain.NoBackground
}

var (
	_ Synthesizer = (*GeminiSynthesizer)(nil)
	_ Synthesizer = Disabled{}
)
