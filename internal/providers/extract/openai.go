package extract

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	openai "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/shared"

	"infographic/internal/domain"
	"infographic/internal/infra"
)

const defaultOpenAIModel = "gpt-4o-mini"

// OpenAIOptions configures the OpenAI-compatible extractor.
type OpenAIOptions struct {
	APIKey     string
	Model      string
	BaseURL    string
	HTTPClient *http.Client
	Logger     *infra.Logger
}

// OpenAIExtractor uses chat completions in JSON mode with the schema inlined
// in the prompt.
type OpenAIExtractor struct {
	model  string
	opts   []option.RequestOption
	logger *infra.Logger
}

// NewOpenAIExtractor validates options and builds the extractor.
func NewOpenAIExtractor(opts OpenAIOptions) (*OpenAIExtractor, error) {
	if strings.TrimSpace(opts.APIKey) == "" {
		return nil, errors.New("openai api key is required")
	}
	model := strings.TrimSpace(opts.Model)
	if model == "" {
		model = defaultOpenAIModel
	}
	reqOpts := []option.RequestOption{
		option.WithAPIKey(opts.APIKey),
		option.WithMaxRetries(0),
	}
	if opts.BaseURL != "" {
		reqOpts = append(reqOpts, option.WithBaseURL(opts.BaseURL))
	}
	if opts.HTTPClient != nil {
		reqOpts = append(reqOpts, option.WithHTTPClient(opts.HTTPClient))
	}
	logger := opts.Logger
	if logger == nil {
		logger = infra.NopLogger()
	}
	return &OpenAIExtractor{model: model, opts: reqOpts, logger: logger}, nil
}

// Extract sends the instruction, the text and images as data URLs in one call.
func (o *OpenAIExtractor) Extract(ctx context.Context, text string, images []domain.SourceImage) (*domain.Infographic, error) {
	if err := ValidateInput(text, images); err != nil {
		return nil, err
	}
	encoded, err := encodeAll(images)
	if err != nil {
		return nil, err
	}

	parts := []openai.ChatCompletionContentPartUnionParam{
		openai.TextContentPart(BuildInstruction(PaletteHint(images)) + "Schema: " + schemaOutline),
	}
	if strings.TrimSpace(text) != "" {
		parts = append(parts, openai.TextContentPart(text))
	}
	for _, img := range encoded {
		parts = append(parts, openai.ImageContentPart(openai.ChatCompletionContentPartImageImageURLParam{
			URL: img.DataURL(),
		}))
	}

	client := openai.NewClient(o.opts...)
	resp, err := client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(o.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(SystemInstruction),
			openai.UserMessage(parts),
		},
		ResponseFormat: openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONObject: &shared.ResponseFormatJSONObjectParam{},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrExtraction, err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("%w: openai returned no choices", domain.ErrParse)
	}
	data, err := Parse(resp.Choices[0].Message.Content)
	if err != nil {
		return nil, err
	}

	o.logger.Debug().
		Str("model", o.model).
		Str("topic", data.Topic).
		Int("points", len(data.Points)).
		Msg("extract: outline received")
	return data, nil
}

var _ Extractor = (*OpenAIExtractor)(nil)
