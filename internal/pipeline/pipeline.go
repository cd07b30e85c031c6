// Package pipeline wires the configured backends into orchestrators.
package pipeline

import (
	"fmt"
	"net/http"

	"infographic/internal/infra"
	"infographic/internal/layout"
	"infographic/internal/orchestrator"
	"infographic/internal/providers/background"
	"infographic/internal/providers/extract"
	"infographic/internal/providers/genai"
)

// Pipeline holds the backends shared by every orchestrator of the process.
type Pipeline struct {
	Extractor   extract.Extractor
	Synthesizer background.Synthesizer
	logger      *infra.Logger
}

// New builds the extractor selected by cfg.ExtractProvider and, unless
// disabled, the Gemini background synthesizer.
func New(cfg *infra.Config, logger *infra.Logger) (*Pipeline, error) {
	if logger == nil {
		logger = infra.NopLogger()
	}
	httpClient := &http.Client{Timeout: cfg.BackendTimeout}
	gemini := genai.NewClient(genai.Options{
		APIKey:     cfg.GeminiAPIKey,
		BaseURL:    cfg.GeminiBaseURL,
		HTTPClient: httpClient,
		Logger:     logger,
	})

	var ex extract.Extractor
	switch cfg.ExtractProvider {
	case infra.ProviderOpenAI:
		oa, err := extract.NewOpenAIExtractor(extract.OpenAIOptions{
			APIKey:     cfg.OpenAIAPIKey,
			Model:      cfg.OpenAIModel,
			BaseURL:    cfg.OpenAIBaseURL,
			HTTPClient: httpClient,
			Logger:     logger,
		})
		if err != nil {
			return nil, fmt.Errorf("pipeline: configure openai: %w", err)
		}
		ex = oa
	case infra.ProviderGemini, "":
		ex = extract.NewGeminiExtractor(extract.GeminiOptions{Client: gemini, Model: cfg.GeminiTextModel, Logger: logger})
	default:
		return nil, fmt.Errorf("pipeline: unsupported extract provider %q", cfg.ExtractProvider)
	}

	var synth background.Synthesizer = background.Disabled{}
	switch {
	case !cfg.BackgroundEnabled:
		logger.Info().Msg("pipeline: background synthesis disabled")
	case !gemini.Configured():
		logger.Warn().Msg("pipeline: GEMINI_API_KEY missing, backgrounds fall back to palette gradients")
	default:
		synth = background.NewGeminiSynthesizer(background.Options{Client: gemini, Model: cfg.GeminiImageModel, Logger: logger})
	}

	return &Pipeline{Extractor: ex, Synthesizer: synth, logger: logger}, nil
}

// NewOrchestrator returns an idle orchestrator over the shared backends. A
// nil selector draws layouts from the global random source.
func (p *Pipeline) NewOrchestrator(selector *layout.Selector) *orchestrator.Orchestrator {
	logger := p.logger
	return orchestrator.New(orchestrator.Options{
		Extractor:   p.Extractor,
		Synthesizer: p.Synthesizer,
		Selector:    selector,
		Logger:      logger,
		Observer: func(s orchestrator.Snapshot) {
			logger.Debug().Uint64("run", s.RunID).Str("state", string(s.State)).Msg("pipeline: state changed")
		},
	})
}
