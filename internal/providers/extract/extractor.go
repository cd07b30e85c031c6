// Package extract turns lesson text and reference images into the structured
// infographic outline by asking a generative model for schema-bound JSON.
package extract

import (
	"context"

	"infographic/internal/domain"
)

// Extractor performs exactly one backend request per call and never retries.
type Extractor interface {
	Extract(ctx context.Context, text string, images []domain.SourceImage) (*domain.Infographic, error)
}
