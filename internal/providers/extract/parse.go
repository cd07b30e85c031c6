package extract

import (
	"encoding/json"
	"fmt"
	"strings"

	"infographic/internal/domain"
)

type rawPoint struct {
	Title   *string `json:"title"`
	Content *string `json:"content"`
	Icon    *string `json:"icon"`
}

type rawInfographic struct {
	Topic          *string         `json:"topic"`
	Subtitle       string          `json:"subtitle"`
	TargetAudience string          `json:"targetAudience"`
	Points         *[]rawPoint     `json:"points"`
	Summary        string          `json:"summary"`
	Palette        *domain.Palette `json:"colorPalette"`
}

// Parse decodes and validates a model answer. It fails with ErrParse when the
// text is empty or not JSON, and with ErrSchema when required fields are absent.
func Parse(raw string) (*domain.Infographic, error) {
	cleaned := extractJSONFragment(raw)
	if cleaned == "" {
		return nil, fmt.Errorf("%w: empty response", domain.ErrParse)
	}
	var payload rawInfographic
	if err := json.Unmarshal([]byte(cleaned), &payload); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrParse, err)
	}
	return payload.toDomain()
}

func (r rawInfographic) toDomain() (*domain.Infographic, error) {
	if r.Topic == nil || strings.TrimSpace(*r.Topic) == "" {
		return nil, fmt.Errorf("%w: topic is required", domain.ErrSchema)
	}
	if r.Points == nil {
		return nil, fmt.Errorf("%w: points are required", domain.ErrSchema)
	}
	points := *r.Points
	if len(points) < MinPoints || len(points) > MaxPoints {
		return nil, fmt.Errorf("%w: expected %d to %d points, got %d", domain.ErrSchema, MinPoints, MaxPoints, len(points))
	}

	out := &domain.Infographic{
		Topic:          *r.Topic,
		Subtitle:       r.Subtitle,
		TargetAudience: r.TargetAudience,
		Summary:        r.Summary,
		Palette:        domain.DefaultPalette,
		Points:         make([]domain.Point, 0, len(points)),
	}
	if r.Palette != nil {
		out.Palette = r.Palette.Complete()
	}
	for i, p := range points {
		if p.Title == nil || strings.TrimSpace(*p.Title) == "" {
			return nil, fmt.Errorf("%w: point %d has no title", domain.ErrSchema, i+1)
		}
		if p.Content == nil || strings.TrimSpace(*p.Content) == "" {
			return nil, fmt.Errorf("%w: point %d has no content", domain.ErrSchema, i+1)
		}
		point := domain.Point{Title: *p.Title, Content: *p.Content}
		if p.Icon != nil {
			point.Icon = *p.Icon
		}
		out.Points = append(out.Points, point)
	}
	return out, nil
}

func extractJSONFragment(raw string) string {
	text := strings.TrimSpace(raw)
	if text == "" {
		return ""
	}
	text = trimCodeFence(text)
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start >= 0 && end >= start {
		text = text[start : end+1]
	}
	return strings.TrimSpace(text)
}

func trimCodeFence(text string) string {
	trimmed := strings.TrimSpace(text)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}
	trimmed = strings.TrimPrefix(trimmed, "```json")
	trimmed = strings.TrimPrefix(trimmed, "```JSON")
	trimmed = strings.TrimPrefix(trimmed, "```")
	trimmed = strings.TrimSpace(trimmed)
	if idx := strings.LastIndex(trimmed, "```"); idx >= 0 {
		trimmed = trimmed[:idx]
	}
	return strings.TrimSpace(trimmed)
}
