package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"infographic/internal/domain"
	"infographic/internal/infra"
	"infographic/internal/render"
	"infographic/internal/session"
)

type App struct {
	Config   *infra.Config
	Logger   *infra.Logger
	Sessions *session.Store
	Renderer *render.Renderer
	Started  time.Time
}

func NewApp(cfg *infra.Config, logger *infra.Logger, sessions *session.Store, renderer *render.Renderer) *App {
	if logger == nil {
		logger = infra.NopLogger()
	}
	return &App{Config: cfg, Logger: logger, Sessions: sessions, Renderer: renderer, Started: time.Now()}
}

type errorBody struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (a *App) json(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func (a *App) error(w http.ResponseWriter, status int, code, message string) {
	a.json(w, status, errorBody{Error: errorDetail{Code: code, Message: message}})
}

// fail maps a pipeline error onto a status code and error code.
func (a *App) fail(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		a.error(w, http.StatusUnprocessableEntity, "validation", domain.UserMessage(err))
	case domain.IsExtractionFailure(err):
		a.error(w, http.StatusBadGateway, "extraction_failed", domain.UserMessage(err))
	case errors.Is(err, domain.ErrSuperseded):
		a.error(w, http.StatusConflict, "superseded", "a newer generation replaced this one")
	case errors.Is(err, domain.ErrNoResult):
		a.error(w, http.StatusNotFound, "not_found", domain.UserMessage(err))
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		a.error(w, http.StatusServiceUnavailable, "cancelled", "generation was interrupted")
	default:
		a.Logger.Error().Err(err).Msg("handlers: unexpected error")
		a.error(w, http.StatusInternalServerError, "internal", domain.GenericFailureMessage)
	}
}
