package handlers

import (
	"net/http"
	"time"
)

type healthResponse struct {
	Status     string `json:"status"`
	Sessions   int    `json:"sessions"`
	Provider   string `json:"provider"`
	Background bool   `json:"background"`
	Uptime     string `json:"uptime"`
}

// Health reports liveness together with the live session count and the
// configured backends. It never calls a backend.
func (a *App) Health(w http.ResponseWriter, r *http.Request) {
	resp := healthResponse{
		Status:   "ok",
		Sessions: a.Sessions.Len(),
		Uptime:   time.Since(a.Started).Truncate(time.Second).String(),
	}
	if a.Config != nil {
		resp.Provider = a.Config.ExtractProvider
		resp.Background = a.Config.BackgroundEnabled
	}
	a.json(w, http.StatusOK, resp)
}
