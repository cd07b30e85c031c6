package handlers

import (
	"fmt"
	"net/http"
	"net/url"
	"time"

	"infographic/internal/export"
	"infographic/internal/orchestrator"
)

type relayoutResponse struct {
	Layout   string                `json:"layout"`
	Snapshot orchestrator.Snapshot `json:"snapshot"`
}

// Generate runs extraction and background synthesis for the caller's session.
// Form posts from the index page (format=html) are redirected back to it.
func (a *App) Generate(w http.ResponseWriter, r *http.Request) {
	o := a.Sessions.Resolve(w, r)
	text, images, err := a.readGenerateRequest(w, r)
	if err == nil {
		err = o.Generate(r.Context(), text, images)
	}
	if wantsHTML(r) {
		a.backToIndex(w, r, err)
		return
	}
	if err != nil {
		a.fail(w, err)
		return
	}
	a.json(w, http.StatusOK, o.Snapshot())
}

// Regenerate repeats the last generation with the same input.
func (a *App) Regenerate(w http.ResponseWriter, r *http.Request) {
	o := a.Sessions.Resolve(w, r)
	err := o.Regenerate(r.Context())
	if wantsHTML(r) {
		a.backToIndex(w, r, err)
		return
	}
	if err != nil {
		a.fail(w, err)
		return
	}
	a.json(w, http.StatusOK, o.Snapshot())
}

// Relayout redraws only the layout of the current result.
func (a *App) Relayout(w http.ResponseWriter, r *http.Request) {
	o := a.Sessions.Resolve(w, r)
	layout, err := o.Relayout()
	if wantsHTML(r) {
		a.backToIndex(w, r, err)
		return
	}
	if err != nil {
		a.fail(w, err)
		return
	}
	a.json(w, http.StatusOK, relayoutResponse{Layout: string(layout), Snapshot: o.Snapshot()})
}

// Current returns the session snapshot.
func (a *App) Current(w http.ResponseWriter, r *http.Request) {
	o := a.Sessions.Resolve(w, r)
	a.json(w, http.StatusOK, o.Snapshot())
}

// View renders the current result as a standalone HTML page.
func (a *App) View(w http.ResponseWriter, r *http.Request) {
	o, ok := a.Sessions.Lookup(r)
	if !ok {
		a.error(w, http.StatusNotFound, "not_found", "no infographic generated yet")
		return
	}
	snap := o.Snapshot()
	if snap.Result == nil {
		a.error(w, http.StatusNotFound, "not_found", "no infographic generated yet")
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if err := a.Renderer.RenderPage(w, *snap.Result, snap.Background); err != nil {
		a.Logger.Warn().Err(err).Msg("handlers: render interrupted")
	}
}

// Export downloads the current result as a zip bundle.
func (a *App) Export(w http.ResponseWriter, r *http.Request) {
	o, ok := a.Sessions.Lookup(r)
	if !ok {
		a.error(w, http.StatusNotFound, "not_found", "no infographic generated yet")
		return
	}
	snap := o.Snapshot()
	if snap.Result == nil {
		a.error(w, http.StatusNotFound, "not_found", "no infographic generated yet")
		return
	}
	archive, err := export.Bundle(a.Renderer, *snap.Result, snap.Background, time.Now())
	if err != nil {
		a.fail(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=infographic-%d.zip", snap.RunID))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(archive)
}

// wantsHTML reports whether the request came from the index page. The query
// string is checked first since the body may be unreadable after a failed
// upload.
func wantsHTML(r *http.Request) bool {
	if r.URL.Query().Get("format") == "html" {
		return true
	}
	return r.FormValue("format") == "html"
}

func (a *App) backToIndex(w http.ResponseWriter, r *http.Request, err error) {
	target := "/"
	if err != nil && !orchestrator.IsSuperseded(err) {
		target += "?notice=" + url.QueryEscape(noticeFor(err))
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}
