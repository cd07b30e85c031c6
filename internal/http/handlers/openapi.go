package handlers

import (
	_ "embed"
	"encoding/json"
	"html/template"
	"net/http"
	"sort"
	"strings"
)

//go:embed openapi.json
var openAPISpec []byte

// apiRoute is one operation listed on the docs page.
type apiRoute struct {
	Method  string
	Path    string
	Summary string
}

type openAPIDocument struct {
	Info struct {
		Title   string `json:"title"`
		Version string `json:"version"`
	} `json:"info"`
	Paths map[string]map[string]struct {
		Summary string `json:"summary"`
	} `json:"paths"`
}

type docsView struct {
	Title   string
	Version string
	Routes  []apiRoute
}

// loadDocsView indexes the embedded document so the docs page can list every
// route before the interactive reference loads.
func loadDocsView(raw []byte) (docsView, error) {
	var doc openAPIDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		return docsView{}, err
	}
	view := docsView{Title: doc.Info.Title, Version: doc.Info.Version}
	for path, ops := range doc.Paths {
		for method, op := range ops {
			view.Routes = append(view.Routes, apiRoute{Method: strings.ToUpper(method), Path: path, Summary: op.Summary})
		}
	}
	sort.Slice(view.Routes, func(i, j int) bool {
		if view.Routes[i].Path != view.Routes[j].Path {
			return view.Routes[i].Path < view.Routes[j].Path
		}
		return view.Routes[i].Method < view.Routes[j].Method
	})
	return view, nil
}

var docsTemplate = template.Must(template.New("docs").Parse(`<!DOCTYPE html>
<html lang="en">
  <head>
    <meta charset="utf-8" />
    <title>{{.Title}} {{.Version}}</title>
    <meta name="viewport" content="width=device-width, initial-scale=1" />
    <style>
      body { margin: 0; padding: 0; font-family: system-ui, sans-serif; }
      .routes { padding: 16px 24px; border-bottom: 1px solid #e5e7eb; }
      .routes table { border-collapse: collapse; }
      .routes td { padding: 2px 12px 2px 0; }
      .routes code { font-weight: 600; }
      redoc { display: block; height: 100vh; }
    </style>
  </head>
  <body>
    <section class="routes">
      <p><a href="/">Form</a> · <a href="/v1/openapi.json">openapi.json</a></p>
      <table>
        {{range .Routes}}<tr><td><code>{{.Method}}</code></td><td>{{.Path}}</td><td>{{.Summary}}</td></tr>
        {{end}}
      </table>
    </section>
    <redoc spec-url="/v1/openapi.json"></redoc>
    <script src="https://cdn.jsdelivr.net/npm/redoc@2.2.0/bundles/redoc.standalone.js"></script>
  </body>
</html>`))

func (a *App) OpenAPIJSON(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(openAPISpec)
}

func (a *App) OpenAPIDocs(w http.ResponseWriter, _ *http.Request) {
	view, err := loadDocsView(openAPISpec)
	if err != nil {
		a.Logger.Error().Err(err).Msg("handlers: embedded openapi document is invalid")
		a.error(w, http.StatusInternalServerError, "internal", "API reference unavailable")
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if err := docsTemplate.Execute(w, view); err != nil {
		a.Logger.Warn().Err(err).Msg("handlers: docs render interrupted")
	}
}
