// Package render turns an infographic into a self-contained HTML composition.
// Rendering is a pure function of the data and the optional background; the
// only errors it reports come from the destination writer.
package render

import (
	"embed"
	"fmt"
	"html/template"
	"io"

	"infographic/internal/domain"
	"infographic/internal/icon"
)

//go:embed templates/*.gohtml
var templateFS embed.FS

// Renderer executes the parsed layout templates.
type Renderer struct {
	tmpl *template.Template
}

// New parses the embedded templates.
func New() (*Renderer, error) {
	tmpl, err := template.New("render").
		Funcs(template.FuncMap{
			"icon": func(sym icon.Symbol, class string) template.HTML { return icon.SVG(sym, class) },
			"idea": func(class string) template.HTML { return icon.SVG(icon.Lightbulb, class) },
		}).
		ParseFS(templateFS, "templates/*.gohtml")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return &Renderer{tmpl: tmpl}, nil
}

// MustNew is New for package-level initialisation.
func MustNew() *Renderer {
	r, err := New()
	if err != nil {
		panic(err)
	}
	return r
}

// Render writes the infographic frame as an HTML fragment.
func (r *Renderer) Render(w io.Writer, data domain.Infographic, bg domain.Background) error {
	return r.tmpl.ExecuteTemplate(w, "frame", BuildView(data, bg))
}

// RenderPage writes a complete HTML document around the frame.
func (r *Renderer) RenderPage(w io.Writer, data domain.Infographic, bg domain.Background) error {
	return r.tmpl.ExecuteTemplate(w, "page", BuildView(data, bg))
}
