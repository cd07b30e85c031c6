// Package icon maps the free-text icon tags produced by the model onto the
// closed set of glyphs the renderer knows how to draw.
package icon

import (
	"fmt"
	"html/template"
	"sort"
	"strings"
)

// Symbol identifies one drawable glyph.
type Symbol string

const (
	BookOpen    Symbol = "book-open"
	Atom        Symbol = "atom"
	Brain       Symbol = "brain"
	Calculator  Symbol = "calculator"
	Globe       Symbol = "globe"
	History     Symbol = "history"
	Leaf        Symbol = "leaf"
	Microscope  Symbol = "microscope"
	Music       Symbol = "music"
	PenTool     Symbol = "pen-tool"
	Rocket      Symbol = "rocket"
	Scale       Symbol = "scale"
	Sun         Symbol = "sun"
	Trophy      Symbol = "trophy"
	User        Symbol = "user"
	Lightbulb   Symbol = "lightbulb"
	Zap         Symbol = "zap"
	Star        Symbol = "star"
	Target      Symbol = "target"
	Heart       Symbol = "heart"
	ArrowRight  Symbol = "arrow-right"
	ArrowDown   Symbol = "arrow-down"
	CheckCircle Symbol = "check-circle"
	Settings    Symbol = "settings"
	Edit        Symbol = "edit"
)

// Default is drawn for any tag missing from the table.
const Default = Star

// tags maps normalized tag names, synonyms included, to symbols.
var tags = map[string]Symbol{
	"book":        BookOpen,
	"bookopen":    BookOpen,
	"atom":        Atom,
	"brain":       Brain,
	"calculator":  Calculator,
	"globe":       Globe,
	"history":     History,
	"leaf":        Leaf,
	"microscope":  Microscope,
	"music":       Music,
	"pentool":     PenTool,
	"pen-tool":    PenTool,
	"rocket":      Rocket,
	"scale":       Scale,
	"sun":         Sun,
	"trophy":      Trophy,
	"user":        User,
	"lightbulb":   Lightbulb,
	"zap":         Zap,
	"star":        Star,
	"target":      Target,
	"heart":       Heart,
	"arrowright":  ArrowRight,
	"arrowdown":   ArrowDown,
	"check":       CheckCircle,
	"checkcircle": CheckCircle,
	"settings":    Settings,
	"edit":        Edit,
}

// Resolve normalizes tag and returns its symbol, or Default.
func Resolve(tag string) Symbol {
	if sym, ok := tags[strings.ToLower(strings.TrimSpace(tag))]; ok {
		return sym
	}
	return Default
}

// Tags returns the recognized tag names in sorted order.
func Tags() []string {
	out := make([]string, 0, len(tags))
	for k := range tags {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// SVG returns an inline 24x24 stroke glyph for sym, coloured with currentColor.
func SVG(sym Symbol, class string) template.HTML {
	body, ok := glyphs[sym]
	if !ok {
		body = glyphs[Default]
	}
	return template.HTML(fmt.Sprintf(
		`<svg class="%s" data-icon="%s" xmlns="http://www.w3.org/2000/svg" viewBox="0 0 24 24" fill="none" stroke="currentColor" stroke-width="2" stroke-linecap="round" stroke-linejoin="round">%s</svg>`,
		template.HTMLEscapeString(class), template.HTMLEscapeString(string(sym)), body))
}
