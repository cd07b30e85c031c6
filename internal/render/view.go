package render

import (
	"fmt"
	"html/template"
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"infographic/internal/domain"
	"infographic/internal/icon"
)

// Attribution is printed in the header of every layout.
const Attribution = "Designed by: THAYHUY - DANANG"

// BackgroundOpacity is applied to a synthesized background image.
const BackgroundOpacity = 0.4

const (
	SideLeft  = "left"
	SideRight = "right"
)

var (
	upper      = cases.Upper(language.Vietnamese)
	colorToken = regexp.MustCompile(`^(#[0-9a-fA-F]{3}|#[0-9a-fA-F]{4}|#[0-9a-fA-F]{6}|#[0-9a-fA-F]{8}|[a-zA-Z]{3,20})$`)
)

// View is the fully resolved input of the layout templates.
type View struct {
	Layout        string
	Topic         string
	Subtitle      string
	Summary       string
	Attribution   string
	Palette       domain.Palette
	HasBackground bool
	FrameStyle    template.CSS
	BackdropStyle template.CSS
	Columns       int
	Cards         []Card
}

// Card is one point placed by a layout.
type Card struct {
	Ordinal     int
	Title       string
	Content     string
	Icon        icon.Symbol
	HeaderColor string
	NodeColor   string
	HeaderStyle template.CSS
	NodeStyle   template.CSS
	Side        string
	Last        bool
}

// BuildView resolves colours, icons and per-layout placement for data.
func BuildView(data domain.Infographic, bg domain.Background) View {
	palette := safePalette(data.Palette)
	layout := data.Layout.OrDefault()

	v := View{
		Layout:      string(layout),
		Topic:       upper.String(strings.TrimSpace(data.Topic)),
		Subtitle:    strings.TrimSpace(data.Subtitle),
		Summary:     strings.TrimSpace(data.Summary),
		Attribution: Attribution,
		Palette:     palette,
		FrameStyle:  template.CSS("background-color:" + palette.Background + ";color:" + palette.Text),
		Columns:     2,
	}
	if len(data.Points) <= 3 {
		v.Columns = 3
	}

	if uri, ok := backgroundURI(bg); ok {
		v.HasBackground = true
		v.BackdropStyle = template.CSS(fmt.Sprintf(`background-image:url("%s");background-size:cover;background-position:center;opacity:%.1f`, uri, BackgroundOpacity))
	} else {
		v.BackdropStyle = template.CSS(fmt.Sprintf(
			"background:radial-gradient(circle at 10%% 20%%, %s 0%%, transparent 40%%),radial-gradient(circle at 90%% 80%%, %s 0%%, transparent 40%%);opacity:0.3",
			tint(palette.Primary), tint(palette.Secondary)))
	}

	v.Cards = make([]Card, 0, len(data.Points))
	for i, p := range data.Points {
		alternating := palette.Primary
		if i%2 == 1 {
			alternating = palette.Secondary
		}
		c := Card{
			Ordinal: i + 1,
			Title:   strings.TrimSpace(p.Title),
			Content: strings.TrimSpace(p.Content),
			Icon:    icon.Resolve(p.Icon),
			Side:    SideLeft,
			Last:    i == len(data.Points)-1,
		}
		if i%2 == 1 {
			c.Side = SideRight
		}
		switch layout {
		case domain.LayoutGridCards:
			c.HeaderColor = alternating
			c.HeaderStyle = template.CSS(fmt.Sprintf("background:linear-gradient(90deg, %s 0%%, %s 150%%)", alternating, palette.Accent))
		case domain.LayoutConnectedFlow:
			c.NodeColor = alternating
			c.NodeStyle = template.CSS("background-color:" + alternating)
		case domain.LayoutZigzagTimeline:
			c.HeaderColor = palette.Secondary
			c.NodeColor = palette.Accent
			c.HeaderStyle = template.CSS("border-top-color:" + palette.Primary + ";--title-color:" + palette.Secondary)
			c.NodeStyle = template.CSS("background-color:" + palette.Accent)
		}
		v.Cards = append(v.Cards, c)
	}
	return v
}

// safePalette completes p and replaces anything that is not a plain colour
// token with the default for that role.
func safePalette(p domain.Palette) domain.Palette {
	p = p.Complete()
	d := domain.DefaultPalette
	pick := func(c, fallback string) string {
		c = strings.TrimSpace(c)
		if colorToken.MatchString(c) {
			return c
		}
		return fallback
	}
	return domain.Palette{
		Primary:    pick(p.Primary, d.Primary),
		Secondary:  pick(p.Secondary, d.Secondary),
		Background: pick(p.Background, d.Background),
		Text:       pick(p.Text, d.Text),
		Accent:     pick(p.Accent, d.Accent),
	}
}

// tint returns a translucent variant of a hex colour. Named colours are
// returned unchanged; the gradient layer is already faded.
func tint(c string) string {
	switch len(c) {
	case 4:
		if c[0] == '#' {
			return "#" + string([]byte{c[1], c[1], c[2], c[2], c[3], c[3]}) + "22"
		}
	case 7:
		if c[0] == '#' {
			return c + "22"
		}
	}
	return c
}

func backgroundURI(bg domain.Background) (string, bool) {
	if !bg.Present() {
		return "", false
	}
	uri := strings.TrimSpace(bg.URI)
	if strings.ContainsAny(uri, "\"'()\\<>\n\r") {
		return "", false
	}
	if !strings.HasPrefix(uri, "data:image/") && !strings.HasPrefix(uri, "https://") && !strings.HasPrefix(uri, "http://") {
		return "", false
	}
	return uri, true
}
