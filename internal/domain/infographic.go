package domain

import "strings"

// Layout enumerates the supported body arrangements of an infographic.
type Layout string

const (
	LayoutGridCards      Layout = "GRID_CARDS"
	LayoutConnectedFlow  Layout = "CONNECTED_FLOW"
	LayoutZigzagTimeline Layout = "ZIGZAG_TIMELINE"
)

// Layouts lists every layout in selection order.
var Layouts = []Layout{LayoutGridCards, LayoutConnectedFlow, LayoutZigzagTimeline}

// ParseLayout matches a layout identifier case-insensitively.
func ParseLayout(s string) (Layout, bool) {
	candidate := Layout(strings.ToUpper(strings.TrimSpace(s)))
	for _, l := range Layouts {
		if l == candidate {
			return l, true
		}
	}
	return "", false
}

// Valid reports whether l is one of the three known layouts.
func (l Layout) Valid() bool {
	for _, known := range Layouts {
		if l == known {
			return true
		}
	}
	return false
}

// OrDefault returns the grid layout for data that was never assigned one.
func (l Layout) OrDefault() Layout {
	if l.Valid() {
		return l
	}
	return LayoutGridCards
}

// State enumerates the generation lifecycle.
type State string

const (
	StateIdle            State = "IDLE"
	StateAnalyzing       State = "ANALYZING"
	StateGeneratingImage State = "GENERATING_IMAGE"
	StateCompleted       State = "COMPLETED"
	StateError           State = "ERROR"
)

// Point is one content unit of the outline. Icon may be empty.
type Point struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	Icon    string `json:"icon,omitempty"`
}

// Infographic is the canonical outline extracted from a lesson.
type Infographic struct {
	Topic          string  `json:"topic"`
	Subtitle       string  `json:"subtitle,omitempty"`
	TargetAudience string  `json:"targetAudience,omitempty"`
	Points         []Point `json:"points"`
	Summary        string  `json:"summary,omitempty"`
	Palette        Palette `json:"colorPalette"`
	Layout         Layout  `json:"layoutStyle,omitempty"`
}

// WithLayout returns a copy of the outline carrying the given layout.
func (d Infographic) WithLayout(l Layout) Infographic {
	out := d.Clone()
	out.Layout = l
	return out
}

// Clone returns a deep copy so callers never share the points slice.
func (d Infographic) Clone() Infographic {
	out := d
	if d.Points != nil {
		out.Points = make([]Point, len(d.Points))
		copy(out.Points, d.Points)
	}
	return out
}

// SourceImage is a reference image supplied with the lesson.
type SourceImage struct {
	Filename string
	MIME     string
	Data     []byte
}

// Background is the optional outcome of background synthesis. The zero value
// means no background was produced.
type Background struct {
	URI string `json:"uri,omitempty"`
}

// NoBackground is returned whenever synthesis is skipped or fails.
var NoBackground = Background{}

// Present reports whether a background image is available.
func (b Background) Present() bool {
	return strings.TrimSpace(b.URI) != ""
}
