package domain

import (
	"bytes"
	"encoding/json"
	"strings"
)

// Palette holds the five colour roles every layout reads from.
type Palette struct {
	Primary    string `json:"primary"`
	Secondary  string `json:"secondary"`
	Background string `json:"background"`
	Text       string `json:"text"`
	Accent     string `json:"accent"`
}

// DefaultPalette supplies the value of any role the model left out.
var DefaultPalette = Palette{
	Primary:    "#4f46e5",
	Secondary:  "#6366f1",
	Background: "#ffffff",
	Text:       "#1f2937",
	Accent:     "#fbbf24",
}

// Complete returns a palette where every empty role takes the default value.
func (p Palette) Complete() Palette {
	return Palette{
		Primary:    orDefault(p.Primary, DefaultPalette.Primary),
		Secondary:  orDefault(p.Secondary, DefaultPalette.Secondary),
		Background: orDefault(p.Background, DefaultPalette.Background),
		Text:       orDefault(p.Text, DefaultPalette.Text),
		Accent:     orDefault(p.Accent, DefaultPalette.Accent),
	}
}

// PaletteFromList maps an ordered colour list onto primary, secondary,
// background, text and accent.
func PaletteFromList(colors []string) Palette {
	roles := make([]string, 5)
	for i := 0; i < len(colors) && i < len(roles); i++ {
		roles[i] = colors[i]
	}
	return Palette{
		Primary:    roles[0],
		Secondary:  roles[1],
		Background: roles[2],
		Text:       roles[3],
		Accent:     roles[4],
	}.Complete()
}

// UnmarshalJSON accepts the named-role object as well as a bare list.
func (p *Palette) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		*p = DefaultPalette
		return nil
	}
	if trimmed[0] == '[' {
		var list []string
		if err := json.Unmarshal(trimmed, &list); err != nil {
			return err
		}
		*p = PaletteFromList(list)
		return nil
	}
	type rawPalette Palette
	var raw rawPalette
	if err := json.Unmarshal(trimmed, &raw); err != nil {
		return err
	}
	*p = Palette(raw).Complete()
	return nil
}

func orDefault(v, fallback string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return fallback
	}
	return v
}
