package diffview

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/styles"
)

// Theme holds the colors of rendered documents as #rrggbb strings.
type Theme struct {
	Name             string
	Background       string
	Panel            string
	Border           string
	Text             string
	Muted            string
	LineNumber       string
	Accent           string
	AddedText        string
	RemovedText      string
	AddedBg          string
	RemovedBg        string
	ModifiedBg       string
	AddedHighlight   string
	RemovedHighlight string
}

// DefaultTheme is the built-in dark theme.
func DefaultTheme() Theme {
	return Theme{
		Name:             "dark",
		Background:       "#1e1e1e",
		Panel:            "#252526",
		Border:           "#3c3c3c",
		Text:             "#d4d4d4",
		Muted:            "#9d9d9d",
		LineNumber:       "#6e7681",
		Accent:           "#4ec9b0",
		AddedText:        "#4ec9b0",
		RemovedText:      "#f14c4c",
		AddedBg:          "#1e3a1e",
		RemovedBg:        "#3a1e1e",
		ModifiedBg:       "#33301a",
		AddedHighlight:   "#2d5a2d",
		RemovedHighlight: "#5a2d2d",
	}
}

// LoadTheme derives a theme from the chroma style called name. Colors the style leaves unset keep their DefaultTheme
// value. The empty name returns DefaultTheme.
func LoadTheme(name string) (Theme, error) {
	name = strings.TrimSpace(name)
	if name == "" || name == "dark" {
		return DefaultTheme(), nil
	}
	style, ok := styles.Registry[strings.ToLower(name)]
	if !ok {
		return Theme{}, fmt.Errorf("unknown theme %q", name)
	}

	t := DefaultTheme()
	t.Name = style.Name
	bg := style.Get(chroma.Background)
	setColour(&t.Background, bg.Background)
	setColour(&t.Text, bg.Colour)
	if bg.Background.IsSet() {
		t.Panel = bg.Background.BrightenOrDarken(0.05).String()
		t.Border = bg.Background.BrightenOrDarken(0.2).String()
	}
	setColour(&t.Muted, style.Get(chroma.Comment).Colour)
	setColour(&t.LineNumber, style.Get(chroma.LineNumbers).Colour)
	setColour(&t.Accent, style.Get(chroma.Keyword).Colour)

	ins := style.Get(chroma.GenericInserted)
	setColour(&t.AddedText, ins.Colour)
	setColour(&t.AddedBg, ins.Background)
	del := style.Get(chroma.GenericDeleted)
	setColour(&t.RemovedText, del.Colour)
	setColour(&t.RemovedBg, del.Background)
	if ins.Background.IsSet() {
		t.AddedHighlight = ins.Background.Brighten(-0.15).String()
	}
	if del.Background.IsSet() {
		t.RemovedHighlight = del.Background.Brighten(-0.15).String()
	}
	t.ModifiedBg = modifiedBackground(t)
	return t, t.Validate()
}

// modifiedBackground picks a row color for modified pairs that differs from the context, gap, added and removed rows.
// It prefers a blend of the added and removed backgrounds.
func modifiedBackground(t Theme) string {
	taken := []string{t.Background, t.Panel, t.AddedBg, t.RemovedBg}
	added, removed := chroma.ParseColour(t.AddedBg), chroma.ParseColour(t.RemovedBg)
	blend := chroma.NewColour(
		uint8((int(added.Red())+int(removed.Red())+1)/2),
		uint8((int(added.Green())+int(removed.Green())+1)/2),
		uint8((int(added.Blue())+int(removed.Blue())+1)/2),
	)
	candidates := []string{
		blend.String(),
		blend.BrightenOrDarken(0.15).String(),
		DefaultTheme().ModifiedBg,
		chroma.ParseColour(t.Background).BrightenOrDarken(0.3).String(),
	}
	for _, c := range candidates {
		if !containsFold(taken, c) {
			return c
		}
	}
	return candidates[len(candidates)-1]
}

func containsFold(list []string, s string) bool {
	for _, v := range list {
		if strings.EqualFold(v, s) {
			return true
		}
	}
	return false
}

func setColour(dst *string, c chroma.Colour) {
	if c.IsSet() {
		*dst = c.String()
	}
}

var hexColor = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// Validate reports the first color that is not a #rrggbb string. Renderers use DefaultTheme in place of an invalid theme.
func (t Theme) Validate() error {
	for _, c := range t.colors() {
		if !hexColor.MatchString(c.value) {
			return fmt.Errorf("theme %s: invalid %s color %q", t.Name, c.name, c.value)
		}
	}
	return nil
}

type namedColor struct {
	name, value string
}

func (t Theme) colors() []namedColor {
	return []namedColor{
		{"background", t.Background},
		{"panel", t.Panel},
		{"border", t.Border},
		{"text", t.Text},
		{"muted", t.Muted},
		{"line number", t.LineNumber},
		{"accent", t.Accent},
		{"added text", t.AddedText},
		{"removed text", t.RemovedText},
		{"added background", t.AddedBg},
		{"removed background", t.RemovedBg},
		{"modified background", t.ModifiedBg},
		{"added highlight", t.AddedHighlight},
		{"removed highlight", t.RemovedHighlight},
	}
}

// orDefault returns t, or DefaultTheme if t fails validation.
func (t Theme) orDefault() Theme {
	if t.Validate() != nil {
		return DefaultTheme()
	}
	return t
}
