package waterfall

import (
	"github.com/matzehuels/waterfall/pkg/errors"
	"github.com/matzehuels/waterfall/pkg/render/colors"
)

// Palette maps bar roles to bar and text colors. Any color accepted by
// package colors works; empty fields take the [DefaultPalette] color.
type Palette struct {
	BarPositive  string `json:"bar_positive,omitempty" toml:"bar_positive" yaml:"bar_positive"`
	BarNegative  string `json:"bar_negative,omitempty" toml:"bar_negative" yaml:"bar_negative"`
	BarStart     string `json:"bar_start,omitempty" toml:"bar_start" yaml:"bar_start"`
	BarEnd       string `json:"bar_end,omitempty" toml:"bar_end" yaml:"bar_end"`
	TextPositive string `json:"text_positive,omitempty" toml:"text_positive" yaml:"text_positive"`
	TextNegative string `json:"text_negative,omitempty" toml:"text_negative" yaml:"text_negative"`
	TextStart    string `json:"text_start,omitempty" toml:"text_start" yaml:"text_start"`
	TextEnd      string `json:"text_end,omitempty" toml:"text_end" yaml:"text_end"`
}

// DefaultPalette returns the stock waterfall colors.
func DefaultPalette() Palette {
	return Palette{
		BarPositive:  "seagreen",
		BarNegative:  "salmon",
		BarStart:     "cyan",
		BarEnd:       "grey",
		TextPositive: "darkgreen",
		TextNegative: "maroon",
		TextStart:    "black",
		TextEnd:      "black",
	}
}

// WithDefaults returns a copy of p with empty fields set from DefaultPalette.
func (p Palette) WithDefaults() Palette {
	d := DefaultPalette()
	fill := func(dst *string, def string) {
		if *dst == "" {
			*dst = def
		}
	}
	fill(&p.BarPositive, d.BarPositive)
	fill(&p.BarNegative, d.BarNegative)
	fill(&p.BarStart, d.BarStart)
	fill(&p.BarEnd, d.BarEnd)
	fill(&p.TextPositive, d.TextPositive)
	fill(&p.TextNegative, d.TextNegative)
	fill(&p.TextStart, d.TextStart)
	fill(&p.TextEnd, d.TextEnd)
	return p
}

// Validate checks that every non-empty color parses.
func (p Palette) Validate() error {
	fields := []struct{ name, value string }{
		{"bar_positive", p.BarPositive},
		{"bar_negative", p.BarNegative},
		{"bar_start", p.BarStart},
		{"bar_end", p.BarEnd},
		{"text_positive", p.TextPositive},
		{"text_negative", p.TextNegative},
		{"text_start", p.TextStart},
		{"text_end", p.TextEnd},
	}
	for _, f := range fields {
		if f.value == "" {
			continue
		}
		if _, err := colors.Parse(f.value); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidColor, err, "palette %s", f.name)
		}
	}
	return nil
}

// Bar returns the bar color for a role.
func (p Palette) Bar(r Role) string {
	switch r {
	case RoleStart:
		return p.BarStart
	case RoleEnd:
		return p.BarEnd
	case RoleNegative:
		return p.BarNegative
	default:
		return p.BarPositive
	}
}

// Text returns the label color for a role.
func (p Palette) Text(r Role) string {
	switch r {
	case RoleStart:
		return p.TextStart
	case RoleEnd:
		return p.TextEnd
	case RoleNegative:
		return p.TextNegative
	default:
		return p.TextPositive
	}
}

// ResolveColors returns the bar and text color of every record, looked up
// by role in palette merged with the defaults.
func ResolveColors(records []StepRecord, palette Palette) (bar, text []string) {
	p := palette.WithDefaults()
	bar = make([]string, len(records))
	text = make([]string, len(records))
	for i, r := range Roles(records) {
		bar[i] = p.Bar(r)
		text[i] = p.Text(r)
	}
	return bar, text
}
