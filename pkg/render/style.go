package render

// BarStyle controls how bars are drawn. Zero fields take the defaults
// documented on each field.
type BarStyle struct {
	Width     float64 `json:"width,omitempty" toml:"width" yaml:"width"`                // bar width in category units (0.6)
	EdgeColor string  `json:"edge_color,omitempty" toml:"edge_color" yaml:"edge_color"` // outline color ("none")
	LineWidth float64 `json:"line_width,omitempty" toml:"line_width" yaml:"line_width"` // outline width in points (1)
	Alpha     float64 `json:"alpha,omitempty" toml:"alpha" yaml:"alpha"`                // fill opacity in (0, 1] (1)
}

// DefaultBarWidth matches the width the waterfall bars have always used.
const DefaultBarWidth = 0.6

// WithDefaults returns a copy of s with zero fields filled in.
func (s BarStyle) WithDefaults() BarStyle {
	if s.Width <= 0 {
		s.Width = DefaultBarWidth
	}
	if s.EdgeColor == "" {
		s.EdgeColor = "none"
	}
	if s.LineWidth <= 0 {
		s.LineWidth = 1
	}
	s.Alpha = clampAlpha(s.Alpha)
	return s
}

// LineStyle controls how line series are drawn.
type LineStyle struct {
	Color string  `json:"color,omitempty" toml:"color" yaml:"color"` // stroke color ("grey")
	Dash  string  `json:"dash,omitempty" toml:"dash" yaml:"dash"`    // "-", "--", ":" or "-." ("--")
	Width float64 `json:"width,omitempty" toml:"width" yaml:"width"` // stroke width in points (1.5)
	Alpha float64 `json:"alpha,omitempty" toml:"alpha" yaml:"alpha"` // stroke opacity in (0, 1] (1)
}

// WithDefaults returns a copy of s with zero fields filled in.
func (s LineStyle) WithDefaults() LineStyle {
	if s.Color == "" {
		s.Color = "grey"
	}
	if s.Dash == "" {
		s.Dash = "--"
	}
	if s.Width <= 0 {
		s.Width = 1.5
	}
	s.Alpha = clampAlpha(s.Alpha)
	return s
}

// DashPattern returns the on/off pattern for the style's dash spec, scaled
// by the stroke width. A solid line returns nil.
func (s LineStyle) DashPattern() []float64 {
	w := s.Width
	switch s.Dash {
	case "--", "dashed":
		return []float64{3.7 * w, 1.6 * w}
	case ":", "dotted":
		return []float64{1 * w, 1.65 * w}
	case "-.", "dashdot":
		return []float64{6.4 * w, 1.6 * w, 1 * w, 1.6 * w}
	default:
		return nil
	}
}

// HAlign is horizontal text alignment relative to the anchor point.
type HAlign string

const (
	AlignCenter HAlign = "center"
	AlignLeft   HAlign = "left"
	AlignRight  HAlign = "right"
)

// VAlign is vertical text alignment relative to the anchor point.
type VAlign string

const (
	AlignBaseline VAlign = "baseline"
	AlignBottom   VAlign = "bottom"
	AlignMiddle   VAlign = "middle"
	AlignTop      VAlign = "top"
)

// TextStyle controls how text marks are drawn.
type TextStyle struct {
	Color    string  `json:"color,omitempty"`
	FontSize float64 `json:"font_size,omitempty"` // points (10)
	HAlign   HAlign  `json:"h_align,omitempty"`
	VAlign   VAlign  `json:"v_align,omitempty"`
}

// DefaultFontSize is the text size used when none is given.
const DefaultFontSize = 10.0

// WithDefaults returns a copy of s with zero fields filled in.
func (s TextStyle) WithDefaults() TextStyle {
	if s.Color == "" {
		s.Color = "black"
	}
	if s.FontSize <= 0 {
		s.FontSize = DefaultFontSize
	}
	if s.HAlign == "" {
		s.HAlign = AlignCenter
	}
	if s.VAlign == "" {
		s.VAlign = AlignBaseline
	}
	return s
}

func clampAlpha(a float64) float64 {
	if a <= 0 || a > 1 {
		return 1
	}
	return a
}
