package render

import "slices"

// Axes is a drawable plotting surface addressed in data coordinates.
// Implementations decide when and how marks become pixels.
type Axes interface {
	// Bar draws a vertical bar centered on x, spanning bottom to bottom+height.
	// Negative heights extend downwards from bottom.
	Bar(x, height, bottom float64, fill string, style BarStyle)
	// Plot draws a polyline through (x[i], y[i]). A NaN in either slice breaks
	// the line, so one call can draw several disjoint segments.
	Plot(x, y []float64, style LineStyle)
	// Text places s at (x, y).
	Text(x, y float64, s string, style TextStyle)
	// SetXLim fixes the visible category-axis range.
	SetXLim(lo, hi float64)
	// SetYLim fixes the visible value-axis range.
	SetYLim(lo, hi float64)
	// SetXTickLabels labels the integer positions 0..len(labels)-1.
	SetXTickLabels(labels []string)
	// SetYLabel titles the value axis.
	SetYLabel(s string)
	// SetTitle sets the chart title drawn above the plot area.
	SetTitle(s string, fontSize float64)
}

// Size is a figure size in inches.
type Size struct {
	Width  float64 `json:"width" toml:"width" yaml:"width"`
	Height float64 `json:"height" toml:"height" yaml:"height"`
}

// DPI converts figure inches to pixels.
const DPI = 100.0

// DefaultSize is the figure size used when none is given.
var DefaultSize = Size{Width: 10, Height: 5}

// Pixels returns the figure size in whole pixels, falling back to
// DefaultSize for non-positive dimensions.
func (s Size) Pixels() (w, h int) {
	if s.Width <= 0 || s.Height <= 0 {
		s = DefaultSize
	}
	return int(s.Width * DPI), int(s.Height * DPI)
}

// Range is a closed interval on one axis.
type Range struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Span returns Max-Min.
func (r Range) Span() float64 { return r.Max - r.Min }

// BarMark is a recorded Bar call.
type BarMark struct {
	X      float64  `json:"x"`
	Height float64  `json:"height"`
	Bottom float64  `json:"bottom"`
	Fill   string   `json:"fill"`
	Style  BarStyle `json:"style"`
}

// Top returns the larger end of the bar.
func (b BarMark) Top() float64 { return max(b.Bottom, b.Bottom+b.Height) }

// Low returns the smaller end of the bar.
func (b BarMark) Low() float64 { return min(b.Bottom, b.Bottom+b.Height) }

// LineMark is a recorded Plot call.
type LineMark struct {
	X     []float64 `json:"x"`
	Y     []float64 `json:"y"`
	Style LineStyle `json:"style"`
}

// TextMark is a recorded Text call.
type TextMark struct {
	X     float64   `json:"x"`
	Y     float64   `json:"y"`
	Text  string    `json:"text"`
	Style TextStyle `json:"style"`
}

// Figure is a retained-mode Axes. It records marks in call order and is
// exported later by a sink. A Figure is not safe for concurrent mutation;
// once plotting is done it may be read by several sinks at once.
type Figure struct {
	Size Size

	Bars  []BarMark
	Lines []LineMark
	Texts []TextMark

	XTickLabels []string
	YLabel      string
	Title       string
	TitleSize   float64

	xlim, ylim       Range
	hasXLim, hasYLim bool
}

var _ Axes = (*Figure)(nil)

// NewFigure creates an empty figure of the given size.
func NewFigure(size Size) *Figure {
	if size.Width <= 0 || size.Height <= 0 {
		size = DefaultSize
	}
	return &Figure{Size: size}
}

func (f *Figure) Bar(x, height, bottom float64, fill string, style BarStyle) {
	f.Bars = append(f.Bars, BarMark{X: x, Height: height, Bottom: bottom, Fill: fill, Style: style})
}

func (f *Figure) Plot(x, y []float64, style LineStyle) {
	n := min(len(x), len(y))
	f.Lines = append(f.Lines, LineMark{X: slices.Clone(x[:n]), Y: slices.Clone(y[:n]), Style: style})
}

func (f *Figure) Text(x, y float64, s string, style TextStyle) {
	f.Texts = append(f.Texts, TextMark{X: x, Y: y, Text: s, Style: style})
}

func (f *Figure) SetXLim(lo, hi float64) { f.xlim, f.hasXLim = Range{Min: lo, Max: hi}, true }
func (f *Figure) SetYLim(lo, hi float64) { f.ylim, f.hasYLim = Range{Min: lo, Max: hi}, true }

func (f *Figure) SetXTickLabels(labels []string) { f.XTickLabels = slices.Clone(labels) }
func (f *Figure) SetYLabel(s string)             { f.YLabel = s }

func (f *Figure) SetTitle(s string, fontSize float64) {
	f.Title = s
	f.TitleSize = fontSize
}

// XLim returns the category-axis range, derived from the marks when
// SetXLim was never called.
func (f *Figure) XLim() Range {
	if f.hasXLim {
		return f.xlim
	}
	lo, hi := 0.0, 0.0
	first := true
	include := func(v float64) {
		if first {
			lo, hi, first = v, v, false
			return
		}
		lo, hi = min(lo, v), max(hi, v)
	}
	for _, b := range f.Bars {
		w := b.Style.WithDefaults().Width / 2
		include(b.X - w)
		include(b.X + w)
	}
	for _, l := range f.Lines {
		for _, x := range l.X {
			if !isNaN(x) {
				include(x)
			}
		}
	}
	return padRange(Range{Min: lo, Max: hi})
}

// YLim returns the value-axis range, derived from the marks when SetYLim
// was never called.
func (f *Figure) YLim() Range {
	if f.hasYLim {
		return f.ylim
	}
	lo, hi := 0.0, 0.0
	for _, b := range f.Bars {
		lo, hi = min(lo, b.Low()), max(hi, b.Top())
	}
	for _, l := range f.Lines {
		for _, y := range l.Y {
			if !isNaN(y) {
				lo, hi = min(lo, y), max(hi, y)
			}
		}
	}
	for _, t := range f.Texts {
		lo, hi = min(lo, t.Y), max(hi, t.Y)
	}
	return padRange(Range{Min: lo, Max: hi})
}

// padRange widens an empty range so it can be mapped onto pixels.
func padRange(r Range) Range {
	if r.Span() == 0 {
		return Range{Min: r.Min - 0.5, Max: r.Max + 0.5}
	}
	return r
}

func isNaN(v float64) bool { return v != v }
