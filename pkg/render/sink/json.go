package sink

import (
	"encoding/json"
	"math"

	"github.com/matzehuels/waterfall/pkg/errors"
	"github.com/matzehuels/waterfall/pkg/render"
)

type jsonOutput struct {
	Width       float64           `json:"width"`
	Height      float64           `json:"height"`
	DPI         float64           `json:"dpi"`
	Title       string            `json:"title,omitempty"`
	TitleSize   float64           `json:"title_size,omitempty"`
	YLabel      string            `json:"y_label,omitempty"`
	XTickLabels []string          `json:"x_tick_labels,omitempty"`
	XLim        render.Range      `json:"x_lim"`
	YLim        render.Range      `json:"y_lim"`
	Bars        []jsonBar         `json:"bars"`
	Lines       []jsonLine        `json:"lines"`
	Texts       []render.TextMark `json:"texts"`
}

type jsonBar struct {
	render.BarMark
	Top float64 `json:"top"`
}

// jsonLine encodes NaN gaps as null, which encoding/json cannot do for float64.
type jsonLine struct {
	X     []*float64       `json:"x"`
	Y     []*float64       `json:"y"`
	Style render.LineStyle `json:"style"`
}

// RenderJSON exports the recorded figure as a pretty-printed JSON document:
// figure size, axis ranges and labels, and every bar, line and text mark in
// draw order with styles resolved to their defaults.
//
// Line gaps are written as null. RenderJSON does not modify f and is safe to
// call concurrently with other sinks.
func RenderJSON(f *render.Figure) ([]byte, error) {
	out := jsonOutput{
		Width:       f.Size.Width,
		Height:      f.Size.Height,
		DPI:         render.DPI,
		Title:       f.Title,
		TitleSize:   f.TitleSize,
		YLabel:      f.YLabel,
		XTickLabels: f.XTickLabels,
		XLim:        f.XLim(),
		YLim:        f.YLim(),
		Bars:        make([]jsonBar, len(f.Bars)),
		Lines:       make([]jsonLine, len(f.Lines)),
		Texts:       make([]render.TextMark, len(f.Texts)),
	}
	for i, b := range f.Bars {
		b.Style = b.Style.WithDefaults()
		out.Bars[i] = jsonBar{BarMark: b, Top: b.Top()}
	}
	for i, l := range f.Lines {
		out.Lines[i] = jsonLine{X: nullable(l.X), Y: nullable(l.Y), Style: l.Style.WithDefaults()}
	}
	for i, t := range f.Texts {
		t.Style = t.Style.WithDefaults()
		out.Texts[i] = t
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode figure")
	}
	return data, nil
}

func nullable(vs []float64) []*float64 {
	out := make([]*float64, len(vs))
	for i, v := range vs {
		v := v
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		out[i] = &v
	}
	return out
}
