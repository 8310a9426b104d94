package waterfall

import (
	"github.com/matzehuels/waterfall/pkg/errors"
	"github.com/matzehuels/waterfall/pkg/render"
	"github.com/matzehuels/waterfall/pkg/render/colors"
)

const (
	// TitleFontSize is the chart title size in points.
	TitleFontSize = 16.0
	// labelLift places value labels just above the bar top.
	labelLift = 1.02
	// headroom leaves space above the tallest bar for its label.
	headroom = 1.1
)

// PlotOptions controls Chart.Plot. The zero value draws value labels with
// the default palette and styles on a 10x5 inch figure.
type PlotOptions struct {
	FigSize render.Size      // used only when Plot creates the surface
	Title   string           // chart title, drawn at TitleFontSize
	Labels  LabelMode        // bar labels (value labels by default)
	Colors  Palette          // role colors, merged with DefaultPalette
	Bar     render.BarStyle  // forwarded to every Bar call
	Line    render.LineStyle // forwarded to the connector Plot call
}

// Validate checks the colors named by the options.
func (o PlotOptions) Validate() error {
	if err := o.Colors.Validate(); err != nil {
		return err
	}
	if c := o.Bar.EdgeColor; c != "" {
		if _, err := colors.Parse(c); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidColor, err, "bar edge color")
		}
	}
	if c := o.Line.Color; c != "" {
		if _, err := colors.Parse(c); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidColor, err, "line color")
		}
	}
	return nil
}

// Plot draws the chart onto ax and returns it. When ax is nil, or a nil
// *render.Figure, a new [render.Figure] of opts.FigSize is created and
// returned.
//
// Bars sit at x = 0..m-1 with height Delta on top of Base. Dashed connectors
// join consecutive levels and labels are centered just above each bar. The
// x range is [-0.5, m-0.5] and the y range is [0, 1.1*max(Value)].
//
// All options are validated before anything is drawn. On error nothing is
// drawn and the returned Axes is nil.
func (c *Chart) Plot(ax render.Axes, opts PlotOptions) (render.Axes, error) {
	records := c.Table()
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	labels, err := ResolveLabels(opts.Labels, records)
	if err != nil {
		return nil, err
	}
	barColors, textColors := ResolveColors(records, opts.Colors)

	if fig, ok := ax.(*render.Figure); ax == nil || (ok && fig == nil) {
		ax = render.NewFigure(opts.FigSize)
	}

	barStyle := opts.Bar.WithDefaults()
	names := make([]string, len(records))
	maxValue := records[0].Value
	for i, r := range records {
		ax.Bar(float64(i), r.Delta, r.Base, barColors[i], barStyle)
		names[i] = r.Label
		maxValue = max(maxValue, r.Value)
	}

	x, y := ConnectorSeries(records)
	ax.Plot(x, y, opts.Line.WithDefaults())

	for i, l := range labels {
		ax.Text(float64(i), records[i].Value*labelLift, l, render.TextStyle{
			Color:  textColors[i],
			HAlign: render.AlignCenter,
			VAlign: render.AlignBaseline,
		})
	}

	m := float64(len(records))
	ax.SetXTickLabels(names)
	ax.SetXLim(-0.5, m-0.5)
	ax.SetYLim(0, maxValue*headroom)
	ax.SetYLabel(c.metricName)
	ax.SetTitle(opts.Title, TitleFontSize)
	return ax, nil
}
