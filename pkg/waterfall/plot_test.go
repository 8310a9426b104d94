package waterfall

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/waterfall/pkg/errors"
	"github.com/matzehuels/waterfall/pkg/render"
)

// recorder is an Axes that logs every call.
type recorder struct {
	calls []string
}

func (r *recorder) Bar(x, height, bottom float64, fill string, style render.BarStyle) {
	r.calls = append(r.calls, fmt.Sprintf("bar %g %g %g %s w=%g", x, height, bottom, fill, style.Width))
}

func (r *recorder) Plot(x, y []float64, style render.LineStyle) {
	r.calls = append(r.calls, fmt.Sprintf("plot n=%d %s %s", len(x), style.Color, style.Dash))
}

func (r *recorder) Text(x, y float64, s string, style render.TextStyle) {
	r.calls = append(r.calls, fmt.Sprintf("text %g %.4g %s %s %s %s", x, y, s, style.Color, style.HAlign, style.VAlign))
}

func (r *recorder) SetXLim(lo, hi float64) { r.calls = append(r.calls, fmt.Sprintf("xlim %g %g", lo, hi)) }
func (r *recorder) SetYLim(lo, hi float64) { r.calls = append(r.calls, fmt.Sprintf("ylim %g %.4g", lo, hi)) }
func (r *recorder) SetXTickLabels(l []string) {
	r.calls = append(r.calls, fmt.Sprintf("xticks %v", l))
}
func (r *recorder) SetYLabel(s string) { r.calls = append(r.calls, "ylabel "+s) }
func (r *recorder) SetTitle(s string, size float64) {
	r.calls = append(r.calls, fmt.Sprintf("title %q %g", s, size))
}

func TestPlotDrawCalls(t *testing.T) {
	c, err := New([]float64{100, 120, 90, 130}, WithMetricName("Revenue"))
	require.NoError(t, err)

	rec := &recorder{}
	ax, err := c.Plot(rec, PlotOptions{Title: "Bridge"})
	require.NoError(t, err)
	assert.Same(t, rec, ax)

	assert.Equal(t, []string{
		"bar 0 100 0 cyan w=0.6",
		"bar 1 20 100 seagreen w=0.6",
		"bar 2 -30 120 salmon w=0.6",
		"bar 3 40 90 seagreen w=0.6",
		"bar 4 130 0 grey w=0.6",
		"plot n=13 grey --",
		"text 0 102 100 black center baseline",
		"text 1 122.4 20 darkgreen center baseline",
		"text 2 91.8 -30 maroon center baseline",
		"text 3 132.6 40 darkgreen center baseline",
		"text 4 132.6 130 black center baseline",
		"xticks [Step_1 Step_2 Step_3 Step_4 Final Value]",
		"xlim -0.5 4.5",
		"ylim 0 143",
		"ylabel Revenue",
		`title "Bridge" 16`,
	}, rec.calls)
}

func TestPlotNoLabels(t *testing.T) {
	c, err := New([]float64{50})
	require.NoError(t, err)

	rec := &recorder{}
	_, err = c.Plot(rec, PlotOptions{Labels: NoLabels()})
	require.NoError(t, err)
	for _, call := range rec.calls {
		assert.NotContains(t, call, "text ")
	}
	assert.Contains(t, rec.calls, "plot n=4 grey --")
}

func TestPlotForwardsStyles(t *testing.T) {
	c, err := New([]float64{10, 20})
	require.NoError(t, err)

	rec := &recorder{}
	_, err = c.Plot(rec, PlotOptions{
		Bar:    render.BarStyle{Width: 0.9},
		Line:   render.LineStyle{Color: "black", Dash: ":"},
		Labels: FixedLabel("x"),
		Colors: Palette{BarStart: "c"},
	})
	require.NoError(t, err)
	assert.Equal(t, "bar 0 10 0 c w=0.9", rec.calls[0])
	assert.Contains(t, rec.calls, "plot n=7 black :")
	assert.Contains(t, rec.calls, "text 1 20.4 x darkgreen center baseline")
}

func TestPlotErrorsDrawNothing(t *testing.T) {
	c, err := New([]float64{100, 120, 90, 130})
	require.NoError(t, err)

	tests := []struct {
		name string
		opts PlotOptions
		code errors.Code
	}{
		{"label list too short", PlotOptions{Labels: ListLabels("a", "b")}, errors.ErrCodeShapeMismatch},
		{"bad palette color", PlotOptions{Colors: Palette{BarEnd: "greyish"}}, errors.ErrCodeInvalidColor},
		{"bad edge color", PlotOptions{Bar: render.BarStyle{EdgeColor: "#12"}}, errors.ErrCodeInvalidColor},
		{"bad line color", PlotOptions{Line: render.LineStyle{Color: "?"}}, errors.ErrCodeInvalidColor},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &recorder{}
			ax, err := c.Plot(rec, tt.opts)
			require.Error(t, err)
			assert.Equal(t, tt.code, errors.GetCode(err))
			assert.Nil(t, ax)
			assert.Empty(t, rec.calls)
		})
	}
}

func TestPlotNilFigureCreatesFigure(t *testing.T) {
	c, err := New([]float64{100, 70})
	require.NoError(t, err)

	var fig *render.Figure
	ax, err := c.Plot(fig, PlotOptions{})
	require.NoError(t, err)

	got, ok := ax.(*render.Figure)
	require.True(t, ok)
	require.NotNil(t, got)
	assert.Len(t, got.Bars, 3)
}

func TestPlotCreatesFigure(t *testing.T) {
	c, err := New([]float64{100, 120, 90, 130}, WithStepNames("a", "b", "c", "d"))
	require.NoError(t, err)

	ax, err := c.Plot(nil, PlotOptions{FigSize: render.Size{Width: 8, Height: 4}, Title: "T"})
	require.NoError(t, err)

	fig, ok := ax.(*render.Figure)
	require.True(t, ok)
	assert.Equal(t, render.Size{Width: 8, Height: 4}, fig.Size)
	assert.Len(t, fig.Bars, 5)
	assert.Len(t, fig.Texts, 5)
	require.Len(t, fig.Lines, 1)
	assert.True(t, math.IsNaN(fig.Lines[0].Y[0]))
	assert.Equal(t, []string{"a", "b", "c", "d", "Final Value"}, fig.XTickLabels)
	assert.Equal(t, render.Range{Min: -0.5, Max: 4.5}, fig.XLim())
	assert.InDelta(t, 143.0, fig.YLim().Max, 1e-9)
	assert.Equal(t, "Value", fig.YLabel)
	assert.Equal(t, TitleFontSize, fig.TitleSize)
}

func TestPlotDefaultFigureSize(t *testing.T) {
	c, err := New([]float64{1})
	require.NoError(t, err)

	ax, err := c.Plot(nil, PlotOptions{})
	require.NoError(t, err)
	assert.Equal(t, render.DefaultSize, ax.(*render.Figure).Size)
}
