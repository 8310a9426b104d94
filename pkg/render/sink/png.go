package sink

import (
	"bytes"
	"image/color"
	"math"

	"github.com/golang/freetype/truetype"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/matzehuels/waterfall/pkg/errors"
	"github.com/matzehuels/waterfall/pkg/render"
)

// PNGOption configures PNG rendering.
type PNGOption func(*pngRenderer)

type pngRenderer struct {
	scale      float64
	background string
}

// WithScale sets the PNG scale factor (default 1.0; 2.0 doubles the resolution).
func WithScale(s float64) PNGOption {
	return func(r *pngRenderer) { r.scale = s }
}

// WithPNGBackground sets the canvas color (default white).
func WithPNGBackground(c string) PNGOption {
	return func(r *pngRenderer) { r.background = c }
}

// RenderPNG rasterizes the figure with go-chart's drawing primitives.
func RenderPNG(f *render.Figure, opts ...PNGOption) ([]byte, error) {
	r := pngRenderer{scale: 1.0, background: "white"}
	for _, opt := range opts {
		opt(&r)
	}
	if r.scale <= 0 {
		r.scale = 1.0
	}

	sc, err := resolveScene(f, r.background)
	if err != nil {
		return nil, err
	}
	fr := sc.frame

	cr, err := chart.PNG(int(fr.Width*r.scale), int(fr.Height*r.scale))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "create PNG canvas")
	}
	font, err := chart.GetDefaultFont()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "load default font")
	}
	cr.SetDPI(render.DPI * r.scale)

	p := &painter{r: cr, scale: r.scale, font: font}

	if !sc.background.none() {
		p.fillRect(render.Box{Right: fr.Width, Bottom: fr.Height}, sc.background, paint{}, 0)
	}
	for i, b := range f.Bars {
		box, ok := fr.BarBox(b)
		if !ok {
			continue
		}
		p.fillRect(box, sc.bars[i].fill, sc.bars[i].edge, render.PointsToPixels(b.Style.WithDefaults().LineWidth))
	}
	for i, l := range f.Lines {
		st := l.Style.WithDefaults()
		var dash []float64
		for _, d := range st.DashPattern() {
			dash = append(dash, render.PointsToPixels(d))
		}
		for _, seg := range fr.Segments(l) {
			p.polyline(seg, sc.lines[i], render.PointsToPixels(st.Width), dash)
		}
	}
	p.axes(f, fr)
	for i, t := range f.Texts {
		st := t.Style.WithDefaults()
		p.text(t.Text, fr.PX(t.X), fr.PY(t.Y), sc.texts[i], st.FontSize, st.HAlign, st.VAlign)
	}

	var buf bytes.Buffer
	if err := cr.Save(&buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode PNG")
	}
	return buf.Bytes(), nil
}

var black = paint{hex: "#000000", rgb: color.RGBA{A: 0xff}, opacity: 1}

// painter draws frame-space primitives onto a go-chart renderer, applying
// the output scale.
type painter struct {
	r     chart.Renderer
	scale float64
	font  *truetype.Font
}

func (p *painter) px(v float64) int { return int(math.Round(v * p.scale)) }

func toDrawing(pt paint) drawing.Color {
	return drawing.Color{R: pt.rgb.R, G: pt.rgb.G, B: pt.rgb.B, A: uint8(math.Round(pt.opacity * 0xff))}
}

func (p *painter) path(pts []render.Point, closed bool) {
	p.r.MoveTo(p.px(pts[0].X), p.px(pts[0].Y))
	for _, pt := range pts[1:] {
		p.r.LineTo(p.px(pt.X), p.px(pt.Y))
	}
	if closed {
		p.r.Close()
	}
}

func (p *painter) fillRect(b render.Box, fill, edge paint, edgeWidth float64) {
	corners := []render.Point{{X: b.Left, Y: b.Top}, {X: b.Right, Y: b.Top}, {X: b.Right, Y: b.Bottom}, {X: b.Left, Y: b.Bottom}}
	p.r.ResetStyle()
	if !fill.none() {
		p.r.SetFillColor(toDrawing(fill))
		p.path(corners, true)
		p.r.Fill()
	}
	if !edge.none() && edgeWidth > 0 {
		p.r.ResetStyle()
		p.r.SetStrokeColor(toDrawing(edge))
		p.r.SetStrokeWidth(edgeWidth * p.scale)
		p.path(corners, true)
		p.r.Stroke()
	}
}

func (p *painter) polyline(pts []render.Point, stroke paint, width float64, dash []float64) {
	if stroke.none() || len(pts) < 2 {
		return
	}
	p.r.ResetStyle()
	p.r.SetStrokeColor(toDrawing(stroke))
	p.r.SetStrokeWidth(width * p.scale)
	if len(dash) > 0 {
		scaled := make([]float64, len(dash))
		for i, d := range dash {
			scaled[i] = d * p.scale
		}
		p.r.SetStrokeDashArray(scaled)
	}
	p.path(pts, false)
	p.r.Stroke()
}

func (p *painter) setFont(c paint, size float64) {
	p.r.SetFont(p.font)
	p.r.SetFontColor(toDrawing(c))
	p.r.SetFontSize(size)
}

// text draws s anchored at (x, y) in frame pixels.
func (p *painter) text(s string, x, y float64, c paint, size float64, h render.HAlign, v render.VAlign) {
	if s == "" || c.none() {
		return
	}
	p.r.ResetStyle()
	p.setFont(c, size)
	box := p.r.MeasureText(s)
	w, ht := float64(box.Width()), float64(box.Height())

	sx := x * p.scale
	switch h {
	case render.AlignCenter:
		sx -= w / 2
	case render.AlignRight:
		sx -= w
	}
	sy := y * p.scale
	switch v {
	case render.AlignTop:
		sy += ht
	case render.AlignMiddle:
		sy += ht / 2
	}
	p.r.Text(s, int(math.Round(sx)), int(math.Round(sy)))
}

// rotatedText draws s turned a quarter counter-clockwise, centered on (x, y).
func (p *painter) rotatedText(s string, x, y float64, c paint, size float64) {
	p.r.ResetStyle()
	p.setFont(c, size)
	box := p.r.MeasureText(s)
	p.r.SetTextRotation(chart.DegreesToRadians(270))
	p.r.Text(s, int(math.Round(x*p.scale+float64(box.Height()))), int(math.Round(y*p.scale+float64(box.Width())/2)))
	p.r.ClearTextRotation()
}

func (p *painter) axes(f *render.Figure, fr render.Frame) {
	frame := []render.Point{
		{X: fr.Plot.Left, Y: fr.Plot.Top}, {X: fr.Plot.Right, Y: fr.Plot.Top},
		{X: fr.Plot.Right, Y: fr.Plot.Bottom}, {X: fr.Plot.Left, Y: fr.Plot.Bottom},
		{X: fr.Plot.Left, Y: fr.Plot.Top},
	}
	p.polyline(frame, black, 0.8, nil)

	ticks := fr.YTicks()
	for _, v := range ticks {
		y := fr.PY(v)
		p.polyline([]render.Point{{X: fr.Plot.Left - render.TickLength, Y: y}, {X: fr.Plot.Left, Y: y}}, black, 0.8, nil)
		p.text(render.FormatTick(v, ticks), fr.Plot.Left-render.TickLength-3, y, black, render.DefaultFontSize, render.AlignRight, render.AlignMiddle)
	}
	for _, i := range visibleXTicks(f, fr) {
		x := fr.PX(float64(i))
		p.polyline([]render.Point{{X: x, Y: fr.Plot.Bottom}, {X: x, Y: fr.Plot.Bottom + render.TickLength}}, black, 0.8, nil)
		p.text(f.XTickLabels[i], x, fr.Plot.Bottom+render.TickLength+3, black, render.DefaultFontSize, render.AlignCenter, render.AlignTop)
	}
	if f.YLabel != "" {
		p.rotatedText(f.YLabel, fr.Plot.Left-64, (fr.Plot.Top+fr.Plot.Bottom)/2, black, render.DefaultFontSize)
	}
	if f.Title != "" {
		size := f.TitleSize
		if size <= 0 {
			size = render.DefaultFontSize * 1.2
		}
		p.text(f.Title, (fr.Plot.Left+fr.Plot.Right)/2, fr.Plot.Top-12, black, size, render.AlignCenter, render.AlignBaseline)
	}
}
