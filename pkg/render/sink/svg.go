package sink

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"image/color"
	"strings"

	"github.com/matzehuels/waterfall/pkg/render"
	"github.com/matzehuels/waterfall/pkg/render/colors"
)

const defaultFontFamily = `'DejaVu Sans', 'Helvetica Neue', Arial, sans-serif`

// SVGOption configures SVG rendering.
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	background string
	fontFamily string
}

func WithBackground(c string) SVGOption  { return func(r *svgRenderer) { r.background = c } }
func WithFontFamily(ff string) SVGOption { return func(r *svgRenderer) { r.fontFamily = ff } }

// paint is a resolved fill or stroke.
type paint struct {
	hex     string
	rgb     color.RGBA
	opacity float64
}

func (p paint) none() bool { return p.opacity == 0 }

// resolvePaint parses spec and folds alpha into its opacity.
func resolvePaint(spec string, alpha float64) (paint, error) {
	c, err := colors.Parse(spec)
	if err != nil {
		return paint{}, err
	}
	return paint{hex: colors.Hex(c), rgb: c, opacity: colors.Opacity(c) * alpha}, nil
}

// RenderSVG renders the figure as a standalone SVG document. Every color is
// resolved before any output is produced, so a bad color yields an error and
// no partial document.
func RenderSVG(f *render.Figure, opts ...SVGOption) ([]byte, error) {
	r := svgRenderer{background: "white", fontFamily: defaultFontFamily}
	for _, opt := range opts {
		opt(&r)
	}

	sc, err := resolveScene(f, r.background)
	if err != nil {
		return nil, err
	}
	fr := sc.frame

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f" font-family="%s">`+"\n",
		fr.Width, fr.Height, fr.Width, fr.Height, escapeXML(r.fontFamily))

	if !sc.background.none() {
		fmt.Fprintf(&buf, `  <rect x="0" y="0" width="%.1f" height="%.1f" fill="%s"%s/>`+"\n",
			fr.Width, fr.Height, sc.background.hex, opacityAttr("fill-opacity", sc.background.opacity))
	}
	fmt.Fprintf(&buf, `  <defs><clipPath id="plot-area"><rect x="%.2f" y="%.2f" width="%.2f" height="%.2f"/></clipPath></defs>`+"\n",
		fr.Plot.Left, fr.Plot.Top, fr.Plot.Width(), fr.Plot.Height())

	buf.WriteString(`  <g class="bars" clip-path="url(#plot-area)">` + "\n")
	for i, b := range f.Bars {
		writeSVGBar(&buf, fr, b, sc.bars[i])
	}
	buf.WriteString("  </g>\n")

	buf.WriteString(`  <g class="lines" clip-path="url(#plot-area)">` + "\n")
	for i, l := range f.Lines {
		writeSVGLine(&buf, fr, l, sc.lines[i])
	}
	buf.WriteString("  </g>\n")

	writeSVGAxes(&buf, f, fr)

	buf.WriteString(`  <g class="labels">` + "\n")
	for i, t := range f.Texts {
		writeSVGText(&buf, fr, t, sc.texts[i])
	}
	buf.WriteString("  </g>\n")

	buf.WriteString("</svg>\n")
	return buf.Bytes(), nil
}

// scene holds the resolved paints for every mark of a figure.
type scene struct {
	frame      render.Frame
	background paint
	bars       []barPaint
	lines      []paint
	texts      []paint
}

type barPaint struct {
	fill, edge paint
}

func resolveScene(f *render.Figure, background string) (scene, error) {
	sc := scene{frame: render.NewFrame(f)}
	var err error
	if sc.background, err = resolvePaint(background, 1); err != nil {
		return scene{}, err
	}
	for _, b := range f.Bars {
		st := b.Style.WithDefaults()
		fill, err := resolvePaint(b.Fill, st.Alpha)
		if err != nil {
			return scene{}, err
		}
		edge, err := resolvePaint(st.EdgeColor, 1)
		if err != nil {
			return scene{}, err
		}
		sc.bars = append(sc.bars, barPaint{fill: fill, edge: edge})
	}
	for _, l := range f.Lines {
		st := l.Style.WithDefaults()
		p, err := resolvePaint(st.Color, st.Alpha)
		if err != nil {
			return scene{}, err
		}
		sc.lines = append(sc.lines, p)
	}
	for _, t := range f.Texts {
		p, err := resolvePaint(t.Style.WithDefaults().Color, 1)
		if err != nil {
			return scene{}, err
		}
		sc.texts = append(sc.texts, p)
	}
	return sc, nil
}

func writeSVGBar(buf *bytes.Buffer, fr render.Frame, b render.BarMark, p barPaint) {
	box, ok := fr.BarBox(b)
	if !ok {
		return
	}
	fill := "none"
	if !p.fill.none() {
		fill = p.fill.hex
	}
	fmt.Fprintf(buf, `    <rect x="%.2f" y="%.2f" width="%.2f" height="%.2f" fill="%s"%s`,
		box.Left, box.Top, box.Width(), box.Height(), fill, opacityAttr("fill-opacity", p.fill.opacity))
	if !p.edge.none() {
		fmt.Fprintf(buf, ` stroke="%s" stroke-width="%.2f"%s`,
			p.edge.hex, render.PointsToPixels(b.Style.WithDefaults().LineWidth), opacityAttr("stroke-opacity", p.edge.opacity))
	}
	buf.WriteString("/>\n")
}

func writeSVGLine(buf *bytes.Buffer, fr render.Frame, l render.LineMark, p paint) {
	if p.none() {
		return
	}
	st := l.Style.WithDefaults()
	width := render.PointsToPixels(st.Width)
	dash := ""
	if pattern := st.DashPattern(); len(pattern) > 0 {
		parts := make([]string, len(pattern))
		for i, d := range pattern {
			parts[i] = fmt.Sprintf("%.2f", render.PointsToPixels(d))
		}
		dash = fmt.Sprintf(` stroke-dasharray="%s"`, strings.Join(parts, ","))
	}
	for _, seg := range fr.Segments(l) {
		pts := make([]string, len(seg))
		for i, pt := range seg {
			pts[i] = fmt.Sprintf("%.2f,%.2f", pt.X, pt.Y)
		}
		fmt.Fprintf(buf, `    <polyline points="%s" fill="none" stroke="%s" stroke-width="%.2f"%s%s/>`+"\n",
			strings.Join(pts, " "), p.hex, width, dash, opacityAttr("stroke-opacity", p.opacity))
	}
}

func writeSVGAxes(buf *bytes.Buffer, f *render.Figure, fr render.Frame) {
	tickSize := render.PointsToPixels(render.DefaultFontSize)
	buf.WriteString(`  <g class="axes" stroke="#000000" stroke-width="0.8" fill="none">` + "\n")
	fmt.Fprintf(buf, `    <rect x="%.2f" y="%.2f" width="%.2f" height="%.2f"/>`+"\n",
		fr.Plot.Left, fr.Plot.Top, fr.Plot.Width(), fr.Plot.Height())

	ticks := fr.YTicks()
	for _, v := range ticks {
		y := fr.PY(v)
		fmt.Fprintf(buf, `    <line x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f"/>`+"\n",
			fr.Plot.Left-render.TickLength, y, fr.Plot.Left, y)
	}
	xticks := visibleXTicks(f, fr)
	for _, i := range xticks {
		x := fr.PX(float64(i))
		fmt.Fprintf(buf, `    <line x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f"/>`+"\n",
			x, fr.Plot.Bottom, x, fr.Plot.Bottom+render.TickLength)
	}
	buf.WriteString("  </g>\n")

	fmt.Fprintf(buf, `  <g class="ticks" fill="#000000" font-size="%.2f">`+"\n", tickSize)
	for _, v := range ticks {
		fmt.Fprintf(buf, `    <text x="%.2f" y="%.2f" text-anchor="end" dominant-baseline="middle">%s</text>`+"\n",
			fr.Plot.Left-render.TickLength-3, fr.PY(v), escapeXML(render.FormatTick(v, ticks)))
	}
	for _, i := range xticks {
		fmt.Fprintf(buf, `    <text x="%.2f" y="%.2f" text-anchor="middle" dominant-baseline="hanging">%s</text>`+"\n",
			fr.PX(float64(i)), fr.Plot.Bottom+render.TickLength+3, escapeXML(f.XTickLabels[i]))
	}
	buf.WriteString("  </g>\n")

	if f.YLabel != "" {
		x := fr.Plot.Left - 64
		y := (fr.Plot.Top + fr.Plot.Bottom) / 2
		fmt.Fprintf(buf, `  <text x="%.2f" y="%.2f" transform="rotate(-90 %.2f %.2f)" text-anchor="middle" dominant-baseline="hanging" font-size="%.2f" fill="#000000">%s</text>`+"\n",
			x, y, x, y, tickSize, escapeXML(f.YLabel))
	}
	if f.Title != "" {
		size := f.TitleSize
		if size <= 0 {
			size = render.DefaultFontSize * 1.2
		}
		fmt.Fprintf(buf, `  <text x="%.2f" y="%.2f" text-anchor="middle" font-size="%.2f" fill="#000000">%s</text>`+"\n",
			(fr.Plot.Left+fr.Plot.Right)/2, fr.Plot.Top-12, render.PointsToPixels(size), escapeXML(f.Title))
	}
}

// visibleXTicks returns the indexes of tick labels inside the x range.
func visibleXTicks(f *render.Figure, fr render.Frame) []int {
	var out []int
	lo, hi := min(fr.X.Min, fr.X.Max), max(fr.X.Min, fr.X.Max)
	for i := range f.XTickLabels {
		if x := float64(i); x >= lo && x <= hi {
			out = append(out, i)
		}
	}
	return out
}

var svgAnchor = map[render.HAlign]string{
	render.AlignLeft:   "start",
	render.AlignCenter: "middle",
	render.AlignRight:  "end",
}

var svgBaseline = map[render.VAlign]string{
	render.AlignBaseline: "auto",
	render.AlignBottom:   "text-after-edge",
	render.AlignMiddle:   "middle",
	render.AlignTop:      "hanging",
}

func writeSVGText(buf *bytes.Buffer, fr render.Frame, t render.TextMark, p paint) {
	st := t.Style.WithDefaults()
	fmt.Fprintf(buf, `    <text x="%.2f" y="%.2f" text-anchor="%s" dominant-baseline="%s" font-size="%.2f" fill="%s"%s>%s</text>`+"\n",
		fr.PX(t.X), fr.PY(t.Y), svgAnchor[st.HAlign], svgBaseline[st.VAlign],
		render.PointsToPixels(st.FontSize), p.hex, opacityAttr("fill-opacity", p.opacity), escapeXML(t.Text))
}

func opacityAttr(name string, v float64) string {
	if v >= 1 {
		return ""
	}
	return fmt.Sprintf(` %s="%.3f"`, name, v)
}

func escapeXML(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
