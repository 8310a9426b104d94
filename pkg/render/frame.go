package render

import (
	"math"
	"strconv"
)

// Margins around the plot area, in pixels at 1x.
const (
	marginLeft        = 84.0 // room for tick labels and the value-axis label
	marginLeftNoLabel = 64.0
	marginRight       = 24.0
	marginTop         = 24.0
	marginTopTitle    = 52.0
	marginBottom      = 48.0
)

// TickLength is the length of axis tick marks in pixels.
const TickLength = 5.0

// Box is an axis-aligned rectangle in pixel coordinates (y grows downwards).
type Box struct {
	Left, Top, Right, Bottom float64
}

func (b Box) Width() float64  { return b.Right - b.Left }
func (b Box) Height() float64 { return b.Bottom - b.Top }

// Point is a pixel coordinate.
type Point struct{ X, Y float64 }

// Frame maps the data coordinates of a figure onto a pixel canvas.
type Frame struct {
	Width, Height float64 // canvas size in pixels
	Plot          Box     // plot area in pixels
	X, Y          Range   // visible data ranges
}

// NewFrame lays out f on a canvas of the figure's pixel size.
func NewFrame(f *Figure) Frame {
	w, h := f.Size.Pixels()
	left := marginLeft
	if f.YLabel == "" {
		left = marginLeftNoLabel
	}
	top := marginTop
	if f.Title != "" {
		top = marginTopTitle
	}
	return Frame{
		Width:  float64(w),
		Height: float64(h),
		Plot: Box{
			Left:   left,
			Top:    top,
			Right:  max(left+1, float64(w)-marginRight),
			Bottom: max(top+1, float64(h)-marginBottom),
		},
		X: padRange(f.XLim()),
		Y: padRange(f.YLim()),
	}
}

// PX maps a category-axis value to a pixel column.
func (fr Frame) PX(x float64) float64 {
	return fr.Plot.Left + (x-fr.X.Min)/fr.X.Span()*fr.Plot.Width()
}

// PY maps a value-axis value to a pixel row.
func (fr Frame) PY(y float64) float64 {
	return fr.Plot.Bottom - (y-fr.Y.Min)/fr.Y.Span()*fr.Plot.Height()
}

// BarBox returns the pixel rectangle of a bar, clipped to the plot area.
// ok is false when the bar lies entirely outside the visible ranges.
func (fr Frame) BarBox(b BarMark) (box Box, ok bool) {
	half := b.Style.WithDefaults().Width / 2
	x1, x2 := fr.PX(b.X-half), fr.PX(b.X+half)
	y1, y2 := fr.PY(b.Top()), fr.PY(b.Low())
	box = Box{
		Left:   max(min(x1, x2), fr.Plot.Left),
		Right:  min(max(x1, x2), fr.Plot.Right),
		Top:    max(min(y1, y2), fr.Plot.Top),
		Bottom: min(max(y1, y2), fr.Plot.Bottom),
	}
	return box, box.Width() > 0 && box.Height() >= 0
}

// Segments splits a line mark into pixel polylines at NaN gaps. Polylines
// with fewer than two points are dropped.
func (fr Frame) Segments(l LineMark) [][]Point {
	var out [][]Point
	var cur []Point
	flush := func() {
		if len(cur) > 1 {
			out = append(out, cur)
		}
		cur = nil
	}
	for i := range l.X {
		if math.IsNaN(l.X[i]) || math.IsNaN(l.Y[i]) {
			flush()
			continue
		}
		cur = append(cur, Point{X: fr.PX(l.X[i]), Y: fr.PY(l.Y[i])})
	}
	flush()
	return out
}

// YTicks returns tick values inside the visible value range.
func (fr Frame) YTicks() []float64 {
	return NiceTicks(fr.Y, max(2, int(fr.Plot.Height()/50)))
}

// PointsToPixels converts a font size or stroke width in points to pixels.
func PointsToPixels(pt float64) float64 { return pt * DPI / 72 }

// NiceTicks returns up to roughly target round tick values covering r.
// Steps are 1, 2, 2.5 or 5 times a power of ten.
func NiceTicks(r Range, target int) []float64 {
	lo, hi := min(r.Min, r.Max), max(r.Min, r.Max)
	if hi-lo == 0 || target < 1 {
		return []float64{lo}
	}
	step := niceStep((hi - lo) / float64(target))
	start := math.Ceil(lo/step) * step
	var ticks []float64
	for v := start; v <= hi+step*1e-9; v += step {
		// Snap accumulated float error back onto the step grid.
		ticks = append(ticks, math.Round(v/step)*step)
	}
	return ticks
}

func niceStep(raw float64) float64 {
	exp := math.Floor(math.Log10(raw))
	pow := math.Pow(10, exp)
	frac := raw / pow
	switch {
	case frac <= 1:
		return pow
	case frac <= 2:
		return 2 * pow
	case frac <= 2.5:
		return 2.5 * pow
	case frac <= 5:
		return 5 * pow
	default:
		return 10 * pow
	}
}

// FormatTick renders a tick value with just enough decimals for the tick
// spacing in ticks.
func FormatTick(v float64, ticks []float64) string {
	decimals := 0
	if len(ticks) > 1 {
		step := math.Abs(ticks[1] - ticks[0])
		if step > 0 && step < 1 {
			decimals = int(math.Ceil(-math.Log10(step)))
			if math.Abs(step*math.Pow(10, float64(decimals))-math.Round(step*math.Pow(10, float64(decimals)))) > 1e-9 {
				decimals++
			}
		}
	}
	if v == 0 {
		v = 0 // normalize -0
	}
	return strconv.FormatFloat(v, 'f', decimals, 64)
}
