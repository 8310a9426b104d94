// Package render provides the plotting surface that waterfall charts are
// drawn onto, and the geometry shared by every output format.
//
// # Overview
//
// Drawing is split into two stages:
//
//  1. Plot: a chart issues primitive calls (bars, line series, text, axis
//     limits, titles) against an [Axes] in data coordinates.
//  2. Export: a sink in the [sink] subpackage turns the recorded [Figure]
//     into SVG, PNG, PDF, or JSON.
//
// [Figure] is the retained-mode [Axes] implementation. It records every call
// so limits and labels may be set after the marks they apply to, the same way
// a matplotlib Axes behaves.
//
//	fig := render.NewFigure(render.DefaultSize)
//	fig.Bar(0, 100, 0, "seagreen", render.BarStyle{})
//	fig.SetYLim(0, 110)
//	svg, err := sink.RenderSVG(fig)
//
// # Geometry
//
// [NewFrame] maps data coordinates to pixels for a figure, reserving margins
// for the title, the value-axis label, and the tick labels. [NiceTicks]
// chooses round tick values for the value axis.
//
// # Format Conversion
//
// [ToPDF] converts any SVG to PDF using the external rsvg-convert tool.
//
// [sink]: github.com/matzehuels/waterfall/pkg/render/sink
package render
