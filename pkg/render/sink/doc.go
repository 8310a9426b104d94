// Package sink provides output format renderers for waterfall figures.
//
// # Overview
//
// A "sink" turns a finished [render.Figure] into a final output format.
// This package provides renderers for:
//
//   - SVG: Scalable vector graphics, written directly
//   - PNG: Raster output drawn with go-chart's renderer primitives
//   - PDF: Print-ready output (requires rsvg-convert)
//   - JSON: The recorded figure scene for external tools
//
// # SVG Output
//
//	svg, err := sink.RenderSVG(fig, sink.WithBackground("white"))
//
// # PNG Output
//
// [RenderPNG] rasterizes natively, so it needs no external tools:
//
//	png, err := sink.RenderPNG(fig, sink.WithScale(2))
//
// # PDF Output
//
// [RenderPDF] renders SVG first and converts it via [render.ToPDF]. It
// requires librsvg to be installed:
//   - macOS: brew install librsvg
//   - Linux: apt install librsvg2-bin
//
// # Adding New Formats
//
// To add a new output format:
//
//  1. Create a renderer function: func RenderFoo(f *render.Figure, opts ...FooOption) ([]byte, error)
//  2. Lay the figure out with [render.NewFrame] to get pixel coordinates
//  3. Register the format in [Render] and [Formats]
//
// [render.Figure]: github.com/matzehuels/waterfall/pkg/render.Figure
// [render.ToPDF]: github.com/matzehuels/waterfall/pkg/render.ToPDF
// [render.NewFrame]: github.com/matzehuels/waterfall/pkg/render.NewFrame
package sink
