// Package pkg provides the core libraries for waterfall charts.
//
// # Overview
//
// A waterfall chart shows how a cumulative value evolves: every step is a bar
// spanning the change from the previous level, dashed connectors join
// consecutive levels, and a final bar repeats the closing value. The pkg
// directory is organized into these areas:
//
//  1. [waterfall] - Domain logic (step table, roles, colors, labels, plotting)
//  2. [render] - The plotting surface and its output sinks
//  3. [io] - Chart definition files and step table export
//  4. [pipeline] - Orchestration (plot → export) shared by CLI and API
//  5. [errors], [observability], [buildinfo] - Supporting infrastructure
//
// # Architecture
//
// The typical data flow:
//
//	Definition file (JSON/TOML/YAML/XLSX)
//	         ↓
//	    [io] package (decode + validate)
//	         ↓
//	    [waterfall] package (step table → roles → colors → labels → Plot)
//	         ↓
//	    [render] package (Axes calls recorded on a Figure)
//	         ↓
//	    [render/sink] package (SVG/PNG/PDF/JSON output)
//
// # Quick Start
//
//	import (
//	    "github.com/matzehuels/waterfall/pkg/render"
//	    "github.com/matzehuels/waterfall/pkg/render/sink"
//	    "github.com/matzehuels/waterfall/pkg/waterfall"
//	)
//
//	// 1. Build the chart
//	c, _ := waterfall.New([]float64{100, 140, 120},
//	    waterfall.WithStepNames("Q1", "Q2", "Q3"))
//
//	// 2. Plot onto a new figure
//	ax, _ := c.Plot(nil, waterfall.PlotOptions{Title: "Revenue"})
//
//	// 3. Export
//	svg, _ := sink.RenderSVG(ax.(*render.Figure))
//
// # Main Packages
//
// [waterfall] - The step table transform, role classification, the color
// palette, the label mode variant, and [waterfall.Chart.Plot].
//
// [render] - The [render.Axes] surface charts draw onto, the retained
// [render.Figure], pixel geometry, and SVG to PDF conversion.
//
// [render/sink] - Output formats: hand-written SVG, PNG via go-chart's
// raster renderer, PDF via rsvg-convert, and a JSON scene export.
//
// [render/colors] - Named, hex and single-letter color parsing.
//
// [io] - Definition files in JSON, TOML, YAML and XLSX with struct
// validation, and step table export to JSON and XLSX.
//
// [pipeline] - The plot → export pipeline. Formats are exported
// concurrently and every stage reports to [observability] hooks.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...                    # All tests
//	go test ./pkg/waterfall/...          # Specific package
//	go test -run Example ./pkg/...       # Examples only
//
// [waterfall]: https://pkg.go.dev/github.com/matzehuels/waterfall/pkg/waterfall
// [render]: https://pkg.go.dev/github.com/matzehuels/waterfall/pkg/render
// [render/sink]: https://pkg.go.dev/github.com/matzehuels/waterfall/pkg/render/sink
// [render/colors]: https://pkg.go.dev/github.com/matzehuels/waterfall/pkg/render/colors
// [io]: https://pkg.go.dev/github.com/matzehuels/waterfall/pkg/io
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/waterfall/pkg/pipeline
// [errors]: https://pkg.go.dev/github.com/matzehuels/waterfall/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/waterfall/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/waterfall/pkg/buildinfo
package pkg
