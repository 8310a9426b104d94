// Package pipeline provides the plot → export pipeline for waterfall charts.
//
// The CLI and the HTTP server both run charts through a [Runner], so
// validation, plotting and multi-format export behave the same from every
// entry point.
//
// # Stages
//
//  1. Plot: build the [waterfall.Chart] from a definition and draw it onto a
//     fresh [render.Figure]
//  2. Export: encode the finished figure once per requested format
//
// Exports only read the figure, so they run concurrently.
//
// # Usage
//
//	runner := pipeline.NewRunner(logger)
//	result, err := runner.Execute(ctx, def, pipeline.Options{
//	    Formats: []string{"svg", "png"},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"slices"
	"time"

	"github.com/matzehuels/waterfall/pkg/errors"
	"github.com/matzehuels/waterfall/pkg/io"
	"github.com/matzehuels/waterfall/pkg/render"
	"github.com/matzehuels/waterfall/pkg/render/colors"
	"github.com/matzehuels/waterfall/pkg/render/sink"
	"github.com/matzehuels/waterfall/pkg/waterfall"
)

// =============================================================================
// Default Values
// =============================================================================

const (
	DefaultFormat     = sink.FormatSVG
	DefaultBackground = "white"
	DefaultScale      = 1.0
)

// =============================================================================
// Options
// =============================================================================

// Options configures a pipeline run.
type Options struct {
	Formats    []string // output formats (default: svg)
	Background string   // canvas color for raster and vector sinks
	Scale      float64  // PNG scale factor
}

// SetDefaults fills unset fields and drops duplicate formats.
func (o *Options) SetDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{DefaultFormat}
	}
	o.Formats = uniqueFormats(o.Formats)
	if o.Background == "" {
		o.Background = DefaultBackground
	}
	if o.Scale <= 0 {
		o.Scale = DefaultScale
	}
}

// Validate checks every requested format and the background color.
func (o *Options) Validate() error {
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if o.Background != "" {
		if _, err := colors.Parse(o.Background); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidColor, err, "background")
		}
	}
	return nil
}

func (o *Options) sinkOptions() sink.Options {
	return sink.Options{Background: o.Background, Scale: o.Scale}
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := sink.ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

func uniqueFormats(formats []string) []string {
	out := make([]string, 0, len(formats))
	for _, f := range formats {
		if !slices.Contains(out, f) {
			out = append(out, f)
		}
	}
	return out
}

// =============================================================================
// Results
// =============================================================================

// Result holds everything a pipeline run produced.
type Result struct {
	Chart     *waterfall.Chart
	Table     []io.Row
	Figure    *render.Figure
	Artifacts map[string][]byte // format -> encoded bytes
	Stats     Stats
}

// Stats records timings and sizes of a run.
type Stats struct {
	PlotTime   time.Duration
	ExportTime time.Duration
	Steps      int // rows in the step table, including the final bar
}
