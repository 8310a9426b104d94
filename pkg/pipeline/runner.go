package pipeline

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/waterfall/pkg/errors"
	"github.com/matzehuels/waterfall/pkg/io"
	"github.com/matzehuels/waterfall/pkg/observability"
	"github.com/matzehuels/waterfall/pkg/render"
	"github.com/matzehuels/waterfall/pkg/render/sink"
)

// Runner executes the pipeline. It holds no per-run state, so one Runner
// can serve many goroutines.
type Runner struct {
	Logger *log.Logger
}

// NewRunner creates a runner. A nil logger falls back to log.Default().
func NewRunner(logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Logger: logger}
}

// Execute plots def and exports the figure in every requested format.
// An empty opts.Background falls back to the definition's background.
func (r *Runner) Execute(ctx context.Context, def *io.Definition, opts Options) (*Result, error) {
	if def == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "no chart definition")
	}
	if err := def.Validate(); err != nil {
		return nil, err
	}
	if opts.Background == "" {
		opts.Background = def.Background
	}
	opts.SetDefaults()
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	result, err := r.Plot(ctx, def)
	if err != nil {
		return nil, err
	}

	exportStart := time.Now()
	artifacts, err := r.Export(ctx, result.Figure, opts)
	if err != nil {
		return nil, err
	}
	result.Artifacts = artifacts
	result.Stats.ExportTime = time.Since(exportStart)

	r.Logger.Debug("exported chart",
		"formats", opts.Formats,
		"duration", result.Stats.ExportTime)
	return result, nil
}

// Plot builds the chart and step table of def and draws the chart onto a new
// figure. The returned result has no artifacts.
func (r *Runner) Plot(ctx context.Context, def *io.Definition) (*Result, error) {
	start := time.Now()
	result, err := plot(def)
	elapsed := time.Since(start)

	bars := 0
	if result != nil {
		bars = result.Stats.Steps
		result.Stats.PlotTime = elapsed
	}
	observability.Render().OnPlot(ctx, bars, elapsed, err)
	if err != nil {
		return nil, err
	}

	r.Logger.Debug("plotted chart", "bars", bars, "duration", elapsed)
	return result, nil
}

func plot(def *io.Definition) (*Result, error) {
	chart, err := def.Chart()
	if err != nil {
		return nil, err
	}
	opts, err := def.PlotOptions()
	if err != nil {
		return nil, err
	}
	table, err := io.BuildTable(chart, opts)
	if err != nil {
		return nil, err
	}
	ax, err := chart.Plot(nil, opts)
	if err != nil {
		return nil, err
	}
	fig, ok := ax.(*render.Figure)
	if !ok {
		return nil, errors.New(errors.ErrCodeInternal, "unexpected plotting surface %T", ax)
	}
	return &Result{
		Chart:  chart,
		Table:  table,
		Figure: fig,
		Stats:  Stats{Steps: chart.Len()},
	}, nil
}

// Export encodes fig once per format. Formats are exported concurrently; the
// first failure cancels the rest.
func (r *Runner) Export(ctx context.Context, fig *render.Figure, opts Options) (map[string][]byte, error) {
	opts.SetDefaults()
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	var mu sync.Mutex
	artifacts := make(map[string][]byte, len(opts.Formats))

	g, gctx := errgroup.WithContext(ctx)
	for _, format := range opts.Formats {
		format := format
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			start := time.Now()
			data, err := sink.Render(fig, format, opts.sinkOptions())
			observability.Render().OnExport(gctx, format, len(data), time.Since(start), err)
			if err != nil {
				return fmt.Errorf("export %s: %w", format, err)
			}
			r.Logger.Debug("exported format", "format", format, "bytes", len(data))

			mu.Lock()
			artifacts[format] = data
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return artifacts, nil
}
