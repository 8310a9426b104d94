package cli

import (
	"context"

	"github.com/spf13/cobra"

	pkgio "github.com/matzehuels/waterfall/pkg/io"
	"github.com/matzehuels/waterfall/pkg/render"
	"github.com/matzehuels/waterfall/pkg/waterfall"
)

// chartFlags holds the flags that override values from a definition file.
// Only flags the user actually set are applied.
type chartFlags struct {
	title      string
	metric     string
	finalLabel string
	labels     string
	background string
	width      float64 // inches
	height     float64 // inches
}

func (f *chartFlags) bind(cmd *cobra.Command) {
	fl := cmd.Flags()
	fl.StringVar(&f.title, "title", "", "chart title")
	fl.StringVar(&f.metric, "metric", "", "value-axis label (default \"Value\")")
	fl.StringVar(&f.finalLabel, "final-label", "", "label of the final bar (default \"Final Value\")")
	fl.StringVar(&f.labels, "labels", "", "bar labels: values, none, text:<s> or list:<a,b,...>")
	fl.StringVar(&f.background, "background", "", "canvas color (default white)")
	fl.Float64Var(&f.width, "width", render.DefaultSize.Width, "figure width in inches")
	fl.Float64Var(&f.height, "height", render.DefaultSize.Height, "figure height in inches")
}

// apply copies every flag the user set onto def and revalidates it.
func (f *chartFlags) apply(cmd *cobra.Command, def *pkgio.Definition) error {
	fl := cmd.Flags()
	if fl.Changed("title") {
		def.Title = f.title
	}
	if fl.Changed("metric") {
		def.Metric = f.metric
	}
	if fl.Changed("final-label") {
		def.FinalLabel = f.finalLabel
	}
	if fl.Changed("labels") {
		if _, err := waterfall.ParseLabelMode(f.labels); err != nil {
			return err
		}
		def.Labels = f.labels
		def.BarLabels = nil
	}
	if fl.Changed("background") {
		def.Background = f.background
	}
	if fl.Changed("width") || fl.Changed("height") {
		if def.Size.Width <= 0 || def.Size.Height <= 0 {
			def.Size = render.DefaultSize
		}
		if fl.Changed("width") {
			def.Size.Width = f.width
		}
		if fl.Changed("height") {
			def.Size.Height = f.height
		}
	}
	return def.Validate()
}

// loadDefinition imports the definition at path and applies flag overrides.
func loadDefinition(ctx context.Context, cmd *cobra.Command, path string, flags *chartFlags) (*pkgio.Definition, error) {
	logger := loggerFromContext(ctx)
	def, err := pkgio.ImportFile(path)
	if err != nil {
		return nil, err
	}
	values, _ := def.StepValues()
	logger.Debug("loaded definition", "path", path, "steps", len(values))

	if err := flags.apply(cmd, def); err != nil {
		return nil, err
	}
	return def, nil
}
