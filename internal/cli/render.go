package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/waterfall/pkg/errors"
	pkgio "github.com/matzehuels/waterfall/pkg/io"
	"github.com/matzehuels/waterfall/pkg/pipeline"
	"github.com/matzehuels/waterfall/pkg/render/sink"
)

// stdoutPath selects standard output as the output file.
const stdoutPath = "-"

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	chart   chartFlags
	output  string  // output file path (or base path for multiple formats)
	formats string  // comma-separated output formats
	scale   float64 // PNG scale factor
}

// renderCommand creates the render command for generating chart output.
func (c *CLI) renderCommand() *cobra.Command {
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Render a chart definition to SVG, PNG, PDF or JSON",
		Long: `Render a chart definition file (.json, .toml, .yaml, .yml or .xlsx).

Flags override the matching values from the file. With several formats,
--output is used as a base path and each format gets its own extension.`,
		Example: `  waterfall render revenue.toml
  waterfall render revenue.yaml -f svg,png -o out/revenue
  waterfall render steps.xlsx --title "Q3 bridge" --labels none -o -`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			formats := parseFormats(opts.formats)
			if err := pipeline.ValidateFormats(formats); err != nil {
				return err
			}
			if opts.output != "" && opts.output != stdoutPath {
				if err := errors.ValidateOutputPath(opts.output); err != nil {
					return err
				}
			}
			if opts.output == stdoutPath && len(formats) > 1 {
				return errors.New(errors.ErrCodeInvalidPath, "cannot write %d formats to stdout", len(formats))
			}

			def, err := loadDefinition(cmd.Context(), cmd, args[0], &opts.chart)
			if err != nil {
				return err
			}
			return c.runRender(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr(), args[0], def, formats, &opts)
		},
	}

	opts.chart.bind(cmd)
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple); - for stdout")
	cmd.Flags().StringVarP(&opts.formats, "format", "f", "", "output format(s): svg (default), png, pdf, json (comma-separated)")
	cmd.Flags().Float64Var(&opts.scale, "scale", pipeline.DefaultScale, "PNG scale factor")

	return cmd
}

// parseFormats parses the --format flag into a slice of output formats.
// If empty, defaults to ["svg"].
func parseFormats(s string) []string {
	if s == "" {
		return []string{sink.FormatSVG}
	}
	var formats []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.ToLower(strings.TrimSpace(f)); f != "" {
			formats = append(formats, f)
		}
	}
	return formats
}

// basePath derives the base output path from the output and input file paths.
// If output is empty, it strips the extension from input.
// If output has a format extension (.svg, .png, etc.), it strips that extension.
func basePath(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if slices.Contains(sink.Formats, strings.TrimPrefix(ext, ".")) {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

// outputPaths maps each format to the file it is written to.
func outputPaths(output, input string, formats []string) map[string]string {
	paths := make(map[string]string, len(formats))
	if len(formats) == 1 && output != "" {
		paths[formats[0]] = output
		return paths
	}
	base := basePath(output, input)
	for _, f := range formats {
		paths[f] = base + "." + f
	}
	return paths
}

// runRender renders def in every format and writes the results.
func (c *CLI) runRender(ctx context.Context, stdout, status io.Writer, input string, def *pkgio.Definition, formats []string, opts *renderOpts) error {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	result, err := c.newRunner().Execute(ctx, def, pipeline.Options{
		Formats: formats,
		Scale:   opts.scale,
	})
	if err != nil {
		return err
	}

	paths := outputPaths(opts.output, input, formats)
	for _, format := range formats {
		path := paths[format]
		if err := writeOutput(stdout, path, result.Artifacts[format]); err != nil {
			return err
		}
		logger.Debug("wrote artifact", "format", format, "bytes", len(result.Artifacts[format]))
		if path != stdoutPath {
			printFile(status, path)
		}
	}

	prog.done("Rendered "+input, "bars", result.Stats.Steps, "formats", len(formats))
	return nil
}

func writeOutput(stdout io.Writer, path string, data []byte) error {
	out, err := openOutput(stdout, path)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := out.Write(data); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// openOutput opens path for writing, or wraps stdout for "-".
func openOutput(stdout io.Writer, path string) (io.WriteCloser, error) {
	if path == stdoutPath {
		return nopCloser{stdout}, nil
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create %s: %w", dir, err)
		}
	}
	return os.Create(path)
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }
