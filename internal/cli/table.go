package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/matzehuels/waterfall/pkg/errors"
	pkgio "github.com/matzehuels/waterfall/pkg/io"
	"github.com/matzehuels/waterfall/pkg/render/colors"
)

// tableOpts holds the command-line flags for the table command.
type tableOpts struct {
	chart chartFlags
	json  bool   // print JSON instead of a styled table
	xlsx  string // also write the table to this spreadsheet
}

// tableCommand creates the table command for inspecting the step table.
func (c *CLI) tableCommand() *cobra.Command {
	var opts tableOpts

	cmd := &cobra.Command{
		Use:   "table [file]",
		Short: "Print the step table of a chart definition",
		Long: `Print one row per bar: the step label, cumulative value, delta, base,
role (start, positive, negative or end), and the resolved bar label.

The bar color of each row is shown as a swatch.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.xlsx != "" {
				if err := errors.ValidateOutputPath(opts.xlsx); err != nil {
					return err
				}
				if opts.xlsx == stdoutPath && opts.json {
					return errors.New(errors.ErrCodeInvalidPath, "--json and --xlsx - both write to stdout")
				}
			}
			def, err := loadDefinition(cmd.Context(), cmd, args[0], &opts.chart)
			if err != nil {
				return err
			}
			return runTable(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr(), def, &opts)
		},
	}

	opts.chart.bind(cmd)
	cmd.Flags().BoolVar(&opts.json, "json", false, "print the table as JSON")
	cmd.Flags().StringVar(&opts.xlsx, "xlsx", "", "write the table to an .xlsx file (- for stdout)")

	return cmd
}

func runTable(ctx context.Context, stdout, status io.Writer, def *pkgio.Definition, opts *tableOpts) error {
	logger := loggerFromContext(ctx)

	chart, err := def.Chart()
	if err != nil {
		return err
	}
	plotOpts, err := def.PlotOptions()
	if err != nil {
		return err
	}
	rows, err := pkgio.BuildTable(chart, plotOpts)
	if err != nil {
		return err
	}
	logger.Debug("built step table", "rows", len(rows))

	if opts.xlsx != "" {
		out, err := openOutput(stdout, opts.xlsx)
		if err != nil {
			return err
		}
		defer out.Close()
		if err := pkgio.WriteTableXLSX(out, rows, chart.MetricName()); err != nil {
			return err
		}
		if opts.xlsx == stdoutPath {
			return nil
		}
		printFile(status, opts.xlsx)
	}

	if opts.json {
		return pkgio.WriteTableJSON(stdout, rows)
	}
	if def.Title != "" {
		fmt.Fprintln(stdout, StyleTitle.Render(def.Title))
	}
	fmt.Fprintln(stdout, renderStepTable(rows, chart.MetricName()))
	return nil
}

// Columns of the step table.
const (
	colSwatch = iota
	colStep
	colValue
	colDelta
	colBase
	colRole
	colLabel
)

const swatch = "■"

// renderStepTable renders rows as a bordered table. The swatch column uses
// each bar's fill and the delta column its label color.
func renderStepTable(rows []pkgio.Row, metric string) string {
	cells := make([][]string, len(rows))
	for i, r := range rows {
		cells[i] = []string{
			swatch,
			r.Label,
			formatNumber(r.Value),
			formatNumber(r.Delta),
			formatNumber(r.Base),
			r.Role.String(),
			r.Display,
		}
	}

	cellStyle := lipgloss.NewStyle().Padding(0, 1)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(StyleBorder).
		Headers("", "Step", metric, "Delta", "Base", "Role", "Label").
		Rows(cells...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return StyleHeader
			}
			if row < 0 || row >= len(rows) {
				return cellStyle
			}
			r := rows[row]
			switch col {
			case colSwatch:
				return cellStyle.Foreground(terminalColor(r.BarColor))
			case colDelta:
				return cellStyle.Foreground(terminalColor(r.TextColor)).Align(lipgloss.Right)
			case colValue, colBase:
				return cellStyle.Align(lipgloss.Right)
			case colRole:
				return cellStyle.Foreground(colorMuted)
			}
			return cellStyle
		})

	return t.Render()
}

// terminalColor converts a chart color to a lipgloss true color.
func terminalColor(spec string) lipgloss.TerminalColor {
	c, err := colors.Parse(spec)
	if err != nil {
		return lipgloss.NoColor{}
	}
	return lipgloss.Color(colors.Hex(c))
}

// formatNumber formats v with thousands separators and at most two decimals.
func formatNumber(v float64) string {
	return message.NewPrinter(language.English).Sprint(number.Decimal(v, number.MaxFractionDigits(2)))
}
