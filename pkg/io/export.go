package io

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/matzehuels/waterfall/pkg/waterfall"
)

// Row is one step of an exported table.
type Row struct {
	Label     string         `json:"label"`
	Value     float64        `json:"value"`
	Delta     float64        `json:"delta"`
	Base      float64        `json:"base"`
	Role      waterfall.Role `json:"role"`
	BarColor  string         `json:"bar_color"`
	TextColor string         `json:"text_color"`
	Display   string         `json:"display,omitempty"` // bar label, empty when labels are off
}

// BuildTable computes the step table of c together with each step's role,
// colors and bar label under opts.
func BuildTable(c *waterfall.Chart, opts waterfall.PlotOptions) ([]Row, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	records := c.Table()
	labels, err := waterfall.ResolveLabels(opts.Labels, records)
	if err != nil {
		return nil, err
	}
	bar, text := waterfall.ResolveColors(records, opts.Colors)
	roles := waterfall.Roles(records)

	rows := make([]Row, len(records))
	for i, r := range records {
		rows[i] = Row{
			Label:     r.Label,
			Value:     r.Value,
			Delta:     r.Delta,
			Base:      r.Base,
			Role:      roles[i],
			BarColor:  bar[i],
			TextColor: text[i],
		}
		if labels != nil {
			rows[i].Display = labels[i]
		}
	}
	return rows, nil
}

// WriteTableJSON writes rows as an indented JSON array.
func WriteTableJSON(w io.Writer, rows []Row) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(rows); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

var tableHeader = []any{"Step", "Value", "Delta", "Base", "Role", "Label"}

// WriteTableXLSX writes rows as a single-sheet workbook. metric, when set,
// heads the value column.
func WriteTableXLSX(w io.Writer, rows []Row, metric string) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	header := append([]any(nil), tableHeader...)
	if metric != "" {
		header[1] = metric
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for i, r := range rows {
		axis, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		values := []any{r.Label, r.Value, r.Delta, r.Base, r.Role.String(), r.Display}
		if err := f.SetSheetRow(sheet, axis, &values); err != nil {
			return fmt.Errorf("write row %d: %w", i+1, err)
		}
	}
	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}
