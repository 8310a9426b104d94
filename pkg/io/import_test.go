package io

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/matzehuels/waterfall/pkg/errors"
)

const tomlDef = `
title  = "Revenue bridge"
metric = "Revenue"
labels = "values"

[[steps]]
name  = "Q1"
value = 100

[[steps]]
name  = "Q2"
value = 120

[colors]
bar_negative = "#d62728"

[size]
width  = 8
height = 4
`

const yamlDef = `
title: Revenue bridge
metric: Revenue
values: [100, 120, 90]
step_names: [Q1, Q2, Q3]
line:
  color: black
  dash: ":"
`

func TestReadJSON(t *testing.T) {
	def, err := ReadJSON(strings.NewReader(`{
		"title": "Bridge",
		"values": [100, 120, 90, 130],
		"final_label": "Total",
		"bar_labels": ["a", "b", "c", "d", "e"]
	}`))
	require.NoError(t, err)
	assert.Equal(t, "Bridge", def.Title)
	assert.Equal(t, []float64{100, 120, 90, 130}, def.Values)

	mode, err := def.LabelMode()
	require.NoError(t, err)
	assert.Equal(t, "list:a,b,c,d,e", mode.String())
}

func TestReadJSONUnknownField(t *testing.T) {
	_, err := ReadJSON(strings.NewReader(`{"values": [1], "colour": "red"}`))
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidConfiguration))
}

func TestReadTOML(t *testing.T) {
	def, err := ReadTOML(strings.NewReader(tomlDef))
	require.NoError(t, err)

	assert.Equal(t, "Revenue", def.Metric)
	assert.Equal(t, []Step{{"Q1", 100}, {"Q2", 120}}, def.Steps)
	assert.Equal(t, "#d62728", def.Colors.BarNegative)
	assert.Equal(t, 8.0, def.Size.Width)

	values, names := def.StepValues()
	assert.Equal(t, []float64{100, 120}, values)
	assert.Equal(t, []string{"Q1", "Q2"}, names)
}

func TestReadTOMLUnknownKey(t *testing.T) {
	_, err := ReadTOML(strings.NewReader("values = [1]\nwidth = 3\n"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidConfiguration))
	assert.Contains(t, err.Error(), "width")
}

func TestReadYAML(t *testing.T) {
	def, err := ReadYAML(strings.NewReader(yamlDef))
	require.NoError(t, err)

	assert.Equal(t, []string{"Q1", "Q2", "Q3"}, def.StepNames)
	assert.Equal(t, "black", def.Line.Color)
	assert.Equal(t, ":", def.Line.Dash)

	c, err := def.Chart()
	require.NoError(t, err)
	assert.Equal(t, "Revenue", c.MetricName())
	assert.Equal(t, 4, c.Len())
}

func TestReadYAMLEmpty(t *testing.T) {
	_, err := ReadYAML(strings.NewReader(""))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "either steps or values is required")
}

func writeWorkbook(t *testing.T, rows [][]any) []byte {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)
	for i, row := range rows {
		axis, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, axis, &row))
	}
	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))
	return buf.Bytes()
}

func TestReadXLSX(t *testing.T) {
	data := writeWorkbook(t, [][]any{
		{"Step", "Revenue"},
		{"Q1", 100},
		{},
		{"Q2", 120.5},
		{"Q3", -20},
	})

	def, err := ReadXLSX(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, "Revenue", def.Metric)
	assert.Equal(t, []Step{{"Q1", 100}, {"Q2", 120.5}, {"Q3", -20}}, def.Steps)
}

func TestReadXLSXBadValue(t *testing.T) {
	data := writeWorkbook(t, [][]any{
		{"Q1", 100},
		{"Q2", "lots"},
	})

	_, err := ReadXLSX(bytes.NewReader(data))
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidConfiguration))
	assert.Contains(t, err.Error(), "row 2")
}

func TestImportFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "chart.toml")
	require.NoError(t, os.WriteFile(path, []byte(tomlDef), 0o644))

	def, err := ImportFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Revenue bridge", def.Title)

	_, err = ImportFile(filepath.Join(dir, "missing.json"))
	assert.True(t, errors.Is(err, errors.ErrCodeFileNotFound))

	other := filepath.Join(dir, "chart.csv")
	require.NoError(t, os.WriteFile(other, []byte("a,1"), 0o644))
	_, err = ImportFile(other)
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidFormat))
}

func TestImportBundledExamples(t *testing.T) {
	paths, err := filepath.Glob(filepath.Join("..", "..", "examples", "*"))
	require.NoError(t, err)
	require.NotEmpty(t, paths)

	for _, path := range paths {
		t.Run(filepath.Base(path), func(t *testing.T) {
			def, err := ImportFile(path)
			require.NoError(t, err)

			c, err := def.Chart()
			require.NoError(t, err)
			opts, err := def.PlotOptions()
			require.NoError(t, err)
			rows, err := BuildTable(c, opts)
			require.NoError(t, err)
			assert.Equal(t, c.Len(), len(rows))
		})
	}
}
