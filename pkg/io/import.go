package io

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/xuri/excelize/v2"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/waterfall/pkg/errors"
)

// ReadJSON decodes and validates a JSON definition.
func ReadJSON(r io.Reader) (*Definition, error) {
	var def Definition
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&def); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfiguration, err, "decode JSON definition")
	}
	return validated(&def)
}

// ReadTOML decodes and validates a TOML definition.
func ReadTOML(r io.Reader) (*Definition, error) {
	var def Definition
	md, err := toml.NewDecoder(r).Decode(&def)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfiguration, err, "decode TOML definition")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, errors.New(errors.ErrCodeInvalidConfiguration, "unknown keys in TOML definition: %s", strings.Join(keys, ", "))
	}
	return validated(&def)
}

// ReadYAML decodes and validates a YAML definition.
func ReadYAML(r io.Reader) (*Definition, error) {
	var def Definition
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&def); err != nil && err != io.EOF {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfiguration, err, "decode YAML definition")
	}
	return validated(&def)
}

// ReadXLSX reads steps from the first sheet of a spreadsheet. Column A holds
// the step names and column B the values; blank rows are skipped.
func ReadXLSX(r io.Reader) (*Definition, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfiguration, err, "open spreadsheet")
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfiguration, err, "read sheet %q", sheet)
	}

	var def Definition
	header := true
	for i, row := range rows {
		name, raw := cell(row, 0), cell(row, 1)
		if name == "" && raw == "" {
			continue
		}
		first := header
		header = false
		v, err := strconv.ParseFloat(strings.ReplaceAll(raw, ",", ""), 64)
		if err != nil {
			if first {
				def.Metric = raw
				continue
			}
			return nil, errors.New(errors.ErrCodeInvalidConfiguration,
				"sheet %q row %d: value %q is not a number", sheet, i+1, raw)
		}
		def.Steps = append(def.Steps, Step{Name: name, Value: v})
	}
	return validated(&def)
}

func validated(def *Definition) (*Definition, error) {
	if err := def.Validate(); err != nil {
		return nil, err
	}
	return def, nil
}

func cell(row []string, i int) string {
	if i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

// Extensions lists the definition file extensions ImportFile understands.
var Extensions = []string{".json", ".toml", ".yaml", ".yml", ".xlsx"}

// Read decodes a definition in the format named by ext.
func Read(r io.Reader, ext string) (*Definition, error) {
	switch strings.ToLower(ext) {
	case ".json":
		return ReadJSON(r)
	case ".toml":
		return ReadTOML(r)
	case ".yaml", ".yml":
		return ReadYAML(r)
	case ".xlsx":
		return ReadXLSX(r)
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat,
			"unsupported definition file %q (must be one of: %s)", ext, strings.Join(Extensions, ", "))
	}
}

// ImportFile reads the definition at path, choosing the decoder by file
// extension.
func ImportFile(path string) (*Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "definition %s not found", path)
		}
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	def, err := Read(bytes.NewReader(data), filepath.Ext(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return def, nil
}
