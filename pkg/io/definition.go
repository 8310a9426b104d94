package io

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/matzehuels/waterfall/pkg/errors"
	"github.com/matzehuels/waterfall/pkg/render"
	"github.com/matzehuels/waterfall/pkg/render/colors"
	"github.com/matzehuels/waterfall/pkg/waterfall"
)

// Step is one named cumulative value.
type Step struct {
	Name  string  `json:"name" toml:"name" yaml:"name" validate:"required,max=256"`
	Value float64 `json:"value" toml:"value" yaml:"value"`
}

// Definition is a chart definition file.
type Definition struct {
	Title      string `json:"title,omitempty" toml:"title" yaml:"title" validate:"max=256"`
	Metric     string `json:"metric,omitempty" toml:"metric" yaml:"metric" validate:"max=256"`
	FinalLabel string `json:"final_label,omitempty" toml:"final_label" yaml:"final_label" validate:"max=256"`

	Steps     []Step    `json:"steps,omitempty" toml:"steps" yaml:"steps" validate:"required_without=Values,excluded_with=Values,dive"`
	Values    []float64 `json:"values,omitempty" toml:"values" yaml:"values"`
	StepNames []string  `json:"step_names,omitempty" toml:"step_names" yaml:"step_names" validate:"excluded_with=Steps"`

	Labels    string   `json:"labels,omitempty" toml:"labels" yaml:"labels" validate:"omitempty,labelmode"`
	BarLabels []string `json:"bar_labels,omitempty" toml:"bar_labels" yaml:"bar_labels" validate:"excluded_with=Labels"`

	Colors     waterfall.Palette `json:"colors,omitzero" toml:"colors" yaml:"colors"`
	Bar        render.BarStyle   `json:"bar,omitzero" toml:"bar" yaml:"bar"`
	Line       render.LineStyle  `json:"line,omitzero" toml:"line" yaml:"line"`
	Size       render.Size       `json:"size,omitzero" toml:"size" yaml:"size"`
	Background string            `json:"background,omitempty" toml:"background" yaml:"background" validate:"omitempty,color"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("color", func(fl validator.FieldLevel) bool {
		return colors.Valid(fl.Field().String())
	})
	_ = v.RegisterValidation("labelmode", func(fl validator.FieldLevel) bool {
		_, err := waterfall.ParseLabelMode(fl.Field().String())
		return err == nil
	})
	// Report file keys rather than Go field names.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate checks the definition's structure and colors. It does not check
// that step names and values line up; [Definition.Chart] does.
func (d *Definition) Validate() error {
	if err := validate.Struct(d); err != nil {
		verrs, ok := err.(validator.ValidationErrors)
		if !ok {
			return errors.Wrap(errors.ErrCodeInternal, err, "validate definition")
		}
		msgs := make([]string, len(verrs))
		for i, fe := range verrs {
			msgs[i] = formatFieldError(fe)
		}
		return errors.New(errors.ErrCodeInvalidConfiguration, "invalid definition: %s", strings.Join(msgs, "; "))
	}
	return d.Colors.Validate()
}

func formatFieldError(fe validator.FieldError) string {
	field := strings.TrimPrefix(fe.Namespace(), "Definition.")
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "required_without":
		return fmt.Sprintf("either %s or %s is required", field, jsonName(fe.Param()))
	case "excluded_with":
		return fmt.Sprintf("%s cannot be combined with %s", field, jsonName(fe.Param()))
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
	case "color":
		return fmt.Sprintf("%s: unknown color %q", field, fe.Value())
	case "labelmode":
		return fmt.Sprintf("%s: invalid label mode %q (must be one of: true, false, text:<label>, list:<a,b,...>)", field, fe.Value())
	default:
		return fmt.Sprintf("%s failed %s validation", field, fe.Tag())
	}
}

// jsonName maps the Go field names used in validator params to file keys.
func jsonName(field string) string {
	f, ok := reflect.TypeOf((*Definition)(nil)).Elem().FieldByName(field)
	if !ok {
		return field
	}
	return strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
}

// StepValues returns the cumulative values and step names in either form.
func (d *Definition) StepValues() (values []float64, names []string) {
	if len(d.Steps) == 0 {
		return d.Values, d.StepNames
	}
	values = make([]float64, len(d.Steps))
	names = make([]string, len(d.Steps))
	for i, s := range d.Steps {
		values[i] = s.Value
		names[i] = s.Name
	}
	return values, names
}

// Chart builds the chart described by d.
func (d *Definition) Chart() (*waterfall.Chart, error) {
	values, names := d.StepValues()
	return waterfall.New(values,
		waterfall.WithStepNames(names...),
		waterfall.WithMetricName(d.Metric),
		waterfall.WithLastStepLabel(d.FinalLabel),
	)
}

// LabelMode returns the label mode: the bar_labels list when present,
// otherwise the parsed labels text.
func (d *Definition) LabelMode() (waterfall.LabelMode, error) {
	if len(d.BarLabels) > 0 {
		return waterfall.ListLabels(d.BarLabels...), nil
	}
	return waterfall.ParseLabelMode(d.Labels)
}

// PlotOptions returns the plot options described by d.
func (d *Definition) PlotOptions() (waterfall.PlotOptions, error) {
	labels, err := d.LabelMode()
	if err != nil {
		return waterfall.PlotOptions{}, err
	}
	return waterfall.PlotOptions{
		FigSize: d.Size,
		Title:   d.Title,
		Labels:  labels,
		Colors:  d.Colors,
		Bar:     d.Bar,
		Line:    d.Line,
	}, nil
}
