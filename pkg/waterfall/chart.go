package waterfall

import (
	"slices"

	"github.com/matzehuels/waterfall/pkg/errors"
)

// DefaultMetricName titles the value axis when no metric name is given.
const DefaultMetricName = "Value"

// Chart is an immutable waterfall chart definition.
type Chart struct {
	values        []float64
	stepNames     []string
	metricName    string
	lastStepLabel string
}

// Option configures a Chart.
type Option func(*Chart)

// WithStepNames names the steps. Without it, steps are named Step_1..Step_n.
func WithStepNames(names ...string) Option {
	return func(c *Chart) { c.stepNames = slices.Clone(names) }
}

// WithMetricName titles the value axis. Empty means [DefaultMetricName].
func WithMetricName(name string) Option {
	return func(c *Chart) { c.metricName = name }
}

// WithLastStepLabel labels the trailing final-value bar. Empty means
// [DefaultLastStepLabel].
func WithLastStepLabel(label string) Option {
	return func(c *Chart) { c.lastStepLabel = label }
}

// New creates a chart from cumulative step values.
//
// It fails with ErrCodeInvalidInput when values is empty or holds NaN or
// infinite numbers, and with ErrCodeShapeMismatch when step names are given
// but their count differs from the number of values.
func New(values []float64, opts ...Option) (*Chart, error) {
	c := &Chart{values: slices.Clone(values)}
	for _, opt := range opts {
		opt(c)
	}

	if len(c.values) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "at least one step value is required")
	}
	if err := errors.ValidateFinite(c.values); err != nil {
		return nil, err
	}
	if err := errors.ValidateStepNames(c.stepNames, len(c.values)); err != nil {
		return nil, err
	}
	c.stepNames = stepNames(c.stepNames, len(c.values))
	if c.metricName == "" {
		c.metricName = DefaultMetricName
	}
	if c.lastStepLabel == "" {
		c.lastStepLabel = DefaultLastStepLabel
	}
	return c, nil
}

// Values returns a copy of the cumulative step values.
func (c *Chart) Values() []float64 { return slices.Clone(c.values) }

// StepNames returns a copy of the step names, generated ones included.
func (c *Chart) StepNames() []string { return slices.Clone(c.stepNames) }

// MetricName returns the value-axis title.
func (c *Chart) MetricName() string { return c.metricName }

// LastStepLabel returns the label of the trailing bar.
func (c *Chart) LastStepLabel() string { return c.lastStepLabel }

// Len returns the number of records in the step table.
func (c *Chart) Len() int { return len(c.values) + 1 }

// Table computes a fresh step table.
func (c *Chart) Table() []StepRecord {
	return buildTable(c.values, c.stepNames, c.lastStepLabel)
}
