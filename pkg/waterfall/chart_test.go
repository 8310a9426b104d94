package waterfall

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/waterfall/pkg/errors"
)

func TestNewDefaults(t *testing.T) {
	c, err := New([]float64{1, 2, 3})
	require.NoError(t, err)

	assert.Equal(t, []string{"Step_1", "Step_2", "Step_3"}, c.StepNames())
	assert.Equal(t, "Value", c.MetricName())
	assert.Equal(t, "Final Value", c.LastStepLabel())
	assert.Equal(t, 4, c.Len())
}

func TestNewOptions(t *testing.T) {
	names := []string{"Opening", "Sales"}
	c, err := New([]float64{10, 12},
		WithStepNames(names...),
		WithMetricName("Revenue"),
		WithLastStepLabel("Closing"),
	)
	require.NoError(t, err)

	names[0] = "changed"
	table := c.Table()
	assert.Equal(t, "Opening", table[0].Label)
	assert.Equal(t, "Closing", table[2].Label)
	assert.Equal(t, "Revenue", c.MetricName())
}

func TestNewErrors(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		opts   []Option
		code   errors.Code
	}{
		{"empty", nil, nil, errors.ErrCodeInvalidInput},
		{"nan", []float64{1, math.NaN()}, nil, errors.ErrCodeInvalidInput},
		{"inf", []float64{math.Inf(-1)}, nil, errors.ErrCodeInvalidInput},
		{"name count", []float64{1, 2, 3}, []Option{WithStepNames("a", "b")}, errors.ErrCodeShapeMismatch},
		{"blank name", []float64{1, 2}, []Option{WithStepNames("a", "")}, errors.ErrCodeInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := New(tt.values, tt.opts...)
			require.Error(t, err)
			assert.Nil(t, c)
			assert.Equal(t, tt.code, errors.GetCode(err))
		})
	}
}

func TestChartIsImmutable(t *testing.T) {
	values := []float64{5, 8}
	c, err := New(values)
	require.NoError(t, err)

	values[0] = 100
	got := c.Values()
	got[1] = 100
	assert.Equal(t, []float64{5, 8}, c.Values())

	table := c.Table()
	table[0].Value = -1
	assert.Equal(t, 5.0, c.Table()[0].Value)
}
