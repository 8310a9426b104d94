package waterfall

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/waterfall/pkg/errors"
)

func TestTransform(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		labels []string
		final  string
		want   []StepRecord
	}{
		{
			name:   "bridge",
			values: []float64{100, 120, 90, 130},
			want: []StepRecord{
				{"Step_1", 100, 100, 0},
				{"Step_2", 120, 20, 100},
				{"Step_3", 90, -30, 120},
				{"Step_4", 130, 40, 90},
				{"Final Value", 130, 130, 0},
			},
		},
		{
			name:   "single value",
			values: []float64{50},
			want: []StepRecord{
				{"Step_1", 50, 50, 0},
				{"Final Value", 50, 50, 0},
			},
		},
		{
			name:   "named steps and final label",
			values: []float64{10, 4},
			labels: []string{"Q1", "Q2"},
			final:  "Total",
			want: []StepRecord{
				{"Q1", 10, 10, 0},
				{"Q2", 4, -6, 10},
				{"Total", 4, 4, 0},
			},
		},
		{
			name:   "negative start",
			values: []float64{-20, 5},
			want: []StepRecord{
				{"Step_1", -20, -20, 0},
				{"Step_2", 5, 25, -20},
				{"Final Value", 5, 5, 0},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Transform(tt.values, tt.labels, tt.final)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTransformInvariants(t *testing.T) {
	inputs := [][]float64{
		{1},
		{0, 0, 0},
		{100, 120, 90, 130},
		{-5, -10, 3.5, 2.25, 1e6, -1e6},
	}
	for _, values := range inputs {
		records, err := Transform(values, nil, "")
		require.NoError(t, err)

		n := len(values)
		require.Len(t, records, n+1)
		for i := 1; i < n; i++ {
			assert.Equal(t, values[i-1], records[i].Base)
			assert.Equal(t, values[i]-values[i-1], records[i].Delta)
		}
		for i := 0; i < n; i++ {
			assert.InDelta(t, records[i].Value, records[i].Base+records[i].Delta, 1e-9)
		}

		last := records[n]
		assert.Equal(t, values[n-1], last.Value)
		assert.Equal(t, values[n-1], last.Delta)
		assert.Zero(t, last.Base)
		assert.Equal(t, DefaultLastStepLabel, last.Label)
	}
}

func TestTransformIdempotent(t *testing.T) {
	values := []float64{3, 1, 4, 1, 5, 9, 2, 6}
	a, err := Transform(values, nil, "")
	require.NoError(t, err)
	b, err := Transform(values, nil, "")
	require.NoError(t, err)
	assert.Equal(t, a, b)
	assert.Equal(t, []float64{3, 1, 4, 1, 5, 9, 2, 6}, values, "input must not be modified")
}

func TestTransformErrors(t *testing.T) {
	_, err := Transform(nil, nil, "")
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidInput))

	_, err = Transform([]float64{1, 2}, []string{"only one"}, "")
	assert.True(t, errors.Is(err, errors.ErrCodeShapeMismatch))
	assert.Contains(t, err.Error(), "got 1 step names for 2 step values")
}

func TestConnectorSeries(t *testing.T) {
	records, err := Transform([]float64{100, 120, 90}, nil, "")
	require.NoError(t, err)

	x, y := ConnectorSeries(records)
	m := len(records)
	require.Len(t, x, 3*m-2)
	require.Len(t, y, 3*m-2)

	nan := math.NaN()
	wantX := []float64{0, 0, 1, 1, 1, 2, 2, 2, 3, 3}
	wantY := []float64{nan, 100, 100, nan, 120, 120, nan, 90, 90, nan}
	assert.Equal(t, wantX, x)
	for i := range wantY {
		if math.IsNaN(wantY[i]) {
			assert.True(t, math.IsNaN(y[i]), "y[%d] should be a gap", i)
			continue
		}
		assert.Equal(t, wantY[i], y[i], "y[%d]", i)
	}
}

func TestConnectorSeriesSingleValue(t *testing.T) {
	records, err := Transform([]float64{50}, nil, "")
	require.NoError(t, err)

	x, y := ConnectorSeries(records)
	assert.Equal(t, []float64{0, 0, 1, 1}, x)
	assert.True(t, math.IsNaN(y[0]))
	assert.Equal(t, []float64{50, 50}, y[1:3])
	assert.True(t, math.IsNaN(y[3]))
}

func TestConnectorSeriesTooShort(t *testing.T) {
	x, y := ConnectorSeries([]StepRecord{{Label: "a", Value: 1, Delta: 1}})
	assert.Nil(t, x)
	assert.Nil(t, y)
}
