package waterfall

import (
	"fmt"
	"math"

	"github.com/matzehuels/waterfall/pkg/errors"
)

// DefaultLastStepLabel labels the synthetic trailing record.
const DefaultLastStepLabel = "Final Value"

// StepRecord is one row of the step table.
type StepRecord struct {
	Label string  `json:"label" yaml:"label"`
	Value float64 `json:"value" yaml:"value"` // cumulative value at this step
	Delta float64 `json:"delta" yaml:"delta"` // change from the previous step
	Base  float64 `json:"base" yaml:"base"`   // offset the bar is stacked on
}

// Top returns the level the step's bar reaches, which is its cumulative value
// for every record.
func (r StepRecord) Top() float64 { return r.Base + r.Delta }

// Transform converts cumulative values into the step table. labels must be
// empty, in which case Step_1..Step_n are generated, or hold one name per
// value. An empty finalLabel means [DefaultLastStepLabel].
func Transform(values []float64, labels []string, finalLabel string) ([]StepRecord, error) {
	if len(values) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "at least one step value is required")
	}
	if len(labels) != 0 && len(labels) != len(values) {
		return nil, errors.New(errors.ErrCodeShapeMismatch,
			"got %d step names for %d step values", len(labels), len(values))
	}
	return buildTable(values, stepNames(labels, len(values)), finalLabel), nil
}

// buildTable assumes len(labels) == len(values) > 0.
func buildTable(values []float64, labels []string, finalLabel string) []StepRecord {
	if finalLabel == "" {
		finalLabel = DefaultLastStepLabel
	}
	n := len(values)
	records := make([]StepRecord, 0, n+1)
	for i, v := range values {
		rec := StepRecord{Label: labels[i], Value: v, Delta: v}
		if i > 0 {
			rec.Base = values[i-1]
			rec.Delta = v - values[i-1]
		}
		records = append(records, rec)
	}
	last := values[n-1]
	return append(records, StepRecord{Label: finalLabel, Value: last, Delta: last})
}

// stepNames returns names, or generated Step_i names when names is empty.
func stepNames(names []string, n int) []string {
	if len(names) > 0 {
		return names
	}
	out := make([]string, n)
	for i := range out {
		out[i] = fmt.Sprintf("Step_%d", i+1)
	}
	return out
}

// ConnectorSeries returns the x and y series of the dashed lines joining
// consecutive bars. Each value is repeated three times and shifted by two
// slots, every middle slot is blanked with NaN and the first and last slots
// are dropped, which leaves 3m-2 points for m records. Drawn as one NaN-broken
// line this gives a flat segment from bar k at its cumulative level to bar
// k+1, and no diagonal between levels.
func ConnectorSeries(records []StepRecord) (x, y []float64) {
	m := len(records)
	if m < 2 {
		return nil, nil
	}
	size := 3*m - 2
	x = make([]float64, 0, size)
	y = make([]float64, 0, size)
	for j := 1; j <= size; j++ {
		k := j / 3
		x = append(x, float64(k))
		switch j % 3 {
		case 0:
			y = append(y, records[k-1].Value)
		case 1:
			y = append(y, math.NaN())
		default:
			y = append(y, records[k].Value)
		}
	}
	return x, y
}
