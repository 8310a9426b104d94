package waterfall_test

import (
	"fmt"

	"github.com/matzehuels/waterfall/pkg/waterfall"
)

func ExampleTransform() {
	records, _ := waterfall.Transform([]float64{100, 120, 90, 130}, nil, "")
	for _, r := range records {
		fmt.Printf("%-12s %4g %4g %4g\n", r.Label, r.Value, r.Delta, r.Base)
	}
	// Output:
	// Step_1        100  100    0
	// Step_2        120   20  100
	// Step_3         90  -30  120
	// Step_4        130   40   90
	// Final Value   130  130    0
}

func ExampleChart_Table() {
	chart, _ := waterfall.New([]float64{1000, 4000, 1000},
		waterfall.WithStepNames("Q1", "Q2", "Q3"),
		waterfall.WithMetricName("Revenue"),
	)
	records := chart.Table()
	labels, _ := waterfall.ResolveLabels(waterfall.ValueLabels(), records)
	bars, _ := waterfall.ResolveColors(records, waterfall.Palette{})
	for i, r := range records {
		fmt.Println(r.Label, labels[i], bars[i])
	}
	// Output:
	// Q1 1,000 cyan
	// Q2 3,000 seagreen
	// Q3 -3,000 salmon
	// Final Value 1,000 grey
}
