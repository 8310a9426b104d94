package sink

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderJSON(t *testing.T) {
	out, err := RenderJSON(testFigure())
	require.NoError(t, err)

	var doc struct {
		Width       float64  `json:"width"`
		DPI         float64  `json:"dpi"`
		Title       string   `json:"title"`
		TitleSize   float64  `json:"title_size"`
		XTickLabels []string `json:"x_tick_labels"`
		YLim        struct {
			Min, Max float64
		} `json:"y_lim"`
		Bars []struct {
			X, Height, Bottom, Top float64
			Fill                   string
			Style                  struct {
				Width float64 `json:"width"`
			}
		} `json:"bars"`
		Lines []struct {
			Y     []*float64 `json:"y"`
			Style struct {
				Color string `json:"color"`
				Dash  string `json:"dash"`
			}
		} `json:"lines"`
		Texts []struct {
			Text string `json:"text"`
		} `json:"texts"`
	}
	require.NoError(t, json.Unmarshal(out, &doc))

	assert.Equal(t, 10.0, doc.Width)
	assert.Equal(t, 100.0, doc.DPI)
	assert.Equal(t, "Revenue & costs", doc.Title)
	assert.Equal(t, 16.0, doc.TitleSize)
	assert.Equal(t, []string{"Step_1", "Step_2", "Final Value"}, doc.XTickLabels)
	assert.Equal(t, 110.0, doc.YLim.Max)

	require.Len(t, doc.Bars, 3)
	assert.Equal(t, "salmon", doc.Bars[1].Fill)
	assert.Equal(t, -30.0, doc.Bars[1].Height)
	assert.Equal(t, 100.0, doc.Bars[1].Top)
	assert.Equal(t, 0.6, doc.Bars[0].Style.Width)

	require.Len(t, doc.Lines, 1)
	assert.Equal(t, "grey", doc.Lines[0].Style.Color)
	assert.Equal(t, "--", doc.Lines[0].Style.Dash)
	require.Len(t, doc.Lines[0].Y, 7)
	assert.Nil(t, doc.Lines[0].Y[0])
	assert.Nil(t, doc.Lines[0].Y[3])
	assert.Nil(t, doc.Lines[0].Y[6])
	require.NotNil(t, doc.Lines[0].Y[4])
	assert.Equal(t, 70.0, *doc.Lines[0].Y[4])

	require.Len(t, doc.Texts, 3)
	assert.Equal(t, "-30", doc.Texts[1].Text)
}
