package telemetry

import (
	"fmt"
	"io"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// RenderChart draws the epidemic curve as a PNG: population and one line per
// health stage against turn number.
func RenderChart(w io.Writer, series []TurnStats, width, height int) error {
	if len(series) < 2 {
		return fmt.Errorf("rendering chart: need at least 2 turns, got %d", len(series))
	}

	turns := make([]float64, len(series))
	lines := []struct {
		name  string
		color drawing.Color
		value func(TurnStats) int
	}{
		{"population", drawing.Color{R: 40, G: 40, B: 40, A: 255}, func(s TurnStats) int { return s.Population }},
		{"healthy", chart.ColorGreen, func(s TurnStats) int { return s.Healthy }},
		{"infected", drawing.Color{R: 255, G: 165, B: 0, A: 255}, func(s TurnStats) int { return s.Infected }},
		{"sick", chart.ColorRed, func(s TurnStats) int { return s.Sick }},
		{"recovering", drawing.Color{R: 0, G: 116, B: 217, A: 255}, func(s TurnStats) int { return s.Recovering }},
	}

	for i, s := range series {
		turns[i] = float64(s.Turn)
	}

	var all []chart.Series
	for _, l := range lines {
		values := make([]float64, len(series))
		for i, s := range series {
			values[i] = float64(l.value(s))
		}
		all = append(all, chart.ContinuousSeries{
			Name:    l.name,
			XValues: turns,
			YValues: values,
			Style:   chart.Style{StrokeColor: l.color, StrokeWidth: 2.0},
		})
	}

	graph := chart.Chart{
		Width:  width,
		Height: height,
		XAxis: chart.XAxis{
			Name:  "turn",
			Style: chart.Style{FontSize: 10.0},
			ValueFormatter: func(v interface{}) string {
				return fmt.Sprintf("%d", int(v.(float64)))
			},
		},
		YAxis: chart.YAxis{
			Name:  "entities",
			Style: chart.Style{FontSize: 10.0},
		},
		Series: all,
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}

	if err := graph.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("rendering chart: %w", err)
	}
	return nil
}
