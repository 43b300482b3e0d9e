package ledger

import (
	"bytes"
	"fmt"
	"time"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/tandemledger/tandem/internal/models"
)

// RenderTrendChart renders a PNG line chart from the balance trend series.
// Two series: realized balance (blue solid) and projected balance (green
// dashed). Returns raw PNG bytes.
func RenderTrendChart(series []models.TrendPoint, owner models.Owner) ([]byte, error) {
	if len(series) < 2 {
		return nil, fmt.Errorf("need at least 2 data points, got %d", len(series))
	}

	xValues := make([]time.Time, len(series))
	realizedY := make([]float64, len(series))
	projectedY := make([]float64, len(series))

	for i, p := range series {
		xValues[i] = p.Date
		realizedY[i] = p.Realized
		projectedY[i] = p.Projected
	}

	realizedSeries := chart.TimeSeries{
		Name: "Realized Balance",
		Style: chart.Style{
			StrokeColor: drawing.ColorFromHex("2563eb"), // blue-600
			StrokeWidth: 2.5,
		},
		XValues: xValues,
		YValues: realizedY,
	}

	projectedSeries := chart.TimeSeries{
		Name: "Projected Balance",
		Style: chart.Style{
			StrokeColor:     drawing.ColorFromHex("16a34a"), // green-600
			StrokeWidth:     1.5,
			StrokeDashArray: []float64{5.0, 3.0},
		},
		XValues: xValues,
		YValues: projectedY,
	}

	title := "Balance Trend"
	if !owner.IsGlobal() {
		title = fmt.Sprintf("Balance Trend (%s)", owner)
	}

	graph := chart.Chart{
		Title:  title,
		Width:  900,
		Height: 400,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 10, Right: 20, Bottom: 10},
		},
		XAxis: chart.XAxis{
			TickPosition: chart.TickPositionBetweenTicks,
			ValueFormatter: func(v interface{}) string {
				if t, ok := v.(float64); ok {
					return chart.TimeFromFloat64(t).Format("Jan 06")
				}
				return ""
			},
		},
		YAxis: chart.YAxis{
			ValueFormatter: func(v interface{}) string {
				if f, ok := v.(float64); ok {
					return fmt.Sprintf("%.0f", f)
				}
				return ""
			},
		},
		Series: []chart.Series{
			realizedSeries,
			projectedSeries,
		},
	}

	graph.Elements = []chart.Renderable{
		chart.LegendLeft(&graph),
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("chart render failed: %w", err)
	}

	return buf.Bytes(), nil
}
