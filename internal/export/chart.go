package export

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/Veraticus/fraudwatch/internal/model"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// ChartFileName is the conventional name of the risk chart.
const ChartFileName = "fraud_risk_scores.png"

// ErrNoEntries is returned when there is nothing to chart.
var ErrNoEntries = errors.New("no history entries to chart")

var severityColors = map[model.Severity]drawing.Color{
	model.SeverityLegitimate: drawing.ColorFromHex("10b981"),
	model.SeverityReview:     drawing.ColorFromHex("f59e0b"),
	model.SeverityFraud:      drawing.ColorFromHex("ef4444"),
}

// RenderRiskChart draws one bar per entry, in history order, coloured by
// severity tier.
func RenderRiskChart(entries []model.HistoryEntry, w io.Writer) error {
	if len(entries) == 0 {
		return ErrNoEntries
	}

	bars := make([]chart.Value, 0, len(entries))
	for i, e := range entries {
		color := severityColors[e.Severity()]
		bars = append(bars, chart.Value{
			Label: strconv.Itoa(i + 1),
			Value: float64(e.RiskScore),
			Style: chart.Style{
				FillColor:   color,
				StrokeColor: color,
			},
		})
	}

	barChart := chart.BarChart{
		Title: "Prediction Risk Scores",
		Background: chart.Style{
			Padding: chart.Box{
				Top:    40,
				Left:   20,
				Right:  20,
				Bottom: 20,
			},
		},
		Width:      max(400, 40*len(entries)),
		Height:     400,
		BarWidth:   24,
		BarSpacing: 12,
		YAxis: chart.YAxis{
			Range: &chart.ContinuousRange{Min: 0, Max: 100},
			ValueFormatter: func(v interface{}) string {
				if vf, isFloat := v.(float64); isFloat {
					return fmt.Sprintf("%.0f", vf)
				}
				return ""
			},
		},
		Bars: bars,
	}

	if err := barChart.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("failed to render chart: %w", err)
	}
	return nil
}

// WriteChartFile renders the risk chart into dir/ChartFileName.
func WriteChartFile(dir string, entries []model.HistoryEntry) (string, error) {
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0750); err != nil {
		return "", fmt.Errorf("failed to create export directory: %w", err)
	}

	path := filepath.Join(dir, ChartFileName)
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create chart file: %w", err)
	}

	if err := RenderRiskChart(entries, f); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("failed to close chart file: %w", err)
	}
	return path, nil
}
