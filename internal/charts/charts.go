// Package charts renders analytics views as PNG images.
package charts

import (
	"bytes"
	"fmt"

	"github.com/glensd/personalExpenseTracker/internal/core"

	"github.com/wcharczuk/go-chart/v2"
)

const deletedCategoryLabel = "(deleted)"

// Renderer draws analytics charts. The zero value is ready to use.
type Renderer struct {
	Width  int
	Height int
}

func NewRenderer() *Renderer {
	return &Renderer{Width: 800, Height: 600}
}

// CategoryPie renders per-category totals as a pie chart. Only positive
// totals get a slice. It returns nil without error when there is nothing to draw.
func (r *Renderer) CategoryPie(totals []core.CategoryTotal) ([]byte, error) {
	var grand int64
	for _, t := range totals {
		if t.Total.Cents > 0 {
			grand += t.Total.Cents
		}
	}
	if grand == 0 {
		return nil, nil
	}

	values := make([]chart.Value, 0, len(totals))
	for _, t := range totals {
		if t.Total.Cents <= 0 {
			continue
		}
		name := t.Category
		if name == "" {
			name = deletedCategoryLabel
		}
		percentage := float64(t.Total.Cents) / float64(grand) * 100
		values = append(values, chart.Value{
			Label: fmt.Sprintf("%s: %s (%.1f%%)", name, t.Total, percentage),
			Value: t.Total.Float(),
			Style: chart.Style{
				FontSize:  12,
				FontColor: chart.ColorBlack,
			},
		})
	}

	pie := chart.PieChart{
		Title:  "Expenses by category",
		Width:  r.width(),
		Height: r.height(),
		Values: values,
		Background: chart.Style{
			Padding:   chart.Box{Top: 50, Left: 50, Right: 50, Bottom: 50},
			FillColor: chart.ColorWhite,
		},
	}

	buffer := bytes.NewBuffer(nil)
	if err := pie.Render(chart.PNG, buffer); err != nil {
		return nil, fmt.Errorf("render category pie chart: %w", err)
	}
	return buffer.Bytes(), nil
}

// MonthlyBars renders per-month totals as a bar chart, one bar per month in the given order.
// It returns nil without error when there is nothing to draw.
func (r *Renderer) MonthlyBars(totals []core.MonthlyTotal) ([]byte, error) {
	if len(totals) == 0 {
		return nil, nil
	}

	bars := make([]chart.Value, 0, len(totals))
	minValue, maxValue := 0.0, 0.0
	for _, t := range totals {
		v := t.Total.Float()
		minValue = min(minValue, v)
		maxValue = max(maxValue, v)
		bars = append(bars, chart.Value{Label: t.Label(), Value: v})
	}
	if minValue == maxValue {
		// Every month nets to zero; keep the axis non-degenerate.
		maxValue = 1
	}

	graph := chart.BarChart{
		Title:    "Expenses by month",
		Width:    r.width(),
		Height:   r.height(),
		BarWidth: 40,
		Background: chart.Style{
			Padding:   chart.Box{Top: 50, Left: 20, Right: 20, Bottom: 20},
			FillColor: chart.ColorWhite,
		},
		YAxis: chart.YAxis{
			Range: &chart.ContinuousRange{Min: minValue * 1.1, Max: maxValue * 1.1},
			ValueFormatter: func(v interface{}) string {
				if f, ok := v.(float64); ok {
					return fmt.Sprintf("%.2f", f)
				}
				return ""
			},
		},
		Bars: bars,
	}

	buffer := bytes.NewBuffer(nil)
	if err := graph.Render(chart.PNG, buffer); err != nil {
		return nil, fmt.Errorf("render monthly bar chart: %w", err)
	}
	return buffer.Bytes(), nil
}

func (r *Renderer) width() int {
	if r.Width > 0 {
		return r.Width
	}
	return 800
}

func (r *Renderer) height() int {
	if r.Height > 0 {
		return r.Height
	}
	return 600
}
