package charts

import (
	"bytes"
	"fmt"
	"math"
	"strconv"

	"github.com/wcharczuk/go-chart/v2"

	"github.com/ivanoskov/ordobank_bot/internal/model"
)

// ChartGenerator генерирует графики статистики счета
type ChartGenerator struct{}

// NewChartGenerator создает новый генератор графиков
func NewChartGenerator() *ChartGenerator {
	return &ChartGenerator{}
}

// GenerateCategoryPie создает круговую диаграмму снятий по категориям.
// Цвет сектора детерминирован именем категории, поэтому одна и та же
// категория всегда выглядит одинаково.
func (g *ChartGenerator) GenerateCategoryPie(stats []model.CategoryStat) ([]byte, error) {
	values := make([]chart.Value, 0, len(stats))
	for _, s := range stats {
		amount := math.Abs(s.Withdrawals)
		if amount == 0 {
			continue
		}
		values = append(values, chart.Value{
			Label: fmt.Sprintf("%s: %.2f", s.Category, amount),
			Value: amount,
			Style: chart.Style{
				FillColor: categoryColor(s.Category),
			},
		})
	}
	if len(values) == 0 {
		return nil, nil // Нет данных для диаграммы
	}

	pie := chart.PieChart{
		Width:  1200,
		Height: 600,
		Values: values,
		Background: chart.Style{
			Padding: chart.Box{
				Top:    50,
				Left:   50,
				Right:  50,
				Bottom: 50,
			},
			FillColor: chart.ColorWhite,
		},
	}

	buffer := bytes.NewBuffer([]byte{})
	err := pie.Render(chart.PNG, buffer)
	if err != nil {
		return nil, fmt.Errorf("failed to render category pie: %w", err)
	}

	return buffer.Bytes(), nil
}

// GenerateDailySeries создает линейный график чистой суммы по дням.
// По оси X — день месяца, подписываются только четные дни.
func (g *ChartGenerator) GenerateDailySeries(points []model.DayPoint) ([]byte, error) {
	if len(points) == 0 {
		return nil, nil
	}

	xValues := make([]float64, len(points))
	yValues := make([]float64, len(points))
	for i, p := range points {
		xValues[i] = float64(i)
		yValues[i] = p.Amount
	}

	graph := chart.Chart{
		Width:  1200,
		Height: 600,
		Background: chart.Style{
			Padding: chart.Box{
				Top:    50,
				Left:   50,
				Right:  50,
				Bottom: 50,
			},
			FillColor: chart.ColorWhite,
		},
		XAxis: chart.XAxis{
			ValueFormatter: func(v interface{}) string {
				f, ok := v.(float64)
				if !ok {
					return ""
				}
				i := int(math.Round(f))
				if i < 0 || i >= len(points) {
					return ""
				}
				day := points[i].DayOfMonth
				if day%2 != 0 {
					return ""
				}
				return strconv.Itoa(day)
			},
			Style: chart.Style{
				FontSize:  12,
				FontColor: chart.ColorBlack,
			},
		},
		YAxis: chart.YAxis{
			ValueFormatter: func(v interface{}) string {
				return fmt.Sprintf("%.0f", v.(float64))
			},
			Style: chart.Style{
				FontSize:  12,
				FontColor: chart.ColorBlack,
			},
		},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name:    "Сумма за день",
				XValues: xValues,
				YValues: yValues,
				Style: chart.Style{
					StrokeColor: chart.ColorBlue,
					StrokeWidth: 2,
				},
			},
		},
	}

	buffer := bytes.NewBuffer([]byte{})
	err := graph.Render(chart.PNG, buffer)
	if err != nil {
		return nil, fmt.Errorf("failed to render daily series: %w", err)
	}

	return buffer.Bytes(), nil
}

// GenerateSummaryBars создает сравнение трех окон снимка счета:
// текущая неделя, текущий месяц и прошлый месяц.
func (g *ChartGenerator) GenerateSummaryBars(summary *model.AccountSummary) ([]byte, error) {
	windows := []struct {
		label  string
		totals model.PeriodTotals
	}{
		{"Неделя", summary.CurrentWeek},
		{"Месяц", summary.CurrentMonth},
		{"Прошлый месяц", summary.LastMonth},
	}

	bars := make([]chart.Value, 0, len(windows)*2)
	for _, w := range windows {
		bars = append(bars, chart.Value{
			Label: fmt.Sprintf("%s: +%.0f", w.label, w.totals.Deposit),
			Value: w.totals.Deposit,
			Style: chart.Style{
				StrokeColor: chart.ColorGreen,
				FillColor:   chart.ColorGreen,
				FontSize:    12,
				FontColor:   chart.ColorBlack,
			},
		})
		bars = append(bars, chart.Value{
			Label: fmt.Sprintf("%s: %.0f", w.label, w.totals.Withdrawal),
			Value: math.Abs(w.totals.Withdrawal),
			Style: chart.Style{
				StrokeColor: chart.ColorRed,
				FillColor:   chart.ColorRed,
				FontSize:    12,
				FontColor:   chart.ColorBlack,
			},
		})
	}

	graph := chart.BarChart{
		Title: "Движение по счету",
		TitleStyle: chart.Style{
			FontSize:  14,
			FontColor: chart.ColorBlack,
		},
		Width:    1200,
		Height:   600,
		BarWidth: 60,
		Background: chart.Style{
			Padding: chart.Box{
				Top:    50,
				Left:   50,
				Right:  50,
				Bottom: 50,
			},
			FillColor: chart.ColorWhite,
		},
		YAxis: chart.YAxis{
			ValueFormatter: func(v interface{}) string {
				return fmt.Sprintf("%.0f", v.(float64))
			},
			Style: chart.Style{
				FontSize:  12,
				FontColor: chart.ColorBlack,
			},
		},
		Bars: bars,
	}

	buffer := bytes.NewBuffer([]byte{})
	err := graph.Render(chart.PNG, buffer)
	if err != nil {
		return nil, fmt.Errorf("failed to render summary bars: %w", err)
	}

	return buffer.Bytes(), nil
}
