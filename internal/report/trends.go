package report

import (
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"github.com/seenimoa/finratios/pkg/models"
)

// Chart is one rendered trend chart.
type Chart struct {
	Title  string
	Series []string // names of the series actually drawn
	SVG    string
}

// Source columns for the revenue / net income chart.
const (
	RevenueColumn   = "IS_Total Revenue"
	NetIncomeColumn = "IS_Net Income"
)

const billion = 1e9

// RevenueIncomeChart plots revenue and net income in billions. A series whose
// source column is absent is skipped.
func RevenueIncomeChart(pt *models.PeriodTable, company string, logger *zap.Logger) Chart {
	sources := []struct {
		column, name string
	}{
		{RevenueColumn, "Revenue (B EUR)"},
		{NetIncomeColumn, "Net Income (B EUR)"},
	}

	var series []LineChartSeries
	for _, src := range sources {
		values, ok := pt.Column(src.column)
		if !ok {
			logger.Debug("chart series skipped", zap.String("column", src.column))
			continue
		}
		scaled := make([]float64, len(values))
		for i, v := range values {
			scaled[i] = v / billion
		}
		series = append(series, LineChartSeries{Name: src.name, Values: scaled})
	}

	cfg := DefaultChartConfig()
	cfg.Title = fmt.Sprintf("%s Revenue & Net Income Trend", company)
	cfg.XLabel = "Year"
	cfg.YLabel = "Billion EUR"
	return Chart{
		Title:  cfg.Title,
		Series: seriesNames(series),
		SVG:    LineChart(series, yearLabels(pt.Years()), cfg),
	}
}

// ReturnsChart plots ROE and ROA. Both columns always exist on a RatioTable.
func ReturnsChart(rt *models.RatioTable, company string) Chart {
	roe, _ := rt.Column(models.ColROE)
	roa, _ := rt.Column(models.ColROA)
	series := []LineChartSeries{
		{Name: models.ColROE, Values: roe},
		{Name: models.ColROA, Values: roa},
	}

	cfg := DefaultChartConfig()
	cfg.Title = fmt.Sprintf("%s ROE & ROA Trend", company)
	cfg.XLabel = "Year"
	cfg.YLabel = "Percentage (%)"
	return Chart{
		Title:  cfg.Title,
		Series: seriesNames(series),
		SVG:    LineChart(series, yearLabels(rt.Years()), cfg),
	}
}

func seriesNames(series []LineChartSeries) []string {
	names := make([]string, len(series))
	for i, s := range series {
		names[i] = s.Name
	}
	return names
}

func yearLabels(years []int) []string {
	labels := make([]string, len(years))
	for i, y := range years {
		labels[i] = strconv.Itoa(y)
	}
	return labels
}
