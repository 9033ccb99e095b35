// Package pipeline runs the fetch → ratios → charts → export sequence.
package pipeline

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/seenimoa/finratios/internal/analysis/fundamental"
	"github.com/seenimoa/finratios/internal/datasource"
	"github.com/seenimoa/finratios/pkg/models"
	"github.com/seenimoa/finratios/pkg/utils"
)

// PreviewRows is the number of period rows printed after the fetch.
const PreviewRows = 5

// ChartRenderer renders the trend charts and returns where they were written.
type ChartRenderer interface {
	Show(pt *models.PeriodTable, rt *models.RatioTable) (string, error)
}

// Exporter writes both tables to a workbook and returns its absolute path.
type Exporter interface {
	Export(path string, pt *models.PeriodTable, rt *models.RatioTable) (string, error)
}

// Printer reports progress to the user.
type Printer interface {
	Banner()
	Fetched()
	Statements(pt *models.PeriodTable, n int)
	Ratios(rt *models.RatioTable)
	ChartsWritten(path string)
	Exported(path string)
	Complete()
}

// Runner wires the pipeline stages together.
type Runner struct {
	Ticker     string
	OutputPath string

	Source   datasource.StatementSource
	Charts   ChartRenderer // nil disables charts
	Exporter Exporter
	Printer  Printer
	Logger   *zap.Logger
}

// Result holds everything a successful run produced.
type Result struct {
	Periods    *models.PeriodTable
	Ratios     *models.RatioTable
	ChartPath  string
	ExportPath string
}

// Run executes the pipeline. The first failing stage stops the run and its
// error is returned; nothing after it runs.
func (r *Runner) Run(ctx context.Context) (*Result, error) {
	logger := r.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	ticker := utils.NormalizeTicker(r.Ticker)

	r.Printer.Banner()

	logger.Info("fetching statements", zap.String("ticker", ticker), zap.String("source", r.Source.Name()))
	pt, err := datasource.FetchPeriodTable(ctx, r.Source, ticker)
	if err != nil {
		return nil, err
	}
	r.Printer.Fetched()
	r.Printer.Statements(pt, PreviewRows)

	rt, err := fundamental.ComputeRatios(pt)
	if err != nil {
		return nil, err
	}
	logger.Debug("ratios computed", zap.Int("years", rt.Len()))
	r.Printer.Ratios(rt)

	res := &Result{Periods: pt, Ratios: rt}

	if r.Charts != nil {
		path, err := r.Charts.Show(pt, rt)
		if err != nil {
			return nil, fmt.Errorf("render charts: %w", err)
		}
		res.ChartPath = path
		r.Printer.ChartsWritten(path)
	}

	path, err := r.Exporter.Export(r.OutputPath, pt, rt)
	if err != nil {
		return nil, fmt.Errorf("export workbook: %w", err)
	}
	res.ExportPath = path
	r.Printer.Exported(path)

	r.Printer.Complete()
	return res, nil
}
