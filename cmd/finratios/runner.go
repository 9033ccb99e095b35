package main

import (
	"go.uber.org/zap"

	"github.com/seenimoa/finratios/internal/config"
	"github.com/seenimoa/finratios/internal/console"
	"github.com/seenimoa/finratios/internal/datasource"
	"github.com/seenimoa/finratios/internal/export"
	"github.com/seenimoa/finratios/internal/pipeline"
	"github.com/seenimoa/finratios/internal/report"
)

// newRunner builds the production pipeline from configuration.
func newRunner(cfg *config.Config, logger *zap.Logger, printer *console.Printer) *pipeline.Runner {
	src := datasource.NewYFinance(
		datasource.WithBaseURL(cfg.DataSource.BaseURL),
		datasource.WithCookieURL(cfg.DataSource.CookieURL),
		datasource.WithSession(cfg.DataSource.Session),
		datasource.WithTimeout(cfg.DataSource.Timeout()),
		datasource.WithRateLimit(cfg.DataSource.RateLimit),
		datasource.WithLogger(logger.Named("datasource")),
	)

	r := &pipeline.Runner{
		Ticker:     cfg.Analysis.Ticker,
		OutputPath: cfg.Export.Path,
		Source:     src,
		Exporter:   export.NewExporter(logger.Named("export")),
		Printer:    printer,
		Logger:     logger,
	}
	if cfg.Charts.Enabled {
		r.Charts = report.NewViewer(report.ViewerConfig{
			Dir:     cfg.Charts.Dir,
			Open:    cfg.Charts.Open,
			Company: cfg.Analysis.Company,
			Ticker:  cfg.Analysis.Ticker,
		}, logger.Named("report"))
	}
	return r
}
