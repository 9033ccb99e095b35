package report

import (
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pkg/browser"
	"go.uber.org/zap"

	"github.com/seenimoa/finratios/pkg/models"
)

var viewerTmpl = template.Must(template.New("viewer").Funcs(template.FuncMap{
	"join": func(s []string) string { return strings.Join(s, ",") },
	// SVG is produced by LineChart, which escapes every text node.
	"svg": func(s string) template.HTML { return template.HTML(s) },
}).Parse(viewerTemplate))

// ViewerConfig controls where the chart page is written and whether it is
// opened.
type ViewerConfig struct {
	Dir     string // output directory (default: ".")
	Open    bool   // open the page in the system browser
	Company string // chart title prefix, e.g. "BMW"
	Ticker  string
}

// Viewer writes both trend charts to an HTML page and opens it.
type Viewer struct {
	cfg      ViewerConfig
	logger   *zap.Logger
	openFile func(path string) error
	now      func() time.Time
}

// NewViewer creates a chart viewer.
func NewViewer(cfg ViewerConfig, logger *zap.Logger) *Viewer {
	if cfg.Dir == "" {
		cfg.Dir = "."
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Viewer{
		cfg:      cfg,
		logger:   logger,
		openFile: browser.OpenFile,
		now:      time.Now,
	}
}

// Show renders the revenue/net income and ROE/ROA charts and returns the
// absolute path of the written page.
func (v *Viewer) Show(pt *models.PeriodTable, rt *models.RatioTable) (string, error) {
	charts := []Chart{
		RevenueIncomeChart(pt, v.cfg.Company, v.logger),
		ReturnsChart(rt, v.cfg.Company),
	}

	if err := os.MkdirAll(v.cfg.Dir, 0o755); err != nil {
		return "", fmt.Errorf("create chart directory: %w", err)
	}
	path, err := filepath.Abs(filepath.Join(v.cfg.Dir, fmt.Sprintf("%s_Financial_Charts.html", v.cfg.Company)))
	if err != nil {
		return "", fmt.Errorf("resolve chart path: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create chart page: %w", err)
	}

	data := struct {
		Title     string
		Ticker    string
		Generated string
		Charts    []Chart
	}{
		Title:     fmt.Sprintf("%s Financial Statement Analysis", v.cfg.Company),
		Ticker:    v.cfg.Ticker,
		Generated: v.now().Format("02 Jan 2006 15:04"),
		Charts:    charts,
	}
	if err := viewerTmpl.Execute(f, data); err != nil {
		f.Close()
		return "", fmt.Errorf("render chart page: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("write chart page: %w", err)
	}

	v.logger.Info("charts written", zap.String("path", path))
	if v.cfg.Open {
		if err := v.openFile(path); err != nil {
			v.logger.Warn("could not open chart viewer", zap.String("path", path), zap.Error(err))
		}
	}
	return path, nil
}
