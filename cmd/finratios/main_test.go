package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/pflag"
	"github.com/xuri/excelize/v2"
)

// fixture holds one value per timeseries key for fiscal years 2022 and 2023.
var fixture = map[string][2]float64{
	"annualTotalRevenue":                        {142.61e9, 155.50e9},
	"annualNetIncome":                           {17.94e9, 11.29e9},
	"annualStockholdersEquity":                  {90.0e9, 92.0e9},
	"annualTotalAssets":                         {246.9e9, 267.1e9},
	"annualTotalLiabilitiesNetMinorityInterest": {156.9e9, 175.1e9},
	"annualFreeCashFlow":                        {7.1e9, 6.2e9},
}

func yahooStub(t *testing.T) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.Contains(r.URL.Path, "/ws/fundamentals-timeseries/") {
			http.NotFound(w, r)
			return
		}
		var results []map[string]any
		for _, key := range strings.Split(r.URL.Query().Get("type"), ",") {
			v, ok := fixture[key]
			if !ok {
				continue
			}
			results = append(results, map[string]any{
				"meta": map[string]any{"type": []string{key}},
				key: []map[string]any{
					{"asOfDate": "2022-12-31", "currencyCode": "EUR", "reportedValue": map[string]any{"raw": v[0]}},
					{"asOfDate": "2023-12-31", "currencyCode": "EUR", "reportedValue": map[string]any{"raw": v[1]}},
				},
			})
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"timeseries": map[string]any{"result": results, "error": nil},
		})
	}))
}

// execute runs the root command with fresh flag state and returns stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	reset := func(fs *pflag.FlagSet) {
		fs.VisitAll(func(f *pflag.Flag) {
			f.Value.Set(f.DefValue)
			f.Changed = false
		})
	}
	reset(rootCmd.Flags())
	reset(rootCmd.PersistentFlags())

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})
	err := rootCmd.Execute()
	return out.String(), err
}

func isolate(t *testing.T, baseURL string) string {
	t.Helper()
	dir := t.TempDir()
	testChdir(t, dir)
	t.Setenv("FINRATIOS_DATASOURCE_BASE_URL", baseURL)
	t.Setenv("FINRATIOS_DATASOURCE_SESSION", "false")
	t.Setenv("FINRATIOS_DATASOURCE_RATE_LIMIT", "0")
	t.Setenv("FINRATIOS_CHARTS_OPEN", "false")
	t.Setenv("FINRATIOS_CHARTS_DIR", filepath.Join(dir, "charts"))
	t.Setenv("FINRATIOS_LOGGING_LEVEL", "error")
	return dir
}

func TestRootRunsFullAnalysis(t *testing.T) {
	srv := yahooStub(t)
	defer srv.Close()
	dir := isolate(t, srv.URL)

	out, err := execute(t, "--output", "report.xlsx")
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}

	for _, want := range []string{
		"BMW FINANCIAL STATEMENT ANALYSIS TOOL",
		"✓ Financial data fetched successfully",
		"Key Financial Ratios",
		"19.93", // ROE 2022: 17.94 / 90 * 100
		"Exported financials & ratios to: " + filepath.Join(dir, "report.xlsx"),
		"Analysis Complete!",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}

	f, err := excelize.OpenFile(filepath.Join(dir, "report.xlsx"))
	if err != nil {
		t.Fatalf("open workbook: %v", err)
	}
	defer f.Close()
	if got := f.GetSheetList(); len(got) != 2 || got[0] != "Financials" || got[1] != "Ratios" {
		t.Errorf("sheets = %v", got)
	}

	if _, err := os.Stat(filepath.Join(dir, "charts", "BMW_Financial_Charts.html")); err != nil {
		t.Errorf("chart page not written: %v", err)
	}
}

func TestRootReportsFetchFailureAndSucceeds(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()
	dir := isolate(t, srv.URL)

	out, err := execute(t, "--no-charts")
	if err != nil {
		t.Fatalf("Execute() should not fail on pipeline errors, got %v", err)
	}
	if !strings.Contains(out, "✗ Error fetching data:") || !strings.Contains(out, "404") {
		t.Errorf("missing error line:\n%s", out)
	}
	if !strings.Contains(out, "Tip:") {
		t.Error("missing remediation tip")
	}
	if _, err := os.Stat(filepath.Join(dir, "BMW_Financial_Analysis.xlsx")); !os.IsNotExist(err) {
		t.Error("workbook written despite failure")
	}
}

func TestRootRejectsInvalidConfig(t *testing.T) {
	isolate(t, "http://127.0.0.1:1")
	t.Setenv("FINRATIOS_LOGGING_FORMAT", "xml")

	if _, err := execute(t); err == nil || !strings.Contains(err.Error(), "invalid config") {
		t.Errorf("Execute() error = %v, want invalid config", err)
	}
}

func TestVersionCommand(t *testing.T) {
	isolate(t, "http://127.0.0.1:1")

	out, err := execute(t, "version")
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if !strings.Contains(out, "finratios dev") {
		t.Errorf("version output = %q", out)
	}
}

func TestStatusShowsTickerOverride(t *testing.T) {
	isolate(t, "http://127.0.0.1:1")

	out, err := execute(t, "status", "--log-level", "debug")
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if !strings.Contains(out, "BMW (BMW.DE)") || !strings.Contains(out, "debug (console)") {
		t.Errorf("status output:\n%s", out)
	}
}
