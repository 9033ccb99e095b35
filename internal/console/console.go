// Package console prints the human-readable progress report to stdout.
package console

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/seenimoa/finratios/pkg/models"
	"github.com/seenimoa/finratios/pkg/utils"
)

const (
	ruleWidth = 70
	// Wide period tables are elided in the middle, like a dataframe preview.
	maxPreviewColumns = 8
	previewLeading    = 4
	ellipsis          = "…"
)

// Printer writes banners, progress lines and tables.
type Printer struct {
	w       io.Writer
	company string
	ticker  string

	header  lipgloss.Style
	ok      lipgloss.Style
	failure lipgloss.Style
	border  lipgloss.Style
}

// New creates a Printer writing to w (stdout when nil).
func New(w io.Writer, company, ticker string) *Printer {
	if w == nil {
		w = os.Stdout
	}
	r := lipgloss.NewRenderer(w)
	return &Printer{
		w:       w,
		company: company,
		ticker:  ticker,
		header:  r.NewStyle().Bold(true).Padding(0, 1),
		ok:      r.NewStyle().Foreground(lipgloss.Color("2")),
		failure: r.NewStyle().Foreground(lipgloss.Color("1")).Bold(true),
		border:  r.NewStyle().Foreground(lipgloss.Color("8")),
	}
}

// Banner prints the tool header and the fetch announcement.
func (p *Printer) Banner() {
	rule := strings.Repeat("=", ruleWidth)
	fmt.Fprintln(p.w, rule)
	fmt.Fprintf(p.w, "%s FINANCIAL STATEMENT ANALYSIS TOOL\n", strings.ToUpper(p.company))
	fmt.Fprintln(p.w, "Analyzing Real Financial Data")
	fmt.Fprintln(p.w, rule)
	fmt.Fprintf(p.w, "\nFetching real financial data for %s (%s)...\n", p.company, p.ticker)
	fmt.Fprintln(p.w, rule)
}

// Fetched confirms the statements were retrieved.
func (p *Printer) Fetched() {
	fmt.Fprintln(p.w, p.ok.Render("✓ Financial data fetched successfully"))
	fmt.Fprintln(p.w)
}

// Statements prints the first n rows of the period table.
func (p *Printer) Statements(pt *models.PeriodTable, n int) {
	fmt.Fprintf(p.w, "📊 Financial Statements (first %d rows):\n", n)
	head := pt.Head(n)

	columns := head.Columns()
	shown, elided := previewColumns(columns)

	headers := []string{"Year"}
	for _, c := range shown {
		if c == "" {
			headers = append(headers, ellipsis)
			continue
		}
		headers = append(headers, c)
	}

	rows := make([][]string, 0, head.Len())
	for _, year := range head.Years() {
		row := []string{strconv.Itoa(year)}
		for _, c := range shown {
			if c == "" {
				row = append(row, ellipsis)
				continue
			}
			row = append(row, utils.FormatCompact(head.Get(c, year)))
		}
		rows = append(rows, row)
	}

	fmt.Fprintln(p.w, p.render(headers, rows))
	fmt.Fprintf(p.w, "[%d rows x %d columns]\n", head.Len(), len(columns))
	if elided > 0 {
		fmt.Fprintf(p.w, "(%d columns not shown)\n", elided)
	}
}

// Ratios prints the full ratio table.
func (p *Printer) Ratios(rt *models.RatioTable) {
	fmt.Fprintln(p.w, "\n📈 Key Financial Ratios:")
	headers := append([]string{"Year"}, rt.Columns()...)
	rows := make([][]string, 0, rt.Len())
	for _, r := range rt.Rows {
		row := []string{strconv.Itoa(r.Year)}
		for _, v := range r.Values() {
			row = append(row, utils.FormatRatio(v))
		}
		rows = append(rows, row)
	}
	fmt.Fprintln(p.w, p.render(headers, rows))
}

// ChartsWritten reports where the chart page was saved.
func (p *Printer) ChartsWritten(path string) {
	fmt.Fprintf(p.w, "\n📉 Trend charts written to: %s\n", path)
}

// Exported reports the absolute path of the workbook.
func (p *Printer) Exported(path string) {
	fmt.Fprintf(p.w, "\n📁 Exported financials & ratios to: %s\n", path)
}

// Complete prints the completion banner.
func (p *Printer) Complete() {
	fmt.Fprintln(p.w, "\n🚀 Analysis Complete!")
}

// Error prints the failure line and the remediation hint.
func (p *Printer) Error(err error) {
	fmt.Fprintln(p.w)
	fmt.Fprintln(p.w, p.failure.Render("✗ Error fetching data: "+err.Error()))
	fmt.Fprintln(p.w, "\nTip: Make sure you have an internet connection and that Yahoo Finance is reachable:")
	fmt.Fprintf(p.w, "  curl -I %s\n", "https://query2.finance.yahoo.com")
}

func (p *Printer) render(headers []string, rows [][]string) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(p.border).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return p.header
			}
			if col == 0 {
				return lipgloss.NewStyle().Padding(0, 1)
			}
			return lipgloss.NewStyle().Padding(0, 1).Align(lipgloss.Right)
		})
	return t.String()
}

// previewColumns returns the columns to print, with "" marking the elided
// block, and how many columns were dropped.
func previewColumns(columns []string) ([]string, int) {
	if len(columns) <= maxPreviewColumns {
		return columns, 0
	}
	trailing := maxPreviewColumns - previewLeading - 1
	shown := make([]string, 0, maxPreviewColumns)
	shown = append(shown, columns[:previewLeading]...)
	shown = append(shown, "")
	shown = append(shown, columns[len(columns)-trailing:]...)
	return shown, len(columns) - previewLeading - trailing
}
