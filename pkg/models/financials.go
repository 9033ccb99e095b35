// Package models defines the core data structures used throughout finratios.
package models

import (
	"math"
	"sort"
)

// StatementKind identifies one of the three annual financial statements.
type StatementKind string

const (
	StatementIncome   StatementKind = "income"
	StatementBalance  StatementKind = "balance"
	StatementCashFlow StatementKind = "cashflow"
)

// AllStatements lists the statements in the order they are fetched and merged.
func AllStatements() []StatementKind {
	return []StatementKind{StatementIncome, StatementBalance, StatementCashFlow}
}

// Prefix returns the column prefix used for the statement's line items.
func (k StatementKind) Prefix() string {
	switch k {
	case StatementIncome:
		return "IS_"
	case StatementBalance:
		return "BS_"
	case StatementCashFlow:
		return "CF_"
	default:
		return ""
	}
}

// LineItemValue is a single reported value for one line item on one period date.
type LineItemValue struct {
	AsOfDate string  `json:"as_of_date"` // "2024-12-31"
	Currency string  `json:"currency"`
	Value    float64 `json:"value"`
}

// Statement is one raw statement as reported by the data source:
// line items as rows, period dates as columns.
type Statement struct {
	Kind      StatementKind              `json:"kind"`
	Ticker    string                     `json:"ticker"`
	LineItems []string                   `json:"line_items"` // display labels, in source order
	Values    map[string][]LineItemValue `json:"values"`     // label -> values per period
}

// PeriodTable is a year-indexed table merging the line items of several
// statements. Missing cells hold NaN.
type PeriodTable struct {
	years   []int
	columns []string
	cells   map[string]map[int]float64
}

// NewPeriodTable creates an empty table with the given fiscal years.
// Years are de-duplicated and sorted ascending.
func NewPeriodTable(years ...int) *PeriodTable {
	t := &PeriodTable{cells: make(map[string]map[int]float64)}
	for _, y := range years {
		t.AddYear(y)
	}
	return t
}

// AddYear adds a fiscal year row if it is not present yet.
func (t *PeriodTable) AddYear(year int) {
	i := sort.SearchInts(t.years, year)
	if i < len(t.years) && t.years[i] == year {
		return
	}
	t.years = append(t.years, 0)
	copy(t.years[i+1:], t.years[i:])
	t.years[i] = year
}

// AddColumn registers a column without values. Existing columns are left alone.
func (t *PeriodTable) AddColumn(column string) {
	if _, ok := t.cells[column]; ok {
		return
	}
	t.columns = append(t.columns, column)
	t.cells[column] = make(map[int]float64)
}

// Set stores a value, adding the year and column as needed.
func (t *PeriodTable) Set(column string, year int, value float64) {
	t.AddYear(year)
	t.AddColumn(column)
	t.cells[column][year] = value
}

// Get returns the cell value, or NaN when the column or year is absent.
func (t *PeriodTable) Get(column string, year int) float64 {
	col, ok := t.cells[column]
	if !ok {
		return math.NaN()
	}
	v, ok := col[year]
	if !ok {
		return math.NaN()
	}
	return v
}

// HasColumn reports whether the table carries the given column.
func (t *PeriodTable) HasColumn(column string) bool {
	_, ok := t.cells[column]
	return ok
}

// Column returns the column as a series aligned with Years().
func (t *PeriodTable) Column(column string) ([]float64, bool) {
	if !t.HasColumn(column) {
		return nil, false
	}
	out := make([]float64, len(t.years))
	for i, y := range t.years {
		out[i] = t.Get(column, y)
	}
	return out, true
}

// Years returns the fiscal years in ascending order.
func (t *PeriodTable) Years() []int {
	return append([]int(nil), t.years...)
}

// Columns returns the column names in insertion order.
func (t *PeriodTable) Columns() []string {
	return append([]string(nil), t.columns...)
}

// Len returns the number of fiscal years.
func (t *PeriodTable) Len() int { return len(t.years) }

// Head returns a copy restricted to the first n years.
func (t *PeriodTable) Head(n int) *PeriodTable {
	if n > len(t.years) {
		n = len(t.years)
	}
	if n < 0 {
		n = 0
	}
	out := NewPeriodTable(t.years[:n]...)
	for _, c := range t.columns {
		out.AddColumn(c)
		for _, y := range out.years {
			if v, ok := t.cells[c][y]; ok {
				out.cells[c][y] = v
			}
		}
	}
	return out
}

// Ratio column names, in table order.
const (
	ColROE             = "ROE (%)"
	ColROA             = "ROA (%)"
	ColDebtToEquity    = "Debt to Equity"
	ColNetProfitMargin = "Net Profit Margin (%)"
)

// RatioColumns returns the four ratio column names in table order.
func RatioColumns() []string {
	return []string{ColROE, ColROA, ColDebtToEquity, ColNetProfitMargin}
}

// RatioRow holds the derived ratios for one fiscal year.
type RatioRow struct {
	Year            int     `json:"year"`
	ROE             float64 `json:"roe_pct"`
	ROA             float64 `json:"roa_pct"`
	DebtToEquity    float64 `json:"debt_to_equity"`
	NetProfitMargin float64 `json:"net_profit_margin_pct"`
}

// Values returns the row's ratios in RatioColumns order.
func (r RatioRow) Values() []float64 {
	return []float64{r.ROE, r.ROA, r.DebtToEquity, r.NetProfitMargin}
}

// RatioTable is a year-indexed table of derived financial ratios.
type RatioTable struct {
	Rows []RatioRow `json:"rows"`
}

// Columns returns the ratio column names.
func (t *RatioTable) Columns() []string { return RatioColumns() }

// Len returns the number of fiscal years.
func (t *RatioTable) Len() int { return len(t.Rows) }

// Years returns the fiscal years in row order.
func (t *RatioTable) Years() []int {
	out := make([]int, len(t.Rows))
	for i, r := range t.Rows {
		out[i] = r.Year
	}
	return out
}

// Column returns one ratio column as a series aligned with Years().
func (t *RatioTable) Column(name string) ([]float64, bool) {
	idx := -1
	for i, c := range RatioColumns() {
		if c == name {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, false
	}
	out := make([]float64, len(t.Rows))
	for i, r := range t.Rows {
		out[i] = r.Values()[idx]
	}
	return out, true
}
