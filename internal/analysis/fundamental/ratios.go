// Package fundamental derives financial ratios from a merged PeriodTable.
package fundamental

import (
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/seenimoa/finratios/pkg/models"
)

// Concept is a canonical line item that may be reported under several labels.
type Concept struct {
	Name       string
	Candidates []string // tried in order, first present wins
}

// Canonical concepts in resolution order.
var (
	Equity = Concept{Name: "Equity", Candidates: []string{
		"BS_Total Stockholder Equity",
		"BS_Stockholders Equity",
		"BS_Total Equity Gross Minority Interest",
		"BS_Total Equity",
	}}
	Assets      = Concept{Name: "Assets", Candidates: []string{"BS_Total Assets"}}
	Liabilities = Concept{Name: "Liabilities", Candidates: []string{
		"BS_Total Liab",
		"BS_Total Liabilities",
		"BS_Total Liabilities Net Minority Interest",
	}}
	Revenue   = Concept{Name: "Revenue", Candidates: []string{"IS_Total Revenue"}}
	NetIncome = Concept{Name: "Net Income", Candidates: []string{"IS_Net Income"}}
)

// Concepts returns the five concepts required for ratio computation.
func Concepts() []Concept {
	return []Concept{Equity, Assets, Liabilities, Revenue, NetIncome}
}

// MissingColumnsError reports concepts with no matching column.
type MissingColumnsError struct {
	Concepts []string
}

func (e *MissingColumnsError) Error() string {
	return fmt.Sprintf("missing required columns: [%s]", strings.Join(e.Concepts, ", "))
}

// FindColumn returns the first candidate present in the table.
func FindColumn(table *models.PeriodTable, candidates []string) (string, bool) {
	for _, c := range candidates {
		if table.HasColumn(c) {
			return c, true
		}
	}
	return "", false
}

// ResolveColumns maps every concept name to the column it resolves to.
// All missing concepts are reported together.
func ResolveColumns(table *models.PeriodTable) (map[string]string, error) {
	resolved := make(map[string]string, len(Concepts()))
	var missing []string
	for _, c := range Concepts() {
		col, ok := FindColumn(table, c.Candidates)
		if !ok {
			missing = append(missing, c.Name)
			continue
		}
		resolved[c.Name] = col
	}
	if len(missing) > 0 {
		return nil, &MissingColumnsError{Concepts: missing}
	}
	return resolved, nil
}

// ComputeRatios derives ROE, ROA, debt to equity and net profit margin for
// every year in the table, rounded to two decimals.
func ComputeRatios(table *models.PeriodTable) (*models.RatioTable, error) {
	cols, err := ResolveColumns(table)
	if err != nil {
		return nil, err
	}

	ratios := &models.RatioTable{Rows: make([]models.RatioRow, 0, table.Len())}
	for _, year := range table.Years() {
		ni := table.Get(cols[NetIncome.Name], year)
		eq := table.Get(cols[Equity.Name], year)
		assets := table.Get(cols[Assets.Name], year)
		liab := table.Get(cols[Liabilities.Name], year)
		rev := table.Get(cols[Revenue.Name], year)

		ratios.Rows = append(ratios.Rows, models.RatioRow{
			Year:            year,
			ROE:             Round2(ni / eq * 100),
			ROA:             Round2(ni / assets * 100),
			DebtToEquity:    Round2(liab / eq),
			NetProfitMargin: Round2(ni / rev * 100),
		})
	}
	return ratios, nil
}

// Round2 rounds to two decimals, half to even on the scaled binary value
// (1.005 → 1, 0.125 → 0.12). NaN and ±Inf pass through.
func Round2(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}
	f, _ := decimal.NewFromFloat(v * 100).RoundBank(0).Shift(-2).Float64()
	return f
}
