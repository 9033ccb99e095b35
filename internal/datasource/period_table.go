package datasource

import (
	"context"
	"fmt"
	"time"

	"github.com/seenimoa/finratios/pkg/models"
)

// FetchPeriodTable retrieves the income statement, balance sheet and cash
// flow statement back-to-back and merges them into one PeriodTable.
// Any retrieval error aborts the whole fetch.
func FetchPeriodTable(ctx context.Context, src StatementSource, ticker string) (*models.PeriodTable, error) {
	stmts := make([]*models.Statement, 0, 3)
	for _, kind := range models.AllStatements() {
		stmt, err := src.GetStatement(ctx, ticker, kind)
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, stmt)
	}
	return MergeStatements(stmts...)
}

// MergeStatements transposes each statement to period rows, prefixes its
// columns by statement type and concatenates them column-wise. Rows are keyed
// by bare fiscal year; when two period dates fall in the same year the later
// date wins.
func MergeStatements(stmts ...*models.Statement) (*models.PeriodTable, error) {
	table := models.NewPeriodTable()
	for _, stmt := range stmts {
		if stmt == nil {
			continue
		}
		prefix := stmt.Kind.Prefix()
		for _, label := range stmt.LineItems {
			column := prefix + label
			table.AddColumn(column)

			latest := make(map[int]time.Time)
			for _, v := range stmt.Values[label] {
				date, err := time.Parse(time.DateOnly, v.AsOfDate)
				if err != nil {
					return nil, fmt.Errorf("%s: bad period date %q: %w", column, v.AsOfDate, err)
				}
				year := date.Year()
				if prev, ok := latest[year]; ok && !date.After(prev) {
					continue
				}
				latest[year] = date
				table.Set(column, year, v.Value)
			}
		}
	}
	return table, nil
}
