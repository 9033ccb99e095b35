// Package datasource fetches raw annual financial statements and reshapes
// them into a single year-indexed PeriodTable.
package datasource

import (
	"context"
	"errors"

	"github.com/seenimoa/finratios/pkg/models"
)

// StatementSource retrieves one raw statement for a ticker.
type StatementSource interface {
	// Name returns the human-readable name of this data source.
	Name() string

	// GetStatement returns the annual statement of the given kind.
	GetStatement(ctx context.Context, ticker string, kind models.StatementKind) (*models.Statement, error)
}

// --- Sentinel errors ---

// ErrTickerNotFound is returned when a ticker cannot be resolved.
var ErrTickerNotFound = errors.New("ticker not found")

// ErrNoData is returned when the source answers but reports no line items.
var ErrNoData = errors.New("no statement data")
