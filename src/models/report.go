package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// UnmatchedKey is the sentinel group key for payments no client could be
// resolved for.
const UnmatchedKey = "unmatched"

// ClientAggregate is one group of the reconciliation report: every payment
// resolved to the same client, in source row order, with the verbatim totals
// summed.
type ClientAggregate struct {
	Key         string              `json:"key"` // client id as string, or UnmatchedKey
	ClientID    *int64              `json:"client_id"`
	ClientName  string              `json:"client_name"` // registry name, or "Não identificado" for the unmatched bucket
	Payments    []ReconciledPayment `json:"payments"`
	TotalAmount decimal.Decimal     `json:"total_amount"`
}

// ReconciliationReport is the grouped output of one aggregation run.
type ReconciliationReport struct {
	Period          string             `json:"period"`
	Groups          []*ClientAggregate `json:"groups"` // ordered by first appearance
	TotalAmount     decimal.Decimal    `json:"total_amount"`
	MatchedCount    int                `json:"matched_count"`
	UnmatchedCount  int                `json:"unmatched_count"`
	ImbalancedCount int                `json:"imbalanced_count"` // rows where total != base+tax-withholding
}

// ImportBatch records one import pass with the counts an operator needs to
// judge import quality.
type ImportBatch struct {
	ID             uuid.UUID `json:"id"`
	Source         string    `json:"source"`
	Period         string    `json:"period"`
	Filename       string    `json:"filename"`
	RowsSeen       int       `json:"rows_seen"`
	RowsAccepted   int       `json:"rows_accepted"`
	RowsSkipped    int       `json:"rows_skipped"`
	CoercedCells   int       `json:"coerced_cells"`
	MatchedCount   int       `json:"matched_count"`
	UnmatchedCount int       `json:"unmatched_count"`
	CreatedAt      time.Time `json:"created_at"`
}
