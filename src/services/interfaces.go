package services

import (
	"errors"
	"io"

	"github.com/google/uuid"
	"github.com/username/neurobalance/backend/src/models"
	"github.com/username/neurobalance/backend/src/processors"
)

var (
	// ErrParsingFailed wraps any failure to read the uploaded export.
	ErrParsingFailed = errors.New("parsing failed")
	// ErrRegistryUnavailable means the client registry could not be read.
	// This is the one error that aborts a whole import pass; the caller
	// decides whether to retry.
	ErrRegistryUnavailable = errors.New("client registry unavailable")
	// ErrPersistenceFailed wraps database failures while storing results.
	ErrPersistenceFailed = errors.New("persisting reconciled payments failed")
)

// PeriodResult is the outcome of importing one reporting period.
type PeriodResult struct {
	Period string                       `json:"period"`
	Stats  processors.ExtractionStats   `json:"stats"`
	Report *models.ReconciliationReport `json:"report"`
}

// ImportResult holds everything one import pass produced, including the
// counts an operator needs to judge import quality.
type ImportResult struct {
	BatchID        uuid.UUID      `json:"batch_id"`
	Periods        []PeriodResult `json:"periods"`
	RowsSeen       int            `json:"rows_seen"`
	RowsAccepted   int            `json:"rows_accepted"`
	RowsSkipped    int            `json:"rows_skipped"`
	CoercedCells   int            `json:"coerced_cells"`
	MatchedCount   int            `json:"matched_count"`
	UnmatchedCount int            `json:"unmatched_count"`
}

// ImportService is the core import-and-reconcile pipeline.
type ImportService interface {
	ProcessImport(fileReader io.Reader, source, defaultPeriod, filename string) (*ImportResult, error)
	GetReconciliationReport(period string) (*models.ReconciliationReport, error)
	GetUnmatchedPayments(period string) ([]models.ReconciledPayment, error)
	ListImportBatches(limit int) ([]models.ImportBatch, error)
	DeletePaymentsForPeriod(period string) (int64, error)
}

// ClientRegistry loads the full client snapshot an import pass matches
// against. Loaded once per pass; a registry edit mid-import is not observed.
type ClientRegistry interface {
	LoadClients() ([]models.ClientIdentity, error)
}
