// src/services/import_service.go
package services

import (
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
	"github.com/shopspring/decimal"
	"github.com/username/neurobalance/backend/src/database"
	"github.com/username/neurobalance/backend/src/logger"
	"github.com/username/neurobalance/backend/src/matching"
	"github.com/username/neurobalance/backend/src/models"
	"github.com/username/neurobalance/backend/src/parsers"
	"github.com/username/neurobalance/backend/src/processors"
)

const (
	ckReconciliationReport = "report_period_%s"

	DefaultCacheExpiration = 15 * time.Minute
	CacheCleanupInterval   = 30 * time.Minute
)

type importServiceImpl struct {
	registry    ClientRegistry
	reportCache *cache.Cache
}

func NewImportService(registry ClientRegistry, reportCache *cache.Cache) ImportService {
	return &importServiceImpl{
		registry:    registry,
		reportCache: reportCache,
	}
}

// ProcessImport runs the whole pipeline for one uploaded export: parse,
// extract, match against a registry snapshot, persist, report. Only the
// registry read is fatal; malformed rows and unmatched clients degrade into
// stats and the unmatched bucket.
func (s *importServiceImpl) ProcessImport(fileReader io.Reader, source, defaultPeriod, filename string) (*ImportResult, error) {
	overallStartTime := time.Now()
	logger.L.Info("ProcessImport START", "source", source, "filename", filename)

	parser, err := parsers.GetParser(source)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParsingFailed, err)
	}

	sheets, err := parser.Parse(fileReader)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParsingFailed, err)
	}

	// One snapshot for the whole pass. A client edited mid-import is matched
	// as it was at load time.
	clients, err := s.registry.LoadClients()
	if err != nil {
		return nil, err
	}

	result := &ImportResult{BatchID: uuid.New()}

	var imports []periodImport

	for _, sheet := range sheets {
		period := sheet.Period
		if strings.TrimSpace(period) == "" {
			period = defaultPeriod
		}

		normalized, stats := processors.ExtractPayments(sheet.Rows, period)

		reconciled := make([]models.ReconciledPayment, 0, len(normalized))
		for _, p := range normalized {
			rp := models.ReconciledPayment{NormalizedPayment: p}
			if client := matching.FindClient(p.ClientNameRaw, p.FiscalIDRaw, clients); client != nil {
				id := client.ID
				rp.MatchedClientID = &id
				result.MatchedCount++
			} else {
				result.UnmatchedCount++
			}
			reconciled = append(reconciled, rp)
		}

		result.RowsSeen += stats.RowsSeen
		result.RowsAccepted += stats.RowsAccepted
		result.RowsSkipped += stats.RowsSkipped
		result.CoercedCells += stats.CoercedCells
		imports = append(imports, periodImport{period: period, stats: stats, payments: reconciled})
	}

	// --- Database Insertion ---
	dbTx, err := database.DB.Begin()
	if err != nil {
		return nil, fmt.Errorf("%w: error beginning database transaction: %v", ErrPersistenceFailed, err)
	}
	defer dbTx.Rollback()

	_, err = dbTx.Exec(
		`INSERT INTO import_batches (id, source, period, filename, rows_seen, rows_accepted, rows_skipped, coerced_cells, matched_count, unmatched_count) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		result.BatchID.String(), source, joinPeriods(imports), filename,
		result.RowsSeen, result.RowsAccepted, result.RowsSkipped,
		result.CoercedCells, result.MatchedCount, result.UnmatchedCount,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: error inserting import batch: %v", ErrPersistenceFailed, err)
	}

	stmt, err := dbTx.Prepare(`INSERT INTO reconciled_payments (batch_id, period, row_index, date, client_name_raw, fiscal_id_raw, category, description, invoice_ref, installment_label, status, method, base_amount, tax_amount, withholding_amount, total_amount, matched_client_id, hash_id) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return nil, fmt.Errorf("%w: error preparing insert statement: %v", ErrPersistenceFailed, err)
	}
	defer stmt.Close()

	for _, imp := range imports {
		for i, rp := range imp.payments {
			var matchedID interface{}
			if rp.MatchedClientID != nil {
				matchedID = *rp.MatchedClientID
			}
			hashID := generatePaymentHash(rp.NormalizedPayment)
			_, err := stmt.Exec(
				result.BatchID.String(), imp.period, i,
				rp.Date, rp.ClientNameRaw, rp.FiscalIDRaw, rp.Category, rp.Description,
				rp.InvoiceRef, rp.InstallmentLabel, rp.Status, rp.Method,
				rp.BaseAmount.String(), rp.TaxAmount.String(),
				rp.WithholdingAmount.String(), rp.TotalAmount.String(),
				matchedID, hashID,
			)
			if err != nil {
				if strings.Contains(strings.ToLower(err.Error()), "unique constraint failed") {
					logger.L.Debug("Skipping duplicate payment on import", "period", imp.period, "hash_id", hashID)
					continue
				}
				return nil, fmt.Errorf("%w: error inserting payment (period %s, row %d): %v", ErrPersistenceFailed, imp.period, i, err)
			}
		}
	}

	if err := dbTx.Commit(); err != nil {
		return nil, fmt.Errorf("%w: error committing import: %v", ErrPersistenceFailed, err)
	}

	// --- Invalidate Caches ---
	for _, imp := range imports {
		s.invalidatePeriodCache(imp.period)
	}

	for _, imp := range imports {
		report, err := s.GetReconciliationReport(imp.period)
		if err != nil {
			return nil, err
		}
		result.Periods = append(result.Periods, PeriodResult{
			Period: imp.period,
			Stats:  imp.stats,
			Report: report,
		})
	}

	logger.L.Info("ProcessImport END",
		"batchID", result.BatchID,
		"rowsSeen", result.RowsSeen,
		"rowsAccepted", result.RowsAccepted,
		"matched", result.MatchedCount,
		"unmatched", result.UnmatchedCount,
		"duration", time.Since(overallStartTime))
	return result, nil
}

// GetReconciliationReport returns the grouped report for one period,
// recomputing from the database on cache miss.
func (s *importServiceImpl) GetReconciliationReport(period string) (*models.ReconciliationReport, error) {
	cacheKey := fmt.Sprintf(ckReconciliationReport, period)
	if cached, found := s.reportCache.Get(cacheKey); found {
		logger.L.Debug("Cache hit for reconciliation report", "period", period)
		return cached.(*models.ReconciliationReport), nil
	}
	logger.L.Info("Cache miss for reconciliation report, recomputing from DB", "period", period)

	payments, err := fetchPaymentsForPeriod(period)
	if err != nil {
		return nil, err
	}

	report := processors.BuildAggregate(payments)
	report.Period = period

	// Matched groups carry the registry name, not whatever spelling the
	// spreadsheet used.
	clients, err := s.registry.LoadClients()
	if err != nil {
		return nil, err
	}
	nameByID := make(map[int64]string, len(clients))
	for _, c := range clients {
		nameByID[c.ID] = c.Name
	}
	for _, group := range report.Groups {
		if group.ClientID != nil {
			if name, ok := nameByID[*group.ClientID]; ok {
				group.ClientName = name
			}
		}
	}

	s.reportCache.Set(cacheKey, report, cache.DefaultExpiration)
	return report, nil
}

func (s *importServiceImpl) GetUnmatchedPayments(period string) ([]models.ReconciledPayment, error) {
	payments, err := fetchPaymentsForPeriod(period)
	if err != nil {
		return nil, err
	}
	unmatched := []models.ReconciledPayment{}
	for _, p := range payments {
		if p.MatchedClientID == nil {
			unmatched = append(unmatched, p)
		}
	}
	return unmatched, nil
}

func (s *importServiceImpl) ListImportBatches(limit int) ([]models.ImportBatch, error) {
	rows, err := database.DB.Query(
		`SELECT id, source, period, COALESCE(filename, ''), rows_seen, rows_accepted, rows_skipped, coerced_cells, matched_count, unmatched_count, created_at FROM import_batches ORDER BY created_at DESC, id DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("error querying import batches: %w", err)
	}
	defer rows.Close()

	batches := []models.ImportBatch{}
	for rows.Next() {
		var b models.ImportBatch
		var id, createdAt string
		if err := rows.Scan(&id, &b.Source, &b.Period, &b.Filename,
			&b.RowsSeen, &b.RowsAccepted, &b.RowsSkipped, &b.CoercedCells,
			&b.MatchedCount, &b.UnmatchedCount, &createdAt); err != nil {
			return nil, fmt.Errorf("error scanning import batch: %w", err)
		}
		parsed, err := uuid.Parse(id)
		if err != nil {
			logger.L.Warn("Skipping import batch with malformed id", "id", id, "error", err)
			continue
		}
		b.ID = parsed
		b.CreatedAt = parseStoredTimestamp(createdAt)
		batches = append(batches, b)
	}
	return batches, rows.Err()
}

func (s *importServiceImpl) DeletePaymentsForPeriod(period string) (int64, error) {
	res, err := database.DB.Exec(`DELETE FROM reconciled_payments WHERE period = ?`, period)
	if err != nil {
		return 0, fmt.Errorf("error deleting payments for period %s: %w", period, err)
	}
	deleted, _ := res.RowsAffected()
	s.invalidatePeriodCache(period)
	logger.L.Info("Deleted payments for period", "period", period, "deleted", deleted)
	return deleted, nil
}

func (s *importServiceImpl) invalidatePeriodCache(period string) {
	s.reportCache.Delete(fmt.Sprintf(ckReconciliationReport, period))
}

func fetchPaymentsForPeriod(period string) ([]models.ReconciledPayment, error) {
	rows, err := database.DB.Query(
		`SELECT date, client_name_raw, fiscal_id_raw, category, description, invoice_ref, installment_label, status, method, base_amount, tax_amount, withholding_amount, total_amount, matched_client_id FROM reconciled_payments WHERE period = ? ORDER BY id`,
		period,
	)
	if err != nil {
		return nil, fmt.Errorf("error querying payments for period %s: %w", period, err)
	}
	defer rows.Close()

	var payments []models.ReconciledPayment
	for rows.Next() {
		var p models.ReconciledPayment
		var base, tax, withholding, total string
		var matchedID sql.NullInt64
		if err := rows.Scan(&p.Date, &p.ClientNameRaw, &p.FiscalIDRaw, &p.Category,
			&p.Description, &p.InvoiceRef, &p.InstallmentLabel, &p.Status, &p.Method,
			&base, &tax, &withholding, &total, &matchedID); err != nil {
			return nil, fmt.Errorf("error scanning payment: %w", err)
		}
		p.Period = period
		p.BaseAmount = decimalFromStored(base)
		p.TaxAmount = decimalFromStored(tax)
		p.WithholdingAmount = decimalFromStored(withholding)
		p.TotalAmount = decimalFromStored(total)
		if matchedID.Valid {
			id := matchedID.Int64
			p.MatchedClientID = &id
		}
		payments = append(payments, p)
	}
	return payments, rows.Err()
}

// parseStoredTimestamp reads the formats sqlite's CURRENT_TIMESTAMP and the
// driver's time conversion produce.
func parseStoredTimestamp(s string) time.Time {
	for _, layout := range []string{"2006-01-02 15:04:05", time.RFC3339Nano, time.RFC3339} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	logger.L.Warn("Malformed stored timestamp", "value", s)
	return time.Time{}
}

func decimalFromStored(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		logger.L.Warn("Malformed stored amount, defaulting to zero", "value", s, "error", err)
		return decimal.Zero
	}
	return d
}

// generatePaymentHash identifies one payment row for duplicate detection
// across re-imports of the same period.
func generatePaymentHash(p models.NormalizedPayment) string {
	input := strings.Join([]string{
		p.Period, p.Date, p.ClientNameRaw, p.FiscalIDRaw,
		p.InvoiceRef, p.InstallmentLabel, p.TotalAmount.String(),
	}, "|")
	sum := sha256.Sum256([]byte(input))
	return hex.EncodeToString(sum[:])
}

// periodImport is the in-memory result of extracting and matching one sheet,
// staged before persistence.
type periodImport struct {
	period   string
	stats    processors.ExtractionStats
	payments []models.ReconciledPayment
}

func joinPeriods(imports []periodImport) string {
	names := make([]string, 0, len(imports))
	for _, imp := range imports {
		names = append(names, imp.period)
	}
	return strings.Join(names, ", ")
}
