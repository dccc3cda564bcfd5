// src/processors/payment_extractor.go
package processors

import (
	"strings"

	"github.com/shopspring/decimal"
	"github.com/username/neurobalance/backend/src/logger"
	"github.com/username/neurobalance/backend/src/models"
	"github.com/username/neurobalance/backend/src/utils"
)

// Plausible date-serial window for payment rows: 2000-01-01 .. 2040-01-01.
// Section headers, totals and blank separator rows never carry a serial in
// this range, which is what makes the inclusion test work.
const (
	minPlausibleSerial = 36526
	maxPlausibleSerial = 51179
)

// ExtractionStats tells an operator how much of a sheet actually made it
// through extraction.
type ExtractionStats struct {
	RowsSeen     int `json:"rows_seen"`
	RowsAccepted int `json:"rows_accepted"`
	RowsSkipped  int `json:"rows_skipped"`
	// CoercedCells counts non-empty amount cells that were not numeric and
	// defaulted to zero.
	CoercedCells int `json:"coerced_cells"`
}

// ExtractPayments converts the raw rows of one reporting period into
// normalized payments. Rows that fail the inclusion test (no plausible date
// serial, empty client name, embedded "Total"/"Cliente" summary and header
// rows) are skipped, never fatal. Output order follows input order.
func ExtractPayments(rows []models.RawPaymentRow, period string) ([]models.NormalizedPayment, ExtractionStats) {
	payments := make([]models.NormalizedPayment, 0, len(rows))
	stats := ExtractionStats{RowsSeen: len(rows)}

	for _, row := range rows {
		serial, ok := utils.ParseCellFloat(cell(row, models.ColDate))
		if !ok || serial < minPlausibleSerial || serial > maxPlausibleSerial {
			stats.RowsSkipped++
			continue
		}

		name := strings.TrimSpace(cell(row, models.ColClientName))
		if name == "" || isReservedLabel(name) {
			stats.RowsSkipped++
			continue
		}

		p := models.NormalizedPayment{
			Period:           period,
			Date:             utils.FormatExcelSerial(serial),
			ClientNameRaw:    name,
			FiscalIDRaw:      strings.TrimSpace(cell(row, models.ColFiscalID)),
			Category:         strings.TrimSpace(cell(row, models.ColCategory)),
			Description:      strings.TrimSpace(cell(row, models.ColDescription)),
			InvoiceRef:       strings.TrimSpace(cell(row, models.ColInvoiceRef)),
			InstallmentLabel: strings.TrimSpace(cell(row, models.ColInstallment)),
			Status:           strings.TrimSpace(cell(row, models.ColStatus)),
			Method:           strings.TrimSpace(cell(row, models.ColMethod)),
		}

		p.BaseAmount = amountCell(row, models.ColBaseAmount, &stats)
		p.TaxAmount = amountCell(row, models.ColTaxAmount, &stats)
		p.WithholdingAmount = amountCell(row, models.ColWithholdingAmount, &stats)
		// Verbatim from the source; see models.NormalizedPayment.
		p.TotalAmount = amountCell(row, models.ColTotalAmount, &stats)

		payments = append(payments, p)
		stats.RowsAccepted++
	}

	if logger.L != nil && stats.CoercedCells > 0 {
		logger.L.Debug("Extraction coerced non-numeric amount cells to zero",
			"period", period, "coercedCells", stats.CoercedCells)
	}

	return payments, stats
}

// isReservedLabel flags the summary and repeated-header rows the export tool
// embeds mid-sheet: any "Total"/"Subtotal Março"-style line and the literal
// "Cliente" column header.
func isReservedLabel(name string) bool {
	lower := strings.ToLower(name)
	return strings.Contains(lower, "total") || lower == "cliente"
}

// cell reads a column by position, tolerating short rows.
func cell(row models.RawPaymentRow, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}

func amountCell(row models.RawPaymentRow, idx int, stats *ExtractionStats) decimal.Decimal {
	raw := cell(row, idx)
	d, ok := utils.ParseCellDecimal(raw)
	if !ok && strings.TrimSpace(raw) != "" {
		stats.CoercedCells++
	}
	return d
}
