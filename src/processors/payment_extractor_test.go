package processors

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/username/neurobalance/backend/src/models"
)

// row builds a RawPaymentRow in the export's column layout (column 0 is the
// row label the export tool emits).
func row(cells ...string) models.RawPaymentRow {
	return models.RawPaymentRow(append([]string{""}, cells...))
}

func TestExtractPaymentsInclusion(t *testing.T) {
	tests := []struct {
		name     string
		row      models.RawPaymentRow
		included bool
	}{
		{
			name:     "plausible serial and real name is included",
			row:      row("45000", "Maria Silva", "123456789", "Sessão", "", "", "", "50", "11.5", "0", "61.5", "Pago", "MBWay"),
			included: true,
		},
		{
			name:     "non-numeric date cell is a non-data row",
			row:      row("abc", "Maria Silva"),
			included: false,
		},
		{
			name:     "serial below the plausible window",
			row:      row("100", "Maria Silva"),
			included: false,
		},
		{
			name:     "serial above the plausible window",
			row:      row("60000", "Maria Silva"),
			included: false,
		},
		{
			name:     "empty name rejects the row",
			row:      row("45000", "   "),
			included: false,
		},
		{
			name:     "Total summary row is excluded even with a valid date",
			row:      row("45000", "Total"),
			included: false,
		},
		{
			name:     "embedded subtotal row is excluded",
			row:      row("45000", "Subtotal Março"),
			included: false,
		},
		{
			name:     "repeated Cliente header row is excluded",
			row:      row("45000", "Cliente"),
			included: false,
		},
		{
			name:     "a client actually named Clientela is kept",
			row:      row("45000", "Clientela Lda"),
			included: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payments, stats := ExtractPayments([]models.RawPaymentRow{tt.row}, "Março")
			if got := len(payments) == 1; got != tt.included {
				t.Fatalf("included = %v, want %v (stats %+v)", got, tt.included, stats)
			}
			if tt.included && stats.RowsAccepted != 1 {
				t.Errorf("RowsAccepted = %d, want 1", stats.RowsAccepted)
			}
			if !tt.included && stats.RowsSkipped != 1 {
				t.Errorf("RowsSkipped = %d, want 1", stats.RowsSkipped)
			}
		})
	}
}

func TestExtractPaymentsNormalization(t *testing.T) {
	rows := []models.RawPaymentRow{
		row("45200", "Maria Silva", "123456789", "Sessão", "Neurofeedback", "F001", "1/1", "50", "11.5", "0", "61.5", "Pago", "MBWay"),
	}

	payments, stats := ExtractPayments(rows, "Março")
	if len(payments) != 1 {
		t.Fatalf("len(payments) = %d, want 1", len(payments))
	}
	p := payments[0]

	if p.Period != "Março" {
		t.Errorf("Period = %q, want %q", p.Period, "Março")
	}
	if p.Date != "01/10/2023" {
		t.Errorf("Date = %q, want %q (serial 45200)", p.Date, "01/10/2023")
	}
	if p.ClientNameRaw != "Maria Silva" || p.FiscalIDRaw != "123456789" {
		t.Errorf("identity cells = (%q, %q)", p.ClientNameRaw, p.FiscalIDRaw)
	}
	if p.Category != "Sessão" || p.Description != "Neurofeedback" || p.InvoiceRef != "F001" ||
		p.InstallmentLabel != "1/1" || p.Status != "Pago" || p.Method != "MBWay" {
		t.Errorf("text cells mis-mapped: %+v", p)
	}
	if !p.TotalAmount.Equal(decimal.RequireFromString("61.5")) {
		t.Errorf("TotalAmount = %s, want 61.5 (verbatim from source)", p.TotalAmount)
	}
	if !p.BaseAmount.Equal(decimal.RequireFromString("50")) || !p.TaxAmount.Equal(decimal.RequireFromString("11.5")) {
		t.Errorf("BaseAmount/TaxAmount = %s/%s", p.BaseAmount, p.TaxAmount)
	}
	if stats.CoercedCells != 0 {
		t.Errorf("CoercedCells = %d, want 0", stats.CoercedCells)
	}
}

func TestExtractPaymentsDefaultsAndCoercion(t *testing.T) {
	rows := []models.RawPaymentRow{
		// Amounts missing or garbage; short row with no trailing columns.
		row("45000", "Ana Costa", "", "", "", "", "", "n/a", "", "x"),
	}

	payments, stats := ExtractPayments(rows, "Abril")
	if len(payments) != 1 {
		t.Fatalf("len(payments) = %d, want 1", len(payments))
	}
	p := payments[0]
	if !p.BaseAmount.IsZero() || !p.TaxAmount.IsZero() || !p.WithholdingAmount.IsZero() || !p.TotalAmount.IsZero() {
		t.Errorf("non-numeric amounts must default to zero, got %+v", p)
	}
	if p.Status != "" || p.Method != "" {
		t.Errorf("missing columns must default to empty string, got status=%q method=%q", p.Status, p.Method)
	}
	// "n/a" and "x" are coerced; blank cells are not counted.
	if stats.CoercedCells != 2 {
		t.Errorf("CoercedCells = %d, want 2", stats.CoercedCells)
	}
}

func TestExtractPaymentsCommaDecimalSeparator(t *testing.T) {
	rows := []models.RawPaymentRow{
		row("45000", "Maria Silva", "", "", "", "", "", "50", "11,5", "0", "61,5", "", ""),
	}
	payments, _ := ExtractPayments(rows, "Maio")
	if len(payments) != 1 {
		t.Fatalf("len(payments) = %d, want 1", len(payments))
	}
	if !payments[0].TotalAmount.Equal(decimal.RequireFromString("61.5")) {
		t.Errorf("TotalAmount = %s, want 61.5", payments[0].TotalAmount)
	}
}

func TestExtractPaymentsPreservesRowOrder(t *testing.T) {
	rows := []models.RawPaymentRow{
		row("45001", "Cliente A"),
		row("45000", "Total"), // skipped
		row("45002", "Cliente B"),
		row("abc"), // skipped
		row("45003", "Cliente C"),
	}

	payments, stats := ExtractPayments(rows, "Junho")
	want := []string{"Cliente A", "Cliente B", "Cliente C"}
	if len(payments) != len(want) {
		t.Fatalf("len(payments) = %d, want %d", len(payments), len(want))
	}
	for i, name := range want {
		if payments[i].ClientNameRaw != name {
			t.Errorf("payments[%d] = %q, want %q (source order must be preserved)", i, payments[i].ClientNameRaw, name)
		}
	}
	if stats.RowsSeen != 5 || stats.RowsAccepted != 3 || stats.RowsSkipped != 2 {
		t.Errorf("stats = %+v, want seen=5 accepted=3 skipped=2", stats)
	}
}
