package models

import "github.com/shopspring/decimal"

// RawPaymentRow is one line of a spreadsheet export, cell values as the parser
// found them (raw, unformatted). Positional meaning is resolved in one place,
// the extractor; nothing else indexes into these cells.
type RawPaymentRow []string

// Column layout of the clinic's payment export. Column 0 is a row label the
// export tool emits and carries no data.
const (
	ColDate = iota + 1
	ColClientName
	ColFiscalID
	ColCategory
	ColDescription
	ColInvoiceRef
	ColInstallment
	ColBaseAmount
	ColTaxAmount
	ColWithholdingAmount
	ColTotalAmount
	ColStatus
	ColMethod
)

// PeriodSheet groups the raw rows of one reporting period (one worksheet of
// an xlsx export, or one whole CSV file).
type PeriodSheet struct {
	Period string
	Rows   []RawPaymentRow
}

// NormalizedPayment is one payment row after extraction: typed, trimmed,
// defaulted, but not yet reconciled against the registry.
type NormalizedPayment struct {
	Period           string `json:"period"`
	Date             string `json:"date"` // dd/mm/yyyy, empty when the serial is unconvertible
	ClientNameRaw    string `json:"client_name_raw"`
	FiscalIDRaw      string `json:"fiscal_id_raw"`
	Category         string `json:"category"`
	Description      string `json:"description"`
	InvoiceRef       string `json:"invoice_ref"`
	InstallmentLabel string `json:"installment_label"`
	Status           string `json:"status"`
	Method           string `json:"method"`

	BaseAmount        decimal.Decimal `json:"base_amount"`
	TaxAmount         decimal.Decimal `json:"tax_amount"`
	WithholdingAmount decimal.Decimal `json:"withholding_amount"`
	// TotalAmount is taken verbatim from the source. The export computes it
	// independently and it does not always equal base+tax-withholding; we
	// report the imbalance but never recompute the total.
	TotalAmount decimal.Decimal `json:"total_amount"`
}

// ReconciledPayment is a normalized payment plus the outcome of identity
// matching. A nil MatchedClientID means the payment goes to the unmatched
// bucket; it is never dropped.
type ReconciledPayment struct {
	NormalizedPayment
	MatchedClientID *int64 `json:"matched_client_id"`
}
