package models

// ClientIdentity is one entry of the clinic's client registry as seen by the
// reconciliation pass. It is a read-only snapshot: client records are created
// and edited elsewhere, the import only matches against them.
type ClientIdentity struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	FiscalID string `json:"fiscal_id"` // NIF, may be empty
	Status   string `json:"status"`    // e.g. "ativo", "inativo"; payments may reference any
}
