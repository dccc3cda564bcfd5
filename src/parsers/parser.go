// src/parsers/parser.go
package parsers

import (
	"io"

	"github.com/username/neurobalance/backend/src/models"
)

// Parser reads one uploaded payment export into raw rows grouped by
// reporting period. Parsers do no interpretation beyond cell splitting;
// deciding which rows are real payments is the extractor's job.
type Parser interface {
	Parse(file io.Reader) ([]models.PeriodSheet, error)
}
