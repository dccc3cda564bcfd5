// src/parsers/csvfile/parser.go
package csvfile

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/username/neurobalance/backend/src/models"
)

// CSVParser reads a single-period CSV payment export. The period label is not
// part of the file; the import service fills it in from the request. Both
// comma and semicolon delimited exports occur in the wild, so the delimiter
// is sniffed from the first line.
type CSVParser struct{}

func NewParser() *CSVParser {
	return &CSVParser{}
}

func (p *CSVParser) Parse(file io.Reader) ([]models.PeriodSheet, error) {
	buffered := bufio.NewReader(file)
	firstLine, err := buffered.Peek(1024)
	if err != nil && err != io.EOF && err != bufio.ErrBufferFull {
		return nil, fmt.Errorf("failed to read CSV input: %w", err)
	}

	reader := csv.NewReader(buffered)
	reader.FieldsPerRecord = -1
	if line := string(firstLine); strings.Count(line, ";") > strings.Count(line, ",") {
		reader.Comma = ';'
	}

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read all CSV records: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("CSV file contains no rows")
	}

	sheet := models.PeriodSheet{Rows: make([]models.RawPaymentRow, 0, len(records))}
	for _, record := range records {
		sheet.Rows = append(sheet.Rows, models.RawPaymentRow(record))
	}
	return []models.PeriodSheet{sheet}, nil
}
