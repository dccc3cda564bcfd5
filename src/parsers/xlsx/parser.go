// src/parsers/xlsx/parser.go
package xlsx

import (
	"fmt"
	"io"

	"github.com/username/neurobalance/backend/src/logger"
	"github.com/username/neurobalance/backend/src/models"
	"github.com/xuri/excelize/v2"
)

// XLSXParser reads the clinic's Excel payment export. Each worksheet holds
// one reporting period (the sheet name, e.g. "Março"), rows as positional
// cells in the fixed export layout.
type XLSXParser struct{}

func NewParser() *XLSXParser {
	return &XLSXParser{}
}

func (p *XLSXParser) Parse(file io.Reader) ([]models.PeriodSheet, error) {
	f, err := excelize.OpenReader(file)
	if err != nil {
		return nil, fmt.Errorf("failed to open xlsx workbook: %w", err)
	}
	defer f.Close()

	var sheets []models.PeriodSheet
	for _, name := range f.GetSheetList() {
		// Raw cell values so date serials arrive as numbers, not as whatever
		// display format the sheet happens to carry.
		rows, err := f.GetRows(name, excelize.Options{RawCellValue: true})
		if err != nil {
			return nil, fmt.Errorf("failed to read worksheet %q: %w", name, err)
		}
		if len(rows) == 0 {
			logger.L.Debug("Skipping empty worksheet", "sheet", name)
			continue
		}

		sheet := models.PeriodSheet{Period: name, Rows: make([]models.RawPaymentRow, 0, len(rows))}
		for _, row := range rows {
			sheet.Rows = append(sheet.Rows, models.RawPaymentRow(row))
		}
		sheets = append(sheets, sheet)
	}

	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook contains no non-empty worksheets")
	}
	return sheets, nil
}
