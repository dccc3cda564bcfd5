package xlsx

import (
	"bytes"
	"testing"

	"github.com/username/neurobalance/backend/src/logger"
	"github.com/xuri/excelize/v2"
)

func buildWorkbook(t *testing.T) *bytes.Buffer {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", "Março"); err != nil {
		t.Fatalf("SetSheetName failed: %v", err)
	}
	f.SetCellValue("Março", "B1", 45200)
	f.SetCellValue("Março", "C1", "Maria Silva")
	f.SetCellValue("Março", "D1", "123456789")
	f.SetCellValue("Março", "L1", 61.5)

	if _, err := f.NewSheet("Abril"); err != nil {
		t.Fatalf("NewSheet failed: %v", err)
	}
	f.SetCellValue("Abril", "B1", 45230)
	f.SetCellValue("Abril", "C1", "Ana Costa")

	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("WriteToBuffer failed: %v", err)
	}
	return buf
}

func TestParseWorkbookSheetsArePeriods(t *testing.T) {
	logger.InitLogger("error")

	sheets, err := NewParser().Parse(buildWorkbook(t))
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if len(sheets) != 2 {
		t.Fatalf("len(sheets) = %d, want 2", len(sheets))
	}
	if sheets[0].Period != "Março" || sheets[1].Period != "Abril" {
		t.Errorf("periods = %q, %q; want Março, Abril", sheets[0].Period, sheets[1].Period)
	}

	row := sheets[0].Rows[0]
	if row[1] != "45200" {
		t.Errorf("date cell = %q, want raw serial %q", row[1], "45200")
	}
	if row[2] != "Maria Silva" {
		t.Errorf("name cell = %q, want %q", row[2], "Maria Silva")
	}
}

func TestParseRejectsNonWorkbook(t *testing.T) {
	logger.InitLogger("error")

	if _, err := NewParser().Parse(bytes.NewReader([]byte("not an xlsx"))); err == nil {
		t.Fatal("Parse of a non-xlsx payload must return an error")
	}
}
