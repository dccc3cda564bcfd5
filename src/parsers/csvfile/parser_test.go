package csvfile

import (
	"strings"
	"testing"
)

func TestParseCommaDelimited(t *testing.T) {
	input := ",45200,Maria Silva,123456789,Sessão,Neurofeedback,F001,1/1,50,11.5,0,61.5,Pago,MBWay\n" +
		",45201,Ana Costa,,Sessão,,,,40,9.2,0,49.2,Pago,Dinheiro\n"

	sheets, err := NewParser().Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if len(sheets) != 1 {
		t.Fatalf("len(sheets) = %d, want 1", len(sheets))
	}
	if sheets[0].Period != "" {
		t.Errorf("CSV period must be empty (filled by the service), got %q", sheets[0].Period)
	}
	if len(sheets[0].Rows) != 2 {
		t.Fatalf("len(rows) = %d, want 2", len(sheets[0].Rows))
	}
	if sheets[0].Rows[0][2] != "Maria Silva" {
		t.Errorf("row 0 name cell = %q, want %q", sheets[0].Rows[0][2], "Maria Silva")
	}
}

func TestParseSemicolonDelimited(t *testing.T) {
	input := ";45200;Maria Silva;123456789;Sessão;;;;50;11,5;0;61,5;Pago;MBWay\n"

	sheets, err := NewParser().Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	row := sheets[0].Rows[0]
	if row[2] != "Maria Silva" {
		t.Errorf("name cell = %q, want %q (semicolon delimiter must be sniffed)", row[2], "Maria Silva")
	}
	if row[11] != "61,5" {
		t.Errorf("total cell = %q, want %q", row[11], "61,5")
	}
}

func TestParseRaggedRows(t *testing.T) {
	input := "Relatório de Pagamentos\n,45200,Maria Silva,123456789,Sessão,,,,50,11.5,0,61.5,Pago,MBWay\n"

	sheets, err := NewParser().Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Parse returned error for ragged rows: %v", err)
	}
	if len(sheets[0].Rows) != 2 {
		t.Fatalf("len(rows) = %d, want 2 (header row kept, extractor decides)", len(sheets[0].Rows))
	}
}

func TestParseEmptyFile(t *testing.T) {
	if _, err := NewParser().Parse(strings.NewReader("")); err == nil {
		t.Fatal("Parse of empty file must return an error")
	}
}
