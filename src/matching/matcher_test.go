package matching

import (
	"testing"

	"github.com/username/neurobalance/backend/src/models"
)

func testRegistry() []models.ClientIdentity {
	return []models.ClientIdentity{
		{ID: 1, Name: "Maria Silva", FiscalID: "123456789"},
		{ID: 2, Name: "João Pedro Silva", FiscalID: ""},
		{ID: 3, Name: "Ana Costa", FiscalID: "987654321"},
		{ID: 4, Name: "Rui", FiscalID: ""},
	}
}

func TestFindClient(t *testing.T) {
	registry := testRegistry()

	tests := []struct {
		name     string
		inName   string
		inNIF    string
		wantID   int64
		wantNone bool
	}{
		{
			name:   "exact name match",
			inName: "Maria Silva",
			wantID: 1,
		},
		{
			name:   "exact name match is case and whitespace insensitive",
			inName: "  maria silva  ",
			wantID: 1,
		},
		{
			name:   "fiscal id wins over a conflicting name",
			inName: "Ana Costa",
			inNIF:  "123456789",
			wantID: 1,
		},
		{
			name:   "fiscal id matches with formatting noise",
			inNIF:  "PT 123 456 789",
			wantID: 1,
		},
		{
			name:   "fiscal id empty after stripping falls back to name",
			inName: "Ana Costa",
			inNIF:  "n/a",
			wantID: 3,
		},
		{
			name:   "fuzzy: input contained in registry name",
			inName: "João Pedro",
			wantID: 2,
		},
		{
			name:   "fuzzy: registry name contained in input",
			inName: "Rui Manuel Santos",
			wantID: 4,
		},
		{
			name:   "accent folding matches unaccented input",
			inName: "Joao Pedro",
			wantID: 2,
		},
		{
			name:     "no inputs",
			wantNone: true,
		},
		{
			name:     "whitespace-only name treated as absent",
			inName:   "   ",
			wantNone: true,
		},
		{
			name:     "unknown name and nif",
			inName:   "Carlos Mendes",
			inNIF:    "000000001",
			wantNone: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FindClient(tt.inName, tt.inNIF, registry)
			if tt.wantNone {
				if got != nil {
					t.Fatalf("FindClient(%q, %q) = %v, want nil", tt.inName, tt.inNIF, got)
				}
				return
			}
			if got == nil {
				t.Fatalf("FindClient(%q, %q) = nil, want client %d", tt.inName, tt.inNIF, tt.wantID)
			}
			if got.ID != tt.wantID {
				t.Errorf("FindClient(%q, %q) = client %d, want client %d", tt.inName, tt.inNIF, got.ID, tt.wantID)
			}
		})
	}
}

func TestFindClientRegistryOrderTieBreak(t *testing.T) {
	// Two clients both contain "Silva"; the first registry-order fuzzy
	// candidate must win, deterministically.
	registry := []models.ClientIdentity{
		{ID: 10, Name: "Pedro Silva"},
		{ID: 11, Name: "Marta Silva"},
	}
	for i := 0; i < 5; i++ {
		got := FindClient("Silva", "", registry)
		if got == nil || got.ID != 10 {
			t.Fatalf("FindClient tie-break: got %v, want client 10", got)
		}
	}
}

func TestFindClientEveryRegistryEntryResolvesToItself(t *testing.T) {
	registry := testRegistry()
	for _, c := range registry {
		got := FindClient(c.Name, "", registry)
		if got == nil || got.ID != c.ID {
			t.Errorf("FindClient(%q) = %v, want client %d", c.Name, got, c.ID)
		}
	}
	for _, c := range registry {
		if c.FiscalID == "" {
			continue
		}
		got := FindClient("Nome Completamente Diferente", c.FiscalID, registry)
		if got == nil || got.ID != c.ID {
			t.Errorf("FindClient(anyName, %q) = %v, want client %d", c.FiscalID, got, c.ID)
		}
	}
}

func TestNormalizeFiscalID(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"123456789", "123456789"},
		{"PT 123 456 789", "123456789"},
		{"123-456-789", "123456789"},
		{"n/a", ""},
		{"", ""},
	}
	for _, tt := range tests {
		if got := NormalizeFiscalID(tt.in); got != tt.want {
			t.Errorf("NormalizeFiscalID(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNormalizeName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"  Maria Silva ", "maria silva"},
		{"João", "joao"},
		{"CONCEIÇÃO", "conceicao"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := NormalizeName(tt.in); got != tt.want {
			t.Errorf("NormalizeName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
