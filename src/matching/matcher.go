// src/matching/matcher.go
package matching

import (
	"strings"
	"unicode"

	"github.com/username/neurobalance/backend/src/models"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// foldAccents strips combining marks so "João" and "Joao" compare equal.
// Spreadsheet exports are inconsistent about accents in client names.
var foldAccents = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// NormalizeName lowercases, trims and accent-folds a client name for
// comparison.
func NormalizeName(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	if folded, _, err := transform.String(foldAccents, s); err == nil {
		return folded
	}
	return s
}

// NormalizeFiscalID strips everything but digits from a NIF. "PT 123 456 789"
// and "123456789" normalize to the same key.
func NormalizeFiscalID(fiscalID string) string {
	var b strings.Builder
	for _, r := range fiscalID {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// FindClient resolves a (name, fiscalID) pair from a payment row to at most
// one registry entry. Precedence:
//
//  1. exact fiscal-id match (digits only) - a correct NIF beats any name
//  2. exact normalized name match
//  3. containment either way ("João Pedro" matches registry "João Pedro Silva")
//
// Within each step the first registry-order entry wins, which makes the
// result deterministic but order-dependent when several names overlap.
// Returns nil when nothing matches or both inputs are empty.
func FindClient(name, fiscalID string, registry []models.ClientIdentity) *models.ClientIdentity {
	wantNIF := NormalizeFiscalID(fiscalID)
	wantName := NormalizeName(name)

	if wantNIF == "" && wantName == "" {
		return nil
	}

	if wantNIF != "" {
		for i := range registry {
			if nif := NormalizeFiscalID(registry[i].FiscalID); nif != "" && nif == wantNIF {
				return &registry[i]
			}
		}
	}

	if wantName == "" {
		return nil
	}

	for i := range registry {
		if NormalizeName(registry[i].Name) == wantName {
			return &registry[i]
		}
	}

	for i := range registry {
		regName := NormalizeName(registry[i].Name)
		if regName == "" {
			continue
		}
		if strings.Contains(regName, wantName) || strings.Contains(wantName, regName) {
			return &registry[i]
		}
	}

	return nil
}
