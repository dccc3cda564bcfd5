package utils

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// ParseCellFloat parses a spreadsheet cell as a number. Portuguese exports
// use a comma decimal separator, so "61,5" and "61.5" both parse. Returns
// false for blank or non-numeric cells.
func ParseCellFloat(cell string) (float64, bool) {
	s := strings.TrimSpace(cell)
	if s == "" {
		return 0, false
	}
	s = strings.ReplaceAll(s, ",", ".")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// ParseCellDecimal parses a monetary cell. Non-numeric cells coerce to zero;
// the second return reports whether the cell actually held a number so the
// caller can count coercions.
func ParseCellDecimal(cell string) (decimal.Decimal, bool) {
	s := strings.TrimSpace(cell)
	if s == "" {
		return decimal.Zero, false
	}
	s = strings.ReplaceAll(s, ",", ".")
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}
