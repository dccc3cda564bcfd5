// src/parsers/factory.go
package parsers

import (
	"fmt"

	"github.com/username/neurobalance/backend/src/parsers/csvfile"
	"github.com/username/neurobalance/backend/src/parsers/xlsx"
)

func GetParser(source string) (Parser, error) {
	switch source {
	case "xlsx":
		return xlsx.NewParser(), nil
	case "csv":
		return csvfile.NewParser(), nil
	default:
		return nil, fmt.Errorf("no parser available for source: %s", source)
	}
}
