// src/processors/aggregator.go
package processors

import (
	"strconv"

	"github.com/shopspring/decimal"
	"github.com/username/neurobalance/backend/src/models"
)

// BuildAggregate groups reconciled payments by resolved client and sums the
// verbatim totals. Unmatched payments collect under models.UnmatchedKey
// instead of being dropped. Pure reduction: the input is not mutated and the
// same input always yields the same report, groups ordered by first
// appearance.
func BuildAggregate(payments []models.ReconciledPayment) *models.ReconciliationReport {
	report := &models.ReconciliationReport{
		Groups:      []*models.ClientAggregate{},
		TotalAmount: decimal.Zero,
	}
	if len(payments) > 0 {
		report.Period = payments[0].Period
	}

	index := make(map[string]*models.ClientAggregate)

	for _, p := range payments {
		key := models.UnmatchedKey
		if p.MatchedClientID != nil {
			key = strconv.FormatInt(*p.MatchedClientID, 10)
		}

		group, ok := index[key]
		if !ok {
			group = &models.ClientAggregate{
				Key:         key,
				ClientID:    p.MatchedClientID,
				ClientName:  p.ClientNameRaw,
				TotalAmount: decimal.Zero,
			}
			if key == models.UnmatchedKey {
				group.ClientName = "Não identificado"
			}
			index[key] = group
			report.Groups = append(report.Groups, group)
		}

		group.Payments = append(group.Payments, p)
		group.TotalAmount = group.TotalAmount.Add(p.TotalAmount)
		report.TotalAmount = report.TotalAmount.Add(p.TotalAmount)

		if p.MatchedClientID != nil {
			report.MatchedCount++
		} else {
			report.UnmatchedCount++
		}
		// The export computes totals independently; flag rows that do not
		// balance but never "fix" them.
		if !p.TotalAmount.Equal(p.BaseAmount.Add(p.TaxAmount).Sub(p.WithholdingAmount)) {
			report.ImbalancedCount++
		}
	}

	return report
}
