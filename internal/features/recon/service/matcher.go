package service

import (
	"github.com/impimediavillage/tree-sub001/internal/features/recon/domain"
	shipping "github.com/impimediavillage/tree-sub001/internal/features/shipping/domain"
)

// MatchInvoice reconciles courier invoice lines against the index by exact
// tracking-number equality. A line matches the first index item with the
// same tracking number that is still pending; items already processing,
// paid or disputed are never matched. Unmatched lines are simply absent
// from the result — the caller derives the unmatched count as
// len(lines) - len(matches).
func MatchInvoice(lines []domain.CourierInvoiceLine, index []domain.ReconciliationItem) map[string]domain.Match {
	matches := make(map[string]domain.Match)

	for _, line := range lines {
		if line.TrackingNumber == "" {
			continue
		}
		if _, dup := matches[line.TrackingNumber]; dup {
			continue
		}
		for _, item := range index {
			if item.TrackingNumber != line.TrackingNumber {
				continue
			}
			if item.ReconciliationStatus != shipping.ReconPending {
				continue
			}
			matches[line.TrackingNumber] = domain.Match{
				Item:           item,
				Line:           line,
				AmountMismatch: line.Amount != item.ShippingCost,
			}
			break
		}
	}

	return matches
}
