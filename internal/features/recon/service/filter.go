package service

import (
	"strings"
	"time"

	"github.com/impimediavillage/tree-sub001/internal/features/recon/domain"
	shipping "github.com/impimediavillage/tree-sub001/internal/features/shipping/domain"
)

// DateRange is a lower-bound date filter computed relative to "now".
type DateRange string

const (
	DateRangeAll     DateRange = "all"
	DateRangeToday   DateRange = "today"
	DateRangeWeek    DateRange = "7d"
	DateRangeMonth   DateRange = "30d"
	DateRangeQuarter DateRange = "90d"
)

// Filter selects reconciliation items. Zero-valued fields match everything;
// set fields are AND-combined.
type Filter struct {
	// Status filters on reconciliation status equality.
	Status shipping.ReconciliationStatus
	// DispensaryID filters on dispensary equality.
	DispensaryID string
	// Range filters on a creation-date lower bound.
	Range DateRange
	// Query is a case-insensitive substring matched against order number,
	// dispensary name, customer name, tracking number and payment reference.
	// An item matches when any of those fields contains the query.
	Query string
}

// Apply returns the items matching every set predicate, preserving input
// order. The date range lower bound is computed from now.
func (f Filter) Apply(items []domain.ReconciliationItem, now time.Time) []domain.ReconciliationItem {
	cutoff, bounded := rangeCutoff(f.Range, now)
	query := strings.ToLower(strings.TrimSpace(f.Query))

	out := make([]domain.ReconciliationItem, 0, len(items))
	for _, item := range items {
		if f.Status != "" && item.ReconciliationStatus != f.Status {
			continue
		}
		if f.DispensaryID != "" && item.DispensaryID != f.DispensaryID {
			continue
		}
		if bounded && item.CreatedAt.Before(cutoff) {
			continue
		}
		if query != "" && !matchesQuery(item, query) {
			continue
		}
		out = append(out, item)
	}
	return out
}

// rangeCutoff converts a DateRange into an absolute lower bound.
// The second return is false for the unbounded range.
func rangeCutoff(r DateRange, now time.Time) (time.Time, bool) {
	switch r {
	case DateRangeToday:
		y, m, d := now.Date()
		return time.Date(y, m, d, 0, 0, 0, 0, now.Location()), true
	case DateRangeWeek:
		return now.AddDate(0, 0, -7), true
	case DateRangeMonth:
		return now.AddDate(0, 0, -30), true
	case DateRangeQuarter:
		return now.AddDate(0, 0, -90), true
	default:
		return time.Time{}, false
	}
}

// matchesQuery reports whether any searchable field contains the query.
func matchesQuery(item domain.ReconciliationItem, query string) bool {
	for _, field := range []string{
		item.OrderNumber,
		item.DispensaryName,
		item.CustomerName,
		item.TrackingNumber,
		item.PaymentReference,
	} {
		if strings.Contains(strings.ToLower(field), query) {
			return true
		}
	}
	return false
}
