package service

import (
	"sort"
	"time"

	"github.com/impimediavillage/tree-sub001/internal/features/recon/domain"
	shipping "github.com/impimediavillage/tree-sub001/internal/features/shipping/domain"
)

// trailing window sizes for the period aggregations.
const (
	trailingMonths = 6
	trailingWeeks  = 8
)

// SummarizeByStatus sums and counts the items per reconciliation status.
func SummarizeByStatus(items []domain.ReconciliationItem) domain.StatusBreakdown {
	var b domain.StatusBreakdown
	for _, item := range items {
		switch item.ReconciliationStatus {
		case shipping.ReconPending:
			b.Pending.Total += item.ShippingCost
			b.Pending.Count++
		case shipping.ReconProcessing:
			b.Processing.Total += item.ShippingCost
			b.Processing.Count++
		case shipping.ReconPaid:
			b.Paid.Total += item.ShippingCost
			b.Paid.Count++
		case shipping.ReconDisputed:
			b.Disputed.Total += item.ShippingCost
			b.Disputed.Count++
		}
	}
	return b
}

// MonthlyTotals buckets items into the trailing six calendar months ending
// at now's month, oldest first. Months with no items are present with zero
// totals.
func MonthlyTotals(items []domain.ReconciliationItem, now time.Time) []domain.PeriodBucket {
	buckets := make([]domain.PeriodBucket, trailingMonths)
	y, m, _ := now.Date()
	for i := 0; i < trailingMonths; i++ {
		start := time.Date(y, m, 1, 0, 0, 0, 0, now.Location()).AddDate(0, i-trailingMonths+1, 0)
		buckets[i] = domain.PeriodBucket{
			Start: start,
			Label: start.Format("Jan 2006"),
		}
	}

	for _, item := range items {
		for i := range buckets {
			start := buckets[i].Start
			if !item.CreatedAt.Before(start) && item.CreatedAt.Before(start.AddDate(0, 1, 0)) {
				buckets[i].Total += item.ShippingCost
				buckets[i].Count++
				break
			}
		}
	}
	return buckets
}

// WeeklyTotals buckets items into the trailing eight weeks ending at now's
// week, oldest first. A week starts on the most recent Sunday at or before
// its reference date. Weeks with no items are present with zero totals.
func WeeklyTotals(items []domain.ReconciliationItem, now time.Time) []domain.PeriodBucket {
	buckets := make([]domain.PeriodBucket, trailingWeeks)
	currentWeek := weekStart(now)
	for i := 0; i < trailingWeeks; i++ {
		start := currentWeek.AddDate(0, 0, 7*(i-trailingWeeks+1))
		buckets[i] = domain.PeriodBucket{
			Start: start,
			Label: start.Format("2 Jan"),
		}
	}

	for _, item := range items {
		for i := range buckets {
			start := buckets[i].Start
			if !item.CreatedAt.Before(start) && item.CreatedAt.Before(start.AddDate(0, 0, 7)) {
				buckets[i].Total += item.ShippingCost
				buckets[i].Count++
				break
			}
		}
	}
	return buckets
}

// weekStart returns midnight of the most recent Sunday at or before t.
func weekStart(t time.Time) time.Time {
	y, m, d := t.Date()
	midnight := time.Date(y, m, d, 0, 0, 0, 0, t.Location())
	return midnight.AddDate(0, 0, -int(midnight.Weekday()))
}

// DispensaryTotals sums and counts the items per dispensary, sorted by
// total descending (name ascending on ties).
func DispensaryTotals(items []domain.ReconciliationItem) []domain.DispensaryBucket {
	byID := make(map[string]*domain.DispensaryBucket)
	order := make([]string, 0)
	for _, item := range items {
		b, ok := byID[item.DispensaryID]
		if !ok {
			b = &domain.DispensaryBucket{
				DispensaryID:   item.DispensaryID,
				DispensaryName: item.DispensaryName,
			}
			byID[item.DispensaryID] = b
			order = append(order, item.DispensaryID)
		}
		b.Total += item.ShippingCost
		b.Count++
	}

	out := make([]domain.DispensaryBucket, 0, len(order))
	for _, id := range order {
		out = append(out, *byID[id])
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Total != out[j].Total {
			return out[i].Total > out[j].Total
		}
		return out[i].DispensaryName < out[j].DispensaryName
	})
	return out
}

// ProviderTotals sums, counts and averages the items per shipping provider.
func ProviderTotals(items []domain.ReconciliationItem) []domain.ProviderBucket {
	byProvider := make(map[shipping.ShippingProvider]*domain.ProviderBucket)
	order := make([]shipping.ShippingProvider, 0)
	for _, item := range items {
		b, ok := byProvider[item.Provider]
		if !ok {
			b = &domain.ProviderBucket{Provider: item.Provider}
			byProvider[item.Provider] = b
			order = append(order, item.Provider)
		}
		b.Total += item.ShippingCost
		b.Count++
	}

	out := make([]domain.ProviderBucket, 0, len(order))
	for _, provider := range order {
		b := *byProvider[provider]
		if b.Count > 0 {
			b.Average = b.Total / float64(b.Count)
		}
		out = append(out, b)
	}
	return out
}
