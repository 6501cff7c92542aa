package domain

import (
	"time"

	shipping "github.com/impimediavillage/tree-sub001/internal/features/shipping/domain"
)

// Bucket is a total and count for one aggregation group.
type Bucket struct {
	Total float64 `json:"total"`
	Count int     `json:"count"`
}

// StatusBreakdown sums the index per reconciliation status.
type StatusBreakdown struct {
	Pending    Bucket `json:"pending"`
	Processing Bucket `json:"processing"`
	Paid       Bucket `json:"paid"`
	Disputed   Bucket `json:"disputed"`
}

// PeriodBucket is a total and count for one calendar period.
type PeriodBucket struct {
	// Start is the period's first instant (month start or Sunday week start).
	Start time.Time `json:"start"`
	// Label is the period's display label.
	Label string `json:"label"`
	Total float64 `json:"total"`
	Count int     `json:"count"`
}

// DispensaryBucket is a total and count for one dispensary.
type DispensaryBucket struct {
	DispensaryID   string  `json:"dispensaryId"`
	DispensaryName string  `json:"dispensaryName"`
	Total          float64 `json:"total"`
	Count          int     `json:"count"`
}

// ProviderBucket is a total, count and average for one shipping provider.
type ProviderBucket struct {
	Provider shipping.ShippingProvider `json:"provider"`
	Total    float64                   `json:"total"`
	Count    int                       `json:"count"`
	Average  float64                   `json:"average"`
}
