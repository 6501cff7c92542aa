package domain

import (
	"errors"
	"time"

	shipping "github.com/impimediavillage/tree-sub001/internal/features/shipping/domain"
)

// ErrEmptyPaymentReference is returned when settlement is attempted without
// a payment reference.
var ErrEmptyPaymentReference = errors.New("payment reference is required")

// ErrNoItemsSelected is returned when settlement is attempted with an empty
// item selection.
var ErrNoItemsSelected = errors.New("no reconciliation items selected")

// ErrInvalidReconTransition is returned when a reconciliation status change
// is not allowed (e.g. settling an already paid item).
var ErrInvalidReconTransition = errors.New("invalid reconciliation status transition")

// OrderKind tags which collection a reconciliation item's order lives in.
type OrderKind string

const (
	// OrderKindStandard is a customer-facing retail order.
	OrderKindStandard OrderKind = "standard"
	// OrderKindPool is an inter-dispensary pool order.
	OrderKindPool OrderKind = "pool"
)

// OrderRef identifies the source order of a reconciliation item as a tagged
// variant, so collection routing never depends on parsing the display order
// number.
type OrderRef struct {
	Kind OrderKind `json:"kind"`
	ID   string    `json:"id"`
}

// ReconciliationItem is one shipping-cost line projected from an order (or
// pool order) for finance review. Derived, never persisted independently.
type ReconciliationItem struct {
	// Ref identifies the source order and its collection.
	Ref OrderRef `json:"ref"`
	// OrderNumber is the display order number ("POOL-xxxxxxxx" for pool orders).
	OrderNumber string `json:"orderNumber"`
	// DispensaryID is the dispensary that shipped.
	DispensaryID string `json:"dispensaryId"`
	// DispensaryName is the resolved display name.
	DispensaryName string `json:"dispensaryName"`
	// ShippingCost is the recorded cost for this shipment.
	ShippingCost float64 `json:"shippingCost"`
	// Provider is the shipping provider billed for this shipment.
	Provider shipping.ShippingProvider `json:"shippingProvider"`
	// TrackingNumber is the courier tracking number, when a label exists.
	TrackingNumber string `json:"trackingNumber,omitempty"`
	// Status is the shipment's shipping status.
	Status shipping.ShippingStatus `json:"status"`
	// CreatedAt is when the source order was created.
	CreatedAt time.Time `json:"createdAt"`
	// CustomerName is the purchaser (or receiving dispensary for pool orders).
	CustomerName string `json:"customerName"`
	// Destination is the delivery destination display string.
	Destination string `json:"destination"`
	// ReconciliationStatus is the item's financial state.
	ReconciliationStatus shipping.ReconciliationStatus `json:"reconciliationStatus"`
	// PaymentReference is set once settled.
	PaymentReference string `json:"paymentReference,omitempty"`
	// ReconciliationDate is set once settled or disputed.
	ReconciliationDate *time.Time `json:"reconciliationDate,omitempty"`
	// ReconciliationNotes are free-text settlement notes.
	ReconciliationNotes string `json:"reconciliationNotes,omitempty"`
	// OriginLocker is carried through for locker shipments.
	OriginLocker *shipping.Locker `json:"originLocker,omitempty"`
	// DestinationLocker is carried through for locker shipments.
	DestinationLocker *shipping.Locker `json:"destinationLocker,omitempty"`
}

// reconTransitions defines the reconciliation status machine:
// pending → processing → paid, pending → paid, pending → disputed.
// paid and disputed are terminal.
var reconTransitions = map[shipping.ReconciliationStatus][]shipping.ReconciliationStatus{
	shipping.ReconPending:    {shipping.ReconProcessing, shipping.ReconPaid, shipping.ReconDisputed},
	shipping.ReconProcessing: {shipping.ReconPaid},
	shipping.ReconPaid:       {},
	shipping.ReconDisputed:   {},
}

// CanTransitionRecon reports whether a reconciliation status change is
// allowed. An unset (zero) current status is treated as pending.
func CanTransitionRecon(from, to shipping.ReconciliationStatus) bool {
	if from == "" {
		from = shipping.ReconPending
	}
	for _, s := range reconTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}
