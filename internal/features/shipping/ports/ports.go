package ports

import (
	"context"

	"github.com/impimediavillage/tree-sub001/internal/features/shipping/domain"
)

// OrderRepository defines the persistence operations for orders and pool
// orders. This is a Secondary Port (Driven Port).
type OrderRepository interface {
	// GetOrder retrieves a single order by document id.
	// Returns domain.ErrOrderNotFound when it does not exist.
	GetOrder(ctx context.Context, orderID string) (*domain.Order, error)

	// ListOrders returns all orders, newest first.
	ListOrders(ctx context.Context) ([]domain.Order, error)

	// ListPoolOrders returns all pool orders, newest first.
	ListPoolOrders(ctx context.Context) ([]domain.PoolOrder, error)

	// SaveShipmentStatus atomically persists a shipment's new status and
	// history together with the order-level status.
	SaveShipmentStatus(ctx context.Context, orderID string, shipment domain.Shipment, orderStatus domain.ShippingStatus) error
}

// StatusEvent is the outbound notification emitted after a successful
// shipment status change.
type StatusEvent struct {
	OrderID      string                `json:"orderId"`
	DispensaryID string                `json:"dispensaryId"`
	OldStatus    domain.ShippingStatus `json:"oldStatus"`
	NewStatus    domain.ShippingStatus `json:"newStatus"`
}

// Notifier delivers status-change events to the notification layer.
// Delivery is fire-and-forget from the caller's perspective.
type Notifier interface {
	StatusChanged(ctx context.Context, event StatusEvent) error
}
