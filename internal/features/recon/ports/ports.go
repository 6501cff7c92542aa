package ports

import (
	"context"

	"github.com/impimediavillage/tree-sub001/internal/features/recon/domain"
	shipping "github.com/impimediavillage/tree-sub001/internal/features/shipping/domain"
)

// ReconciliationUpdate is a field-level patch against one source order,
// routed to its collection by the tagged OrderRef.
type ReconciliationUpdate struct {
	Ref    domain.OrderRef
	Fields map[string]interface{}
}

// Repository defines the persistence operations the reconciliation engine
// depends on. This is a Secondary Port (Driven Port).
type Repository interface {
	// ListOrders returns all retail orders, newest first.
	ListOrders(ctx context.Context) ([]shipping.Order, error)

	// ListPoolOrders returns all pool orders, newest first.
	ListPoolOrders(ctx context.Context) ([]shipping.PoolOrder, error)

	// ApplyUpdates applies all patches atomically: either every order is
	// updated or none are.
	ApplyUpdates(ctx context.Context, updates []ReconciliationUpdate) error

	// HasSettlement reports whether a settlement with this idempotency key
	// was already committed.
	HasSettlement(ctx context.Context, key string) (bool, error)

	// RecordSettlement stores the idempotency marker for a committed
	// settlement.
	RecordSettlement(ctx context.Context, key, paymentReference string) error
}

// DispensaryDirectory resolves dispensary ids to display names.
type DispensaryDirectory interface {
	// Names returns the id→name lookup for all known dispensaries.
	Names(ctx context.Context) (map[string]string, error)
}
