package adapters

import (
	"context"
	"testing"
	"time"

	"github.com/impimediavillage/tree-sub001/internal/core/store"
	"github.com/impimediavillage/tree-sub001/internal/features/shipping/domain"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepo(t *testing.T) (*RedisOrderRepository, store.Store) {
	t.Helper()
	mr := miniredis.RunT(t)

	adapter, err := store.NewRedisAdapter("redis://" + mr.Addr())
	require.NoError(t, err)
	t.Cleanup(func() { adapter.Close() })

	return NewRedisOrderRepository(adapter, "orders", "productPoolOrders"), adapter
}

func seedOrder(t *testing.T, s store.Store, id string, order domain.Order) {
	t.Helper()
	require.NoError(t, s.Insert(context.Background(), "orders", id, order))
}

// TestRedisOrderRepository_GetOrder verifies lookup and the not-found error.
func TestRedisOrderRepository_GetOrder(t *testing.T) {
	repo, s := newTestRepo(t)
	ctx := context.Background()

	seedOrder(t, s, "ord-1", domain.Order{
		OrderNumber: "ORD-1001",
		Status:      domain.StatusInTransit,
	})

	order, err := repo.GetOrder(ctx, "ord-1")
	require.NoError(t, err)
	assert.Equal(t, "ord-1", order.ID)
	assert.Equal(t, "ORD-1001", order.OrderNumber)

	_, err = repo.GetOrder(ctx, "ghost")
	assert.ErrorIs(t, err, domain.ErrOrderNotFound)
}

// TestRedisOrderRepository_SaveShipmentStatus verifies the field-level patch
// touches only the targeted shipment.
func TestRedisOrderRepository_SaveShipmentStatus(t *testing.T) {
	repo, s := newTestRepo(t)
	ctx := context.Background()

	seedOrder(t, s, "ord-1", domain.Order{
		OrderNumber: "ORD-1001",
		Status:      domain.StatusInTransit,
		Shipments: map[string]domain.Shipment{
			"disp-1": {DispensaryID: "disp-1", Provider: domain.ProviderCourier, Status: domain.StatusInTransit},
			"disp-2": {DispensaryID: "disp-2", Provider: domain.ProviderPUDO, Status: domain.StatusInTransit, TrackingNumber: "TRK-200"},
		},
	})

	updated := domain.Shipment{
		DispensaryID: "disp-1",
		Provider:     domain.ProviderCourier,
		Status:       domain.StatusOutForDelivery,
		StatusHistory: []domain.StatusEvent{
			{Status: domain.StatusOutForDelivery, Timestamp: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)},
		},
	}

	require.NoError(t, repo.SaveShipmentStatus(ctx, "ord-1", updated, domain.StatusOutForDelivery))

	order, err := repo.GetOrder(ctx, "ord-1")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusOutForDelivery, order.Status)
	assert.Equal(t, domain.StatusOutForDelivery, order.Shipments["disp-1"].Status)
	require.Len(t, order.Shipments["disp-1"].StatusHistory, 1)

	// The sibling shipment is untouched, tracking number included.
	assert.Equal(t, domain.StatusInTransit, order.Shipments["disp-2"].Status)
	assert.Equal(t, "TRK-200", order.Shipments["disp-2"].TrackingNumber)
}

// TestRedisOrderRepository_ListOrders_SkipsBadDocuments verifies corrupt
// documents do not break listing.
func TestRedisOrderRepository_ListOrders_SkipsBadDocuments(t *testing.T) {
	repo, s := newTestRepo(t)
	ctx := context.Background()

	seedOrder(t, s, "ord-1", domain.Order{OrderNumber: "ORD-1001"})
	require.NoError(t, s.Insert(ctx, "orders", "broken", "not-an-object"))

	orders, err := repo.ListOrders(ctx)

	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, "ORD-1001", orders[0].OrderNumber)
}
