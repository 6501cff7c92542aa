package service

import (
	"testing"
	"time"

	"github.com/impimediavillage/tree-sub001/internal/features/recon/domain"
	shipping "github.com/impimediavillage/tree-sub001/internal/features/shipping/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNames = map[string]string{
	"disp-1": "Green Leaf",
	"disp-2": "Herbal House",
}

func courierOrder() shipping.Order {
	return shipping.Order{
		ID:              "ord-1",
		OrderNumber:     "ORD-1001",
		Customer:        shipping.CustomerDetails{Name: "Thandi M"},
		ShippingAddress: "12 Main Rd, Cape Town",
		CreatedAt:       time.Date(2024, 2, 1, 9, 0, 0, 0, time.UTC),
		Shipments: map[string]shipping.Shipment{
			"disp-1": {
				DispensaryID:   "disp-1",
				Provider:       shipping.ProviderCourier,
				Method:         shipping.ShippingMethod{Carrier: "Shiplogic", Price: 85},
				TrackingNumber: "TRK-100",
				Status:         shipping.StatusInTransit,
			},
		},
	}
}

// TestBuildIndex_StandardShipmentInclusion verifies only courier-billed,
// costed shipments are projected.
func TestBuildIndex_StandardShipmentInclusion(t *testing.T) {
	order := courierOrder()
	order.Shipments["disp-2"] = shipping.Shipment{
		DispensaryID: "disp-2",
		Provider:     shipping.ProviderInHouse,
		Method:       shipping.ShippingMethod{Price: 40},
		Status:       shipping.StatusEnRoute,
	}
	order.Shipments["disp-3"] = shipping.Shipment{
		DispensaryID: "disp-3",
		Provider:     shipping.ProviderPUDO,
		Method:       shipping.ShippingMethod{Price: 0},
		Status:       shipping.StatusPending,
	}

	items := BuildIndex([]shipping.Order{order}, nil, testNames)

	// in_house is never courier-billed; zero-cost retail shipments are excluded.
	require.Len(t, items, 1)
	assert.Equal(t, "disp-1", items[0].DispensaryID)
	assert.Equal(t, "Green Leaf", items[0].DispensaryName)
	assert.Equal(t, 85.0, items[0].ShippingCost)
	assert.Equal(t, domain.OrderKindStandard, items[0].Ref.Kind)
	assert.Equal(t, "ord-1", items[0].Ref.ID)
	assert.Equal(t, shipping.ReconPending, items[0].ReconciliationStatus)
}

// TestBuildIndex_PoolOrderInclusion verifies pool orders are gated on label
// generation, not cost.
func TestBuildIndex_PoolOrderInclusion(t *testing.T) {
	labelled := shipping.PoolOrder{
		ID:               "pool-abcdef12",
		FromDispensaryID: "disp-1",
		ToDispensaryID:   "disp-2",
		Provider:         shipping.ProviderPUDO,
		TrackingNumber:   "TRK-200",
		Status:           shipping.StatusInTransit,
		CreatedAt:        time.Date(2024, 2, 2, 9, 0, 0, 0, time.UTC),
	}
	unlabelled := shipping.PoolOrder{
		ID:               "pool-2",
		FromDispensaryID: "disp-1",
		Provider:         shipping.ProviderPUDO,
	}

	items := BuildIndex(nil, []shipping.PoolOrder{labelled, unlabelled}, testNames)

	require.Len(t, items, 1)
	item := items[0]
	assert.Equal(t, domain.OrderKindPool, item.Ref.Kind)
	assert.Equal(t, "POOL-abcdef12", item.OrderNumber)
	// No method chosen yet: the cost is zero but the item still appears.
	assert.Equal(t, 0.0, item.ShippingCost)
	assert.Equal(t, "Herbal House", item.CustomerName)
	assert.Equal(t, "Herbal House", item.Destination)
}

// TestBuildIndex_UnknownDispensaryFallbacks verifies name fallbacks differ
// between retail and pool items.
func TestBuildIndex_UnknownDispensaryFallbacks(t *testing.T) {
	order := courierOrder()
	pool := shipping.PoolOrder{
		ID:               "pool-3",
		FromDispensaryID: "ghost-1",
		ToDispensaryID:   "ghost-2",
		Provider:         shipping.ProviderCourier,
		TrackingNumber:   "TRK-300",
	}

	items := BuildIndex([]shipping.Order{order}, []shipping.PoolOrder{pool}, map[string]string{})

	require.Len(t, items, 2)
	assert.Equal(t, "Unknown Dispensary", items[0].DispensaryName)
	assert.Equal(t, "Unknown", items[1].DispensaryName)
	assert.Equal(t, "Unknown", items[1].CustomerName)
}

// TestBuildIndex_Deterministic verifies rebuilding from the same source
// yields the identical index, shipment iteration included.
func TestBuildIndex_Deterministic(t *testing.T) {
	order := courierOrder()
	for _, id := range []string{"disp-2", "disp-9", "disp-5"} {
		order.Shipments[id] = shipping.Shipment{
			DispensaryID: id,
			Provider:     shipping.ProviderPUDO,
			Method:       shipping.ShippingMethod{Price: 60},
			Status:       shipping.StatusInTransit,
		}
	}

	first := BuildIndex([]shipping.Order{order}, nil, testNames)
	for i := 0; i < 20; i++ {
		again := BuildIndex([]shipping.Order{order}, nil, testNames)
		require.Equal(t, first, again)
	}

	// Shipments appear in dispensary-id order.
	ids := make([]string, 0, len(first))
	for _, item := range first {
		ids = append(ids, item.DispensaryID)
	}
	assert.Equal(t, []string{"disp-1", "disp-2", "disp-5", "disp-9"}, ids)
}

// TestBuildIndex_CarriesReconciliationState verifies persisted financial
// state survives the projection.
func TestBuildIndex_CarriesReconciliationState(t *testing.T) {
	settledAt := time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC)
	order := courierOrder()
	order.ReconciliationStatus = shipping.ReconPaid
	order.PaymentReference = "EFT-77"
	order.ReconciliationDate = &settledAt

	items := BuildIndex([]shipping.Order{order}, nil, testNames)

	require.Len(t, items, 1)
	assert.Equal(t, shipping.ReconPaid, items[0].ReconciliationStatus)
	assert.Equal(t, "EFT-77", items[0].PaymentReference)
	require.NotNil(t, items[0].ReconciliationDate)
	assert.True(t, items[0].ReconciliationDate.Equal(settledAt))
}
