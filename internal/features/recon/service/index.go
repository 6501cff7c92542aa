package service

import (
	"sort"

	"github.com/impimediavillage/tree-sub001/internal/features/recon/domain"
	shipping "github.com/impimediavillage/tree-sub001/internal/features/shipping/domain"
)

const (
	unknownDispensary = "Unknown Dispensary"
	unknownName       = "Unknown"
)

// BuildIndex flattens orders and pool orders into one reconciliation item
// per courier-billed shipment.
//
// Standard orders contribute a shipment only when it has a recorded cost
// and a courier-billed provider (pudo or shiplogic). Pool orders contribute
// once a label exists (tracking number and provider present) even when no
// cost was recorded, in which case the cost is zero.
//
// Output order is deterministic: source collection order, with an order's
// shipments walked in dispensary-id order. Consumers sort and filter
// independently.
func BuildIndex(orders []shipping.Order, poolOrders []shipping.PoolOrder, names map[string]string) []domain.ReconciliationItem {
	items := make([]domain.ReconciliationItem, 0, len(orders)+len(poolOrders))

	for _, order := range orders {
		dispensaryIDs := make([]string, 0, len(order.Shipments))
		for id := range order.Shipments {
			dispensaryIDs = append(dispensaryIDs, id)
		}
		sort.Strings(dispensaryIDs)

		for _, dispensaryID := range dispensaryIDs {
			shipment := order.Shipments[dispensaryID]
			if !includeStandardShipment(shipment) {
				continue
			}
			items = append(items, domain.ReconciliationItem{
				Ref:                  domain.OrderRef{Kind: domain.OrderKindStandard, ID: order.ID},
				OrderNumber:          order.OrderNumber,
				DispensaryID:         dispensaryID,
				DispensaryName:       lookupName(names, dispensaryID, unknownDispensary),
				ShippingCost:         shipment.Method.Price,
				Provider:             shipment.Provider,
				TrackingNumber:       shipment.TrackingNumber,
				Status:               shipment.Status,
				CreatedAt:            order.CreatedAt,
				CustomerName:         order.Customer.Name,
				Destination:          order.ShippingAddress,
				ReconciliationStatus: reconStatusOrPending(order.ReconciliationStatus),
				PaymentReference:     order.PaymentReference,
				ReconciliationDate:   order.ReconciliationDate,
				ReconciliationNotes:  order.ReconciliationNotes,
				OriginLocker:         shipment.OriginLocker,
				DestinationLocker:    shipment.DestinationLocker,
			})
		}
	}

	for _, po := range poolOrders {
		if !includePoolOrder(po) {
			continue
		}
		cost := 0.0
		if po.Method != nil {
			cost = po.Method.Price
		}
		items = append(items, domain.ReconciliationItem{
			Ref:                  domain.OrderRef{Kind: domain.OrderKindPool, ID: po.ID},
			OrderNumber:          po.OrderNumber(),
			DispensaryID:         po.FromDispensaryID,
			DispensaryName:       lookupName(names, po.FromDispensaryID, unknownName),
			ShippingCost:         cost,
			Provider:             po.Provider,
			TrackingNumber:       po.TrackingNumber,
			Status:               po.Status,
			CreatedAt:            po.CreatedAt,
			CustomerName:         lookupName(names, po.ToDispensaryID, unknownName),
			Destination:          lookupName(names, po.ToDispensaryID, unknownName),
			ReconciliationStatus: reconStatusOrPending(po.ReconciliationStatus),
			PaymentReference:     po.PaymentReference,
			ReconciliationDate:   po.ReconciliationDate,
			ReconciliationNotes:  po.ReconciliationNotes,
		})
	}

	return items
}

// includeStandardShipment gates retail shipments on a recorded cost and a
// courier-billed provider.
func includeStandardShipment(s shipping.Shipment) bool {
	if s.Method.Price <= 0 {
		return false
	}
	return s.Provider == shipping.ProviderPUDO || s.Provider == shipping.ProviderCourier
}

// includePoolOrder gates pool orders on label generation, not cost.
func includePoolOrder(po shipping.PoolOrder) bool {
	return po.TrackingNumber != "" && po.Provider != ""
}

func lookupName(names map[string]string, id, fallback string) string {
	if name, ok := names[id]; ok && name != "" {
		return name
	}
	return fallback
}

func reconStatusOrPending(s shipping.ReconciliationStatus) shipping.ReconciliationStatus {
	if s == "" {
		return shipping.ReconPending
	}
	return s
}
