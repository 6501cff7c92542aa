package adapters

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/impimediavillage/tree-sub001/internal/core/logger"
	"github.com/impimediavillage/tree-sub001/internal/core/store"
	"github.com/impimediavillage/tree-sub001/internal/features/shipping/domain"

	"go.uber.org/zap"
)

// RedisOrderRepository implements ports.OrderRepository over the document store.
type RedisOrderRepository struct {
	store     store.Store
	ordersCol string
	poolCol   string
}

// NewRedisOrderRepository creates a new RedisOrderRepository.
func NewRedisOrderRepository(s store.Store, ordersCollection, poolOrdersCollection string) *RedisOrderRepository {
	return &RedisOrderRepository{
		store:     s,
		ordersCol: ordersCollection,
		poolCol:   poolOrdersCollection,
	}
}

// GetOrder retrieves a single order by document id.
func (r *RedisOrderRepository) GetOrder(ctx context.Context, orderID string) (*domain.Order, error) {
	docs, err := r.store.FetchAll(ctx, r.ordersCol)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch orders: %w", err)
	}

	for _, doc := range docs {
		if doc.ID != orderID {
			continue
		}
		var order domain.Order
		if err := json.Unmarshal(doc.Data, &order); err != nil {
			return nil, fmt.Errorf("failed to decode order %s: %w", orderID, err)
		}
		order.ID = doc.ID
		return &order, nil
	}

	return nil, fmt.Errorf("%w: %s", domain.ErrOrderNotFound, orderID)
}

// ListOrders returns all orders, newest first. Documents that fail to decode
// are skipped and logged rather than failing the whole listing.
func (r *RedisOrderRepository) ListOrders(ctx context.Context) ([]domain.Order, error) {
	docs, err := r.store.FetchAll(ctx, r.ordersCol)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch orders: %w", err)
	}

	orders := make([]domain.Order, 0, len(docs))
	for _, doc := range docs {
		var order domain.Order
		if err := json.Unmarshal(doc.Data, &order); err != nil {
			logger.Get().Warn("Skipping undecodable order document",
				zap.String("id", doc.ID),
				zap.Error(err),
			)
			continue
		}
		order.ID = doc.ID
		orders = append(orders, order)
	}
	return orders, nil
}

// ListPoolOrders returns all pool orders, newest first.
func (r *RedisOrderRepository) ListPoolOrders(ctx context.Context) ([]domain.PoolOrder, error) {
	docs, err := r.store.FetchAll(ctx, r.poolCol)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch pool orders: %w", err)
	}

	poolOrders := make([]domain.PoolOrder, 0, len(docs))
	for _, doc := range docs {
		var po domain.PoolOrder
		if err := json.Unmarshal(doc.Data, &po); err != nil {
			logger.Get().Warn("Skipping undecodable pool order document",
				zap.String("id", doc.ID),
				zap.Error(err),
			)
			continue
		}
		po.ID = doc.ID
		poolOrders = append(poolOrders, po)
	}
	return poolOrders, nil
}

// SaveShipmentStatus persists the shipment's status and history together
// with the order-level status as one atomic field-level patch.
func (r *RedisOrderRepository) SaveShipmentStatus(ctx context.Context, orderID string, shipment domain.Shipment, orderStatus domain.ShippingStatus) error {
	prefix := "shipments." + shipment.DispensaryID
	fields := map[string]interface{}{
		prefix + ".status":        shipment.Status,
		prefix + ".statusHistory": shipment.StatusHistory,
		"status":                  orderStatus,
	}

	if err := r.store.Update(ctx, r.ordersCol, orderID, fields); err != nil {
		return fmt.Errorf("failed to save shipment status: %w", err)
	}
	return nil
}
