package adapters

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/impimediavillage/tree-sub001/internal/core/logger"
	"github.com/impimediavillage/tree-sub001/internal/core/store"
	"github.com/impimediavillage/tree-sub001/internal/features/recon/domain"
	"github.com/impimediavillage/tree-sub001/internal/features/recon/ports"
	shipping "github.com/impimediavillage/tree-sub001/internal/features/shipping/domain"

	"go.uber.org/zap"
)

// settlementsCollection records idempotency markers for committed settlements.
const settlementsCollection = "settlements"

// RedisReconRepository implements ports.Repository over the document store.
type RedisReconRepository struct {
	store     store.Store
	ordersCol string
	poolCol   string
}

// NewRedisReconRepository creates a new RedisReconRepository.
func NewRedisReconRepository(s store.Store, ordersCollection, poolOrdersCollection string) *RedisReconRepository {
	return &RedisReconRepository{
		store:     s,
		ordersCol: ordersCollection,
		poolCol:   poolOrdersCollection,
	}
}

// ListOrders returns all retail orders, newest first.
func (r *RedisReconRepository) ListOrders(ctx context.Context) ([]shipping.Order, error) {
	docs, err := r.store.FetchAll(ctx, r.ordersCol)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch orders: %w", err)
	}

	orders := make([]shipping.Order, 0, len(docs))
	for _, doc := range docs {
		var order shipping.Order
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
func (r *RedisReconRepository) ListPoolOrders(ctx context.Context) ([]shipping.PoolOrder, error) {
	docs, err := r.store.FetchAll(ctx, r.poolCol)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch pool orders: %w", err)
	}

	poolOrders := make([]shipping.PoolOrder, 0, len(docs))
	for _, doc := range docs {
		var po shipping.PoolOrder
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

// ApplyUpdates routes each patch to its collection by OrderRef kind and
// commits them as one atomic batch.
func (r *RedisReconRepository) ApplyUpdates(ctx context.Context, updates []ports.ReconciliationUpdate) error {
	batch := make([]store.FieldUpdate, 0, len(updates))
	for _, u := range updates {
		collection := r.ordersCol
		if u.Ref.Kind == domain.OrderKindPool {
			collection = r.poolCol
		}
		batch = append(batch, store.FieldUpdate{
			Collection: collection,
			ID:         u.Ref.ID,
			Fields:     u.Fields,
		})
	}

	if err := r.store.BatchUpdate(ctx, batch); err != nil {
		return fmt.Errorf("reconciliation batch write failed: %w", err)
	}
	return nil
}

// settlementMarker is the idempotency record for a committed settlement.
type settlementMarker struct {
	Key              string    `json:"key"`
	PaymentReference string    `json:"paymentReference"`
	CreatedAt        time.Time `json:"createdAt"`
}

// HasSettlement reports whether the idempotency key was already committed.
func (r *RedisReconRepository) HasSettlement(ctx context.Context, key string) (bool, error) {
	docs, err := r.store.FetchAll(ctx, settlementsCollection)
	if err != nil {
		return false, fmt.Errorf("failed to fetch settlements: %w", err)
	}
	for _, doc := range docs {
		if doc.ID == key {
			return true, nil
		}
	}
	return false, nil
}

// RecordSettlement stores the idempotency marker for a committed settlement.
func (r *RedisReconRepository) RecordSettlement(ctx context.Context, key, paymentReference string) error {
	marker := settlementMarker{
		Key:              key,
		PaymentReference: paymentReference,
		CreatedAt:        time.Now(),
	}
	if err := r.store.Insert(ctx, settlementsCollection, key, marker); err != nil {
		return fmt.Errorf("failed to record settlement: %w", err)
	}
	return nil
}

// RedisDispensaryDirectory implements ports.DispensaryDirectory over the
// document store.
type RedisDispensaryDirectory struct {
	store      store.Store
	collection string
}

// NewRedisDispensaryDirectory creates a new RedisDispensaryDirectory.
func NewRedisDispensaryDirectory(s store.Store, collection string) *RedisDispensaryDirectory {
	return &RedisDispensaryDirectory{
		store:      s,
		collection: collection,
	}
}

// Names returns the id→name lookup for all known dispensaries.
func (d *RedisDispensaryDirectory) Names(ctx context.Context) (map[string]string, error) {
	docs, err := d.store.FetchAll(ctx, d.collection)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch dispensaries: %w", err)
	}

	names := make(map[string]string, len(docs))
	for _, doc := range docs {
		var profile struct {
			Name string `json:"name"`
		}
		if err := json.Unmarshal(doc.Data, &profile); err != nil {
			continue
		}
		names[doc.ID] = profile.Name
	}
	return names, nil
}
