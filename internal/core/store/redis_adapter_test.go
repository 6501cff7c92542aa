package store

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAdapter(t *testing.T) (*RedisAdapter, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)

	adapter, err := NewRedisAdapter("redis://" + mr.Addr())
	require.NoError(t, err)
	t.Cleanup(func() { adapter.Close() })

	return adapter, mr
}

func TestRedisAdapter_FetchAll_OrderedByCreatedAtDesc(t *testing.T) {
	adapter, _ := newTestAdapter(t)
	ctx := context.Background()

	require.NoError(t, adapter.Insert(ctx, "orders", "old", map[string]interface{}{
		"createdAt": "2024-01-01T10:00:00Z",
	}))
	require.NoError(t, adapter.Insert(ctx, "orders", "new", map[string]interface{}{
		"createdAt": "2024-03-01T10:00:00Z",
	}))
	require.NoError(t, adapter.Insert(ctx, "orders", "mid", map[string]interface{}{
		"createdAt": "2024-02-01T10:00:00Z",
	}))

	docs, err := adapter.FetchAll(ctx, "orders")
	require.NoError(t, err)
	require.Len(t, docs, 3)

	assert.Equal(t, "new", docs[0].ID)
	assert.Equal(t, "mid", docs[1].ID)
	assert.Equal(t, "old", docs[2].ID)
}

func TestRedisAdapter_FetchAll_EmptyCollection(t *testing.T) {
	adapter, _ := newTestAdapter(t)

	docs, err := adapter.FetchAll(context.Background(), "orders")
	require.NoError(t, err)
	assert.Empty(t, docs)
}

func TestRedisAdapter_Update_MergesFields(t *testing.T) {
	adapter, _ := newTestAdapter(t)
	ctx := context.Background()

	require.NoError(t, adapter.Insert(ctx, "orders", "ord-1", map[string]interface{}{
		"orderNumber":          "WT-1001",
		"reconciliationStatus": "pending",
	}))

	err := adapter.Update(ctx, "orders", "ord-1", map[string]interface{}{
		"reconciliationStatus": "paid",
		"paymentReference":     "EFT-001",
	})
	require.NoError(t, err)

	docs, err := adapter.FetchAll(ctx, "orders")
	require.NoError(t, err)
	require.Len(t, docs, 1)

	var doc map[string]interface{}
	require.NoError(t, json.Unmarshal(docs[0].Data, &doc))
	assert.Equal(t, "WT-1001", doc["orderNumber"])
	assert.Equal(t, "paid", doc["reconciliationStatus"])
	assert.Equal(t, "EFT-001", doc["paymentReference"])
}

func TestRedisAdapter_Update_DottedPath(t *testing.T) {
	adapter, _ := newTestAdapter(t)
	ctx := context.Background()

	require.NoError(t, adapter.Insert(ctx, "orders", "ord-1", map[string]interface{}{
		"shipments": map[string]interface{}{
			"disp-1": map[string]interface{}{"status": "pending"},
		},
	}))

	err := adapter.Update(ctx, "orders", "ord-1", map[string]interface{}{
		"shipments.disp-1.status":         "ready_for_shipping",
		"shipments.disp-1.trackingNumber": "TCG123",
	})
	require.NoError(t, err)

	docs, err := adapter.FetchAll(ctx, "orders")
	require.NoError(t, err)

	var doc map[string]interface{}
	require.NoError(t, json.Unmarshal(docs[0].Data, &doc))
	shipment := doc["shipments"].(map[string]interface{})["disp-1"].(map[string]interface{})
	assert.Equal(t, "ready_for_shipping", shipment["status"])
	assert.Equal(t, "TCG123", shipment["trackingNumber"])
}

func TestRedisAdapter_Update_NotFound(t *testing.T) {
	adapter, _ := newTestAdapter(t)

	err := adapter.Update(context.Background(), "orders", "missing", map[string]interface{}{
		"reconciliationStatus": "paid",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDocumentNotFound)
}

func TestRedisAdapter_BatchUpdate_AllOrNothing(t *testing.T) {
	adapter, _ := newTestAdapter(t)
	ctx := context.Background()

	require.NoError(t, adapter.Insert(ctx, "orders", "ord-1", map[string]interface{}{
		"reconciliationStatus": "pending",
	}))
	require.NoError(t, adapter.Insert(ctx, "productPoolOrders", "pool-1", map[string]interface{}{
		"reconciliationStatus": "pending",
	}))

	// Second update targets a missing document; the whole batch must abort.
	err := adapter.BatchUpdate(ctx, []FieldUpdate{
		{Collection: "orders", ID: "ord-1", Fields: map[string]interface{}{"reconciliationStatus": "paid"}},
		{Collection: "orders", ID: "ghost", Fields: map[string]interface{}{"reconciliationStatus": "paid"}},
		{Collection: "productPoolOrders", ID: "pool-1", Fields: map[string]interface{}{"reconciliationStatus": "paid"}},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDocumentNotFound)

	docs, err := adapter.FetchAll(ctx, "orders")
	require.NoError(t, err)
	var doc map[string]interface{}
	require.NoError(t, json.Unmarshal(docs[0].Data, &doc))
	assert.Equal(t, "pending", doc["reconciliationStatus"], "no partial application on batch failure")

	poolDocs, err := adapter.FetchAll(ctx, "productPoolOrders")
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(poolDocs[0].Data, &doc))
	assert.Equal(t, "pending", doc["reconciliationStatus"])
}

func TestRedisAdapter_BatchUpdate_AcrossCollections(t *testing.T) {
	adapter, _ := newTestAdapter(t)
	ctx := context.Background()

	require.NoError(t, adapter.Insert(ctx, "orders", "ord-1", map[string]interface{}{
		"reconciliationStatus": "pending",
	}))
	require.NoError(t, adapter.Insert(ctx, "productPoolOrders", "pool-1", map[string]interface{}{
		"reconciliationStatus": "pending",
	}))

	err := adapter.BatchUpdate(ctx, []FieldUpdate{
		{Collection: "orders", ID: "ord-1", Fields: map[string]interface{}{"reconciliationStatus": "paid"}},
		{Collection: "productPoolOrders", ID: "pool-1", Fields: map[string]interface{}{"reconciliationStatus": "paid"}},
	})
	require.NoError(t, err)

	for _, col := range []string{"orders", "productPoolOrders"} {
		docs, err := adapter.FetchAll(ctx, col)
		require.NoError(t, err)
		var doc map[string]interface{}
		require.NoError(t, json.Unmarshal(docs[0].Data, &doc))
		assert.Equal(t, "paid", doc["reconciliationStatus"], col)
	}
}

func TestRedisAdapter_BatchUpdate_Empty(t *testing.T) {
	adapter, _ := newTestAdapter(t)
	assert.NoError(t, adapter.BatchUpdate(context.Background(), nil))
}

func TestRedisAdapter_Ping(t *testing.T) {
	adapter, mr := newTestAdapter(t)

	assert.NoError(t, adapter.Ping(context.Background()))

	mr.Close()
	assert.Error(t, adapter.Ping(context.Background()))
}
