package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisAdapter implements the Store interface using Redis.
// Each collection is a hash keyed "col:<name>"; hash fields are document
// ids and hash values are the JSON documents.
type RedisAdapter struct {
	client *redis.Client
}

// NewRedisAdapter creates a new Redis document store adapter.
// The redisURL should be in the format: redis://[:password@]host[:port][/database]
func NewRedisAdapter(redisURL string) (*RedisAdapter, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	client := redis.NewClient(opts)

	return &RedisAdapter{client: client}, nil
}

// collectionKey builds the hash key for a collection.
func collectionKey(collection string) string {
	return "col:" + collection
}

// FetchAll returns every document in a collection ordered by createdAt descending.
func (r *RedisAdapter) FetchAll(ctx context.Context, collection string) ([]Document, error) {
	raw, err := r.client.HGetAll(ctx, collectionKey(collection)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to fetch collection %s: %w", collection, err)
	}

	docs := make([]Document, 0, len(raw))
	for id, data := range raw {
		docs = append(docs, Document{ID: id, Data: []byte(data)})
	}

	sort.SliceStable(docs, func(i, j int) bool {
		ti := documentCreatedAt(docs[i].Data)
		tj := documentCreatedAt(docs[j].Data)
		if ti.Equal(tj) {
			return docs[i].ID < docs[j].ID
		}
		return ti.After(tj)
	})

	return docs, nil
}

// documentCreatedAt extracts the createdAt timestamp from a JSON document.
// Documents without a parseable createdAt sort last.
func documentCreatedAt(data []byte) time.Time {
	var probe struct {
		CreatedAt time.Time `json:"createdAt"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return time.Time{}
	}
	return probe.CreatedAt
}

// Update applies a field-level patch to a single document.
func (r *RedisAdapter) Update(ctx context.Context, collection, id string, fields map[string]interface{}) error {
	return r.BatchUpdate(ctx, []FieldUpdate{{Collection: collection, ID: id, Fields: fields}})
}

// BatchUpdate applies all patches in a single WATCH/MULTI/EXEC transaction.
// All documents are read and merged first; if any is missing, nothing is
// written. The EXEC applies every HSET or none.
func (r *RedisAdapter) BatchUpdate(ctx context.Context, updates []FieldUpdate) error {
	if len(updates) == 0 {
		return nil
	}

	keySet := make(map[string]struct{})
	keys := make([]string, 0, len(updates))
	for _, u := range updates {
		k := collectionKey(u.Collection)
		if _, seen := keySet[k]; !seen {
			keySet[k] = struct{}{}
			keys = append(keys, k)
		}
	}

	txn := func(tx *redis.Tx) error {
		merged := make([][]byte, len(updates))
		for i, u := range updates {
			data, err := tx.HGet(ctx, collectionKey(u.Collection), u.ID).Bytes()
			if err == redis.Nil {
				return fmt.Errorf("%w: %s/%s", ErrDocumentNotFound, u.Collection, u.ID)
			}
			if err != nil {
				return fmt.Errorf("failed to read document %s/%s: %w", u.Collection, u.ID, err)
			}

			patched, err := mergeFields(data, u.Fields)
			if err != nil {
				return fmt.Errorf("failed to patch document %s/%s: %w", u.Collection, u.ID, err)
			}
			merged[i] = patched
		}

		_, err := tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			for i, u := range updates {
				pipe.HSet(ctx, collectionKey(u.Collection), u.ID, merged[i])
			}
			return nil
		})
		return err
	}

	err := r.client.Watch(ctx, txn, keys...)
	if err == redis.TxFailedErr {
		return fmt.Errorf("batch update aborted by concurrent write: %w", err)
	}
	return err
}

// mergeFields applies dotted-path field patches to a JSON document.
func mergeFields(data []byte, fields map[string]interface{}) ([]byte, error) {
	var doc map[string]interface{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("invalid document JSON: %w", err)
	}

	for path, value := range fields {
		setPath(doc, strings.Split(path, "."), value)
	}

	return json.Marshal(doc)
}

// setPath walks (and creates) nested objects along the path, setting the leaf.
func setPath(doc map[string]interface{}, path []string, value interface{}) {
	if len(path) == 1 {
		doc[path[0]] = value
		return
	}

	child, ok := doc[path[0]].(map[string]interface{})
	if !ok {
		child = make(map[string]interface{})
		doc[path[0]] = child
	}
	setPath(child, path[1:], value)
}

// Insert writes a full document, replacing any existing one. Field-level
// mutation goes through Update/BatchUpdate.
func (r *RedisAdapter) Insert(ctx context.Context, collection, id string, doc interface{}) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to marshal document %s/%s: %w", collection, id, err)
	}
	if err := r.client.HSet(ctx, collectionKey(collection), id, data).Err(); err != nil {
		return fmt.Errorf("failed to write document %s/%s: %w", collection, id, err)
	}
	return nil
}

// Ping checks if Redis is reachable.
func (r *RedisAdapter) Ping(ctx context.Context) error {
	err := r.client.Ping(ctx).Err()
	if err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}
	return nil
}

// Close closes the Redis connection.
func (r *RedisAdapter) Close() error {
	return r.client.Close()
}
