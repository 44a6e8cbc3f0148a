package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/webmart/storefront/internal/domain/cart"
	"github.com/webmart/storefront/internal/domain/shared"
	"github.com/webmart/storefront/internal/infrastructure/storage"
)

// cartDocument is the persisted shape of the cart
type cartDocument struct {
	Items []cart.LineItem `json:"items"`
}

// KVCartRepository implements cart.Repository on a key-value store.
// The whole cart is serialized as one JSON document under a fixed key.
type KVCartRepository struct {
	store storage.KVStore
}

// NewKVCartRepository creates a new KVCartRepository
func NewKVCartRepository(store storage.KVStore) *KVCartRepository {
	return &KVCartRepository{store: store}
}

// Load reads the persisted cart lines. A missing document is an empty
// cart, not an error.
func (r *KVCartRepository) Load(ctx context.Context) ([]cart.LineItem, error) {
	raw, err := r.store.Get(ctx, storage.KeyCart)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}

	var doc cartDocument
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		return nil, fmt.Errorf("failed to decode cart document: %w", err)
	}
	return doc.Items, nil
}

// Save rewrites the whole cart document. A quota rejection from the
// store surfaces as cart.ErrStorageQuota so the service can evict and
// retry.
func (r *KVCartRepository) Save(ctx context.Context, items []cart.LineItem) error {
	raw, err := json.Marshal(cartDocument{Items: items})
	if err != nil {
		return fmt.Errorf("failed to encode cart document: %w", err)
	}

	if err := r.store.Set(ctx, storage.KeyCart, string(raw)); err != nil {
		if errors.Is(err, storage.ErrQuotaExceeded) {
			return cart.ErrStorageQuota
		}
		return fmt.Errorf("failed to save cart: %w", err)
	}
	return nil
}

// Clear removes the persisted cart document
func (r *KVCartRepository) Clear(ctx context.Context) error {
	return r.store.Delete(ctx, storage.KeyCart)
}

var _ cart.Repository = (*KVCartRepository)(nil)
