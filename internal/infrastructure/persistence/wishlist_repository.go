package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/webmart/storefront/internal/domain/shared"
	"github.com/webmart/storefront/internal/domain/wishlist"
	"github.com/webmart/storefront/internal/infrastructure/storage"
)

// wishlistDocument is the persisted shape of the wishlist
type wishlistDocument struct {
	Entries []wishlist.Entry `json:"entries"`
}

// KVWishlistRepository implements wishlist.Repository on a key-value store
type KVWishlistRepository struct {
	store storage.KVStore
}

// NewKVWishlistRepository creates a new KVWishlistRepository
func NewKVWishlistRepository(store storage.KVStore) *KVWishlistRepository {
	return &KVWishlistRepository{store: store}
}

// Load reads the persisted wishlist entries. A missing document is an
// empty wishlist, not an error.
func (r *KVWishlistRepository) Load(ctx context.Context) ([]wishlist.Entry, error) {
	raw, err := r.store.Get(ctx, storage.KeyWishlist)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load wishlist: %w", err)
	}

	var doc wishlistDocument
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		return nil, fmt.Errorf("failed to decode wishlist document: %w", err)
	}
	return doc.Entries, nil
}

// Save rewrites the whole wishlist document
func (r *KVWishlistRepository) Save(ctx context.Context, entries []wishlist.Entry) error {
	raw, err := json.Marshal(wishlistDocument{Entries: entries})
	if err != nil {
		return fmt.Errorf("failed to encode wishlist document: %w", err)
	}
	if err := r.store.Set(ctx, storage.KeyWishlist, string(raw)); err != nil {
		return fmt.Errorf("failed to save wishlist: %w", err)
	}
	return nil
}

// Clear removes the persisted wishlist document
func (r *KVWishlistRepository) Clear(ctx context.Context) error {
	return r.store.Delete(ctx, storage.KeyWishlist)
}

var _ wishlist.Repository = (*KVWishlistRepository)(nil)
