// Package storage provides the key-value document store the shopper
// state (cart, wishlist, applied promo) persists into.
package storage

import (
	"context"

	"github.com/webmart/storefront/internal/domain/shared"
)

// Well-known document keys
const (
	KeyCart     = "storefront_cart"
	KeyPromo    = "applied_promo"
	KeyWishlist = "wishlist"
)

// ErrQuotaExceeded is returned by Set when a value would push the
// store past its capacity
var ErrQuotaExceeded = shared.NewDomainError("STORAGE_QUOTA_EXCEEDED", "Storage quota exceeded")

// KVStore is a small string-keyed document store. Get returns
// shared.ErrNotFound for a missing key.
type KVStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}
