package cart

import (
	"context"

	"github.com/webmart/storefront/internal/domain/shared"
)

// ErrStorageQuota is returned by repository implementations when the
// backing store rejects a write for exceeding its size quota. The cart
// service runs a one-shot eviction-and-retry on it; if that still
// fails the error surfaces to the caller as recoverable.
var ErrStorageQuota = shared.NewDomainError("STORAGE_QUOTA_EXCEEDED", "Cart storage quota exceeded")

// Repository persists the cart as a single document. There is no
// partial update: every save rewrites the whole line list, and loads
// read it back wholesale. Concurrent owners overwrite each other
// (last write wins).
type Repository interface {
	Load(ctx context.Context) ([]LineItem, error)
	Save(ctx context.Context, items []LineItem) error
	Clear(ctx context.Context) error
}
