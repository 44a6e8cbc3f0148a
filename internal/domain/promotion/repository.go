package promotion

import "context"

// Repository persists the single applied promotion so the checkout
// flow can read it back. Load returns shared.ErrNotFound when no
// promotion is applied.
type Repository interface {
	Load(ctx context.Context) (*AppliedPromo, error)
	Save(ctx context.Context, applied *AppliedPromo) error
	Clear(ctx context.Context) error
}
