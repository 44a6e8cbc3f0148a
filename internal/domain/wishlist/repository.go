package wishlist

import "context"

// Repository persists the wishlist entries as one document
type Repository interface {
	Load(ctx context.Context) ([]Entry, error)
	Save(ctx context.Context, entries []Entry) error
	Clear(ctx context.Context) error
}
