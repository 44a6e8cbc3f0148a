package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/webmart/storefront/internal/domain/promotion"
	"github.com/webmart/storefront/internal/domain/shared"
	"github.com/webmart/storefront/internal/infrastructure/storage"
)

// promoDocument is the persisted shape of an applied promotion. Only
// the code and timestamp are stored; rate and description come from
// the promotion table on load, so a changed table wins over stale data.
type promoDocument struct {
	Code      string    `json:"code"`
	AppliedAt time.Time `json:"applied_at"`
}

// KVPromoRepository implements promotion.Repository on a key-value store
type KVPromoRepository struct {
	store storage.KVStore
}

// NewKVPromoRepository creates a new KVPromoRepository
func NewKVPromoRepository(store storage.KVStore) *KVPromoRepository {
	return &KVPromoRepository{store: store}
}

// Load reads the applied promotion, returning shared.ErrNotFound when
// none is stored or the stored code is no longer in the table.
func (r *KVPromoRepository) Load(ctx context.Context) (*promotion.AppliedPromo, error) {
	raw, err := r.store.Get(ctx, storage.KeyPromo)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, fmt.Errorf("failed to load applied promotion: %w", err)
	}

	var doc promoDocument
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		return nil, fmt.Errorf("failed to decode promotion document: %w", err)
	}

	promo, ok := promotion.Find(doc.Code)
	if !ok {
		return nil, shared.ErrNotFound
	}

	return &promotion.AppliedPromo{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Promotion:         promo,
		AppliedAt:         doc.AppliedAt,
	}, nil
}

// Save stores the applied promotion
func (r *KVPromoRepository) Save(ctx context.Context, applied *promotion.AppliedPromo) error {
	raw, err := json.Marshal(promoDocument{Code: applied.Code, AppliedAt: applied.AppliedAt})
	if err != nil {
		return fmt.Errorf("failed to encode promotion document: %w", err)
	}
	if err := r.store.Set(ctx, storage.KeyPromo, string(raw)); err != nil {
		return fmt.Errorf("failed to save applied promotion: %w", err)
	}
	return nil
}

// Clear removes the applied promotion
func (r *KVPromoRepository) Clear(ctx context.Context) error {
	return r.store.Delete(ctx, storage.KeyPromo)
}

var _ promotion.Repository = (*KVPromoRepository)(nil)
