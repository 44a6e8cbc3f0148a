package wishlist

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/webmart/storefront/internal/domain/shared"
)

// Entry is one saved product reference
type Entry struct {
	SKU      string          `json:"sku"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	ImageURL string          `json:"image_url,omitempty"`
	SavedAt  time.Time       `json:"saved_at"`
}

// Wishlist holds the products a shopper has saved for later. Entries
// are keyed by SKU; toggling an already saved SKU removes it.
type Wishlist struct {
	shared.BaseAggregateRoot
	entries []Entry
}

// NewWishlist creates an empty wishlist
func NewWishlist() *Wishlist {
	return &Wishlist{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		entries:           make([]Entry, 0),
	}
}

// NewWishlistFromEntries restores a wishlist from persisted entries,
// dropping any without a SKU
func NewWishlistFromEntries(entries []Entry) *Wishlist {
	w := NewWishlist()
	for _, e := range entries {
		if strings.TrimSpace(e.SKU) != "" {
			w.entries = append(w.entries, e)
		}
	}
	return w
}

// Toggle adds the entry when its SKU is absent and removes it when
// present. It reports true when the entry was added.
func (w *Wishlist) Toggle(entry Entry) (bool, error) {
	entry.SKU = strings.TrimSpace(entry.SKU)
	if entry.SKU == "" {
		return false, shared.NewDomainError("INVALID_INPUT", "Product SKU is required")
	}

	if idx := w.indexBySKU(entry.SKU); idx >= 0 {
		removed := w.entries[idx]
		w.entries = append(w.entries[:idx], w.entries[idx+1:]...)
		w.AddDomainEvent(NewItemRemovedEvent(w, removed))
		return false, nil
	}

	if entry.SavedAt.IsZero() {
		entry.SavedAt = time.Now()
	}
	w.entries = append(w.entries, entry)
	w.AddDomainEvent(NewItemAddedEvent(w, entry))
	return true, nil
}

// Remove deletes the entry with the given SKU
func (w *Wishlist) Remove(sku string) error {
	idx := w.indexBySKU(sku)
	if idx < 0 {
		return shared.NewDomainError("NOT_FOUND", "Product not found in wishlist")
	}
	removed := w.entries[idx]
	w.entries = append(w.entries[:idx], w.entries[idx+1:]...)
	w.AddDomainEvent(NewItemRemovedEvent(w, removed))
	return nil
}

// Clear removes every entry and returns how many were removed
func (w *Wishlist) Clear() int {
	cleared := len(w.entries)
	w.entries = w.entries[:0]
	return cleared
}

// Contains reports whether the SKU is saved
func (w *Wishlist) Contains(sku string) bool {
	return w.indexBySKU(strings.TrimSpace(sku)) >= 0
}

// Entries returns a copy of the saved entries
func (w *Wishlist) Entries() []Entry {
	out := make([]Entry, len(w.entries))
	copy(out, w.entries)
	return out
}

// Count returns the number of saved entries
func (w *Wishlist) Count() int {
	return len(w.entries)
}

// IsEmpty reports whether the wishlist has no entries
func (w *Wishlist) IsEmpty() bool {
	return len(w.entries) == 0
}

func (w *Wishlist) indexBySKU(sku string) int {
	for i := range w.entries {
		if w.entries[i].SKU == sku {
			return i
		}
	}
	return -1
}
