package wishlist

import (
	"github.com/webmart/storefront/internal/domain/shared"
)

// Aggregate type constant
const AggregateTypeWishlist = "Wishlist"

// Event type constants
const (
	EventTypeItemAdded   = "wishlist.item-added"
	EventTypeItemRemoved = "wishlist.item-removed"
)

// ItemAddedEvent is published when a product is saved to the wishlist
type ItemAddedEvent struct {
	shared.BaseDomainEvent
	SKU        string `json:"sku"`
	Name       string `json:"name"`
	TotalSaved int    `json:"total_saved"`
}

// NewItemAddedEvent creates a new ItemAddedEvent
func NewItemAddedEvent(w *Wishlist, entry Entry) *ItemAddedEvent {
	return &ItemAddedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeItemAdded, AggregateTypeWishlist, w.ID),
		SKU:             entry.SKU,
		Name:            entry.Name,
		TotalSaved:      len(w.entries),
	}
}

// ItemRemovedEvent is published when a saved product is removed
type ItemRemovedEvent struct {
	shared.BaseDomainEvent
	SKU        string `json:"sku"`
	Name       string `json:"name"`
	TotalSaved int    `json:"total_saved"`
}

// NewItemRemovedEvent creates a new ItemRemovedEvent
func NewItemRemovedEvent(w *Wishlist, entry Entry) *ItemRemovedEvent {
	return &ItemRemovedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeItemRemoved, AggregateTypeWishlist, w.ID),
		SKU:             entry.SKU,
		Name:            entry.Name,
		TotalSaved:      len(w.entries),
	}
}
