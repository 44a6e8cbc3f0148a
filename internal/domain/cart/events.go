package cart

import (
	"github.com/google/uuid"

	"github.com/webmart/storefront/internal/domain/shared"
)

// Aggregate type constant
const AggregateTypeCart = "Cart"

// Event type constants; these names form the broadcast contract that
// listeners (notification center, page controllers) subscribe to.
const (
	EventTypeItemAdded        = "cart.item-added"
	EventTypeItemRemoved      = "cart.item-removed"
	EventTypeQuantityUpdated  = "cart.quantity-updated"
	EventTypeCartCleared      = "cart.cleared"
	EventTypeCartImported     = "cart.imported"
	EventTypeStockIssuesFixed = "cart.stock-issues-fixed"
)

// ItemAddedEvent is published when a product is added to the cart
type ItemAddedEvent struct {
	shared.BaseDomainEvent
	ItemID        uuid.UUID `json:"item_id"`
	SKU           string    `json:"sku"`
	Name          string    `json:"name"`
	AddedQuantity int       `json:"added_quantity"`
	LineQuantity  int       `json:"line_quantity"`
	TotalItems    int       `json:"total_items"`
}

// NewItemAddedEvent creates a new ItemAddedEvent
func NewItemAddedEvent(c *Cart, line LineItem, addedQuantity int) *ItemAddedEvent {
	return &ItemAddedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeItemAdded, AggregateTypeCart, c.ID),
		ItemID:          line.ID,
		SKU:             line.Product.SKU,
		Name:            line.Product.Name,
		AddedQuantity:   addedQuantity,
		LineQuantity:    line.Quantity,
		TotalItems:      c.ItemCount(),
	}
}

// ItemRemovedEvent is published when a line item is removed
type ItemRemovedEvent struct {
	shared.BaseDomainEvent
	ItemID     uuid.UUID `json:"item_id"`
	SKU        string    `json:"sku"`
	Name       string    `json:"name"`
	TotalItems int       `json:"total_items"`
}

// NewItemRemovedEvent creates a new ItemRemovedEvent
func NewItemRemovedEvent(c *Cart, removed LineItem) *ItemRemovedEvent {
	return &ItemRemovedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeItemRemoved, AggregateTypeCart, c.ID),
		ItemID:          removed.ID,
		SKU:             removed.Product.SKU,
		Name:            removed.Product.Name,
		TotalItems:      c.ItemCount(),
	}
}

// QuantityUpdatedEvent is published when a line's quantity changes
type QuantityUpdatedEvent struct {
	shared.BaseDomainEvent
	ItemID      uuid.UUID `json:"item_id"`
	SKU         string    `json:"sku"`
	OldQuantity int       `json:"old_quantity"`
	NewQuantity int       `json:"new_quantity"`
	TotalItems  int       `json:"total_items"`
}

// NewQuantityUpdatedEvent creates a new QuantityUpdatedEvent
func NewQuantityUpdatedEvent(c *Cart, line LineItem, oldQuantity int) *QuantityUpdatedEvent {
	return &QuantityUpdatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeQuantityUpdated, AggregateTypeCart, c.ID),
		ItemID:          line.ID,
		SKU:             line.Product.SKU,
		OldQuantity:     oldQuantity,
		NewQuantity:     line.Quantity,
		TotalItems:      c.ItemCount(),
	}
}

// CartClearedEvent is published when the cart is emptied
type CartClearedEvent struct {
	shared.BaseDomainEvent
	ClearedItemCount int `json:"cleared_item_count"`
}

// NewCartClearedEvent creates a new CartClearedEvent
func NewCartClearedEvent(c *Cart, clearedItemCount int) *CartClearedEvent {
	return &CartClearedEvent{
		BaseDomainEvent:  shared.NewBaseDomainEvent(EventTypeCartCleared, AggregateTypeCart, c.ID),
		ClearedItemCount: clearedItemCount,
	}
}

// CartImportedEvent is published when an export envelope is restored
type CartImportedEvent struct {
	shared.BaseDomainEvent
	ImportedItemCount int `json:"imported_item_count"`
}

// NewCartImportedEvent creates a new CartImportedEvent
func NewCartImportedEvent(c *Cart, importedItemCount int) *CartImportedEvent {
	return &CartImportedEvent{
		BaseDomainEvent:   shared.NewBaseDomainEvent(EventTypeCartImported, AggregateTypeCart, c.ID),
		ImportedItemCount: importedItemCount,
	}
}

// StockIssuesFixedEvent is published once per fix-up pass that
// corrected at least one line
type StockIssuesFixedEvent struct {
	shared.BaseDomainEvent
	FixedItemCount      int `json:"fixed_item_count"`
	RemainingIssueCount int `json:"remaining_issue_count"`
}

// NewStockIssuesFixedEvent creates a new StockIssuesFixedEvent
func NewStockIssuesFixedEvent(c *Cart, fixedItemCount, remainingIssueCount int) *StockIssuesFixedEvent {
	return &StockIssuesFixedEvent{
		BaseDomainEvent:     shared.NewBaseDomainEvent(EventTypeStockIssuesFixed, AggregateTypeCart, c.ID),
		FixedItemCount:      fixedItemCount,
		RemainingIssueCount: remainingIssueCount,
	}
}
