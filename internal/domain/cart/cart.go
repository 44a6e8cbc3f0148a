package cart

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/webmart/storefront/internal/domain/shared"
	"github.com/webmart/storefront/internal/domain/shared/valueobject"
)

// DefaultMaxItems is the maximum number of distinct line items a cart
// may hold.
const DefaultMaxItems = 50

// ExportVersion tags the cart export envelope format
const ExportVersion = "1.0"

// Cart is the aggregate root for the shopping cart. All mutation goes
// through its methods; derived totals are pure functions of the line
// list and the pricing policy.
type Cart struct {
	shared.BaseAggregateRoot
	items    []LineItem
	maxItems int
	pricing  PricingPolicy
}

// NewCart creates an empty cart
func NewCart(maxItems int, pricing PricingPolicy) *Cart {
	if maxItems <= 0 {
		maxItems = DefaultMaxItems
	}
	return &Cart{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		items:             make([]LineItem, 0),
		maxItems:          maxItems,
		pricing:           pricing,
	}
}

// NewCartFromItems restores a cart from persisted line items, dropping
// any structurally invalid entries.
func NewCartFromItems(items []LineItem, maxItems int, pricing PricingPolicy) *Cart {
	c := NewCart(maxItems, pricing)
	for _, item := range items {
		if item.Valid() {
			c.items = append(c.items, item)
		}
	}
	return c
}

// AddItem adds a product to the cart. Re-adding a product already in
// the cart increments the existing line instead of creating a
// duplicate. The resulting quantity must not exceed the product's
// stock ceiling and the cart must not exceed its maximum line count.
func (c *Cart) AddItem(product ProductSnapshot, quantity int) (*LineItem, error) {
	if strings.TrimSpace(product.SKU) == "" {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product snapshot must carry a SKU")
	}
	if quantity <= 0 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be greater than 0")
	}

	ceiling := product.StockCeiling()

	if idx := c.indexBySKU(product.SKU); idx >= 0 {
		newQuantity := c.items[idx].Quantity + quantity
		if newQuantity > ceiling {
			return nil, shared.NewDomainError("INSUFFICIENT_STOCK",
				fmt.Sprintf("Cannot add more than %d items of this product", ceiling))
		}
		c.items[idx].Quantity = newQuantity
		c.items[idx].UpdatedAt = time.Now()
		line := c.items[idx]
		c.AddDomainEvent(NewItemAddedEvent(c, line, quantity))
		return &line, nil
	}

	if quantity > ceiling {
		return nil, shared.NewDomainError("INSUFFICIENT_STOCK",
			fmt.Sprintf("Cannot add more than %d items of this product", ceiling))
	}
	if len(c.items) >= c.maxItems {
		return nil, shared.ErrCartFull
	}

	line := NewLineItem(product, quantity)
	c.items = append(c.items, line)
	c.AddDomainEvent(NewItemAddedEvent(c, line, quantity))
	return &line, nil
}

// RemoveItem deletes a line item by id
func (c *Cart) RemoveItem(id uuid.UUID) (*LineItem, error) {
	idx := c.indexByID(id)
	if idx < 0 {
		return nil, shared.NewDomainError("NOT_FOUND", "Item not found in cart")
	}

	removed := c.items[idx]
	c.items = append(c.items[:idx], c.items[idx+1:]...)
	c.AddDomainEvent(NewItemRemovedEvent(c, removed))
	return &removed, nil
}

// UpdateItemQuantity sets the quantity of an existing line item. The
// new quantity must be positive and within the line's stock ceiling.
func (c *Cart) UpdateItemQuantity(id uuid.UUID, newQuantity int) error {
	if newQuantity <= 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be greater than 0")
	}

	idx := c.indexByID(id)
	if idx < 0 {
		return shared.NewDomainError("NOT_FOUND", "Item not found in cart")
	}

	ceiling := c.items[idx].Product.StockCeiling()
	if newQuantity > ceiling {
		return shared.NewDomainError("INSUFFICIENT_STOCK",
			fmt.Sprintf("Cannot add more than %d items of this product", ceiling))
	}

	oldQuantity := c.items[idx].Quantity
	c.items[idx].Quantity = newQuantity
	c.items[idx].UpdatedAt = time.Now()
	c.AddDomainEvent(NewQuantityUpdatedEvent(c, c.items[idx], oldQuantity))
	return nil
}

// Clear empties the cart and returns the number of removed lines
func (c *Cart) Clear() int {
	cleared := len(c.items)
	c.items = c.items[:0]
	c.AddDomainEvent(NewCartClearedEvent(c, cleared))
	return cleared
}

// EvictOldest removes up to n lines with the earliest AddedAt and
// returns them. Used by the storage quota mitigation; records no event.
func (c *Cart) EvictOldest(n int) []LineItem {
	if n <= 0 || len(c.items) == 0 {
		return nil
	}
	sort.SliceStable(c.items, func(i, j int) bool {
		return c.items[i].AddedAt.Before(c.items[j].AddedAt)
	})
	if n > len(c.items) {
		n = len(c.items)
	}
	evicted := make([]LineItem, n)
	copy(evicted, c.items[:n])
	c.items = append(c.items[:0], c.items[n:]...)
	return evicted
}

// Items returns a copy of the line items
func (c *Cart) Items() []LineItem {
	items := make([]LineItem, len(c.items))
	copy(items, c.items)
	return items
}

// Item returns the line item with the given id, or nil
func (c *Cart) Item(id uuid.UUID) *LineItem {
	if idx := c.indexByID(id); idx >= 0 {
		item := c.items[idx]
		return &item
	}
	return nil
}

// ItemBySKU returns the line item holding the given product, or nil
func (c *Cart) ItemBySKU(sku string) *LineItem {
	if idx := c.indexBySKU(sku); idx >= 0 {
		item := c.items[idx]
		return &item
	}
	return nil
}

// ItemCount returns the sum of all line quantities
func (c *Cart) ItemCount() int {
	total := 0
	for _, item := range c.items {
		total += item.Quantity
	}
	return total
}

// UniqueItemCount returns the number of distinct lines
func (c *Cart) UniqueItemCount() int {
	return len(c.items)
}

// IsEmpty reports whether the cart holds no lines
func (c *Cart) IsEmpty() bool {
	return len(c.items) == 0
}

// IsFull reports whether the cart is at its maximum line count
func (c *Cart) IsFull() bool {
	return len(c.items) >= c.maxItems
}

// MaxItems returns the configured line-count ceiling
func (c *Cart) MaxItems() int {
	return c.maxItems
}

// Subtotal returns the sum of all line totals
func (c *Cart) Subtotal() valueobject.Money {
	subtotal := valueobject.ZeroUSD()
	for _, item := range c.items {
		subtotal = subtotal.MustAdd(item.LineTotal())
	}
	return subtotal
}

// EstimatedTax returns the flat-rate tax estimate over the subtotal
func (c *Cart) EstimatedTax() valueobject.Money {
	return c.pricing.Tax(c.Subtotal())
}

// EstimatedShipping returns the tiered shipping estimate
func (c *Cart) EstimatedShipping() valueobject.Money {
	return c.pricing.Shipping(c.Subtotal())
}

// Total returns subtotal plus tax plus shipping
func (c *Cart) Total() valueobject.Money {
	return c.Subtotal().MustAdd(c.EstimatedTax()).MustAdd(c.EstimatedShipping())
}

// Summary aggregates the derived getters for display
type Summary struct {
	ItemCount         int               `json:"item_count"`
	UniqueItemCount   int               `json:"unique_item_count"`
	Subtotal          valueobject.Money `json:"subtotal"`
	EstimatedTax      valueobject.Money `json:"estimated_tax"`
	EstimatedShipping valueobject.Money `json:"estimated_shipping"`
	Total             valueobject.Money `json:"total"`
	IsEmpty           bool              `json:"is_empty"`
	IsFull            bool              `json:"is_full"`
}

// Summary returns the cart summary for display
func (c *Cart) Summary() Summary {
	return Summary{
		ItemCount:         c.ItemCount(),
		UniqueItemCount:   c.UniqueItemCount(),
		Subtotal:          c.Subtotal(),
		EstimatedTax:      c.EstimatedTax(),
		EstimatedShipping: c.EstimatedShipping(),
		Total:             c.Total(),
		IsEmpty:           c.IsEmpty(),
		IsFull:            c.IsFull(),
	}
}

// Statistics summarizes cart contents beyond the pricing summary
type Statistics struct {
	TotalItems      int               `json:"total_items"`
	AverageQuantity float64           `json:"average_quantity"`
	MostAddedSKU    string            `json:"most_added_sku,omitempty"`
	CartValue       valueobject.Money `json:"cart_value"`
}

// Statistics returns usage statistics over the current lines
func (c *Cart) Statistics() Statistics {
	stats := Statistics{CartValue: c.Subtotal()}
	if len(c.items) == 0 {
		return stats
	}

	stats.TotalItems = c.ItemCount()
	stats.AverageQuantity = float64(stats.TotalItems) / float64(len(c.items))

	best := ""
	bestQty := -1
	for _, item := range c.items {
		if item.Quantity > bestQty {
			best, bestQty = item.Product.SKU, item.Quantity
		}
	}
	stats.MostAddedSKU = best
	return stats
}

type exportEnvelope struct {
	Version    string     `json:"version"`
	ExportedAt time.Time  `json:"exported_at"`
	Items      []LineItem `json:"items"`
	Summary    Summary    `json:"summary"`
}

// Export serializes the whole cart to a versioned JSON envelope
func (c *Cart) Export() (string, error) {
	envelope := exportEnvelope{
		Version:    ExportVersion,
		ExportedAt: time.Now(),
		Items:      c.Items(),
		Summary:    c.Summary(),
	}
	data, err := json.MarshalIndent(envelope, "", "  ")
	if err != nil {
		return "", fmt.Errorf("export cart: %w", err)
	}
	return string(data), nil
}

// Import replaces the cart contents from an export envelope. Malformed
// input, envelopes without a single valid item, and envelopes exceeding
// the cart's line ceiling are rejected without mutating the cart.
func (c *Cart) Import(data string) error {
	var envelope exportEnvelope
	if err := json.Unmarshal([]byte(data), &envelope); err != nil {
		return shared.NewDomainError("INVALID_IMPORT", "Invalid cart data format")
	}
	if envelope.Items == nil {
		return shared.NewDomainError("INVALID_IMPORT", "Invalid cart data format")
	}

	valid := make([]LineItem, 0, len(envelope.Items))
	for _, item := range envelope.Items {
		if item.Valid() {
			valid = append(valid, item)
		}
	}
	if len(valid) == 0 {
		return shared.NewDomainError("INVALID_IMPORT", "No valid items found in imported data")
	}
	if len(valid) > c.maxItems {
		return shared.NewDomainError("INVALID_IMPORT",
			fmt.Sprintf("Imported cart has too many items. Maximum allowed: %d", c.maxItems))
	}

	c.items = valid
	c.AddDomainEvent(NewCartImportedEvent(c, len(valid)))
	return nil
}

func (c *Cart) indexByID(id uuid.UUID) int {
	for i, item := range c.items {
		if item.ID == id {
			return i
		}
	}
	return -1
}

func (c *Cart) indexBySKU(sku string) int {
	for i, item := range c.items {
		if item.Product.SKU == sku {
			return i
		}
	}
	return -1
}
