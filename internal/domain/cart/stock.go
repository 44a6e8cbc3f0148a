package cart

import (
	"time"

	"github.com/google/uuid"
)

// IssueSeverity classifies a stock discrepancy
type IssueSeverity string

const (
	// IssueInsufficientStock means the requested quantity exceeds a
	// positive available stock.
	IssueInsufficientStock IssueSeverity = "insufficient_stock"
	// IssueOutOfStock means the product has no available stock at all.
	IssueOutOfStock IssueSeverity = "out_of_stock"
)

// StockIssue describes one line whose quantity exceeds current stock
type StockIssue struct {
	ItemID            uuid.UUID     `json:"item_id"`
	SKU               string        `json:"sku"`
	Name              string        `json:"name"`
	RequestedQuantity int           `json:"requested_quantity"`
	AvailableQuantity int           `json:"available_quantity"`
	Severity          IssueSeverity `json:"severity"`
}

// ValidateStock compares each line's quantity against the current
// stock counts, keyed by SKU. Lines whose SKU is absent from the map
// are skipped: no information means no issue. The cart is not mutated.
func (c *Cart) ValidateStock(stocks map[string]int) []StockIssue {
	var issues []StockIssue
	for _, item := range c.items {
		available, known := stocks[item.Product.SKU]
		if !known || item.Quantity <= available {
			continue
		}
		severity := IssueInsufficientStock
		if available <= 0 {
			severity = IssueOutOfStock
		}
		issues = append(issues, StockIssue{
			ItemID:            item.ID,
			SKU:               item.Product.SKU,
			Name:              item.Product.Name,
			RequestedQuantity: item.Quantity,
			AvailableQuantity: available,
			Severity:          severity,
		})
	}
	return issues
}

// FixStockIssues corrects every flagged line: out-of-stock lines are
// removed, over-subscribed lines are clamped down to the available
// stock. Returns the number of corrected lines; with unchanged stock
// counts a second call fixes nothing. A single event is recorded when
// at least one line was corrected.
func (c *Cart) FixStockIssues(stocks map[string]int) int {
	issues := c.ValidateStock(stocks)
	fixed := 0

	for _, issue := range issues {
		idx := c.indexByID(issue.ItemID)
		if idx < 0 {
			continue
		}
		if issue.AvailableQuantity <= 0 {
			c.items = append(c.items[:idx], c.items[idx+1:]...)
		} else {
			c.items[idx].Quantity = issue.AvailableQuantity
			c.items[idx].UpdatedAt = time.Now()
		}
		fixed++
	}

	if fixed > 0 {
		remaining := len(c.ValidateStock(stocks))
		c.AddDomainEvent(NewStockIssuesFixedEvent(c, fixed, remaining))
	}
	return fixed
}
