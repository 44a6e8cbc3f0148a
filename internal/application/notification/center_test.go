package notification

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/webmart/storefront/internal/domain/cart"
	"github.com/webmart/storefront/internal/domain/promotion"
	"github.com/webmart/storefront/internal/domain/shared"
)

func newTestCenter() *Center {
	// long duration so self-dismissal never races the assertions
	return NewCenter(DefaultMaxVisible, time.Minute, zap.NewNop())
}

func TestCenter_Show(t *testing.T) {
	t.Run("stacks toasts oldest first", func(t *testing.T) {
		c := newTestCenter()
		c.Success("first")
		c.Error("second")

		visible := c.Visible()
		require.Len(t, visible, 2)
		assert.Equal(t, "first", visible[0].Message)
		assert.Equal(t, TypeSuccess, visible[0].Type)
		assert.Equal(t, "second", visible[1].Message)
		assert.Equal(t, TypeError, visible[1].Type)
	})

	t.Run("carries the search severity", func(t *testing.T) {
		c := newTestCenter()
		c.Show(`No results for "gizmo"`, TypeSearch)

		visible := c.Visible()
		require.Len(t, visible, 1)
		assert.Equal(t, TypeSearch, visible[0].Type)
	})

	t.Run("evicts the oldest toast beyond the limit", func(t *testing.T) {
		c := NewCenter(3, time.Minute, zap.NewNop())
		c.Info("a")
		c.Info("b")
		c.Info("c")
		c.Info("d")

		visible := c.Visible()
		require.Len(t, visible, 3)
		assert.Equal(t, "b", visible[0].Message)
		assert.Equal(t, "d", visible[2].Message)
	})

	t.Run("non-persistent toast dismisses itself", func(t *testing.T) {
		c := NewCenter(5, time.Minute, zap.NewNop())
		c.Show("fleeting", TypeInfo, WithDuration(10*time.Millisecond))

		assert.Eventually(t, func() bool {
			return len(c.Visible()) == 0
		}, time.Second, 5*time.Millisecond)
	})

	t.Run("persistent toast stays", func(t *testing.T) {
		c := NewCenter(5, 10*time.Millisecond, zap.NewNop())
		toast := c.Show("sticky", TypeWarning, WithPersistent())

		time.Sleep(50 * time.Millisecond)
		require.Len(t, c.Visible(), 1)

		assert.True(t, c.Dismiss(toast.ID))
		assert.Empty(t, c.Visible())
	})
}

func TestCenter_Dismiss(t *testing.T) {
	c := newTestCenter()
	toast := c.Info("hello")

	assert.True(t, c.Dismiss(toast.ID))
	assert.False(t, c.Dismiss(toast.ID))
	assert.False(t, c.Dismiss(uuid.New()))
}

func TestCenter_DismissAll(t *testing.T) {
	c := newTestCenter()
	c.Info("a")
	c.Info("b")

	c.DismissAll()
	assert.Empty(t, c.Visible())
}

func TestCenter_Invoke(t *testing.T) {
	t.Run("runs the callback and dismisses", func(t *testing.T) {
		c := newTestCenter()
		invoked := false
		toast := c.Show("undo?", TypeWarning, WithPersistent(), WithAction("Undo", func() {
			invoked = true
		}))

		assert.True(t, c.Invoke(toast.ID))
		assert.True(t, invoked)
		assert.Empty(t, c.Visible())
	})

	t.Run("toast without action", func(t *testing.T) {
		c := newTestCenter()
		toast := c.Info("plain")

		assert.False(t, c.Invoke(toast.ID))
		assert.Len(t, c.Visible(), 1)
	})
}

func TestEventListener(t *testing.T) {
	t.Run("maps cart events to toasts", func(t *testing.T) {
		c := newTestCenter()
		l := NewEventListener(c)

		testCart := cart.NewCart(cart.DefaultMaxItems, cart.DefaultPricingPolicy())
		stock := 5
		line, err := testCart.AddItem(cart.ProductSnapshot{SKU: "SKU-1", Name: "Widget", StockCount: &stock}, 2)
		require.NoError(t, err)

		require.NoError(t, l.Handle(context.Background(), cart.NewItemAddedEvent(testCart, *line, 2)))

		visible := c.Visible()
		require.Len(t, visible, 1)
		assert.Equal(t, "Item added to cart! (2 items total)", visible[0].Message)
		assert.Equal(t, TypeCart, visible[0].Type)
	})

	t.Run("maps promotion events to toasts", func(t *testing.T) {
		c := newTestCenter()
		l := NewEventListener(c)

		applied, err := promotion.Apply("SAVE10")
		require.NoError(t, err)
		events := applied.GetDomainEvents()
		require.Len(t, events, 1)

		require.NoError(t, l.Handle(context.Background(), events[0]))

		visible := c.Visible()
		require.Len(t, visible, 1)
		assert.Equal(t, `Promo code "SAVE10" applied successfully!`, visible[0].Message)
	})

	t.Run("ignores unknown events", func(t *testing.T) {
		c := newTestCenter()
		l := NewEventListener(c)

		event := shared.NewBaseDomainEvent("other.event", "Other", uuid.New())
		require.NoError(t, l.Handle(context.Background(), &event))
		assert.Empty(t, c.Visible())
	})

	t.Run("subscribes to the broadcast contract", func(t *testing.T) {
		l := NewEventListener(newTestCenter())
		types := l.EventTypes()
		assert.Contains(t, types, cart.EventTypeItemAdded)
		assert.Contains(t, types, "checkout.order-placed")
		assert.Contains(t, types, "promotion.applied")
	})
}
