// Package integration wires the full storefront stack against an
// in-memory database and walks complete shopping flows through it.
package integration

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	cartapp "github.com/webmart/storefront/internal/application/cart"
	catalogapp "github.com/webmart/storefront/internal/application/catalog"
	checkoutapp "github.com/webmart/storefront/internal/application/checkout"
	"github.com/webmart/storefront/internal/application/notification"
	promoapp "github.com/webmart/storefront/internal/application/promotion"
	wishlistapp "github.com/webmart/storefront/internal/application/wishlist"
	"github.com/webmart/storefront/internal/domain/catalog"
	"github.com/webmart/storefront/internal/domain/checkout"
	"github.com/webmart/storefront/internal/infrastructure/config"
	"github.com/webmart/storefront/internal/infrastructure/event"
	"github.com/webmart/storefront/internal/infrastructure/persistence"
	"github.com/webmart/storefront/internal/infrastructure/storage"
	"github.com/webmart/storefront/tests/testutil"
)

// Setup holds the fully wired storefront stack for a test
type Setup struct {
	DB          *persistence.Database
	Store       storage.KVStore
	ProductRepo catalog.ProductRepository
	Products    *catalogapp.ProductService
	Carts       *cartapp.Service
	Promos      *promoapp.Service
	Wishlists   *wishlistapp.Service
	Checkouts   *checkoutapp.Service
	Center      *notification.Center
	Events      *testutil.MockEventHandler
}

func newSetup(t *testing.T) *Setup {
	t.Helper()
	ctx := context.Background()

	db, err := persistence.NewDatabase(&config.DatabaseConfig{Path: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, db.Migrate())
	t.Cleanup(func() {
		assert.NoError(t, db.Close())
	})

	productRepo := persistence.NewGormProductRepository(db.DB)
	require.NoError(t, persistence.SeedCatalog(ctx, productRepo))

	store := persistence.NewGormKVStore(db.DB, 0)
	log := zap.NewNop()

	eventBus := event.NewInMemoryEventBus(log)
	center := notification.NewCenter(5, time.Minute, log)
	eventBus.Subscribe(notification.NewEventListener(center))
	recorder := testutil.NewMockEventHandler()
	eventBus.Subscribe(recorder)

	carts := cartapp.NewService(ctx, persistence.NewKVCartRepository(store), productRepo, eventBus, log, cartapp.DefaultConfig())
	promos := promoapp.NewService(persistence.NewKVPromoRepository(store), eventBus, log)

	return &Setup{
		DB:          db,
		Store:       store,
		ProductRepo: productRepo,
		Products:    catalogapp.NewProductService(productRepo),
		Carts:       carts,
		Promos:      promos,
		Wishlists:   wishlistapp.NewService(ctx, persistence.NewKVWishlistRepository(store), eventBus, log),
		Checkouts:   checkoutapp.NewService(carts, promos, eventBus, log, 0),
		Center:      center,
		Events:      recorder,
	}
}

func shippingAddress() checkout.ShippingAddress {
	return checkout.ShippingAddress{
		FirstName: "Priya",
		LastName:  "Sharma",
		Email:     "priya.sharma@example.com",
		Phone:     "9876543210",
		Street:    "221B MG Road",
		City:      "Bengaluru",
		State:     "Karnataka",
		Pincode:   "560001",
		Country:   "India",
	}
}

func TestShoppingFlow(t *testing.T) {
	ctx := context.Background()
	s := newSetup(t)

	// browse
	page, err := s.Products.List(ctx, catalog.DefaultListFilter())
	require.NoError(t, err)
	assert.EqualValues(t, 6, page.Total)

	// fill the cart
	_, err = s.Carts.AddProduct(ctx, "SKU-1001", 1)
	require.NoError(t, err)
	_, err = s.Carts.AddProduct(ctx, "SKU-1006", 2)
	require.NoError(t, err)
	assert.Equal(t, 3, s.Carts.ItemCount())

	summary := s.Carts.Summary()
	// 299.99 + 2*49.99 = 399.97, over the free shipping threshold
	assert.Equal(t, "399.97", summary.Subtotal.StringFixed(2))
	assert.Equal(t, "0.00", summary.EstimatedShipping.StringFixed(2))
	assert.Equal(t, "33.00", summary.EstimatedTax.StringFixed(2))
	assert.Equal(t, "432.97", summary.Total.StringFixed(2))

	// apply a promotion
	applied, err := s.Promos.Apply(ctx, "save10")
	require.NoError(t, err)
	assert.Equal(t, "SAVE10", applied.Code)

	// check out
	require.NoError(t, s.Checkouts.Begin(ctx))
	require.NoError(t, s.Checkouts.SubmitAddress(ctx, shippingAddress()))

	payment, err := checkout.NewCardPayment(checkout.CardDetails{
		Number:     "4242 4242 4242 4242",
		Expiry:     "12/27",
		CVV:        "123",
		HolderName: "Priya Sharma",
	})
	require.NoError(t, err)
	require.NoError(t, s.Checkouts.SubmitPayment(ctx, payment))

	review, err := s.Checkouts.Review(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Priya Sharma", review.Address.FullName())
	assert.Equal(t, "Credit/Debit Card ending in 4242", review.PaymentDisplay)
	require.NotNil(t, review.Promo)
	assert.Equal(t, "SAVE10", review.Promo.Code)

	confirmation, err := s.Checkouts.PlaceOrder(ctx)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(confirmation.OrderID, "ORD"))
	assert.Equal(t, 3, confirmation.ItemCount)
	assert.Equal(t, "432.97", confirmation.Total.StringFixed(2))

	// placing the order consumes cart and promotion
	assert.Equal(t, 0, s.Carts.ItemCount())
	current, err := s.Promos.Current(ctx)
	require.NoError(t, err)
	assert.Nil(t, current)

	// events flowed through the bus to the notification center
	types := s.Events.HandledTypes()
	assert.Contains(t, types, "cart.item-added")
	assert.Contains(t, types, "promotion.applied")
	assert.Contains(t, types, "checkout.order-placed")

	var messages []string
	for _, toast := range s.Center.Visible() {
		messages = append(messages, toast.Message)
	}
	assert.Contains(t, messages, "Your order "+confirmation.OrderID+" has been placed successfully.")
}

func TestCartSurvivesRestart(t *testing.T) {
	ctx := context.Background()
	s := newSetup(t)

	_, err := s.Carts.AddProduct(ctx, "SKU-1004", 2)
	require.NoError(t, err)

	// a new service over the same store sees the saved cart
	rehydrated := cartapp.NewService(ctx, persistence.NewKVCartRepository(s.Store), s.ProductRepo,
		event.NewInMemoryEventBus(zap.NewNop()), zap.NewNop(), cartapp.DefaultConfig())

	assert.Equal(t, 2, rehydrated.ItemCount())
	items := rehydrated.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "SKU-1004", items[0].Product.SKU)
}

func TestStockReconciliationFlow(t *testing.T) {
	ctx := context.Background()
	s := newSetup(t)

	_, err := s.Carts.AddProduct(ctx, "SKU-1002", 5)
	require.NoError(t, err)

	// stock drops in the catalog after the item was added
	product, err := s.ProductRepo.FindBySKU(ctx, "SKU-1002")
	require.NoError(t, err)
	require.NoError(t, product.SetStock(2))
	product.ClearDomainEvents()
	require.NoError(t, s.ProductRepo.Save(ctx, product))

	issues, err := s.Carts.ValidateStock(ctx)
	require.NoError(t, err)
	require.Len(t, issues, 1)

	fixed, err := s.Carts.FixStockIssues(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, fixed)
	assert.Equal(t, 2, s.Carts.ItemCount())
	assert.Contains(t, s.Events.HandledTypes(), "cart.stock-issues-fixed")
}

func TestCheckoutRejectsEmptyCart(t *testing.T) {
	s := newSetup(t)

	err := s.Checkouts.Begin(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Your cart is empty")
}

func TestWishlistFlow(t *testing.T) {
	ctx := context.Background()
	s := newSetup(t)

	product, err := s.ProductRepo.FindBySKU(ctx, "SKU-1003")
	require.NoError(t, err)

	added, err := s.Wishlists.Toggle(ctx, product)
	require.NoError(t, err)
	assert.True(t, added)
	assert.True(t, s.Wishlists.Contains("SKU-1003"))

	// a second toggle removes it
	added, err = s.Wishlists.Toggle(ctx, product)
	require.NoError(t, err)
	assert.False(t, added)
	assert.Equal(t, 0, s.Wishlists.Count())
}
