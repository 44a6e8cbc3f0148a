package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	cartapp "github.com/webmart/storefront/internal/application/cart"
	catalogapp "github.com/webmart/storefront/internal/application/catalog"
	checkoutapp "github.com/webmart/storefront/internal/application/checkout"
	"github.com/webmart/storefront/internal/application/notification"
	promoapp "github.com/webmart/storefront/internal/application/promotion"
	wishlistapp "github.com/webmart/storefront/internal/application/wishlist"
	"github.com/webmart/storefront/internal/domain/cart"
	"github.com/webmart/storefront/internal/domain/catalog"
	"github.com/webmart/storefront/internal/domain/checkout"
	"github.com/webmart/storefront/internal/domain/shared/valueobject"
	"github.com/webmart/storefront/internal/infrastructure/config"
	"github.com/webmart/storefront/internal/infrastructure/event"
	"github.com/webmart/storefront/internal/infrastructure/logger"
	"github.com/webmart/storefront/internal/infrastructure/persistence"
	"github.com/webmart/storefront/internal/infrastructure/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.Log.Level, cfg.Log.Format, cfg.Log.Output)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = log.Sync()
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal("storefront session failed", zap.Error(err))
	}
}

// run wires the full stack and walks one scripted shopping session
// through it: browse, fill the cart, apply a promotion, check out.
func run(ctx context.Context, cfg *config.Config, log *zap.Logger) error {
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database,
		logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level)))
	if err != nil {
		return err
	}
	defer func() {
		_ = db.Close()
	}()

	if err := db.Migrate(); err != nil {
		return err
	}

	productRepo := persistence.NewGormProductRepository(db.DB)
	if err := persistence.SeedCatalog(ctx, productRepo); err != nil {
		return err
	}

	var store storage.KVStore
	if cfg.Storage.Backend == "memory" {
		store = storage.NewMemoryStore(storage.WithMaxBytes(cfg.Storage.MaxBytes))
	} else {
		store = persistence.NewGormKVStore(db.DB, cfg.Storage.MaxBytes)
	}

	eventBus := event.NewInMemoryEventBus(log)
	center := notification.NewCenter(cfg.Notification.MaxVisible, cfg.Notification.Duration, log)
	eventBus.Subscribe(notification.NewEventListener(center))

	pricing := cart.PricingPolicy{
		TaxRatePercent:        decimal.NewFromFloat(cfg.Pricing.TaxRatePercent),
		FreeShippingThreshold: valueobject.NewMoneyUSDFromFloat(cfg.Pricing.FreeShippingThreshold),
		FlatShippingFee:       valueobject.NewMoneyUSDFromFloat(cfg.Pricing.FlatShippingFee),
	}

	products := catalogapp.NewProductService(productRepo)
	carts := cartapp.NewService(ctx, persistence.NewKVCartRepository(store), productRepo, eventBus, log, cartapp.Config{
		MaxItems:          cfg.Cart.MaxItems,
		EvictionBatchSize: cfg.Cart.EvictionBatchSize,
		Pricing:           pricing,
	})
	promos := promoapp.NewService(persistence.NewKVPromoRepository(store), eventBus, log)
	wishlists := wishlistapp.NewService(ctx, persistence.NewKVWishlistRepository(store), eventBus, log)
	checkouts := checkoutapp.NewService(carts, promos, eventBus, log, cfg.Checkout.ProcessingDelay)

	return shop(ctx, log, storefront{
		products:    products,
		productRepo: productRepo,
		carts:       carts,
		promos:      promos,
		wishlists:   wishlists,
		checkouts:   checkouts,
		center:      center,
	})
}

type storefront struct {
	products    *catalogapp.ProductService
	productRepo catalog.ProductRepository
	carts       *cartapp.Service
	promos      *promoapp.Service
	wishlists   *wishlistapp.Service
	checkouts   *checkoutapp.Service
	center      *notification.Center
}

func shop(ctx context.Context, log *zap.Logger, s storefront) error {
	page, err := s.products.List(ctx, catalog.DefaultListFilter())
	if err != nil {
		return err
	}
	log.Info("catalog loaded", zap.Int64("products", page.Total))
	for _, p := range page.Items {
		fmt.Printf("  %-10s %-30s $%-8s stock %d\n", p.SKU, p.Name, p.Price, p.StockCount)
	}

	categories, err := s.products.Categories(ctx)
	if err != nil {
		return err
	}
	for _, c := range categories {
		fmt.Printf("  %s (%d)\n", c.Category, c.Count)
	}

	if _, err := s.carts.AddProduct(ctx, "SKU-1001", 1); err != nil {
		return err
	}
	if _, err := s.carts.AddProduct(ctx, "SKU-1006", 2); err != nil {
		return err
	}

	watch, err := s.productRepo.FindBySKU(ctx, "SKU-1002")
	if err != nil {
		return err
	}
	if _, err := s.wishlists.Toggle(ctx, watch); err != nil {
		return err
	}

	if _, err := s.promos.Apply(ctx, "SAVE10"); err != nil {
		return err
	}

	issues, err := s.carts.ValidateStock(ctx)
	if err != nil {
		return err
	}
	if len(issues) > 0 {
		if _, err := s.carts.FixStockIssues(ctx); err != nil {
			return err
		}
	}

	summary := s.carts.Summary()
	fmt.Printf("\nSubtotal %s  Tax %s  Shipping %s  Total %s\n",
		summary.Subtotal, summary.EstimatedTax, summary.EstimatedShipping, summary.Total)

	if err := s.checkouts.Begin(ctx); err != nil {
		return err
	}
	if err := s.checkouts.SubmitAddress(ctx, checkout.ShippingAddress{
		FirstName: "Priya",
		LastName:  "Sharma",
		Email:     "priya.sharma@example.com",
		Phone:     "9876543210",
		Street:    "221B MG Road",
		City:      "Bengaluru",
		State:     "Karnataka",
		Pincode:   "560001",
		Country:   "India",
	}); err != nil {
		return err
	}
	if err := s.checkouts.SubmitPayment(ctx, checkout.NewCODPayment()); err != nil {
		return err
	}

	review, err := s.checkouts.Review(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("\nShipping to %s, %s\nPaying via %s\n",
		review.Address.FullName(), review.Address.City, review.PaymentDisplay)

	confirmation, err := s.checkouts.PlaceOrder(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("\nOrder %s placed: %d items, %s total\n",
		confirmation.OrderID, confirmation.ItemCount, confirmation.Total)

	for _, toast := range s.center.Visible() {
		fmt.Printf("  [%s] %s\n", toast.Type, toast.Message)
	}
	return nil
}
