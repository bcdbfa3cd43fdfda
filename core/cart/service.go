package cart

import (
	"context"
	"time"

	"github.com/irsalhamdi/shop-api/core/failure"
	"github.com/irsalhamdi/shop-api/core/product"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// Storer is the persistence the cart service needs. *Store implements it.
type Storer interface {
	FindOrCreate(ctx context.Context, userID string, now time.Time) (Cart, error)
	FetchByUser(ctx context.Context, userID string) (Cart, error)
	AddProduct(ctx context.Context, cartID, productID string, qty int, price decimal.Decimal, now time.Time) (Item, error)
	UpdateItemQuantity(ctx context.Context, itemID string, qty int, price decimal.Decimal, now time.Time) (Item, error)
	RemoveItem(ctx context.Context, itemID string, now time.Time) error
	FetchItem(ctx context.Context, itemID string) (Item, error)
	Clear(ctx context.Context, cartID string, now time.Time) error
}

// Catalog looks products up by id. *product.Catalog implements it.
type Catalog interface {
	Find(ctx context.Context, id string) (product.Product, error)
}

// Service holds the cart rules: stock checks against the catalog and
// ownership checks on items. Store errors are returned unchanged.
//
// Read-check-write sequences are not locked. Two concurrent adds of the
// same product may both pass the stock check.
type Service struct {
	log     logrus.FieldLogger
	store   Storer
	catalog Catalog
	now     func() time.Time
}

func NewService(log logrus.FieldLogger, store Storer, catalog Catalog) *Service {
	return &Service{
		log:     log,
		store:   store,
		catalog: catalog,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// GetCart returns the user's cart with product details, creating an empty
// cart on first access.
func (s *Service) GetCart(ctx context.Context, userID string) (Cart, error) {
	crt, err := s.store.FetchByUser(ctx, userID)
	if err == nil {
		return crt, nil
	}
	if !failure.Is(err, failure.CartNotFound) {
		return Cart{}, err
	}

	crt, err = s.store.FindOrCreate(ctx, userID, s.now())
	if err != nil {
		return Cart{}, err
	}

	s.log.WithFields(logrus.Fields{"user_id": userID, "cart_id": crt.ID}).Debug("cart created")
	return crt, nil
}

// AddToCart adds qty units of the product to the user's cart. Only the
// requested qty is checked against stock, not the merged line quantity.
func (s *Service) AddToCart(ctx context.Context, userID, productID string, qty int) (Item, error) {
	if qty <= 0 {
		return Item{}, failure.New(failure.InvalidCartOperation, "quantity must be at least 1")
	}

	prd, err := s.catalog.Find(ctx, productID)
	if err != nil {
		return Item{}, err
	}

	if !prd.HasStock(qty) {
		return Item{}, failure.New(failure.InvalidCartOperation, "not enough stock")
	}

	now := s.now()
	crt, err := s.store.FindOrCreate(ctx, userID, now)
	if err != nil {
		return Item{}, err
	}

	it, err := s.store.AddProduct(ctx, crt.ID, prd.ID, qty, prd.Price, now)
	if err != nil {
		return Item{}, err
	}

	s.log.WithFields(logrus.Fields{
		"user_id":    userID,
		"cart_id":    crt.ID,
		"product_id": prd.ID,
		"quantity":   it.Quantity,
	}).Debug("product added to cart")

	return it, nil
}

// UpdateItemQuantity sets the quantity of one of the user's items and
// refreshes its price snapshot. Quantities below 1 are rejected; removal
// is the way to drop an item.
func (s *Service) UpdateItemQuantity(ctx context.Context, userID, itemID string, qty int) (Item, error) {
	if qty <= 0 {
		return Item{}, failure.New(failure.InvalidCartOperation, "quantity must be at least 1, remove the item instead")
	}

	it, err := s.ownedItem(ctx, userID, itemID)
	if err != nil {
		return Item{}, err
	}

	prd, err := s.catalog.Find(ctx, it.ProductID)
	if err != nil {
		return Item{}, err
	}

	if !prd.HasStock(qty) {
		return Item{}, failure.New(failure.InvalidCartOperation, "not enough stock")
	}

	return s.store.UpdateItemQuantity(ctx, it.ID, qty, prd.Price, s.now())
}

func (s *Service) RemoveFromCart(ctx context.Context, userID, itemID string) error {
	it, err := s.ownedItem(ctx, userID, itemID)
	if err != nil {
		return err
	}

	return s.store.RemoveItem(ctx, it.ID, s.now())
}

// ClearCart empties the user's cart.
func (s *Service) ClearCart(ctx context.Context, userID string) error {
	now := s.now()
	crt, err := s.store.FindOrCreate(ctx, userID, now)
	if err != nil {
		return err
	}

	return s.store.Clear(ctx, crt.ID, now)
}

func (s *Service) ownedItem(ctx context.Context, userID, itemID string) (Item, error) {
	it, err := s.store.FetchItem(ctx, itemID)
	if err != nil {
		return Item{}, err
	}

	if it.UserID != userID {
		return Item{}, failure.New(failure.UnauthorizedCartAccess, "cart item does not belong to the user")
	}
	return it, nil
}
