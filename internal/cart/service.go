package cart

import (
	"context"
	"strings"

	"github.com/tiopelotte/storefront-api/pkg/cms"
	pkgerrors "github.com/tiopelotte/storefront-api/pkg/errors"
	"github.com/tiopelotte/storefront-api/pkg/logger"
)

// productGetter is the slice of the CMS client the cart needs for price
// snapshots.
type productGetter interface {
	GetProductByID(ctx context.Context, id int) (*cms.Product, error)
}

// Service exposes the cart operations used by the storefront.
type Service interface {
	Get(ctx context.Context, token string) (*Cart, error)
	AddItem(ctx context.Context, token string, productID, quantity int) (*Cart, error)
	RemoveItem(ctx context.Context, token string, productID int) (*Cart, error)
	Clear(ctx context.Context, token string) error
}

type service struct {
	store    Store
	products productGetter
	logg     *logger.Logger
}

// NewService wires the cart service.
func NewService(store Store, products productGetter, logg *logger.Logger) Service {
	return &service{store: store, products: products, logg: logg}
}

func validateToken(token string) error {
	if strings.TrimSpace(token) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "cart token is required")
	}
	return nil
}

func (s *service) Get(ctx context.Context, token string) (*Cart, error) {
	if err := validateToken(token); err != nil {
		return nil, err
	}
	return s.store.Fetch(ctx, token)
}

func (s *service) AddItem(ctx context.Context, token string, productID, quantity int) (*Cart, error) {
	if err := validateToken(token); err != nil {
		return nil, err
	}
	if quantity < 1 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be at least 1")
	}

	product, err := s.products.GetProductByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if !product.Active {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product is not available")
	}

	cart, err := s.store.Fetch(ctx, token)
	if err != nil {
		return nil, err
	}

	cart.upsertLine(Line{
		ProductID:   product.ID,
		ProductName: product.Name,
		UnitPrice:   product.Price,
		Unit:        product.Unit,
		ImageURL:    product.ImageURL,
		Quantity:    quantity,
	})

	if err := s.store.Save(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

func (s *service) RemoveItem(ctx context.Context, token string, productID int) (*Cart, error) {
	if err := validateToken(token); err != nil {
		return nil, err
	}

	cart, err := s.store.Fetch(ctx, token)
	if err != nil {
		return nil, err
	}
	// Removing a line that is not there is a no-op, not an error.
	if !cart.removeLine(productID) {
		return cart, nil
	}

	if err := s.store.Save(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

func (s *service) Clear(ctx context.Context, token string) error {
	if err := validateToken(token); err != nil {
		return err
	}
	return s.store.Delete(ctx, token)
}
