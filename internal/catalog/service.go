package catalog

import (
	"context"

	"github.com/tiopelotte/storefront-api/pkg/cms"
	pkgerrors "github.com/tiopelotte/storefront-api/pkg/errors"
	"github.com/tiopelotte/storefront-api/pkg/logger"
	"github.com/tiopelotte/storefront-api/pkg/pagination"
)

// lister is the slice of the CMS client the catalog reads from.
type lister interface {
	ListProducts(ctx context.Context) ([]cms.Product, error)
	GetProductBySlug(ctx context.Context, slug string) (*cms.Product, error)
}

// ListPage is one resolved page of filtered catalog results.
type ListPage struct {
	Products   []Product         `json:"products"`
	Pagination pagination.Result `json:"pagination"`
}

// Service exposes the browse surface of the catalog.
type Service interface {
	List(ctx context.Context, filter Filter, page pagination.Page) (*ListPage, error)
	GetBySlug(ctx context.Context, slug string) (*Product, error)
	Featured(ctx context.Context, limit int) ([]Product, error)
	Offers(ctx context.Context) ([]Product, error)
}

type service struct {
	cms  lister
	logg *logger.Logger
}

// NewService wires the catalog service on top of the CMS client.
func NewService(cmsClient lister, logg *logger.Logger) Service {
	return &service{cms: cmsClient, logg: logg}
}

func (s *service) List(ctx context.Context, filter Filter, page pagination.Page) (*ListPage, error) {
	items, err := s.cms.ListProducts(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "listing catalog products")
	}

	matched := filter.Apply(fromCMSList(items))
	pageItems, result := pagination.Slice(matched, page)

	return &ListPage{Products: pageItems, Pagination: result}, nil
}

func (s *service) GetBySlug(ctx context.Context, slug string) (*Product, error) {
	if slug == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product slug is required")
	}
	item, err := s.cms.GetProductBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	product := FromCMS(*item)
	return &product, nil
}

func (s *service) Featured(ctx context.Context, limit int) ([]Product, error) {
	items, err := s.cms.ListProducts(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "listing featured products")
	}
	featured := make([]Product, 0, limit)
	for _, item := range items {
		if !item.Featured {
			continue
		}
		featured = append(featured, FromCMS(item))
		if limit > 0 && len(featured) == limit {
			break
		}
	}
	return featured, nil
}

func (s *service) Offers(ctx context.Context) ([]Product, error) {
	items, err := s.cms.ListProducts(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "listing offer products")
	}
	offers := make([]Product, 0)
	for _, item := range items {
		if item.Offer {
			offers = append(offers, FromCMS(item))
		}
	}
	return offers, nil
}
