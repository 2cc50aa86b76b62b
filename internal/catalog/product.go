package catalog

import (
	"github.com/shopspring/decimal"
	"github.com/tiopelotte/storefront-api/pkg/cms"
)

// Product is the storefront view of a catalog item.
type Product struct {
	ID          int             `json:"id"`
	Slug        string          `json:"slug"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Unit        string          `json:"unit"`
	ImageURL    string          `json:"image_url"`
	Category    string          `json:"category"`
	Featured    bool            `json:"featured"`
	Offer       bool            `json:"offer"`
}

// FromCMS maps a CMS product document into the storefront view.
func FromCMS(p cms.Product) Product {
	return Product{
		ID:          p.ID,
		Slug:        p.Slug,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Unit:        p.Unit,
		ImageURL:    p.ImageURL,
		Category:    p.Category,
		Featured:    p.Featured,
		Offer:       p.Offer,
	}
}

func fromCMSList(items []cms.Product) []Product {
	out := make([]Product, 0, len(items))
	for _, item := range items {
		out = append(out, FromCMS(item))
	}
	return out
}
