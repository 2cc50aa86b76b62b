package cms

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/shopspring/decimal"
	pkgerrors "github.com/tiopelotte/storefront-api/pkg/errors"
)

// Product is the CMS product document. Prices are decimal so totals never
// accumulate float error.
type Product struct {
	ID          int             `json:"id"`
	Slug        string          `json:"slug"`
	Name        string          `json:"productName"`
	Description string          `json:"descripcion"`
	Price       decimal.Decimal `json:"price"`
	Unit        string          `json:"unidadMedida"`
	ImageURL    string          `json:"imgURL"`
	Category    string          `json:"categorySlug"`
	Active      bool            `json:"active"`
	Featured    bool            `json:"isFeatured"`
	Offer       bool            `json:"isOffer"`
}

// ListProducts fetches the active product collection.
func (c *Client) ListProducts(ctx context.Context) ([]Product, error) {
	var out struct {
		Data []Product `json:"data"`
	}
	path := "/api/products?filters[active][$eq]=true&pagination[pageSize]=200&sort[0]=id"
	if err := c.do(ctx, http.MethodGet, path, "", nil, &out); err != nil {
		return nil, err
	}
	return out.Data, nil
}

// GetProductBySlug fetches a single product by its slug.
func (c *Client) GetProductBySlug(ctx context.Context, slug string) (*Product, error) {
	var out struct {
		Data []Product `json:"data"`
	}
	path := fmt.Sprintf("/api/products?filters[slug][$eq]=%s", url.QueryEscape(slug))
	if err := c.do(ctx, http.MethodGet, path, "", nil, &out); err != nil {
		return nil, err
	}
	if len(out.Data) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}
	return &out.Data[0], nil
}

// GetProductByID fetches a single product by id.
func (c *Client) GetProductByID(ctx context.Context, id int) (*Product, error) {
	var out struct {
		Data *Product `json:"data"`
	}
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/products/%d", id), "", nil, &out); err != nil {
		return nil, err
	}
	if out.Data == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}
	return out.Data, nil
}

// CreateProduct creates a product with the raw document supplied by the
// back-office. The storefront does not validate CMS schema beyond JSON shape.
func (c *Client) CreateProduct(ctx context.Context, attributes json.RawMessage) (json.RawMessage, error) {
	var out struct {
		Data json.RawMessage `json:"data"`
	}
	body := map[string]any{"data": attributes}
	if err := c.do(ctx, http.MethodPost, "/api/products", "", body, &out); err != nil {
		return nil, err
	}
	return out.Data, nil
}

// UpdateProduct updates a product document.
func (c *Client) UpdateProduct(ctx context.Context, id int, attributes json.RawMessage) (json.RawMessage, error) {
	var out struct {
		Data json.RawMessage `json:"data"`
	}
	body := map[string]any{"data": attributes}
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/api/products/%d", id), "", body, &out); err != nil {
		return nil, err
	}
	return out.Data, nil
}

// DeleteProduct removes a product document.
func (c *Client) DeleteProduct(ctx context.Context, id int) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/products/%d", id), "", nil, nil)
}

// ListIngredients returns the raw ingredient collection for the back-office.
func (c *Client) ListIngredients(ctx context.Context) ([]json.RawMessage, error) {
	var out struct {
		Data []json.RawMessage `json:"data"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/ingredientes?pagination[pageSize]=200", "", nil, &out); err != nil {
		return nil, err
	}
	return out.Data, nil
}

// UpdateIngredient updates an ingredient document (typically stock).
func (c *Client) UpdateIngredient(ctx context.Context, id int, attributes json.RawMessage) (json.RawMessage, error) {
	var out struct {
		Data json.RawMessage `json:"data"`
	}
	body := map[string]any{"data": attributes}
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/api/ingredientes/%d", id), "", body, &out); err != nil {
		return nil, err
	}
	return out.Data, nil
}
