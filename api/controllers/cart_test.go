package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	cartsvc "github.com/tiopelotte/storefront-api/internal/cart"
	pkgerrors "github.com/tiopelotte/storefront-api/pkg/errors"
)

type stubCartService struct {
	cart        *cartsvc.Cart
	err         error
	lastToken   string
	lastProduct int
	lastQty     int
	clearCalls  int
}

func (s *stubCartService) Get(_ context.Context, token string) (*cartsvc.Cart, error) {
	s.lastToken = token
	return s.cart, s.err
}

func (s *stubCartService) AddItem(_ context.Context, token string, productID, quantity int) (*cartsvc.Cart, error) {
	s.lastToken = token
	s.lastProduct = productID
	s.lastQty = quantity
	return s.cart, s.err
}

func (s *stubCartService) RemoveItem(_ context.Context, token string, productID int) (*cartsvc.Cart, error) {
	s.lastToken = token
	s.lastProduct = productID
	return s.cart, s.err
}

func (s *stubCartService) Clear(_ context.Context, token string) error {
	s.lastToken = token
	s.clearCalls++
	return s.err
}

func sampleCart() *cartsvc.Cart {
	cart := cartsvc.NewCart("cart-abc")
	cart.Lines = []cartsvc.Line{
		{ProductID: 1, ProductName: "Sorrentinos", UnitPrice: decimal.NewFromInt(4500), Quantity: 2},
		{ProductID: 2, ProductName: "Salsa fileto", UnitPrice: decimal.NewFromInt(1200), Quantity: 1},
	}
	return cart
}

func TestGetCartReturnsDocument(t *testing.T) {
	svc := &stubCartService{cart: sampleCart()}
	handler := GetCart(svc, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil)
	req.Header.Set("X-Cart-Token", "cart-abc")
	resp := httptest.NewRecorder()
	handler(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}
	if svc.lastToken != "cart-abc" {
		t.Fatalf("expected token forwarded, got %q", svc.lastToken)
	}
	var envelope struct {
		Data cartResponse `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.Total != "10200" {
		t.Fatalf("expected total 10200, got %s", envelope.Data.Total)
	}
	if envelope.Data.ItemCount != 3 {
		t.Fatalf("expected 3 items, got %d", envelope.Data.ItemCount)
	}
}

func TestGetCartRequiresTokenHeader(t *testing.T) {
	handler := GetCart(&stubCartService{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil)
	resp := httptest.NewRecorder()
	handler(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 without token, got %d", resp.Code)
	}
}

func TestAddCartItemForwardsPayload(t *testing.T) {
	svc := &stubCartService{cart: sampleCart()}
	handler := AddCartItem(svc, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/cart/items", strings.NewReader(`{"product_id":1,"quantity":2}`))
	req.Header.Set("X-Cart-Token", "cart-abc")
	resp := httptest.NewRecorder()
	handler(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}
	if svc.lastProduct != 1 || svc.lastQty != 2 {
		t.Fatalf("payload not forwarded: product=%d qty=%d", svc.lastProduct, svc.lastQty)
	}
}

func TestAddCartItemRejectsZeroQuantity(t *testing.T) {
	handler := AddCartItem(&stubCartService{}, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/cart/items", strings.NewReader(`{"product_id":1,"quantity":0}`))
	req.Header.Set("X-Cart-Token", "cart-abc")
	resp := httptest.NewRecorder()
	handler(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
}

func TestAddCartItemReportsUnavailableProduct(t *testing.T) {
	svc := &stubCartService{err: pkgerrors.New(pkgerrors.CodeNotFound, "product is not available")}
	handler := AddCartItem(svc, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/cart/items", strings.NewReader(`{"product_id":9,"quantity":1}`))
	req.Header.Set("X-Cart-Token", "cart-abc")
	resp := httptest.NewRecorder()
	handler(resp, req)

	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.Code)
	}
}

func TestRemoveCartItemParsesPathID(t *testing.T) {
	svc := &stubCartService{cart: sampleCart()}
	handler := RemoveCartItem(svc, nil)

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/cart/items/2", nil)
	req.Header.Set("X-Cart-Token", "cart-abc")
	req = withURLParam(req, "productID", "2")
	resp := httptest.NewRecorder()
	handler(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}
	if svc.lastProduct != 2 {
		t.Fatalf("expected product 2, got %d", svc.lastProduct)
	}
}

func TestRemoveCartItemRejectsBadID(t *testing.T) {
	handler := RemoveCartItem(&stubCartService{}, nil)

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/cart/items/abc", nil)
	req.Header.Set("X-Cart-Token", "cart-abc")
	req = withURLParam(req, "productID", "abc")
	resp := httptest.NewRecorder()
	handler(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
}

func TestClearCartEmptiesDocument(t *testing.T) {
	svc := &stubCartService{}
	handler := ClearCart(svc, nil)

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/cart", nil)
	req.Header.Set("X-Cart-Token", "cart-abc")
	resp := httptest.NewRecorder()
	handler(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if svc.clearCalls != 1 {
		t.Fatalf("expected one clear call, got %d", svc.clearCalls)
	}
}
