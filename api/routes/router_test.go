package routes

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	cartsvc "github.com/tiopelotte/storefront-api/internal/cart"
	"github.com/tiopelotte/storefront-api/internal/catalog"
	checkoutsvc "github.com/tiopelotte/storefront-api/internal/checkout"
	sessionsvc "github.com/tiopelotte/storefront-api/internal/session"
	"github.com/tiopelotte/storefront-api/pkg/cms"
	"github.com/tiopelotte/storefront-api/pkg/config"
	pkgerrors "github.com/tiopelotte/storefront-api/pkg/errors"
	"github.com/tiopelotte/storefront-api/pkg/pagination"
)

type stubCatalog struct{}

func (stubCatalog) List(context.Context, catalog.Filter, pagination.Page) (*catalog.ListPage, error) {
	return &catalog.ListPage{Products: []catalog.Product{}}, nil
}

func (stubCatalog) GetBySlug(context.Context, string) (*catalog.Product, error) {
	return &catalog.Product{ID: 1, Slug: "sorrentinos"}, nil
}

func (stubCatalog) Featured(context.Context, int) ([]catalog.Product, error) {
	return nil, nil
}

func (stubCatalog) Offers(context.Context) ([]catalog.Product, error) {
	return nil, nil
}

type stubCart struct{}

func (stubCart) Get(_ context.Context, token string) (*cartsvc.Cart, error) {
	return cartsvc.NewCart(token), nil
}

func (stubCart) AddItem(_ context.Context, token string, _, _ int) (*cartsvc.Cart, error) {
	return cartsvc.NewCart(token), nil
}

func (stubCart) RemoveItem(_ context.Context, token string, _ int) (*cartsvc.Cart, error) {
	return cartsvc.NewCart(token), nil
}

func (stubCart) Clear(context.Context, string) error { return nil }

type stubCheckout struct{}

func (stubCheckout) Start(context.Context, string, checkoutsvc.OrderInput) (*checkoutsvc.StartResult, error) {
	return &checkoutsvc.StartResult{PedidoToken: "tok"}, nil
}

func (stubCheckout) Confirm(context.Context, string, string) (*checkoutsvc.ConfirmResult, error) {
	return &checkoutsvc.ConfirmResult{PedidoToken: "tok"}, nil
}

func (stubCheckout) StateOf(_ context.Context, pedidoToken string) (*checkoutsvc.Record, error) {
	return &checkoutsvc.Record{PedidoToken: pedidoToken, State: checkoutsvc.StateRedirected}, nil
}

type stubSessions struct {
	role string
}

func (s stubSessions) Login(context.Context, string, string) (*sessionsvc.Session, error) {
	return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid credentials")
}

func (s stubSessions) Me(_ context.Context, userID int, _ string) (*sessionsvc.Session, error) {
	return &sessionsvc.Session{User: cms.User{ID: userID, Role: s.role}}, nil
}

func (s stubSessions) Logout(context.Context, int) error { return nil }

func testRouter(role string) http.Handler {
	return NewRouter(RouterParams{
		Config: &config.Config{
			App:  config.AppConfig{Env: "test"},
			JWT:  config.JWTConfig{Secret: "cms-secret"},
			CORS: config.CORSConfig{Origins: []string{"http://localhost:3000"}},
		},
		Catalog:  stubCatalog{},
		Cart:     stubCart{},
		Checkout: stubCheckout{},
		Sessions: stubSessions{role: role},
	})
}

func bearerFor(t *testing.T, userID int) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id":  float64(userID),
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte("cms-secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return "Bearer " + signed
}

func TestPublicCatalogRoutes(t *testing.T) {
	router := testRouter("cliente")

	for _, path := range []string{"/api/v1/health/live", "/api/v1/products", "/api/v1/products/sorrentinos", "/api/v1/products/featured", "/api/v1/products/offers"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, req)
		if resp.Code != http.StatusOK {
			t.Fatalf("expected 200 for %s, got %d: %s", path, resp.Code, resp.Body.String())
		}
	}
}

func TestCartRoutesRequireToken(t *testing.T) {
	router := testRouter("cliente")

	req := httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 without cart token, got %d", resp.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil)
	req.Header.Set("X-Cart-Token", "cart-abc")
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 with cart token, got %d: %s", resp.Code, resp.Body.String())
	}
}

func TestCheckoutStateRouteIsPublic(t *testing.T) {
	router := testRouter("cliente")

	req := httptest.NewRequest(http.MethodGet, "/api/v1/checkout/tok", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}
}

func TestAuthMeRejectsAnonymous(t *testing.T) {
	router := testRouter("cliente")

	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.Code)
	}
}

func TestAdminGroupRejectsAnonymous(t *testing.T) {
	router := testRouter("admin")

	req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/users", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.Code)
	}
}

func TestAdminGroupRejectsNonAdminRole(t *testing.T) {
	router := testRouter("cliente")

	req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/orders", nil)
	req.Header.Set("Authorization", bearerFor(t, 3))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for non-admin, got %d: %s", resp.Code, resp.Body.String())
	}
}

func TestMetricsEndpointExposed(t *testing.T) {
	router := testRouter("cliente")

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
}
