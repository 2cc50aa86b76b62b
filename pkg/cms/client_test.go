package cms

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/tiopelotte/storefront-api/pkg/config"
	pkgerrors "github.com/tiopelotte/storefront-api/pkg/errors"
)

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

func newTestClient(t *testing.T, rt roundTripFunc) *Client {
	t.Helper()
	client, err := NewClient(
		config.CMSConfig{BaseURL: "http://cms.test", APIToken: "service-token"},
		WithHTTPClient(&http.Client{Transport: rt}),
	)
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	return client
}

func jsonResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(strings.NewReader(body)),
		Header:     http.Header{},
	}
}

func TestListProductsDecodesEnvelope(t *testing.T) {
	var capturedURL string
	var capturedAuth string
	client := newTestClient(t, func(req *http.Request) (*http.Response, error) {
		capturedURL = req.URL.String()
		capturedAuth = req.Header.Get("Authorization")
		return jsonResponse(http.StatusOK, `{"data":[{"id":7,"slug":"sorrentinos","productName":"Sorrentinos","price":5600,"isOffer":true}]}`), nil
	})

	products, err := client.ListProducts(context.Background())
	if err != nil {
		t.Fatalf("list products: %v", err)
	}
	if !strings.HasPrefix(capturedURL, "http://cms.test/api/products?") {
		t.Fatalf("unexpected URL %q", capturedURL)
	}
	if capturedAuth != "Bearer service-token" {
		t.Fatalf("expected service token, got %q", capturedAuth)
	}
	if len(products) != 1 || products[0].Slug != "sorrentinos" || !products[0].Offer {
		t.Fatalf("unexpected products %+v", products)
	}
	if !products[0].Price.Equal(decimal.NewFromInt(5600)) {
		t.Fatalf("unexpected price %s", products[0].Price)
	}
}

func TestGetProductBySlugNotFound(t *testing.T) {
	client := newTestClient(t, func(req *http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusOK, `{"data":[]}`), nil
	})

	_, err := client.GetProductBySlug(context.Background(), "missing")
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestCreateTempOrderPostsTokenedPayload(t *testing.T) {
	var captured map[string]any
	client := newTestClient(t, func(req *http.Request) (*http.Response, error) {
		if req.Method != http.MethodPost || req.URL.Path != "/api/pedido-temporals" {
			t.Fatalf("unexpected request %s %s", req.Method, req.URL.Path)
		}
		raw, err := io.ReadAll(req.Body)
		if err != nil {
			t.Fatalf("read body: %v", err)
		}
		if err := json.Unmarshal(raw, &captured); err != nil {
			t.Fatalf("unmarshal body: %v", err)
		}
		return jsonResponse(http.StatusOK, `{"data":{"id":42}}`), nil
	})

	id, err := client.CreateTempOrder(context.Background(), OrderPayload{
		PedidoToken: "tok-1",
		Estado:      EstadoPendiente,
		Total:       decimal.NewFromInt(11200),
	})
	if err != nil {
		t.Fatalf("create temp order: %v", err)
	}
	if id != 42 {
		t.Fatalf("unexpected id %d", id)
	}
	data, ok := captured["data"].(map[string]any)
	if !ok {
		t.Fatalf("missing data envelope: %v", captured)
	}
	if data["pedidoToken"] != "tok-1" || data["estado"] != EstadoPendiente {
		t.Fatalf("unexpected payload %v", data)
	}
}

func TestFindLatestOrderByPhoneEscapesFilter(t *testing.T) {
	var capturedQuery string
	client := newTestClient(t, func(req *http.Request) (*http.Response, error) {
		capturedQuery = req.URL.RawQuery
		return jsonResponse(http.StatusOK, `{"data":[{"id":9,"telefono":"2901555555","estado":"Pendiente"}]}`), nil
	})

	order, err := client.FindLatestOrderByPhone(context.Background(), "2901555555")
	if err != nil {
		t.Fatalf("find order: %v", err)
	}
	if order.ID != 9 {
		t.Fatalf("unexpected order %+v", order)
	}
	if !strings.Contains(capturedQuery, "filters%5Btelefono%5D%5B%24eq%5D=2901555555") {
		t.Fatalf("phone filter missing from query %q", capturedQuery)
	}
}

func TestDependencyErrorOnServerFailure(t *testing.T) {
	client := newTestClient(t, func(req *http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusBadGateway, `upstream exploded`), nil
	})

	_, err := client.ListProducts(context.Background())
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeDependency {
		t.Fatalf("expected dependency error, got %v", err)
	}
}

func TestLoginUsesUserBearerOverServiceToken(t *testing.T) {
	client := newTestClient(t, func(req *http.Request) (*http.Response, error) {
		if req.URL.Path != "/api/auth/local" {
			t.Fatalf("unexpected path %s", req.URL.Path)
		}
		return jsonResponse(http.StatusOK, `{"jwt":"user-jwt","user":{"id":3,"username":"flor","rol":"admin"}}`), nil
	})

	auth, err := client.Login(context.Background(), "flor", "secret")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if auth.JWT != "user-jwt" || auth.User.Role != "admin" {
		t.Fatalf("unexpected auth %+v", auth)
	}

	var capturedAuth string
	client = newTestClient(t, func(req *http.Request) (*http.Response, error) {
		capturedAuth = req.Header.Get("Authorization")
		return jsonResponse(http.StatusOK, `{"id":3,"username":"flor"}`), nil
	})
	if _, err := client.Me(context.Background(), "user-jwt"); err != nil {
		t.Fatalf("me: %v", err)
	}
	if capturedAuth != "Bearer user-jwt" {
		t.Fatalf("expected user bearer, got %q", capturedAuth)
	}
}
