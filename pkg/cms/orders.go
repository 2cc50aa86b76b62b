package cms

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/shopspring/decimal"
	pkgerrors "github.com/tiopelotte/storefront-api/pkg/errors"
)

// Order estados mirror the CMS enumeration.
const (
	EstadoPendiente  = "Pendiente"
	EstadoEnProceso  = "En proceso"
	EstadoEntregado  = "Entregado"
	EstadoCancelado  = "Cancelado"
	EstadoConfirmado = "Confirmado"
)

// OrderItem is one line of an order payload sent to the CMS.
type OrderItem struct {
	ProductID   int             `json:"productId"`
	ProductName string          `json:"productName"`
	Quantity    int             `json:"cantidad"`
	UnitPrice   decimal.Decimal `json:"precioUnitario"`
}

// OrderPayload is the normalized order document shared by temporary and
// final orders.
type OrderPayload struct {
	Items       []OrderItem     `json:"items"`
	Total       decimal.Decimal `json:"total"`
	Zone        string          `json:"zona"`
	Address     string          `json:"direccion"`
	References  string          `json:"referencias,omitempty"`
	Phone       string          `json:"telefono"`
	PayerName   string          `json:"nombre"`
	UserID      *int            `json:"usuario,omitempty"`
	PedidoToken string          `json:"pedidoToken,omitempty"`
	Estado      string          `json:"estado"`
}

// Order is an order document read back from the CMS.
type Order struct {
	ID        int             `json:"id"`
	Items     []OrderItem     `json:"items"`
	Total     decimal.Decimal `json:"total"`
	Zone      string          `json:"zona"`
	Address   string          `json:"direccion"`
	Phone     string          `json:"telefono"`
	PayerName string          `json:"nombre"`
	Estado    string          `json:"estado"`
	CreatedAt time.Time       `json:"createdAt"`
}

// TempOrder is a pending draft order created before payment.
type TempOrder struct {
	ID          int       `json:"id"`
	PedidoToken string    `json:"pedidoToken"`
	Estado      string    `json:"estado"`
	CreatedAt   time.Time `json:"createdAt"`
}

// CreateTempOrder stores a draft order correlated by its pedido token. The
// CMS enforces token uniqueness, which makes retries safe.
func (c *Client) CreateTempOrder(ctx context.Context, payload OrderPayload) (int, error) {
	var out struct {
		Data struct {
			ID int `json:"id"`
		} `json:"data"`
	}
	body := map[string]any{"data": payload}
	if err := c.do(ctx, http.MethodPost, "/api/pedido-temporals", "", body, &out); err != nil {
		return 0, err
	}
	return out.Data.ID, nil
}

// ListTempOrdersBefore returns Pendiente drafts created before the cutoff.
func (c *Client) ListTempOrdersBefore(ctx context.Context, cutoff time.Time) ([]TempOrder, error) {
	var out struct {
		Data []TempOrder `json:"data"`
	}
	path := fmt.Sprintf(
		"/api/pedido-temporals?filters[estado][$eq]=%s&filters[createdAt][$lt]=%s&pagination[pageSize]=100",
		url.QueryEscape(EstadoPendiente),
		url.QueryEscape(cutoff.UTC().Format(time.RFC3339)),
	)
	if err := c.do(ctx, http.MethodGet, path, "", nil, &out); err != nil {
		return nil, err
	}
	return out.Data, nil
}

// DeleteTempOrder removes an abandoned draft.
func (c *Client) DeleteTempOrder(ctx context.Context, id int) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/pedido-temporals/%d", id), "", nil, nil)
}

// CreateOrder stores a confirmed order.
func (c *Client) CreateOrder(ctx context.Context, payload OrderPayload) (int, error) {
	var out struct {
		Data struct {
			ID int `json:"id"`
		} `json:"data"`
	}
	body := map[string]any{"data": payload}
	if err := c.do(ctx, http.MethodPost, "/api/pedidos", "", body, &out); err != nil {
		return 0, err
	}
	return out.Data.ID, nil
}

// UpdateOrderEstado transitions an order's estado.
func (c *Client) UpdateOrderEstado(ctx context.Context, id int, estado string) error {
	body := map[string]any{"data": map[string]string{"estado": estado}}
	return c.do(ctx, http.MethodPut, fmt.Sprintf("/api/pedidos/%d", id), "", body, nil)
}

// FindLatestOrderByPhone returns the most recent order for a phone number.
func (c *Client) FindLatestOrderByPhone(ctx context.Context, telefono string) (*Order, error) {
	var out struct {
		Data []Order `json:"data"`
	}
	path := fmt.Sprintf(
		"/api/pedidos?filters[telefono][$eq]=%s&sort[0]=createdAt:desc&pagination[pageSize]=1",
		url.QueryEscape(telefono),
	)
	if err := c.do(ctx, http.MethodGet, path, "", nil, &out); err != nil {
		return nil, err
	}
	if len(out.Data) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "no orders for that phone number")
	}
	return &out.Data[0], nil
}

// ListOrders returns the full order collection for the back-office.
func (c *Client) ListOrders(ctx context.Context) ([]Order, error) {
	var out struct {
		Data []Order `json:"data"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/pedidos?sort[0]=createdAt:desc&pagination[pageSize]=100", "", nil, &out); err != nil {
		return nil, err
	}
	return out.Data, nil
}
