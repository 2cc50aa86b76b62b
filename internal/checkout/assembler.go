package checkout

import (
	"strings"

	"github.com/tiopelotte/storefront-api/internal/cart"
	"github.com/tiopelotte/storefront-api/pkg/cms"
	pkgerrors "github.com/tiopelotte/storefront-api/pkg/errors"
)

// OrderInput is the buyer-provided delivery and contact data.
type OrderInput struct {
	Name       string `json:"name" validate:"required"`
	Phone      string `json:"phone" validate:"required"`
	Zone       string `json:"zone" validate:"required"`
	Address    string `json:"address" validate:"required"`
	References string `json:"references"`
	UserID     *int   `json:"-"`
}

type fieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// AssembleOrder turns a cart plus buyer input into a CMS order payload.
// It is a pure transform: no I/O, no mutation of its inputs.
func AssembleOrder(c *cart.Cart, input OrderInput, pedidoToken string) (cms.OrderPayload, error) {
	var fields []fieldError
	if c == nil || c.IsEmpty() {
		fields = append(fields, fieldError{Field: "cart", Message: "cart is empty"})
	}
	if strings.TrimSpace(input.Name) == "" {
		fields = append(fields, fieldError{Field: "name", Message: "name is required"})
	}
	if strings.TrimSpace(input.Phone) == "" {
		fields = append(fields, fieldError{Field: "phone", Message: "phone is required"})
	}
	if strings.TrimSpace(input.Zone) == "" {
		fields = append(fields, fieldError{Field: "zone", Message: "delivery zone is required"})
	}
	if strings.TrimSpace(input.Address) == "" {
		fields = append(fields, fieldError{Field: "address", Message: "address is required"})
	}
	if len(fields) > 0 {
		return cms.OrderPayload{}, pkgerrors.New(pkgerrors.CodeValidation, "order input is incomplete").WithDetails(fields)
	}

	items := make([]cms.OrderItem, 0, len(c.Lines))
	for _, line := range c.Lines {
		items = append(items, cms.OrderItem{
			ProductID:   line.ProductID,
			ProductName: line.ProductName,
			Quantity:    line.Quantity,
			UnitPrice:   line.UnitPrice,
		})
	}

	return cms.OrderPayload{
		Items:       items,
		Total:       c.Total(),
		Zone:        strings.TrimSpace(input.Zone),
		Address:     strings.TrimSpace(input.Address),
		References:  strings.TrimSpace(input.References),
		Phone:       strings.TrimSpace(input.Phone),
		PayerName:   strings.TrimSpace(input.Name),
		UserID:      input.UserID,
		PedidoToken: pedidoToken,
		Estado:      cms.EstadoPendiente,
	}, nil
}
