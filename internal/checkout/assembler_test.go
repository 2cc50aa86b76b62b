package checkout

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/tiopelotte/storefront-api/internal/cart"
	"github.com/tiopelotte/storefront-api/pkg/cms"
	pkgerrors "github.com/tiopelotte/storefront-api/pkg/errors"
)

func filledCart() *cart.Cart {
	c := cart.NewCart("tok")
	c.Lines = []cart.Line{
		{ProductID: 1, ProductName: "Ravioles", UnitPrice: decimal.NewFromInt(4500), Quantity: 2},
		{ProductID: 2, ProductName: "Sorrentinos", UnitPrice: decimal.NewFromInt(5600), Quantity: 1},
	}
	return c
}

func validInput() OrderInput {
	return OrderInput{
		Name:    "Ana",
		Phone:   "2901555555",
		Zone:    "Centro",
		Address: "San Martín 123",
	}
}

func TestAssembleOrder(t *testing.T) {
	payload, err := AssembleOrder(filledCart(), validInput(), "tok-1")
	if err != nil {
		t.Fatalf("assemble: %v", err)
	}
	if len(payload.Items) != 2 {
		t.Fatalf("unexpected items %+v", payload.Items)
	}
	if !payload.Total.Equal(decimal.NewFromInt(14600)) {
		t.Fatalf("unexpected total %s", payload.Total)
	}
	if payload.PedidoToken != "tok-1" || payload.Estado != cms.EstadoPendiente {
		t.Fatalf("unexpected payload %+v", payload)
	}
	if payload.Items[0].Quantity != 2 || !payload.Items[0].UnitPrice.Equal(decimal.NewFromInt(4500)) {
		t.Fatalf("line not carried over: %+v", payload.Items[0])
	}
}

func TestAssembleOrderRejectsEmptyCart(t *testing.T) {
	_, err := AssembleOrder(cart.NewCart("tok"), validInput(), "tok-1")
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestAssembleOrderCollectsAllFieldErrors(t *testing.T) {
	_, err := AssembleOrder(filledCart(), OrderInput{}, "tok-1")
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
	fields, ok := typed.Details().([]fieldError)
	if !ok || len(fields) != 4 {
		t.Fatalf("expected four field errors, got %v", typed.Details())
	}
}

func TestAssembleOrderTrimsInput(t *testing.T) {
	input := validInput()
	input.Name = "  Ana  "
	input.Address = " San Martín 123 "
	payload, err := AssembleOrder(filledCart(), input, "tok-1")
	if err != nil {
		t.Fatalf("assemble: %v", err)
	}
	if payload.PayerName != "Ana" || payload.Address != "San Martín 123" {
		t.Fatalf("input not trimmed: %+v", payload)
	}
}
