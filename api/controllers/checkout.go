package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tiopelotte/storefront-api/api/middleware"
	"github.com/tiopelotte/storefront-api/api/responses"
	"github.com/tiopelotte/storefront-api/api/validators"
	checkoutsvc "github.com/tiopelotte/storefront-api/internal/checkout"
	pkgerrors "github.com/tiopelotte/storefront-api/pkg/errors"
	"github.com/tiopelotte/storefront-api/pkg/logger"
)

type startCheckoutRequest struct {
	Name       string `json:"name" validate:"required,max=120"`
	Phone      string `json:"phone" validate:"required,max=30"`
	Zone       string `json:"zone" validate:"required,max=60"`
	Address    string `json:"address" validate:"required,max=200"`
	References string `json:"references" validate:"max=300"`
}

// StartCheckout creates the draft order and payment preference for the
// client's cart.
func StartCheckout(svc checkoutsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "checkout service unavailable"))
			return
		}

		token, err := cartToken(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload startCheckoutRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input := checkoutsvc.OrderInput{
			Name:       payload.Name,
			Phone:      payload.Phone,
			Zone:       payload.Zone,
			Address:    payload.Address,
			References: payload.References,
		}
		if userID := middleware.UserIDFromContext(r.Context()); userID > 0 {
			input.UserID = &userID
		}

		result, err := svc.Start(r.Context(), token, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, result)
	}
}

type confirmCheckoutRequest struct {
	PedidoToken string `json:"pedido_token" validate:"required"`
	PaymentID   string `json:"payment_id" validate:"required"`
}

// ConfirmCheckout settles the payment outcome after the processor redirect.
func ConfirmCheckout(svc checkoutsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "checkout service unavailable"))
			return
		}

		var payload confirmCheckoutRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.Confirm(r.Context(), payload.PedidoToken, payload.PaymentID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}

// CheckoutState reports where a checkout stands, for the result page.
func CheckoutState(svc checkoutsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "checkout service unavailable"))
			return
		}

		record, err := svc.StateOf(r.Context(), chi.URLParam(r, "pedidoToken"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]any{
			"pedido_token": record.PedidoToken,
			"state":        record.State,
			"init_point":   record.InitPoint,
			"order_id":     record.OrderID,
		})
	}
}
