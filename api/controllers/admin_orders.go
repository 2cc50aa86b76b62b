package controllers

import (
	"net/http"

	"github.com/tiopelotte/storefront-api/api/responses"
	"github.com/tiopelotte/storefront-api/api/validators"
	ordersvc "github.com/tiopelotte/storefront-api/internal/orders"
	pkgerrors "github.com/tiopelotte/storefront-api/pkg/errors"
	"github.com/tiopelotte/storefront-api/pkg/logger"
)

// AdminListOrders returns the order collection for the back-office board.
func AdminListOrders(svc ordersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "order service unavailable"))
			return
		}

		orders, err := svc.List(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, orders)
	}
}

type updateEstadoRequest struct {
	Estado string `json:"estado" validate:"required"`
}

// AdminUpdateOrderEstado moves an order along the fulfillment flow.
func AdminUpdateOrderEstado(svc ordersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "order service unavailable"))
			return
		}

		id, err := pathID(r, "orderID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload updateEstadoRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.UpdateEstado(r.Context(), id, payload.Estado); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]any{"id": id, "estado": payload.Estado})
	}
}
