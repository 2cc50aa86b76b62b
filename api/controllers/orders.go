package controllers

import (
	"net/http"

	"github.com/tiopelotte/storefront-api/api/responses"
	ordersvc "github.com/tiopelotte/storefront-api/internal/orders"
	pkgerrors "github.com/tiopelotte/storefront-api/pkg/errors"
	"github.com/tiopelotte/storefront-api/pkg/logger"
)

// LookupOrder returns the latest order for a phone number. It backs the
// "¿dónde está mi pedido?" page, so it requires no account.
func LookupOrder(svc ordersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "order service unavailable"))
			return
		}

		telefono := r.URL.Query().Get("telefono")
		if telefono == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "telefono query parameter required"))
			return
		}

		order, err := svc.LookupByPhone(r.Context(), telefono)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, order)
	}
}
