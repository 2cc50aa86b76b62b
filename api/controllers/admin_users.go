package controllers

import (
	"context"
	"net/http"

	"github.com/tiopelotte/storefront-api/api/responses"
	"github.com/tiopelotte/storefront-api/pkg/cms"
	pkgerrors "github.com/tiopelotte/storefront-api/pkg/errors"
	"github.com/tiopelotte/storefront-api/pkg/logger"
)

type adminUserClient interface {
	ListUsers(ctx context.Context) ([]cms.User, error)
}

// AdminListUsers returns registered users for the back-office.
func AdminListUsers(client adminUserClient, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if client == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cms client unavailable"))
			return
		}

		users, err := client.ListUsers(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, users)
	}
}
