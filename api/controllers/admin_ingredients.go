package controllers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/tiopelotte/storefront-api/api/responses"
	pkgerrors "github.com/tiopelotte/storefront-api/pkg/errors"
	"github.com/tiopelotte/storefront-api/pkg/logger"
)

// adminIngredientClient is the slice of the CMS client for ingredient stock
// management.
type adminIngredientClient interface {
	ListIngredients(ctx context.Context) ([]json.RawMessage, error)
	UpdateIngredient(ctx context.Context, id int, attributes json.RawMessage) (json.RawMessage, error)
}

// AdminListIngredients returns the ingredient collection for stock control.
func AdminListIngredients(client adminIngredientClient, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if client == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cms client unavailable"))
			return
		}

		ingredients, err := client.ListIngredients(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, ingredients)
	}
}

// AdminUpdateIngredient updates an ingredient document, typically its stock.
func AdminUpdateIngredient(client adminIngredientClient, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if client == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cms client unavailable"))
			return
		}

		id, err := pathID(r, "ingredientID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		document, err := readRawDocument(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		updated, err := client.UpdateIngredient(r.Context(), id, document)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, updated)
	}
}
