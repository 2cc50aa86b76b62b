package controllers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/tiopelotte/storefront-api/api/responses"
	"github.com/tiopelotte/storefront-api/pkg/cms"
	pkgerrors "github.com/tiopelotte/storefront-api/pkg/errors"
	"github.com/tiopelotte/storefront-api/pkg/logger"
)

const adminBodyLimit = 1 << 20

// adminProductClient is the slice of the CMS client the back-office product
// endpoints proxy through. Documents pass through untouched; the CMS owns
// the schema.
type adminProductClient interface {
	CreateProduct(ctx context.Context, attributes json.RawMessage) (json.RawMessage, error)
	UpdateProduct(ctx context.Context, id int, attributes json.RawMessage) (json.RawMessage, error)
	DeleteProduct(ctx context.Context, id int) error
}

type adminProductLister interface {
	ListProducts(ctx context.Context) ([]cms.Product, error)
}

func readRawDocument(r *http.Request) (json.RawMessage, error) {
	body, err := io.ReadAll(io.LimitReader(r.Body, adminBodyLimit))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "read request body")
	}
	if len(body) == 0 || !json.Valid(body) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "request body must be a JSON document")
	}
	return json.RawMessage(body), nil
}

func pathID(r *http.Request, name string) (int, error) {
	id, err := strconv.Atoi(chi.URLParam(r, name))
	if err != nil || id <= 0 {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, name+" must be a positive number")
	}
	return id, nil
}

// AdminListProducts returns the product collection, inactive entries
// included, for the back-office catalog screen.
func AdminListProducts(client adminProductLister, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if client == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cms client unavailable"))
			return
		}

		products, err := client.ListProducts(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, products)
	}
}

// AdminCreateProduct creates a product document in the CMS.
func AdminCreateProduct(client adminProductClient, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if client == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cms client unavailable"))
			return
		}

		document, err := readRawDocument(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		created, err := client.CreateProduct(r.Context(), document)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, created)
	}
}

// AdminUpdateProduct updates a product document in the CMS.
func AdminUpdateProduct(client adminProductClient, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if client == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cms client unavailable"))
			return
		}

		id, err := pathID(r, "productID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		document, err := readRawDocument(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		updated, err := client.UpdateProduct(r.Context(), id, document)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, updated)
	}
}

// AdminDeleteProduct removes a product document from the CMS.
func AdminDeleteProduct(client adminProductClient, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if client == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cms client unavailable"))
			return
		}

		id, err := pathID(r, "productID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := client.DeleteProduct(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}
