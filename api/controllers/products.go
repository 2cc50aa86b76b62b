package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tiopelotte/storefront-api/api/responses"
	"github.com/tiopelotte/storefront-api/api/validators"
	"github.com/tiopelotte/storefront-api/internal/catalog"
	pkgerrors "github.com/tiopelotte/storefront-api/pkg/errors"
	"github.com/tiopelotte/storefront-api/pkg/logger"
	"github.com/tiopelotte/storefront-api/pkg/pagination"
)

const featuredDefaultLimit = 4

// ListProducts handles catalog browsing with filters, sort and pagination.
func ListProducts(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		filter, page, err := parseCatalogQuery(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.List(r.Context(), filter, page)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}

func parseCatalogQuery(r *http.Request) (catalog.Filter, pagination.Page, error) {
	pageNumber, err := validators.ParseQueryInt(r, "page", 1, 1, 10000)
	if err != nil {
		return catalog.Filter{}, pagination.Page{}, err
	}
	pageSize, err := validators.ParseQueryInt(r, "page_size", pagination.DefaultPageSize, 1, pagination.MaxPageSize)
	if err != nil {
		return catalog.Filter{}, pagination.Page{}, err
	}
	priceMin, err := validators.ParseQueryDecimal(r, "price_min")
	if err != nil {
		return catalog.Filter{}, pagination.Page{}, err
	}
	priceMax, err := validators.ParseQueryDecimal(r, "price_max")
	if err != nil {
		return catalog.Filter{}, pagination.Page{}, err
	}
	if priceMin != nil && priceMax != nil && priceMin.GreaterThan(*priceMax) {
		return catalog.Filter{}, pagination.Page{}, pkgerrors.New(pkgerrors.CodeValidation, "price_min cannot exceed price_max")
	}
	onlyOffers, err := validators.ParseQueryBool(r, "offers")
	if err != nil {
		return catalog.Filter{}, pagination.Page{}, err
	}

	filter := catalog.Filter{
		Search:     validators.SanitizeString(r.URL.Query().Get("search"), 100),
		Category:   validators.SanitizeString(r.URL.Query().Get("category"), 50),
		PriceMin:   priceMin,
		PriceMax:   priceMax,
		OnlyOffers: onlyOffers,
		Sort:       catalog.ParseSort(r.URL.Query().Get("sort")),
	}
	return filter, pagination.Page{Number: pageNumber, Size: pageSize}, nil
}

// GetProduct handles the product detail page lookup.
func GetProduct(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		product, err := svc.GetBySlug(r.Context(), chi.URLParam(r, "slug"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, product)
	}
}

// FeaturedProducts handles the home page highlight strip.
func FeaturedProducts(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		limit, err := validators.ParseQueryInt(r, "limit", featuredDefaultLimit, 1, 20)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		featured, err := svc.Featured(r.Context(), limit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, featured)
	}
}

// OfferProducts handles the offers strip.
func OfferProducts(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		offers, err := svc.Offers(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, offers)
	}
}
