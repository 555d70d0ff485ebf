package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/ballonsurprise/backend/api/responses"
	"github.com/ballonsurprise/backend/internal/catalog"
	"github.com/ballonsurprise/backend/pkg/enums"
	pkgerrors "github.com/ballonsurprise/backend/pkg/errors"
	"github.com/ballonsurprise/backend/pkg/logger"
)

// CatalogBundles lists the predefined gift bundles, optionally filtered by
// the occasion category.
func CatalogBundles(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		var category *enums.Category
		if raw := strings.TrimSpace(r.URL.Query().Get("category")); raw != "" {
			parsed, err := enums.ParseCategory(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid category"))
				return
			}
			category = &parsed
		}

		bundles := svc.ListBundles(r.Context(), category)
		responses.WriteSuccess(w, map[string]any{"bundles": bundles})
	}
}

func CatalogBundle(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		bundle, err := svc.GetBundle(r.Context(), chi.URLParam(r, "bundleId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, bundle)
	}
}

// CatalogOptions returns the component lists and price constants used to
// build a custom gift.
func CatalogOptions(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		responses.WriteSuccess(w, svc.Options(r.Context()))
	}
}
