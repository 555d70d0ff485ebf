package controllers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/ballonsurprise/backend/api/middleware"
	"github.com/ballonsurprise/backend/api/responses"
	"github.com/ballonsurprise/backend/api/validators"
	"github.com/ballonsurprise/backend/internal/checkout"
	pkgerrors "github.com/ballonsurprise/backend/pkg/errors"
	"github.com/ballonsurprise/backend/pkg/logger"
)

// Checkout settles the device's cart into a confirmed order.
func Checkout(svc checkout.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "checkout service unavailable"))
			return
		}

		var body checkout.Input
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		userID := uuid.Nil
		if raw := middleware.UserIDFromContext(r.Context()); raw != "" {
			parsed, err := uuid.Parse(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid user id"))
				return
			}
			userID = parsed
		}

		result, err := svc.Execute(r.Context(), userID, middleware.DeviceIDFromContext(r.Context()), body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, result)
	}
}
