package controllers

import (
	"net/http"

	"github.com/morganshaw/partslink-backend/api/responses"
	"github.com/morganshaw/partslink-backend/api/validators"
	checkoutsvc "github.com/morganshaw/partslink-backend/internal/checkout"
	pkgerrors "github.com/morganshaw/partslink-backend/pkg/errors"
	"github.com/morganshaw/partslink-backend/pkg/logger"
)

type checkoutRequest struct {
	PORef string `json:"po_ref" validate:"omitempty,max=40"`
	Notes string `json:"notes" validate:"omitempty,max=500"`
}

// Checkout snapshots the cart into an order and clears the cart.
func Checkout(svc checkoutsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "checkout service unavailable"))
			return
		}

		identity, err := identityFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		// body is optional: a bare POST places the order without annotations
		var body checkoutRequest
		if r.ContentLength != 0 {
			if err := validators.DecodeJSONBody(r, &body); err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
		}

		detail, err := svc.PlaceOrder(r.Context(), identity, checkoutsvc.PlaceOrderInput{
			PORef: body.PORef,
			Notes: body.Notes,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, detail)
	}
}
