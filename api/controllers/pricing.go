package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/morganshaw/partslink-backend/api/responses"
	"github.com/morganshaw/partslink-backend/api/validators"
	pricingsvc "github.com/morganshaw/partslink-backend/internal/pricing"
	pkgerrors "github.com/morganshaw/partslink-backend/pkg/errors"
	"github.com/morganshaw/partslink-backend/pkg/logger"
)

// PriceProduct quotes one product for the calling dealer at the given qty.
func PriceProduct(svc pricingsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "pricing service unavailable"))
			return
		}

		identity, err := identityFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		productCode := strings.TrimSpace(chi.URLParam(r, "productCode"))
		if productCode == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "product code required"))
			return
		}

		qty, err := validators.ParseQueryInt(r, "qty", 1, 1, pricingsvc.MaxLineQty)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.CalculatePrice(r.Context(), pricingsvc.PriceRequest{
			DealerAccountID: identity.DealerAccountID,
			ProductCode:     productCode,
			Qty:             qty,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}
