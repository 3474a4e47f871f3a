package controllers

import (
	"net/http"
	"strings"

	"github.com/morganshaw/partslink-backend/api/responses"
	catalogsvc "github.com/morganshaw/partslink-backend/internal/catalog"
	"github.com/morganshaw/partslink-backend/pkg/enums"
	pkgerrors "github.com/morganshaw/partslink-backend/pkg/errors"
	"github.com/morganshaw/partslink-backend/pkg/logger"
)

// ListProducts returns the catalogue filtered to what the dealer may see.
func ListProducts(svc catalogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		identity, err := identityFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input := catalogsvc.SearchInput{
			DealerAccountID: identity.DealerAccountID,
			Search:          strings.TrimSpace(r.URL.Query().Get("search")),
		}

		if raw := strings.TrimSpace(r.URL.Query().Get("part_type")); raw != "" {
			partType, parseErr := enums.ParsePartType(raw)
			if parseErr != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, parseErr, "invalid part type"))
				return
			}
			input.PartType = &partType
		}

		products, err := svc.Search(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]any{"products": products})
	}
}
