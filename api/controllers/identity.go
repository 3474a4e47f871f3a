package controllers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/morganshaw/partslink-backend/api/middleware"
	"github.com/morganshaw/partslink-backend/internal/cart"
	pkgerrors "github.com/morganshaw/partslink-backend/pkg/errors"
)

func identityFromRequest(r *http.Request) (cart.Identity, error) {
	identity := cart.Identity{
		DealerAccountID: middleware.DealerAccountIDFromContext(r.Context()),
		DealerUserID:    middleware.DealerUserIDFromContext(r.Context()),
	}
	if identity.DealerAccountID == uuid.Nil || identity.DealerUserID == uuid.Nil {
		return cart.Identity{}, pkgerrors.New(pkgerrors.CodeUnauthorized, "dealer identity missing")
	}
	return identity, nil
}
