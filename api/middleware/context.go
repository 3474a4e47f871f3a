package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/morganshaw/partslink-backend/api/responses"
	pkgerrors "github.com/morganshaw/partslink-backend/pkg/errors"
	"github.com/morganshaw/partslink-backend/pkg/logger"
)

type contextKey string

const (
	ctxDealerAccountID contextKey = "dealer_account_id"
	ctxDealerUserID    contextKey = "dealer_user_id"

	dealerAccountHeader = "X-Dealer-Account"
	dealerUserHeader    = "X-Dealer-User"
)

// DealerContext requires both dealer identity headers and injects them into
// the request context. The upstream gateway authenticates the dealer; this
// API trusts the headers it forwards.
func DealerContext(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			accountID, err := parseIdentityHeader(r, dealerAccountHeader)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
			userID, err := parseIdentityHeader(r, dealerUserHeader)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}

			ctx := WithDealerAccountID(r.Context(), accountID)
			ctx = WithDealerUserID(ctx, userID)
			if logg != nil {
				ctx = logg.WithDealerAccountID(ctx, accountID.String())
				ctx = logg.WithDealerUserID(ctx, userID.String())
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func parseIdentityHeader(r *http.Request, header string) (uuid.UUID, error) {
	raw := strings.TrimSpace(r.Header.Get(header))
	if raw == "" {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeUnauthorized, header+" header required")
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid "+header+" header")
	}
	return id, nil
}

func DealerAccountIDFromContext(ctx context.Context) uuid.UUID {
	if ctx == nil {
		return uuid.Nil
	}
	if v, ok := ctx.Value(ctxDealerAccountID).(uuid.UUID); ok {
		return v
	}
	return uuid.Nil
}

func DealerUserIDFromContext(ctx context.Context) uuid.UUID {
	if ctx == nil {
		return uuid.Nil
	}
	if v, ok := ctx.Value(ctxDealerUserID).(uuid.UUID); ok {
		return v
	}
	return uuid.Nil
}

// WithDealerAccountID injects the dealer account identifier into the context.
func WithDealerAccountID(ctx context.Context, id uuid.UUID) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxDealerAccountID, id)
}

// WithDealerUserID injects the dealer user identifier into the context.
func WithDealerUserID(ctx context.Context, id uuid.UUID) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxDealerUserID, id)
}
