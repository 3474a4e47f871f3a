package controllers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/morganshaw/partslink-backend/api/middleware"
	"github.com/morganshaw/partslink-backend/api/responses"
)

func PublicPing() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, map[string]string{"scope": "public", "status": "ok"})
	}
}

func DealerPing() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		payload := map[string]string{"scope": "dealer", "status": "ok"}
		if account := middleware.DealerAccountIDFromContext(r.Context()); account != uuid.Nil {
			payload["dealer_account_id"] = account.String()
		}
		responses.WriteSuccess(w, payload)
	}
}
