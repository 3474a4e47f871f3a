package controllers

import (
	"context"
	"net/http"

	"go.uber.org/multierr"

	"github.com/morganshaw/partslink-backend/api/responses"
	"github.com/morganshaw/partslink-backend/pkg/config"
	pkgerrors "github.com/morganshaw/partslink-backend/pkg/errors"
	"github.com/morganshaw/partslink-backend/pkg/logger"
)

type pinger interface {
	Ping(context.Context) error
}

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-PartsLink-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady reports ready only when every backing dependency answers a ping.
func HealthReady(cfg *config.Config, logg *logger.Logger, db pinger, redis pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-PartsLink-Env", cfg.App.Env)

		var err error
		checks := map[string]string{}

		if db == nil {
			err = multierr.Append(err, pkgerrors.New(pkgerrors.CodeDependency, "database not wired"))
			checks["database"] = "missing"
		} else if pingErr := db.Ping(r.Context()); pingErr != nil {
			err = multierr.Append(err, pingErr)
			checks["database"] = "down"
		} else {
			checks["database"] = "ok"
		}

		if redis == nil {
			err = multierr.Append(err, pkgerrors.New(pkgerrors.CodeDependency, "redis not wired"))
			checks["redis"] = "missing"
		} else if pingErr := redis.Ping(r.Context()); pingErr != nil {
			err = multierr.Append(err, pingErr)
			checks["redis"] = "down"
		} else {
			checks["redis"] = "ok"
		}

		if err != nil {
			responses.WriteError(r.Context(), logg, w,
				pkgerrors.Wrap(pkgerrors.CodeDependency, err, "readiness check failed").WithDetails(checks))
			return
		}
		responses.WriteSuccess(w, map[string]any{"status": "ready", "checks": checks})
	}
}
