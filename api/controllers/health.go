package controllers

import (
	"context"
	"net/http"

	"github.com/paoquentinho/storefront/api/responses"
	"github.com/paoquentinho/storefront/pkg/config"
	pkgerrors "github.com/paoquentinho/storefront/pkg/errors"
	"github.com/paoquentinho/storefront/pkg/logger"
)

// Pinger is satisfied by the app container and by storage backends.
type Pinger interface {
	Ping(ctx context.Context) error
}

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-PaoQuentinho-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady answers 503 while the storage backend is unreachable.
func HealthReady(cfg *config.Config, store Pinger, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-PaoQuentinho-Env", cfg.App.Env)
		if store == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeDependency, "storage not configured"))
			return
		}
		if err := store.Ping(r.Context()); err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "storage unavailable"))
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "ready"})
	}
}
