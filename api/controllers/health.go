package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/marivelle/catalog-backend/api/responses"
	"github.com/marivelle/catalog-backend/pkg/config"
	"github.com/marivelle/catalog-backend/pkg/logger"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

// Root answers the welcome probe at /.
func Root(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Catalog-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"message": "catalog API"})
	}
}

// Health reports dependency status. A failed database ping degrades the
// response instead of failing it so load balancers can still read the body.
func Health(cfg *config.Config, logg *logger.Logger, dbP, redisP Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		w.Header().Set("X-Catalog-Env", cfg.App.Env)

		status := map[string]string{"status": "healthy"}
		healthy := true

		if dbP != nil {
			if err := dbP.Ping(ctx); err != nil {
				if logg != nil {
					logg.Error(ctx, "health.db_ping_failed", err)
				}
				status["database"] = "unavailable"
				healthy = false
			} else {
				status["database"] = "ok"
			}
		}
		if redisP != nil {
			if err := redisP.Ping(ctx); err != nil {
				if logg != nil {
					logg.Error(ctx, "health.redis_ping_failed", err)
				}
				status["redis"] = "unavailable"
				healthy = false
			} else {
				status["redis"] = "ok"
			}
		}

		if !healthy {
			status["status"] = "degraded"
			responses.WriteSuccessStatus(w, http.StatusServiceUnavailable, status)
			return
		}
		responses.WriteSuccess(w, status)
	}
}
