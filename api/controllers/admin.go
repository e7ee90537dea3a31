package controllers

import (
	"net/http"

	"github.com/marivelle/catalog-backend/api/responses"
	adminsvc "github.com/marivelle/catalog-backend/internal/admin"
	pkgerrors "github.com/marivelle/catalog-backend/pkg/errors"
	"github.com/marivelle/catalog-backend/pkg/logger"
)

// AdminStats returns dashboard counters. The route is superuser-gated by
// middleware.
func AdminStats(svc adminsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "admin service unavailable"))
			return
		}

		stats, err := svc.Stats(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, stats)
	}
}
