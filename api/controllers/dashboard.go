package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/karibu-retail/storefront-gateway/api/responses"
	dashsvc "github.com/karibu-retail/storefront-gateway/internal/dashboard"
	pkgerrors "github.com/karibu-retail/storefront-gateway/pkg/errors"
	"github.com/karibu-retail/storefront-gateway/pkg/logger"
)

// SnapshotSource serves cached dashboard snapshots.
type SnapshotSource interface {
	Latest() (dashsvc.Snapshot, bool)
}

// GetDashboard serves the cached snapshot, falling back to a live fetch when
// the cache has not been primed yet.
func GetDashboard(cache SnapshotSource, svc dashsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if cache != nil {
			if snap, ok := cache.Latest(); ok {
				responses.WriteSuccess(w, snap)
				return
			}
		}
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "dashboard service unavailable"))
			return
		}

		snap, err := svc.Snapshot(r.Context())
		if err != nil && len(snap.FailedSections) == dashsvc.SectionCount {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "dashboard unavailable"))
			return
		}
		responses.WriteSuccess(w, snap)
	}
}

// GetDashboardSection fetches one section live.
func GetDashboardSection(svc dashsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "dashboard service unavailable"))
			return
		}

		value, err := svc.Section(r.Context(), chi.URLParam(r, "section"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, value)
	}
}
