package controllers

import (
	"net/http"

	"github.com/sosmarketplace/sos-board/api/responses"
	"github.com/sosmarketplace/sos-board/internal/marketplace"
	pkgerrors "github.com/sosmarketplace/sos-board/pkg/errors"
	"github.com/sosmarketplace/sos-board/pkg/logger"
)

// MarketplaceSnapshot serves the whole board. Clients reload it after every mutation.
func MarketplaceSnapshot(svc marketplace.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "marketplace service unavailable"))
			return
		}

		snapshot, err := svc.Snapshot(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		w.Header().Set("Cache-Control", "no-store")
		responses.WriteJSON(w, http.StatusOK, snapshot)
	}
}
