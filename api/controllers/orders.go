package controllers

import (
	"net/http"

	"github.com/sosmarketplace/sos-board/api/responses"
	"github.com/sosmarketplace/sos-board/api/validators"
	"github.com/sosmarketplace/sos-board/internal/orders"
	pkgerrors "github.com/sosmarketplace/sos-board/pkg/errors"
	"github.com/sosmarketplace/sos-board/pkg/logger"
	"github.com/sosmarketplace/sos-board/pkg/types"
)

const maxNoteLength = 500

func OrderPlace(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "order service unavailable"))
			return
		}

		var body orders.PlaceInput
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		body.BuyerNote = validators.SanitizeString(body.BuyerNote, maxNoteLength)

		if _, err := svc.Place(r.Context(), body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteMessage(w, "Order placed successfully")
	}
}

func OrdersClear(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "order service unavailable"))
			return
		}

		var body orders.ClearInput
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "Missing vendorKey"))
			return
		}

		removed, err := svc.Clear(r.Context(), body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteMessageBody(w, http.StatusOK, types.MessageResponse{
			Message: "Vendor orders cleared successfully",
			Count:   &removed,
		})
	}
}
