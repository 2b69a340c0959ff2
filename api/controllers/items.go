package controllers

import (
	"net/http"

	"github.com/sosmarketplace/sos-board/api/responses"
	"github.com/sosmarketplace/sos-board/api/validators"
	"github.com/sosmarketplace/sos-board/internal/items"
	pkgerrors "github.com/sosmarketplace/sos-board/pkg/errors"
	"github.com/sosmarketplace/sos-board/pkg/logger"
	"github.com/sosmarketplace/sos-board/pkg/types"
)

// ItemSave upserts one item. An item without an id gets a derived one.
func ItemSave(svc items.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "item service unavailable"))
			return
		}

		var body items.SaveInput
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		body.Item.Name = validators.SanitizeString(body.Item.Name, maxNameLength)

		item, err := svc.Save(r.Context(), body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteMessageBody(w, http.StatusOK, types.MessageResponse{
			Message:   "Item saved successfully",
			VendorKey: item.VendorID,
			ItemID:    item.ID,
		})
	}
}

func ItemDelete(svc items.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "item service unavailable"))
			return
		}

		var body items.DeleteInput
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "Missing itemId or vendorKey"))
			return
		}

		if err := svc.Delete(r.Context(), body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteMessage(w, "Item deleted successfully")
	}
}

// ItemsSoldOut marks every item of the vendor on the active tab unavailable.
func ItemsSoldOut(svc items.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "item service unavailable"))
			return
		}

		var body items.SoldOutInput
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "Missing vendorKey or activeTab"))
			return
		}

		updated, err := svc.MarkSoldOut(r.Context(), body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteMessageBody(w, http.StatusOK, types.MessageResponse{
			Message: "Vendor items marked as sold out successfully",
			Count:   &updated,
		})
	}
}
