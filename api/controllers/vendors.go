package controllers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/sosmarketplace/sos-board/api/responses"
	"github.com/sosmarketplace/sos-board/api/validators"
	"github.com/sosmarketplace/sos-board/internal/vendors"
	pkgerrors "github.com/sosmarketplace/sos-board/pkg/errors"
	"github.com/sosmarketplace/sos-board/pkg/logger"
	"github.com/sosmarketplace/sos-board/pkg/types"
)

const maxNameLength = 120

// VendorRegister creates a vendor and its optional first item in one transaction.
func VendorRegister(svc vendors.RegisterService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "vendor service unavailable"))
			return
		}

		var body vendors.RegisterInput
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "Please enter the Vendor's Full Name and Account."))
			return
		}
		body.FullName = validators.SanitizeString(body.FullName, maxNameLength)
		body.AccountName = validators.SanitizeString(body.AccountName, maxNameLength)
		body.ItemName = validators.SanitizeString(body.ItemName, maxNameLength)

		result, err := svc.Register(r.Context(), body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteMessageBody(w, http.StatusOK, types.MessageResponse{
			Message:   "Vendor registered successfully!",
			VendorKey: result.VendorKey,
			ItemID:    result.ItemID,
		})
	}
}

// VendorDelete removes a vendor; items and orders go with it.
func VendorDelete(svc vendors.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "vendor service unavailable"))
			return
		}

		var body vendors.DeleteInput
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "Missing vendorKey"))
			return
		}

		if err := svc.Delete(r.Context(), body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		key := strings.TrimSpace(body.VendorKey)
		responses.WriteMessageBody(w, http.StatusOK, types.MessageResponse{
			Message:   fmt.Sprintf("Vendor %s deleted successfully", key),
			VendorKey: key,
		})
	}
}

// VendorSaveChanges replaces a vendor's name, items and orders in one transaction.
func VendorSaveChanges(svc vendors.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "vendor service unavailable"))
			return
		}

		var body vendors.SaveChangesInput
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		body.Name = validators.SanitizeString(body.Name, maxNameLength)

		if _, err := svc.SaveChanges(r.Context(), body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteMessageBody(w, http.StatusOK, types.MessageResponse{
			Message:   "Marketplace data saved successfully!",
			VendorKey: strings.TrimSpace(body.VendorKey),
		})
	}
}
