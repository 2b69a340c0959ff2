package vendors

import (
	"fmt"

	pkgerrors "github.com/sosmarketplace/sos-board/pkg/errors"
)

// NewDuplicateKeyError reports a vendor key collision. The message is shown
// to the person registering, so it names the key.
func NewDuplicateKeyError(key string) error {
	return pkgerrors.New(pkgerrors.CodeDuplicateKey, fmt.Sprintf("A vendor with the key %q already exists.", key)).
		WithDetails(map[string]string{"vendorKey": key})
}

// IsDuplicateKey reports whether err is a vendor key collision.
func IsDuplicateKey(err error) bool {
	return pkgerrors.HasCode(err, pkgerrors.CodeDuplicateKey)
}

// IsValidation reports whether err is a rejected input.
func IsValidation(err error) bool {
	return pkgerrors.HasCode(err, pkgerrors.CodeValidation)
}

func notFound(key string) error {
	return pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("Vendor %q not found.", key)).
		WithDetails(map[string]string{"vendorKey": key})
}
