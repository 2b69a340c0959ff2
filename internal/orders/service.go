package orders

import (
	"context"
	"fmt"
	"strings"

	"github.com/sosmarketplace/sos-board/pkg/db"
	"github.com/sosmarketplace/sos-board/pkg/db/models"
	pkgerrors "github.com/sosmarketplace/sos-board/pkg/errors"
)

// Service records and clears buyer orders.
type Service interface {
	Place(ctx context.Context, input PlaceInput) (*models.Buyer, error)
	Clear(ctx context.Context, input ClearInput) (int64, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "orders repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) Place(ctx context.Context, input PlaceInput) (*models.Buyer, error) {
	buyer, err := input.Normalize()
	if err != nil {
		return nil, err
	}

	exists, err := s.repo.VendorExists(ctx, buyer.VendorID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "check vendor")
	}
	if !exists {
		return nil, vendorNotFound(buyer.VendorID)
	}

	if err := s.repo.Create(ctx, &buyer); err != nil {
		// the vendor was deleted after the existence check
		if db.IsForeignKeyViolation(err) {
			return nil, vendorNotFound(buyer.VendorID)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "place order")
	}
	return &buyer, nil
}

// Clear deletes the vendor's orders. Clearing an empty list succeeds.
func (s *service) Clear(ctx context.Context, input ClearInput) (int64, error) {
	vendorKey := strings.TrimSpace(input.VendorKey)
	if vendorKey == "" {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "Missing vendorKey")
	}

	removed, err := s.repo.DeleteByVendor(ctx, vendorKey)
	if err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "clear orders")
	}
	return removed, nil
}

func vendorNotFound(vendorKey string) error {
	return pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("Vendor %q not found.", vendorKey)).
		WithDetails(map[string]string{"vendorKey": vendorKey})
}
