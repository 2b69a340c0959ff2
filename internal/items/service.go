package items

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sosmarketplace/sos-board/pkg/db"
	"github.com/sosmarketplace/sos-board/pkg/db/models"
	pkgerrors "github.com/sosmarketplace/sos-board/pkg/errors"
	"gorm.io/gorm"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Service exposes the vendor-facing item mutations.
type Service interface {
	Save(ctx context.Context, input SaveInput) (*models.Item, error)
	Delete(ctx context.Context, input DeleteInput) error
	MarkSoldOut(ctx context.Context, input SoldOutInput) (int64, error)
}

type service struct {
	repo Repository
	tx   txRunner
	now  func() time.Time
}

// NewService wires the item service. A nil clock defaults to time.Now.
func NewService(repo Repository, tx txRunner, now func() time.Time) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "items repository required")
	}
	if tx == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "transaction runner required")
	}
	if now == nil {
		now = time.Now
	}
	return &service{repo: repo, tx: tx, now: now}, nil
}

func (s *service) Save(ctx context.Context, input SaveInput) (*models.Item, error) {
	vendorKey := strings.TrimSpace(input.VendorKey)
	item := input.Item.ToModel(vendorKey)
	if vendorKey == "" || item.Name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "Missing vendorKey or item name")
	}
	if item.ID == "" {
		item.ID = DeriveItemID(vendorKey, item.Name, s.now().UnixMilli())
	}

	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		exists, err := repo.VendorExists(ctx, vendorKey)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "check vendor")
		}
		if !exists {
			return vendorNotFound(vendorKey)
		}

		existing, err := repo.FindByID(ctx, item.ID)
		switch {
		case err == nil && existing.VendorID != vendorKey:
			return pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("Item %q does not belong to vendor %q.", item.ID, vendorKey))
		case err != nil && !errors.Is(err, gorm.ErrRecordNotFound):
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load item")
		}

		if err := repo.Upsert(ctx, &item); err != nil {
			if db.IsForeignKeyViolation(err) {
				return vendorNotFound(vendorKey)
			}
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "save item")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// Delete removes the item only when vendorKey owns it. A missing item is not
// an error.
func (s *service) Delete(ctx context.Context, input DeleteInput) error {
	vendorKey := strings.TrimSpace(input.VendorKey)
	itemID := strings.TrimSpace(input.ItemID)
	if vendorKey == "" || itemID == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "Missing itemId or vendorKey")
	}

	if _, err := s.repo.Delete(ctx, itemID, vendorKey); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete item")
	}
	return nil
}

func (s *service) MarkSoldOut(ctx context.Context, input SoldOutInput) (int64, error) {
	vendorKey := strings.TrimSpace(input.VendorKey)
	if vendorKey == "" || strings.TrimSpace(input.ActiveTab) == "" {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "Missing vendorKey or activeTab")
	}
	tab, err := ParseTab(input.ActiveTab)
	if err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeValidation, err, `activeTab must be "now" or "preorder"`)
	}

	updated, err := s.repo.MarkSoldOut(ctx, vendorKey, tab.PreOrder())
	if err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mark items sold out")
	}
	return updated, nil
}

func vendorNotFound(vendorKey string) error {
	return pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("Vendor %q not found.", vendorKey)).
		WithDetails(map[string]string{"vendorKey": vendorKey})
}
