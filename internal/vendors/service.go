package vendors

import (
	"context"
	"strings"
	"time"

	"github.com/sosmarketplace/sos-board/internal/items"
	"github.com/sosmarketplace/sos-board/internal/orders"
	"github.com/sosmarketplace/sos-board/pkg/db"
	"github.com/sosmarketplace/sos-board/pkg/db/models"
	pkgerrors "github.com/sosmarketplace/sos-board/pkg/errors"
	"gorm.io/gorm"
)

// Service covers vendor-level mutations other than registration.
type Service interface {
	Delete(ctx context.Context, input DeleteInput) error
	SaveChanges(ctx context.Context, input SaveChangesInput) (*SaveChangesResult, error)
}

type service struct {
	repo   Repository
	items  items.Repository
	orders orders.Repository
	tx     txRunner
	now    func() time.Time
}

func NewService(repo Repository, itemsRepo items.Repository, ordersRepo orders.Repository, tx txRunner, now func() time.Time) (Service, error) {
	if repo == nil || itemsRepo == nil || ordersRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "vendor, item and order repositories required")
	}
	if tx == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "transaction runner required")
	}
	if now == nil {
		now = time.Now
	}
	return &service{repo: repo, items: itemsRepo, orders: ordersRepo, tx: tx, now: now}, nil
}

// Delete removes the vendor; storage cascades its items and orders. Deleting a
// vendor that no longer exists succeeds.
func (s *service) Delete(ctx context.Context, input DeleteInput) error {
	key := strings.TrimSpace(input.VendorKey)
	if key == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "Missing vendorKey")
	}
	if _, err := s.repo.Delete(ctx, key); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete vendor")
	}
	return nil
}

// SaveChanges renames the vendor and replaces all of its items and orders in a
// single transaction, items first.
func (s *service) SaveChanges(ctx context.Context, input SaveChangesInput) (*SaveChangesResult, error) {
	key := strings.TrimSpace(input.VendorKey)
	name := strings.TrimSpace(input.Name)
	if key == "" || name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "Missing vendorKey or name")
	}

	itemRows, err := s.itemRows(key, input.Items)
	if err != nil {
		return nil, err
	}
	buyerRows := make([]models.Buyer, 0, len(input.Buyers))
	for _, b := range input.Buyers {
		row, err := b.order(key).Normalize()
		if err != nil {
			return nil, err
		}
		buyerRows = append(buyerRows, row)
	}

	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		updated, err := s.repo.WithTx(tx).UpdateName(ctx, key, name)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update vendor name")
		}
		if updated == 0 {
			return notFound(key)
		}

		itemsRepo := s.items.WithTx(tx)
		if _, err := itemsRepo.DeleteByVendor(ctx, key); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "clear vendor items")
		}
		if err := itemsRepo.CreateMany(ctx, itemRows); err != nil {
			if db.IsUniqueViolation(err, "") {
				return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "Item id already in use.")
			}
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "insert vendor items")
		}

		ordersRepo := s.orders.WithTx(tx)
		if _, err := ordersRepo.DeleteByVendor(ctx, key); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "clear vendor orders")
		}
		if err := ordersRepo.CreateMany(ctx, buyerRows); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "insert vendor orders")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &SaveChangesResult{Items: len(itemRows), Buyers: len(buyerRows)}, nil
}

func (s *service) itemRows(key string, inputs []items.ItemInput) ([]models.Item, error) {
	rows := make([]models.Item, 0, len(inputs))
	seen := make(map[string]struct{}, len(inputs))
	nowMillis := s.now().UnixMilli()
	for _, in := range inputs {
		row := in.ToModel(key)
		if row.Name == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "Every item needs a name.")
		}
		if row.ID == "" {
			row.ID = items.DeriveItemID(key, row.Name, nowMillis)
			for _, taken := seen[row.ID]; taken; _, taken = seen[row.ID] {
				nowMillis++
				row.ID = items.DeriveItemID(key, row.Name, nowMillis)
			}
		}
		if _, dup := seen[row.ID]; dup {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "Item id already in use.").
				WithDetails(map[string]string{"itemId": row.ID})
		}
		seen[row.ID] = struct{}{}
		rows = append(rows, row)
	}
	return rows, nil
}
