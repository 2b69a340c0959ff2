package items

import (
	"context"
	"errors"

	"github.com/sosmarketplace/sos-board/internal/repo"
	"github.com/sosmarketplace/sos-board/pkg/db/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Repository defines persistence operations for the items table.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, item *models.Item) error
	CreateMany(ctx context.Context, items []models.Item) error
	Upsert(ctx context.Context, item *models.Item) error
	FindByID(ctx context.Context, id string) (*models.Item, error)
	Delete(ctx context.Context, id, vendorID string) (int64, error)
	DeleteByVendor(ctx context.Context, vendorID string) (int64, error)
	MarkSoldOut(ctx context.Context, vendorID string, preOrder bool) (int64, error)
	VendorExists(ctx context.Context, vendorID string) (bool, error)
}

type repository struct {
	repo.Base
}

// NewRepository builds an items repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{Base: repo.NewBase(db)}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return NewRepository(tx)
}

func (r *repository) Create(ctx context.Context, item *models.Item) error {
	return r.DB(ctx).Create(item).Error
}

func (r *repository) CreateMany(ctx context.Context, items []models.Item) error {
	if len(items) == 0 {
		return nil
	}
	return r.DB(ctx).Create(&items).Error
}

func (r *repository) Upsert(ctx context.Context, item *models.Item) error {
	return r.DB(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"name",
				"price_cash",
				"price_payday",
				"is_available",
				"is_pre_order",
			}),
		}).
		Create(item).Error
}

func (r *repository) FindByID(ctx context.Context, id string) (*models.Item, error) {
	var item models.Item
	if err := r.DB(ctx).Where("id = ?", id).First(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *repository) Delete(ctx context.Context, id, vendorID string) (int64, error) {
	res := r.DB(ctx).
		Where("id = ? AND vendor_id = ?", id, vendorID).
		Delete(&models.Item{})
	return res.RowsAffected, res.Error
}

func (r *repository) DeleteByVendor(ctx context.Context, vendorID string) (int64, error) {
	res := r.DB(ctx).Where("vendor_id = ?", vendorID).Delete(&models.Item{})
	return res.RowsAffected, res.Error
}

func (r *repository) MarkSoldOut(ctx context.Context, vendorID string, preOrder bool) (int64, error) {
	res := r.DB(ctx).
		Model(&models.Item{}).
		Where("vendor_id = ? AND is_pre_order = ?", vendorID, preOrder).
		Update("is_available", false)
	return res.RowsAffected, res.Error
}

func (r *repository) VendorExists(ctx context.Context, vendorID string) (bool, error) {
	var vendor models.Vendor
	err := r.DB(ctx).Select("id").Where("id = ?", vendorID).Take(&vendor).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
