package orders

import (
	"context"
	"errors"

	"github.com/sosmarketplace/sos-board/internal/repo"
	"github.com/sosmarketplace/sos-board/pkg/db/models"
	"gorm.io/gorm"
)

// Repository defines persistence operations for the buyers table.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, buyer *models.Buyer) error
	CreateMany(ctx context.Context, buyers []models.Buyer) error
	ListByVendor(ctx context.Context, vendorID string) ([]models.Buyer, error)
	DeleteByVendor(ctx context.Context, vendorID string) (int64, error)
	VendorExists(ctx context.Context, vendorID string) (bool, error)
}

type repository struct {
	repo.Base
}

// NewRepository builds an orders repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{Base: repo.NewBase(db)}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return NewRepository(tx)
}

func (r *repository) Create(ctx context.Context, buyer *models.Buyer) error {
	return r.DB(ctx).Create(buyer).Error
}

func (r *repository) CreateMany(ctx context.Context, buyers []models.Buyer) error {
	if len(buyers) == 0 {
		return nil
	}
	return r.DB(ctx).Create(&buyers).Error
}

func (r *repository) ListByVendor(ctx context.Context, vendorID string) ([]models.Buyer, error) {
	var buyers []models.Buyer
	err := r.DB(ctx).
		Where("vendor_id = ?", vendorID).
		Order("id ASC").
		Find(&buyers).Error
	return buyers, err
}

func (r *repository) DeleteByVendor(ctx context.Context, vendorID string) (int64, error) {
	res := r.DB(ctx).Where("vendor_id = ?", vendorID).Delete(&models.Buyer{})
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
