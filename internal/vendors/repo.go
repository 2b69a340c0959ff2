package vendors

import (
	"context"

	"github.com/sosmarketplace/sos-board/internal/repo"
	"github.com/sosmarketplace/sos-board/pkg/db/models"
	"gorm.io/gorm"
)

// Repository defines persistence operations for the vendors table.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, vendor *models.Vendor) error
	FindByKey(ctx context.Context, key string) (*models.Vendor, error)
	UpdateName(ctx context.Context, id, name string) (int64, error)
	Delete(ctx context.Context, id string) (int64, error)
}

type repository struct {
	repo.Base
}

// NewRepository builds a vendors repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{Base: repo.NewBase(db)}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return NewRepository(tx)
}

func (r *repository) Create(ctx context.Context, vendor *models.Vendor) error {
	return r.DB(ctx).Create(vendor).Error
}

func (r *repository) FindByKey(ctx context.Context, key string) (*models.Vendor, error) {
	var vendor models.Vendor
	if err := r.DB(ctx).Where("key = ?", key).First(&vendor).Error; err != nil {
		return nil, err
	}
	return &vendor, nil
}

func (r *repository) UpdateName(ctx context.Context, id, name string) (int64, error) {
	res := r.DB(ctx).Model(&models.Vendor{}).Where("id = ?", id).Update("name", name)
	return res.RowsAffected, res.Error
}

// Delete removes the vendor; items and buyers go with it through ON DELETE CASCADE.
func (r *repository) Delete(ctx context.Context, id string) (int64, error) {
	res := r.DB(ctx).Where("id = ?", id).Delete(&models.Vendor{})
	return res.RowsAffected, res.Error
}
