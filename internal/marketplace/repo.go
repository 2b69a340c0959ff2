package marketplace

import (
	"context"

	"github.com/sosmarketplace/sos-board/internal/repo"
	"github.com/sosmarketplace/sos-board/pkg/db/models"
	"gorm.io/gorm"
)

// Repository reads whole tables for snapshot assembly.
type Repository interface {
	ListVendors(ctx context.Context) ([]models.Vendor, error)
	ListItems(ctx context.Context) ([]models.Item, error)
	ListBuyers(ctx context.Context) ([]models.Buyer, error)
}

type repository struct {
	repo.Base
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{Base: repo.NewBase(db)}
}

func (r *repository) ListVendors(ctx context.Context) ([]models.Vendor, error) {
	var vendors []models.Vendor
	err := r.DB(ctx).Order("key ASC").Find(&vendors).Error
	return vendors, err
}

func (r *repository) ListItems(ctx context.Context) ([]models.Item, error) {
	var items []models.Item
	err := r.DB(ctx).Order("created_at ASC").Order("id ASC").Find(&items).Error
	return items, err
}

func (r *repository) ListBuyers(ctx context.Context) ([]models.Buyer, error) {
	var buyers []models.Buyer
	err := r.DB(ctx).Order("id ASC").Find(&buyers).Error
	return buyers, err
}
