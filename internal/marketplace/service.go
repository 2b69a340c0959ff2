package marketplace

import (
	"context"
	"time"

	"github.com/sosmarketplace/sos-board/pkg/db/models"
	pkgerrors "github.com/sosmarketplace/sos-board/pkg/errors"
	"github.com/sosmarketplace/sos-board/pkg/types"
)

// Service assembles the board snapshot.
type Service interface {
	Snapshot(ctx context.Context) (*Snapshot, error)
}

type service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository, now func() time.Time) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "marketplace repository required")
	}
	if now == nil {
		now = time.Now
	}
	return &service{repo: repo, now: now}, nil
}

func (s *service) Snapshot(ctx context.Context) (*Snapshot, error) {
	vendors, err := s.repo.ListVendors(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list vendors")
	}
	items, err := s.repo.ListItems(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list items")
	}
	buyers, err := s.repo.ListBuyers(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list buyers")
	}

	return Assemble(vendors, items, buyers, s.now()), nil
}

// Assemble groups item and buyer rows under their vendors, keyed by vendor
// key. Rows pointing at unknown vendors are dropped.
func Assemble(vendors []models.Vendor, items []models.Item, buyers []models.Buyer, now time.Time) *Snapshot {
	itemsByVendor := make(map[string]map[string]Item)
	for _, it := range items {
		group, ok := itemsByVendor[it.VendorID]
		if !ok {
			group = make(map[string]Item)
			itemsByVendor[it.VendorID] = group
		}
		group[it.ID] = Item{
			ID:          it.ID,
			Name:        it.Name,
			PriceCash:   types.Price{NullDecimal: it.PriceCash},
			PricePayday: types.Price{NullDecimal: it.PricePayday},
			IsAvailable: it.IsAvailable,
			IsPreOrder:  it.IsPreOrder,
		}
	}

	buyersByVendor := make(map[string][]Order)
	for _, b := range buyers {
		buyersByVendor[b.VendorID] = append(buyersByVendor[b.VendorID], Order{
			BuyerName:     b.BuyerName,
			OrderAccount:  b.OrderAccount,
			BuyerNote:     b.BuyerNote,
			ItemName:      b.ItemName,
			PaymentMethod: b.PaymentMethod,
			Date:          b.OrderDate,
			Time:          b.OrderTime,
			IsPreOrder:    b.IsPreOrder,
		})
	}

	snap := &Snapshot{
		Vendors:         make(map[string]Vendor, len(vendors)),
		LastUpdatedDate: now.Format(DateLayout),
	}
	for _, v := range vendors {
		vendorItems := itemsByVendor[v.ID]
		if vendorItems == nil {
			vendorItems = map[string]Item{}
		}
		vendorBuyers := buyersByVendor[v.ID]
		if vendorBuyers == nil {
			vendorBuyers = []Order{}
		}
		snap.Vendors[v.Key] = Vendor{
			Name:   v.Name,
			Key:    v.Key,
			Items:  vendorItems,
			Buyers: vendorBuyers,
		}
	}
	return snap
}
