package board

import (
	"context"
	"errors"

	"github.com/sosmarketplace/sos-board/internal/items"
	"github.com/sosmarketplace/sos-board/internal/marketplace"
	"github.com/sosmarketplace/sos-board/internal/orders"
	"github.com/sosmarketplace/sos-board/internal/vendors"
	"github.com/sosmarketplace/sos-board/pkg/types"
)

// fakeAPI keeps a server-side snapshot and applies mutations to it.
type fakeAPI struct {
	server    marketplace.Snapshot
	snapshots int
	saved     []items.SaveInput
	placed    []orders.PlaceInput
	saveErr   error
	failNext  error
	onSave    func(items.SaveInput)
}

func newFakeAPI(snap marketplace.Snapshot) *fakeAPI {
	return &fakeAPI{server: snap}
}

func (f *fakeAPI) fail() error {
	err := f.failNext
	f.failNext = nil
	return err
}

func (f *fakeAPI) Snapshot(context.Context) (*marketplace.Snapshot, error) {
	f.snapshots++
	snap := f.server.Clone()
	return &snap, nil
}

func (f *fakeAPI) RegisterVendor(_ context.Context, in vendors.RegisterInput) (types.MessageResponse, error) {
	if err := f.fail(); err != nil {
		return types.MessageResponse{}, err
	}
	key := vendors.DeriveVendorKey(in.FullName, in.AccountName)
	f.server.Vendors[key] = marketplace.Vendor{Name: key, Key: key, Items: map[string]marketplace.Item{}, Buyers: []marketplace.Order{}}
	return types.MessageResponse{Message: "Vendor registered successfully!", VendorKey: key}, nil
}

func (f *fakeAPI) DeleteVendor(_ context.Context, in vendors.DeleteInput) (types.MessageResponse, error) {
	if err := f.fail(); err != nil {
		return types.MessageResponse{}, err
	}
	delete(f.server.Vendors, in.VendorKey)
	return types.MessageResponse{Message: "deleted"}, nil
}

func (f *fakeAPI) SaveVendorChanges(_ context.Context, in vendors.SaveChangesInput) (types.MessageResponse, error) {
	if err := f.fail(); err != nil {
		return types.MessageResponse{}, err
	}
	v := f.server.Vendors[in.VendorKey]
	v.Name = in.Name
	f.server.Vendors[in.VendorKey] = v
	return types.MessageResponse{Message: "Marketplace data saved successfully!"}, nil
}

func (f *fakeAPI) SaveItem(_ context.Context, in items.SaveInput) (types.MessageResponse, error) {
	f.saved = append(f.saved, in)
	if f.onSave != nil {
		f.onSave(in)
	}
	if f.saveErr != nil {
		return types.MessageResponse{}, f.saveErr
	}
	v, ok := f.server.Vendors[in.VendorKey]
	if !ok {
		return types.MessageResponse{}, errors.New("vendor not found")
	}
	id := in.Item.ID
	if id == "" {
		id = items.DeriveItemID(in.VendorKey, in.Item.Name, 1)
	}
	v.Items[id] = marketplace.Item{
		ID:          id,
		Name:        in.Item.Name,
		PriceCash:   in.Item.PriceCash,
		PricePayday: in.Item.PricePayday,
		IsAvailable: in.Item.IsAvailable,
		IsPreOrder:  in.Item.IsPreOrder,
	}
	return types.MessageResponse{Message: "Item saved successfully", VendorKey: in.VendorKey, ItemID: id}, nil
}

func (f *fakeAPI) DeleteItem(_ context.Context, in items.DeleteInput) (types.MessageResponse, error) {
	if err := f.fail(); err != nil {
		return types.MessageResponse{}, err
	}
	delete(f.server.Vendors[in.VendorKey].Items, in.ItemID)
	return types.MessageResponse{Message: "Item deleted successfully"}, nil
}

func (f *fakeAPI) MarkSoldOut(_ context.Context, in items.SoldOutInput) (types.MessageResponse, error) {
	if err := f.fail(); err != nil {
		return types.MessageResponse{}, err
	}
	tab, err := items.ParseTab(in.ActiveTab)
	if err != nil {
		return types.MessageResponse{}, err
	}
	v := f.server.Vendors[in.VendorKey]
	for id, it := range v.Items {
		if tab.Matches(it.IsPreOrder) {
			it.IsAvailable = false
			v.Items[id] = it
		}
	}
	return types.MessageResponse{Message: "Vendor items marked as sold out successfully"}, nil
}

func (f *fakeAPI) PlaceOrder(_ context.Context, in orders.PlaceInput) (types.MessageResponse, error) {
	if err := f.fail(); err != nil {
		return types.MessageResponse{}, err
	}
	f.placed = append(f.placed, in)
	v := f.server.Vendors[in.VendorKey]
	var noteRef *string
	if in.BuyerNote != "" {
		n := in.BuyerNote
		noteRef = &n
	}
	v.Buyers = append(v.Buyers, marketplace.Order{
		BuyerName:     in.BuyerName,
		OrderAccount:  in.OrderAccount,
		BuyerNote:     noteRef,
		ItemName:      in.ItemName,
		PaymentMethod: in.PaymentMethod,
		Date:          in.OrderDate,
		Time:          in.OrderTime,
		IsPreOrder:    in.IsPreOrder,
	})
	f.server.Vendors[in.VendorKey] = v
	return types.MessageResponse{Message: "Order placed successfully"}, nil
}

func (f *fakeAPI) ClearOrders(_ context.Context, in orders.ClearInput) (types.MessageResponse, error) {
	if err := f.fail(); err != nil {
		return types.MessageResponse{}, err
	}
	v := f.server.Vendors[in.VendorKey]
	v.Buyers = []marketplace.Order{}
	f.server.Vendors[in.VendorKey] = v
	return types.MessageResponse{Message: "Vendor orders cleared successfully"}, nil
}
