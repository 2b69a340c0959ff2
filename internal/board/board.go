package board

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sosmarketplace/sos-board/internal/items"
	"github.com/sosmarketplace/sos-board/internal/marketplace"
	"github.com/sosmarketplace/sos-board/internal/orders"
	"github.com/sosmarketplace/sos-board/internal/vendors"
	pkgerrors "github.com/sosmarketplace/sos-board/pkg/errors"
	"github.com/sosmarketplace/sos-board/pkg/logger"
	"github.com/sosmarketplace/sos-board/pkg/types"
)

const (
	// DefaultSuperadminKey unlocks the superadmin view when no other secret is configured.
	DefaultSuperadminKey = "mpsosadmin"

	orderDateLayout = "01/02"
	orderTimeLayout = "03:04 PM"
)

// Board runs the reconciliation loop: every mutation is followed by a full
// reload, and the reloaded snapshot replaces the old one.
type Board struct {
	api           API
	superadminKey string
	now           func() time.Time
	logg          *logger.Logger
	onChange      func(State)
}

// Params wires a Board. OnChange, when set, receives local state that is
// shown ahead of a server round trip, and the restored state if that trip fails.
type Params struct {
	API           API
	SuperadminKey string
	Now           func() time.Time
	Logger        *logger.Logger
	OnChange      func(State)
}

func New(p Params) (*Board, error) {
	if p.API == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "board api required")
	}
	if strings.TrimSpace(p.SuperadminKey) == "" {
		p.SuperadminKey = DefaultSuperadminKey
	}
	if p.Now == nil {
		p.Now = time.Now
	}
	return &Board{
		api:           p.API,
		superadminKey: p.SuperadminKey,
		now:           p.Now,
		logg:          p.Logger,
		onChange:      p.OnChange,
	}, nil
}

// Reload fetches the whole board and replaces the snapshot in st.
func (b *Board) Reload(ctx context.Context, st State) (State, error) {
	snap, err := b.api.Snapshot(ctx)
	if err != nil {
		return st, err
	}
	st.Snapshot = *snap
	if b.logg != nil {
		b.logg.Debug(b.logg.WithField(ctx, "vendors", len(snap.Vendors)), "board.reloaded")
	}
	return st, nil
}

// mutate issues one write and, once it succeeds, reloads. A failed write
// leaves st untouched.
func (b *Board) mutate(ctx context.Context, st State, op string, call func(context.Context) (types.MessageResponse, error)) (State, types.MessageResponse, error) {
	resp, err := call(ctx)
	if err != nil {
		b.logFailure(ctx, op, err)
		return st, resp, err
	}
	next, err := b.Reload(ctx, st)
	if err != nil {
		b.logFailure(ctx, op+".reload", err)
		return st, resp, err
	}
	return next, resp, nil
}

func (b *Board) publish(st State) {
	if b.onChange != nil {
		b.onChange(st)
	}
}

func (b *Board) logFailure(ctx context.Context, op string, err error) {
	if b.logg == nil {
		return
	}
	ctx = b.logg.WithOperation(ctx, op)
	b.logg.Warn(b.logg.WithField(ctx, "error", err.Error()), "board.mutation_failed")
}

// Login resolves key to an identity. An unknown vendor key triggers one
// reload before it is rejected.
func (b *Board) Login(ctx context.Context, st State, key string) (State, error) {
	key = strings.TrimSpace(key)
	if key == b.superadminKey {
		next, err := b.Reload(ctx, st)
		if err != nil {
			return st, err
		}
		next.Identity = Identity{Role: RoleSuperadmin}
		return next, nil
	}
	if key != "" {
		if _, ok := st.Snapshot.Vendors[key]; !ok {
			next, err := b.Reload(ctx, st)
			if err != nil {
				return st, err
			}
			st = next
		}
		if _, ok := st.Snapshot.Vendors[key]; ok {
			st.Identity = Identity{Role: RoleVendor, VendorKey: key}
			return st, nil
		}
	}
	return st, pkgerrors.New(pkgerrors.CodeNotFound, "Invalid Vendor Key. Please ensure your key is correct or register as a new vendor.")
}

// Logout returns to the consumer view.
func (b *Board) Logout(st State) State {
	st.Identity = Consumer()
	return st
}

// RegisterVendor creates a vendor and returns the generated key.
func (b *Board) RegisterVendor(ctx context.Context, st State, in vendors.RegisterInput) (State, string, error) {
	if strings.TrimSpace(in.FullName) == "" || strings.TrimSpace(in.AccountName) == "" {
		return st, "", pkgerrors.New(pkgerrors.CodeValidation, "Please enter the Vendor's Full Name and Account.")
	}
	next, resp, err := b.mutate(ctx, st, "vendors.register", func(ctx context.Context) (types.MessageResponse, error) {
		return b.api.RegisterVendor(ctx, in)
	})
	return next, resp.VendorKey, err
}

// OrderRequest is a buyer's order for one listed item.
type OrderRequest struct {
	VendorKey     string
	ItemID        string
	BuyerName     string
	OrderAccount  string
	BuyerNote     string
	PaymentMethod string
}

// PlaceOrder checks the chosen payment method against the item's prices,
// stamps the order with the local date and time and submits it.
func (b *Board) PlaceOrder(ctx context.Context, st State, req OrderRequest) (State, error) {
	vendor, ok := st.Snapshot.Vendors[req.VendorKey]
	if !ok {
		return st, pkgerrors.New(pkgerrors.CodeNotFound, "An item must be selected to place an order.")
	}
	item, ok := vendor.Items[req.ItemID]
	if !ok {
		return st, pkgerrors.New(pkgerrors.CodeNotFound, "An item must be selected to place an order.")
	}
	if strings.TrimSpace(req.BuyerName) == "" || strings.TrimSpace(req.OrderAccount) == "" || strings.TrimSpace(req.PaymentMethod) == "" {
		return st, pkgerrors.New(pkgerrors.CodeValidation, "Please fill in all order details: Your Name, Your Account/Identifier, and Payment Method.")
	}
	method, err := orders.ParsePaymentMethod(req.PaymentMethod)
	if err != nil {
		return st, pkgerrors.Wrap(pkgerrors.CodeValidation, err, `Payment method must be "Cash" or "Payday".`)
	}
	if method == orders.PaymentCash && !item.PriceCash.Valid {
		return st, pkgerrors.New(pkgerrors.CodeValidation, "Cash payment is not available for this item.")
	}
	if method == orders.PaymentPayday && !item.PricePayday.Valid {
		return st, pkgerrors.New(pkgerrors.CodeValidation, "Payday payment is not available for this item.")
	}

	now := b.now()
	in := orders.PlaceInput{
		VendorKey:     req.VendorKey,
		BuyerName:     strings.TrimSpace(req.BuyerName),
		OrderAccount:  strings.TrimSpace(req.OrderAccount),
		BuyerNote:     strings.TrimSpace(req.BuyerNote),
		ItemName:      item.Name,
		PaymentMethod: string(method),
		OrderDate:     now.Format(orderDateLayout),
		OrderTime:     now.Format(orderTimeLayout),
		IsPreOrder:    item.IsPreOrder,
	}
	next, _, err := b.mutate(ctx, st, "orders.place", func(ctx context.Context) (types.MessageResponse, error) {
		return b.api.PlaceOrder(ctx, in)
	})
	return next, err
}

// ToggleAvailability flips one of the logged-in vendor's items and publishes
// the flipped state before saving it. On failure the previous state is
// published again and returned. Nothing is reloaded either way.
func (b *Board) ToggleAvailability(ctx context.Context, st State, itemID string) (State, error) {
	if !st.isVendor() {
		return st, pkgerrors.New(pkgerrors.CodeValidation, "You must be logged in as a vendor to change item availability.")
	}
	key := st.Identity.VendorKey
	item, ok := st.Snapshot.Vendors[key].Items[itemID]
	if !ok {
		return st, pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("Item %q not found for vendor %s.", itemID, key))
	}

	optimistic := st
	optimistic.Snapshot = st.Snapshot.Clone()
	flipped := item
	flipped.IsAvailable = !item.IsAvailable
	optimistic.Snapshot.Vendors[key].Items[itemID] = flipped
	b.publish(optimistic)

	_, err := b.api.SaveItem(ctx, items.SaveInput{VendorKey: key, Item: itemInput(flipped)})
	if err != nil {
		b.logFailure(ctx, "items.toggle", err)
		b.publish(st)
		return st, err
	}
	return optimistic, nil
}

// ItemDraft is a new listing added from the vendor view.
type ItemDraft struct {
	Name        string
	PriceCash   types.Price
	PricePayday types.Price
	IsPreOrder  bool
}

// AddItem lists a new available item for the logged-in vendor.
func (b *Board) AddItem(ctx context.Context, st State, draft ItemDraft) (State, string, error) {
	if !st.isVendor() {
		return st, "", pkgerrors.New(pkgerrors.CodeValidation, "You must be logged in as a vendor to add items.")
	}
	if strings.TrimSpace(draft.Name) == "" {
		return st, "", pkgerrors.New(pkgerrors.CodeValidation, "Item name is required.")
	}
	in := items.SaveInput{
		VendorKey: st.Identity.VendorKey,
		Item: items.ItemInput{
			Name:        strings.TrimSpace(draft.Name),
			PriceCash:   draft.PriceCash,
			PricePayday: draft.PricePayday,
			IsAvailable: true,
			IsPreOrder:  draft.IsPreOrder,
		},
	}
	next, resp, err := b.mutate(ctx, st, "items.save", func(ctx context.Context) (types.MessageResponse, error) {
		return b.api.SaveItem(ctx, in)
	})
	return next, resp.ItemID, err
}

// DeleteItem removes one of the logged-in vendor's items.
func (b *Board) DeleteItem(ctx context.Context, st State, itemID string) (State, error) {
	if !st.isVendor() {
		return st, pkgerrors.New(pkgerrors.CodeValidation, "You must be logged in as a vendor to delete items.")
	}
	in := items.DeleteInput{VendorKey: st.Identity.VendorKey, ItemID: itemID}
	next, _, err := b.mutate(ctx, st, "items.delete", func(ctx context.Context) (types.MessageResponse, error) {
		return b.api.DeleteItem(ctx, in)
	})
	return next, err
}

// MarkSoldOut marks every item of the logged-in vendor on the active tab unavailable.
func (b *Board) MarkSoldOut(ctx context.Context, st State) (State, error) {
	if !st.isVendor() {
		if st.isSuperadmin() {
			return st, pkgerrors.New(pkgerrors.CodeValidation, `Superadmin cannot use the "Sold Out" button.`)
		}
		return st, pkgerrors.New(pkgerrors.CodeValidation, `You must be logged in as a vendor to use the "Sold Out" button.`)
	}
	in := items.SoldOutInput{VendorKey: st.Identity.VendorKey, ActiveTab: string(st.tab())}
	next, _, err := b.mutate(ctx, st, "items.sold_out", func(ctx context.Context) (types.MessageResponse, error) {
		return b.api.MarkSoldOut(ctx, in)
	})
	return next, err
}

// ClearOrders empties the logged-in vendor's buyer list.
func (b *Board) ClearOrders(ctx context.Context, st State) (State, error) {
	if !st.isVendor() {
		if st.isSuperadmin() {
			return st, pkgerrors.New(pkgerrors.CodeValidation, "Superadmin cannot clear buyer lists.")
		}
		return st, pkgerrors.New(pkgerrors.CodeValidation, "You must be logged in as a vendor to clear the buyer list.")
	}
	in := orders.ClearInput{VendorKey: st.Identity.VendorKey}
	next, _, err := b.mutate(ctx, st, "orders.clear", func(ctx context.Context) (types.MessageResponse, error) {
		return b.api.ClearOrders(ctx, in)
	})
	return next, err
}

// SaveChanges writes the logged-in vendor's current snapshot back under a
// possibly new display name.
func (b *Board) SaveChanges(ctx context.Context, st State, name string) (State, error) {
	if !st.isVendor() {
		return st, pkgerrors.New(pkgerrors.CodeValidation, "You must be logged in as a vendor to save changes.")
	}
	vendor, ok := st.Snapshot.Vendors[st.Identity.VendorKey]
	if !ok {
		return st, pkgerrors.New(pkgerrors.CodeNotFound, "Vendor not found.")
	}
	if strings.TrimSpace(name) == "" {
		name = vendor.Name
	}
	in := vendors.SaveChangesInput{VendorKey: vendor.Key, Name: strings.TrimSpace(name)}
	for _, it := range vendor.SortedItems() {
		in.Items = append(in.Items, itemInput(it))
	}
	for _, o := range vendor.Buyers {
		in.Buyers = append(in.Buyers, vendors.BuyerInput{
			BuyerName:     o.BuyerName,
			OrderAccount:  o.OrderAccount,
			BuyerNote:     note(o),
			ItemName:      o.ItemName,
			PaymentMethod: o.PaymentMethod,
			Date:          o.Date,
			Time:          o.Time,
			IsPreOrder:    o.IsPreOrder,
		})
	}
	next, _, err := b.mutate(ctx, st, "vendors.save", func(ctx context.Context) (types.MessageResponse, error) {
		return b.api.SaveVendorChanges(ctx, in)
	})
	return next, err
}

// DeleteVendor removes a vendor with its items and orders. Superadmin only.
func (b *Board) DeleteVendor(ctx context.Context, st State, vendorKey string) (State, error) {
	if !st.isSuperadmin() {
		return st, pkgerrors.New(pkgerrors.CodeValidation, "Only the superadmin can delete vendors.")
	}
	if strings.TrimSpace(vendorKey) == "" {
		return st, pkgerrors.New(pkgerrors.CodeValidation, "Error: No vendor ID found for deletion.")
	}
	in := vendors.DeleteInput{VendorKey: strings.TrimSpace(vendorKey)}
	next, _, err := b.mutate(ctx, st, "vendors.delete", func(ctx context.Context) (types.MessageResponse, error) {
		return b.api.DeleteVendor(ctx, in)
	})
	return next, err
}

func itemInput(it marketplace.Item) items.ItemInput {
	return items.ItemInput{
		ID:          it.ID,
		Name:        it.Name,
		PriceCash:   it.PriceCash,
		PricePayday: it.PricePayday,
		IsAvailable: it.IsAvailable,
		IsPreOrder:  it.IsPreOrder,
	}
}
