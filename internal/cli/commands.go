package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sosmarketplace/sos-board/internal/board"
	"github.com/sosmarketplace/sos-board/internal/vendors"
	"github.com/sosmarketplace/sos-board/pkg/types"
)

// NewViewCommand prints the board for the current identity and tab.
func NewViewCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "view",
		Short: "Show the board",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd.Context(), cmd, rootOpts, true)
			if err != nil {
				return err
			}
			return s.print(Result{})
		},
	}
}

// NewLoginCommand resolves a key and prints the view it unlocks.
func NewLoginCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "login <vendor-key>",
		Short: "Check a vendor key or the superadmin secret and show its view",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd.Context(), cmd, rootOpts, false)
			if err != nil {
				return err
			}
			if s.state, err = s.board.Login(cmd.Context(), s.state, args[0]); err != nil {
				return err
			}
			msg := "Logged in as superadmin."
			if s.state.Identity.Role == board.RoleVendor {
				msg = fmt.Sprintf("Logged in as vendor %s.", s.state.Identity.VendorKey)
			}
			return s.print(Result{Message: msg, VendorKey: s.state.Identity.VendorKey})
		},
	}
}

type itemFlags struct {
	name     string
	cash     string
	payday   string
	preOrder bool
}

func (f *itemFlags) bind(cmd *cobra.Command, prefix string) {
	cmd.Flags().StringVar(&f.name, prefix+"name", "", "item name")
	cmd.Flags().StringVar(&f.cash, prefix+"cash", "", "cash price")
	cmd.Flags().StringVar(&f.payday, prefix+"payday", "", "payday price")
	cmd.Flags().BoolVar(&f.preOrder, prefix+"preorder", false, "list the item for pre-order")
}

func (f *itemFlags) prices() (types.Price, types.Price, error) {
	cash, err := types.ParsePrice(f.cash)
	if err != nil {
		return types.Price{}, types.Price{}, err
	}
	payday, err := types.ParsePrice(f.payday)
	if err != nil {
		return types.Price{}, types.Price{}, err
	}
	return cash, payday, nil
}

// NewRegisterCommand creates a vendor and prints its generated key.
func NewRegisterCommand(rootOpts *RootOptions) *cobra.Command {
	var (
		fullName string
		account  string
		item     itemFlags
	)
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Register a new vendor, optionally with a first item",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cash, payday, err := item.prices()
			if err != nil {
				return err
			}
			s, err := openSession(cmd.Context(), cmd, rootOpts, false)
			if err != nil {
				return err
			}
			var key string
			s.state, key, err = s.board.RegisterVendor(cmd.Context(), s.state, vendors.RegisterInput{
				FullName:        fullName,
				AccountName:     account,
				ItemName:        item.name,
				ItemPriceCash:   cash,
				ItemPricePayday: payday,
				ItemPreOrder:    item.preOrder,
			})
			if err != nil {
				return err
			}
			return s.print(Result{
				Message:   fmt.Sprintf("Vendor registered successfully! Your vendor key is: %s", key),
				VendorKey: key,
			})
		},
	}
	cmd.Flags().StringVar(&fullName, "full-name", "", "vendor's full name")
	cmd.Flags().StringVar(&account, "account", "", "vendor's account name")
	item.bind(cmd, "item-")
	return cmd
}

// NewOrderCommand places an order for one listed item.
func NewOrderCommand(rootOpts *RootOptions) *cobra.Command {
	var req board.OrderRequest
	cmd := &cobra.Command{
		Use:   "order <vendor-key> <item-id>",
		Short: "Place an order",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd.Context(), cmd, rootOpts, true)
			if err != nil {
				return err
			}
			req.VendorKey, req.ItemID = args[0], args[1]
			if s.state, err = s.board.PlaceOrder(cmd.Context(), s.state, req); err != nil {
				return err
			}
			return s.print(Result{Message: "Order placed successfully!"})
		},
	}
	cmd.Flags().StringVar(&req.BuyerName, "name", "", "your name")
	cmd.Flags().StringVar(&req.OrderAccount, "account", "", "your account or identifier")
	cmd.Flags().StringVar(&req.BuyerNote, "note", "", "note for the vendor")
	cmd.Flags().StringVar(&req.PaymentMethod, "method", "", "payment method (cash|payday)")
	return cmd
}

// NewToggleCommand flips one of the vendor's items between ON and OFF.
func NewToggleCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "toggle <item-id>",
		Short: "Toggle an item's availability",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd.Context(), cmd, rootOpts, true)
			if err != nil {
				return err
			}
			if s.state, err = s.board.ToggleAvailability(cmd.Context(), s.state, args[0]); err != nil {
				return err
			}
			return s.print(Result{ItemID: args[0]})
		},
	}
}

// NewAddItemCommand lists a new item for the vendor.
func NewAddItemCommand(rootOpts *RootOptions) *cobra.Command {
	var item itemFlags
	cmd := &cobra.Command{
		Use:   "add-item",
		Short: "Add an item to your listings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cash, payday, err := item.prices()
			if err != nil {
				return err
			}
			s, err := openSession(cmd.Context(), cmd, rootOpts, true)
			if err != nil {
				return err
			}
			var id string
			s.state, id, err = s.board.AddItem(cmd.Context(), s.state, board.ItemDraft{
				Name:        item.name,
				PriceCash:   cash,
				PricePayday: payday,
				IsPreOrder:  item.preOrder,
			})
			if err != nil {
				return err
			}
			return s.print(Result{Message: "Changes saved!", ItemID: id})
		},
	}
	item.bind(cmd, "")
	return cmd
}

// NewDeleteItemCommand removes one of the vendor's items.
func NewDeleteItemCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "delete-item <item-id>",
		Short: "Delete one of your items",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd.Context(), cmd, rootOpts, true)
			if err != nil {
				return err
			}
			if s.state, err = s.board.DeleteItem(cmd.Context(), s.state, args[0]); err != nil {
				return err
			}
			return s.print(Result{Message: "Item deleted successfully!", ItemID: args[0]})
		},
	}
}

// NewSoldOutCommand marks every item on the active tab sold out.
func NewSoldOutCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "sold-out",
		Short: "Mark all your items on the active tab as sold out",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd.Context(), cmd, rootOpts, true)
			if err != nil {
				return err
			}
			if s.state, err = s.board.MarkSoldOut(cmd.Context(), s.state); err != nil {
				return err
			}
			return s.print(Result{Message: `All your items on this tab are now marked as "Sold Out"!`})
		},
	}
}

// NewClearOrdersCommand empties the vendor's buyer list.
func NewClearOrdersCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "clear-orders",
		Short: "Clear your buyer list",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd.Context(), cmd, rootOpts, true)
			if err != nil {
				return err
			}
			if s.state, err = s.board.ClearOrders(cmd.Context(), s.state); err != nil {
				return err
			}
			return s.print(Result{Message: "Buyer list cleared!"})
		},
	}
}

// NewSaveCommand writes the vendor's listings back, optionally renaming the vendor.
func NewSaveCommand(rootOpts *RootOptions) *cobra.Command {
	var name string
	cmd := &cobra.Command{
		Use:   "save",
		Short: "Save your vendor listings and display name",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd.Context(), cmd, rootOpts, true)
			if err != nil {
				return err
			}
			if s.state, err = s.board.SaveChanges(cmd.Context(), s.state, name); err != nil {
				return err
			}
			return s.print(Result{Message: "Changes saved!"})
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "new display name")
	return cmd
}

// NewDeleteVendorCommand removes a vendor. Requires the superadmin secret.
func NewDeleteVendorCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "delete-vendor <vendor-key>",
		Short: "Delete a vendor with its items and orders",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd.Context(), cmd, rootOpts, true)
			if err != nil {
				return err
			}
			if s.state, err = s.board.DeleteVendor(cmd.Context(), s.state, args[0]); err != nil {
				return err
			}
			return s.print(Result{Message: fmt.Sprintf("Vendor %q has been deleted.", args[0])})
		},
	}
}
