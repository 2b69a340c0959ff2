package board

import (
	"github.com/sosmarketplace/sos-board/internal/items"
	"github.com/sosmarketplace/sos-board/internal/marketplace"
)

// Role selects which view the board renders.
type Role string

const (
	RoleConsumer   Role = "consumer"
	RoleVendor     Role = "vendor"
	RoleSuperadmin Role = "superadmin"
)

// Identity is who is looking at the board. VendorKey is set only for vendors.
type Identity struct {
	Role      Role
	VendorKey string
}

// Consumer is the logged-out identity.
func Consumer() Identity {
	return Identity{Role: RoleConsumer}
}

// State is everything a render depends on. Operations return a new State
// rather than mutating shared fields.
type State struct {
	Snapshot marketplace.Snapshot
	Identity Identity
	Tab      items.Tab
}

// NewState returns an empty consumer state on the now tab.
func NewState() State {
	return State{
		Snapshot: marketplace.Snapshot{Vendors: map[string]marketplace.Vendor{}},
		Identity: Consumer(),
		Tab:      items.TabNow,
	}
}

// WithTab switches the active tab.
func (s State) WithTab(tab items.Tab) State {
	s.Tab = tab
	return s
}

func (s State) tab() items.Tab {
	if s.Tab == "" {
		return items.TabNow
	}
	return s.Tab
}

func (s State) isVendor() bool {
	return s.Identity.Role == RoleVendor && s.Identity.VendorKey != ""
}

func (s State) isSuperadmin() bool {
	return s.Identity.Role == RoleSuperadmin
}
