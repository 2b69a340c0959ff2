package marketplace

import (
	"sort"
	"strings"

	"github.com/sosmarketplace/sos-board/pkg/types"
)

// DateLayout is the US MM/DD/YYYY form lastUpdatedDate is written in.
const DateLayout = "01/02/2006"

// Snapshot is the whole board as served by the read endpoint. Clients replace
// their copy with each new snapshot instead of merging.
type Snapshot struct {
	Vendors         map[string]Vendor `json:"vendors"`
	LastUpdatedDate string            `json:"lastUpdatedDate"`
}

type Vendor struct {
	Name   string          `json:"name"`
	Key    string          `json:"key"`
	Items  map[string]Item `json:"items"`
	Buyers []Order         `json:"buyers"`
}

type Item struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	PriceCash   types.Price `json:"priceCash"`
	PricePayday types.Price `json:"pricePayday"`
	IsAvailable bool        `json:"isAvailable"`
	IsPreOrder  bool        `json:"isPreOrder"`
}

type Order struct {
	BuyerName     string  `json:"buyerName"`
	OrderAccount  string  `json:"orderAccount"`
	BuyerNote     *string `json:"buyerNote"`
	ItemName      string  `json:"itemName"`
	PaymentMethod string  `json:"paymentMethod"`
	Date          string  `json:"date"`
	Time          string  `json:"time"`
	IsPreOrder    bool    `json:"isPreOrder"`
}

// SortedVendors returns vendors ordered by name, case-insensitively, with the
// key breaking ties.
func (s Snapshot) SortedVendors() []Vendor {
	out := make([]Vendor, 0, len(s.Vendors))
	for _, v := range s.Vendors {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := strings.ToLower(out[i].Name), strings.ToLower(out[j].Name)
		if a != b {
			return a < b
		}
		return out[i].Key < out[j].Key
	})
	return out
}

// SortedItems returns the vendor's items ordered by name, then id.
func (v Vendor) SortedItems() []Item {
	out := make([]Item, 0, len(v.Items))
	for _, it := range v.Items {
		out = append(out, it)
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := strings.ToLower(out[i].Name), strings.ToLower(out[j].Name)
		if a != b {
			return a < b
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// Clone deep-copies the snapshot so a caller can edit it without touching the
// original.
func (s Snapshot) Clone() Snapshot {
	out := Snapshot{
		Vendors:         make(map[string]Vendor, len(s.Vendors)),
		LastUpdatedDate: s.LastUpdatedDate,
	}
	for key, v := range s.Vendors {
		cp := Vendor{
			Name:   v.Name,
			Key:    v.Key,
			Items:  make(map[string]Item, len(v.Items)),
			Buyers: make([]Order, len(v.Buyers)),
		}
		for id, it := range v.Items {
			cp.Items[id] = it
		}
		copy(cp.Buyers, v.Buyers)
		out.Vendors[key] = cp
	}
	return out
}
