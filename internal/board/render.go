package board

import (
	"fmt"
	"strings"

	"github.com/sosmarketplace/sos-board/internal/items"
	"github.com/sosmarketplace/sos-board/internal/marketplace"
)

const indent = "  "

// Render draws the active view. It reads only its argument, so the same
// state always yields the same text.
func Render(st State) string {
	var b strings.Builder
	writeHeader(&b, st)
	switch {
	case st.isSuperadmin():
		renderSuperadmin(&b, st)
	case st.isVendor():
		renderVendor(&b, st)
	default:
		renderConsumer(&b, st)
	}
	return b.String()
}

func writeHeader(b *strings.Builder, st State) {
	fmt.Fprintf(b, "SOS Marketplace | %s", tabLabel(st.tab()))
	if st.Snapshot.LastUpdatedDate != "" {
		fmt.Fprintf(b, " | %s", st.Snapshot.LastUpdatedDate)
	}
	b.WriteString("\n")
	switch {
	case st.isSuperadmin():
		b.WriteString("Logged in as superadmin\n")
	case st.isVendor():
		fmt.Fprintf(b, "Logged in as vendor %s\n", st.Identity.VendorKey)
	}
	b.WriteString("\n")
}

func tabLabel(tab items.Tab) string {
	if tab == items.TabPreOrder {
		return "Pre-Order"
	}
	return "Now Selling"
}

// FormatPrice renders both prices of an item, e.g. "Cash: ₱12.50 | Payday: N/A".
func FormatPrice(it marketplace.Item) string {
	return fmt.Sprintf("Cash: %s | Payday: %s", it.PriceCash.Label(), it.PricePayday.Label())
}

func tabItems(v marketplace.Vendor, tab items.Tab) []marketplace.Item {
	var out []marketplace.Item
	for _, it := range v.SortedItems() {
		if tab.Matches(it.IsPreOrder) {
			out = append(out, it)
		}
	}
	return out
}

func renderConsumer(b *strings.Builder, st State) {
	tab := st.tab()
	shown := false
	for _, v := range st.Snapshot.SortedVendors() {
		var lines []string
		for _, it := range tabItems(v, tab) {
			if !it.IsAvailable {
				continue
			}
			lines = append(lines, fmt.Sprintf("%s- %s - %s [%s]", indent, it.Name, FormatPrice(it), it.ID))
		}
		if len(lines) == 0 {
			continue
		}
		shown = true
		fmt.Fprintf(b, "%s (%s)\n", v.Name, v.Key)
		for _, line := range lines {
			b.WriteString(line + "\n")
		}
		b.WriteString("\n")
	}
	if !shown {
		word := "Sale"
		if tab == items.TabPreOrder {
			word = "Pre-Order"
		}
		fmt.Fprintf(b, "No Items For %s Yet, Sellers Preparing.\n", word)
	}
}

func renderVendor(b *strings.Builder, st State) {
	v, ok := st.Snapshot.Vendors[st.Identity.VendorKey]
	if !ok {
		fmt.Fprintf(b, "Vendor %s is no longer on the board.\n", st.Identity.VendorKey)
		return
	}
	fmt.Fprintf(b, "%s (%s)\n", v.Name, v.Key)
	for _, it := range tabItems(v, st.tab()) {
		state := "OFF"
		if it.IsAvailable {
			state = "ON"
		}
		line := fmt.Sprintf("%s- %s - %s %s", indent, it.Name, FormatPrice(it), state)
		if it.IsPreOrder {
			line += " (Pre-Order)"
		}
		fmt.Fprintf(b, "%s [%s]\n", line, it.ID)
	}

	b.WriteString("\nOrders for Today\n")
	if len(v.Buyers) == 0 {
		b.WriteString(indent + "No orders for this vendor yet.\n")
		return
	}
	for i, o := range v.Buyers {
		fmt.Fprintf(b, "%s%d. %s %s - %s [%s/%s/%s]\n", indent, i+1, o.BuyerName, o.OrderAccount, o.ItemName, o.PaymentMethod, note(o), o.Time)
	}
}

func renderSuperadmin(b *strings.Builder, st State) {
	tab := st.tab()
	for _, v := range st.Snapshot.SortedVendors() {
		fmt.Fprintf(b, "%s (%s)\n", v.Name, v.Key)
		listed := tabItems(v, tab)
		if len(listed) == 0 {
			empty := "Now Selling"
			if tab == items.TabPreOrder {
				empty = "Pre-Order"
			}
			fmt.Fprintf(b, "%sNo %s items listed.\n", indent, empty)
		}
		for _, it := range listed {
			status := "Sold Out"
			if it.IsAvailable {
				status = "Available"
			}
			line := fmt.Sprintf("%s- %s - %s (%s)", indent, it.Name, FormatPrice(it), status)
			if it.IsPreOrder {
				line += " (Pre-Order)"
			}
			b.WriteString(line + "\n")
		}

		b.WriteString(indent + "Orders:\n")
		if len(v.Buyers) == 0 {
			b.WriteString(indent + indent + "No orders for this vendor yet.\n")
		}
		for i, o := range v.Buyers {
			fmt.Fprintf(b, "%s%s%d. %s - %s ordered %s (%s) on %s at %s\n", indent, indent, i+1, o.BuyerName, o.OrderAccount, o.ItemName, o.PaymentMethod, o.Date, o.Time)
		}
		b.WriteString("\n")
	}
	if len(st.Snapshot.Vendors) == 0 {
		b.WriteString("No vendors registered yet.\n")
	}
}

func note(o marketplace.Order) string {
	if o.BuyerNote == nil {
		return ""
	}
	return *o.BuyerNote
}
