package items

import (
	"strconv"
	"strings"
)

// DeriveItemID returns vendorKey-<alphanumerics of itemName>-<nowMillis>.
// Two items with the same vendor and name created in the same millisecond
// share an id, and the second save overwrites the first.
func DeriveItemID(vendorKey, itemName string, nowMillis int64) string {
	var b strings.Builder
	b.Grow(len(vendorKey) + len(itemName) + 16)
	b.WriteString(vendorKey)
	b.WriteByte('-')
	for _, r := range itemName {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	b.WriteByte('-')
	b.WriteString(strconv.FormatInt(nowMillis, 10))
	return b.String()
}
