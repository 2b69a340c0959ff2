package vendors

import (
	"strings"
	"unicode"
)

// keySegmentLen is how many letters each input contributes to a vendor key.
const keySegmentLen = 2

// DeriveVendorKey builds the short login key for a vendor from the first word
// of its full name and the first word of its account name, e.g.
// ("Juan Dela Cruz", "juan_acct") -> "JuJu". Inputs without letters yield an
// empty segment.
func DeriveVendorKey(fullName, accountName string) string {
	return keySegment(fullName) + keySegment(accountName)
}

func keySegment(value string) string {
	fields := strings.Fields(value)
	if len(fields) == 0 {
		return ""
	}

	letters := make([]rune, 0, keySegmentLen)
	for _, r := range fields[0] {
		if !isASCIILetter(r) {
			continue
		}
		letters = append(letters, r)
		if len(letters) == keySegmentLen {
			break
		}
	}
	if len(letters) == 0 {
		return ""
	}

	letters[0] = unicode.ToUpper(letters[0])
	for i := 1; i < len(letters); i++ {
		letters[i] = unicode.ToLower(letters[i])
	}
	return string(letters)
}

func isASCIILetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}
