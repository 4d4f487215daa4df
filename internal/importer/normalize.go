package importer

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// normalizeKey maps a display name to the key used to match existing rows:
// NFC, lower case, single spaces.
func normalizeKey(name string) string {
	name = norm.NFC.String(name)
	name = strings.ToLower(name)
	return strings.Join(strings.Fields(name), " ")
}
