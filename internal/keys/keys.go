package keys

import (
	"strings"
)

// separator joins the character and weapon parts of a ledger key.
const separator = ":"

// Normalize produces the canonical form of a roster or weapon id.
// Behavior: trims, lower-cases and replaces inner spaces with underscores.
func Normalize(id string) string {
	s := strings.TrimSpace(id)
	return strings.ToLower(strings.ReplaceAll(s, " ", "_"))
}

// LedgerKey builds the canonical upgrade-ledger key for a (character, weapon)
// pair, e.g. "lloyd:katana". Suitable as a stable persisted map key.
func LedgerKey(characterID, weaponID string) string {
	return Normalize(characterID) + separator + Normalize(weaponID)
}

// SplitLedgerKey reverses LedgerKey. ok is false when the key does not have
// exactly one separator or either part is empty.
func SplitLedgerKey(key string) (characterID, weaponID string, ok bool) {
	parts := strings.Split(key, separator)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", false
	}
	return parts[0], parts[1], true
}
