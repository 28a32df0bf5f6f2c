package dedupe

// Package dedupe provides shared singleflight groups used to deduplicate
// concurrent loads. Using a centralized singleflight.Group ensures that only
// one repository read runs for a given key while other callers wait for the
// result.

import "golang.org/x/sync/singleflight"

// ProfileGroup deduplicates profile loads keyed by ProfileKey(accountID).
var ProfileGroup singleflight.Group

// ProfileKey is the singleflight key for one account's profile.
func ProfileKey(accountID string) string { return "profile:" + accountID }
