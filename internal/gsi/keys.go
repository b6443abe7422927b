package gsi

import (
	"regexp"
	"slices"
	"strconv"
	"strings"
)

var (
	suffixRx  = regexp.MustCompile(`(\d+)$`)
	teamKeyRx = regexp.MustCompile(`^team\d+$`)
	tierKeyRx = regexp.MustCompile(`^tier\d+$`)
)

// KeyMatcher selects which keys of an object take part in an extraction.
type KeyMatcher func(key string) bool

// AnyKey matches every key.
func AnyKey(string) bool { return true }

// Prefix matches keys beginning with prefix.
func Prefix(prefix string) KeyMatcher {
	return func(key string) bool {
		return strings.HasPrefix(key, prefix)
	}
}

// IsTeamKey reports whether key looks like "team<N>".
func IsTeamKey(key string) bool {
	return teamKeyRx.MatchString(key)
}

// Suffix returns the trailing integer of a key such as "slot8" or "team10".
func Suffix(key string) (int, bool) {
	match := suffixRx.FindString(key)
	if match == "" {
		return 0, false
	}

	value, err := strconv.Atoi(match)
	if err != nil {
		return 0, false
	}

	return value, true
}

// CompareSuffix orders keys by ascending numeric suffix. Keys without a suffix sort after
// all suffixed keys and compare lexicographically among themselves.
func CompareSuffix(a string, b string) int {
	aNum, aOk := Suffix(a)
	bNum, bOk := Suffix(b)

	switch {
	case !aOk && !bOk:
		return strings.Compare(a, b)
	case !aOk:
		return 1
	case !bOk:
		return -1
	case aNum != bNum:
		return aNum - bNum
	default:
		return strings.Compare(a, b)
	}
}

// SortedKeys extracts the keys of obj accepted by match, ordered by numeric suffix.
func SortedKeys(obj Object, match KeyMatcher) []string {
	keys := make([]string, 0, len(obj))
	for key := range obj {
		if match(key) {
			keys = append(keys, key)
		}
	}

	slices.SortFunc(keys, CompareSuffix)

	return keys
}
