package stringutil

import "strings"

// EqualStringsASCIIIgnoreCase performs case-insensitive comparison of two strings.
// Only ASCII letters are folded, every other byte must match exactly.
func EqualStringsASCIIIgnoreCase(s1, s2 string) bool {
	// Easy case.
	if len(s1) != len(s2) {
		return false
	}
	for i := 0; i < len(s1); i++ {
		if !EqualASCIIIgnoreCase(s1[i], s2[i]) {
			return false
		}
	}
	return true
}

// HasPrefixASCIIIgnoreCase reports whether s begins with prefix, folding ASCII letters.
func HasPrefixASCIIIgnoreCase(s, prefix string) bool {
	return len(s) >= len(prefix) && EqualStringsASCIIIgnoreCase(s[:len(prefix)], prefix)
}

// EqualASCIIIgnoreCase performs case-insensitive comparison of two ASCII bytes.
func EqualASCIIIgnoreCase(s, t uint8) bool {
	// Easy case.
	if t == s {
		return true
	}

	// Make s < t to simplify what follows.
	if t < s {
		t, s = s, t
	}

	// ASCII only, s/t must be upper/lower case
	if 'A' <= s && s <= 'Z' && t == s+'a'-'A' {
		return true
	}

	return false
}

// TrimSlash removes every leading and trailing slash.
func TrimSlash(s string) string {
	return strings.Trim(s, "/")
}

// EqualTrimmed reports whether s1 and s2 are equal, ignoring ASCII case and
// leading or trailing slashes.
func EqualTrimmed(s1, s2 string) bool {
	return EqualStringsASCIIIgnoreCase(TrimSlash(s1), TrimSlash(s2))
}
