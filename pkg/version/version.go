package version

import (
	"strings"
)

// IsGreater reports whether (version1, release1) is strictly
// greater than (version2, release2).
//
// Versions are compared segment by segment, where segments are
// separated by '.'. A pair of segments that are both numeric is
// compared as integers, any other pair is compared as strings.
// If the versions are equal, the releases are compared as strings.
func IsGreater(version1, release1, version2, release2 string) bool {
	for {
		seg1, rest1, ok1 := strings.Cut(version1, ".")
		seg2, rest2, ok2 := strings.Cut(version2, ".")
		if !ok1 || !ok2 {
			break
		}
		if c := compareSegment(seg1, seg2); c != 0 {
			return c > 0
		}
		version1, version2 = rest1, rest2
	}

	// whatever is left is compared as a single segment
	if c := compareSegment(version1, version2); c != 0 {
		return c > 0
	}

	return release1 > release2
}

func compareSegment(s1, s2 string) int {
	if !isNumeric(s1) || !isNumeric(s2) {
		return strings.Compare(s1, s2)
	}
	// integers of any length: drop leading zeros, then the
	// longer number is the bigger one
	s1 = trimZeros(s1)
	s2 = trimZeros(s2)
	if len(s1) != len(s2) {
		if len(s1) > len(s2) {
			return 1
		}
		return -1
	}
	return strings.Compare(s1, s2)
}

func isNumeric(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

func trimZeros(s string) string {
	s = strings.TrimLeft(s, "0")
	if s == "" {
		return "0"
	}
	return s
}
