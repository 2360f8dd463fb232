/*
   Copyright 2025 The DIRPX Authors

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

// Package semver implements parsing and total ordering for version strings
// under Semantic Versioning 2.0.0 (https://semver.org).
//
// Version holds the five grammar components (Major, Minor, Patch,
// Prerelease, Build) as string ranges taken directly from the input that
// was parsed. Slicing a Go string does not copy its backing array, so a
// parsed Version allocates nothing beyond the slice header itself; the
// comparator walks those ranges without allocating either. Parse itself
// splits the core and identifier lists with strings.Split, which
// allocates short-lived slices during parsing.
package semver

import "strings"

// Version is a parsed SemVer 2.0.0 version string.
//
// Major, Minor and Patch are the decimal digit strings of the version
// core. Prerelease and Build are the dot-separated identifier lists
// following '-' and '+' respectively, or empty if absent. All five
// fields are substrings of the string originally passed to Parse.
type Version struct {
	Major      string
	Minor      string
	Patch      string
	Prerelease string
	Build      string

	raw string
}

// Parse attempts to parse s as a SemVer 2.0.0 version string.
//
// It returns the parsed Version and true on success. On failure it
// returns the zero Version and false; callers MUST check the second
// return value before using the first.
func Parse(s string) (Version, bool) {
	if !isASCII(s) {
		return Version{}, false
	}

	rest := s

	var build string
	if i := strings.IndexByte(rest, '+'); i >= 0 {
		build = rest[i+1:]
		rest = rest[:i]
		if !validIdentifierList(build, true) {
			return Version{}, false
		}
	}

	var prerelease string
	if i := strings.IndexByte(rest, '-'); i >= 0 {
		prerelease = rest[i+1:]
		rest = rest[:i]
		if !validIdentifierList(prerelease, false) {
			return Version{}, false
		}
	}

	major, minor, patch, ok := splitCore(rest)
	if !ok {
		return Version{}, false
	}

	return Version{
		Major:      major,
		Minor:      minor,
		Patch:      patch,
		Prerelease: prerelease,
		Build:      build,
		raw:        s,
	}, true
}

// String returns the canonical textual representation of v.
//
// For any Version produced by Parse, String reproduces the exact input
// string (the SemVer round-trip property).
func (v Version) String() string {
	var b strings.Builder
	b.Grow(len(v.Major) + len(v.Minor) + len(v.Patch) + len(v.Prerelease) + len(v.Build) + 4)
	b.WriteString(v.Major)
	b.WriteByte('.')
	b.WriteString(v.Minor)
	b.WriteByte('.')
	b.WriteString(v.Patch)
	if v.Prerelease != "" {
		b.WriteByte('-')
		b.WriteString(v.Prerelease)
	}
	if v.Build != "" {
		b.WriteByte('+')
		b.WriteString(v.Build)
	}
	return b.String()
}

// Compare reports the SemVer 2.0.0 precedence ordering of v and other.
//
// It returns -1 if v has lower precedence than other, 0 if they have
// equal precedence, and +1 if v has higher precedence. Build metadata
// is ignored per SemVer 2.0.0: "1.0.0-a" and "1.0.0-a+anything" compare
// equal.
func (v Version) Compare(other Version) int {
	if c := compareNumeric(v.Major, other.Major); c != 0 {
		return c
	}
	if c := compareNumeric(v.Minor, other.Minor); c != 0 {
		return c
	}
	if c := compareNumeric(v.Patch, other.Patch); c != 0 {
		return c
	}

	switch {
	case v.Prerelease == "" && other.Prerelease == "":
		return 0
	case v.Prerelease == "":
		return 1
	case other.Prerelease == "":
		return -1
	}

	return comparePrerelease(v.Prerelease, other.Prerelease)
}

// Less reports whether v has strictly lower precedence than other.
func (v Version) Less(other Version) bool { return v.Compare(other) < 0 }

// Equal reports whether v and other have equal precedence (build
// metadata ignored).
func (v Version) Equal(other Version) bool { return v.Compare(other) == 0 }

// Greater reports whether v has strictly higher precedence than other.
func (v Version) Greater(other Version) bool { return v.Compare(other) > 0 }

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] > 0x7F {
			return false
		}
	}
	return true
}

func splitCore(s string) (major, minor, patch string, ok bool) {
	parts := strings.Split(s, ".")
	if len(parts) != 3 {
		return "", "", "", false
	}
	for _, p := range parts {
		if !validNumber(p) {
			return "", "", "", false
		}
	}
	return parts[0], parts[1], parts[2], true
}

// validNumber reports whether s is a valid SemVer numeric core component:
// one or more ASCII digits, with no leading zero unless s is exactly "0".
func validNumber(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	if len(s) > 1 && s[0] == '0' {
		return false
	}
	return true
}

// validIdentifierList reports whether s is a valid dot-separated list of
// SemVer identifiers. allowLeadingZero controls whether an all-digit
// identifier may have a leading zero (true for build metadata, false for
// pre-release labels).
func validIdentifierList(s string, allowLeadingZero bool) bool {
	if s == "" {
		return false
	}
	for _, id := range strings.Split(s, ".") {
		if !validIdentifier(id, allowLeadingZero) {
			return false
		}
	}
	return true
}

func validIdentifier(id string, allowLeadingZero bool) bool {
	if id == "" {
		return false
	}
	allDigits := true
	for i := 0; i < len(id); i++ {
		c := id[i]
		switch {
		case c >= '0' && c <= '9':
		case c >= 'A' && c <= 'Z', c >= 'a' && c <= 'z', c == '-':
			allDigits = false
		default:
			return false
		}
	}
	if allDigits && !allowLeadingZero && len(id) > 1 && id[0] == '0' {
		return false
	}
	return true
}

// compareNumeric compares two validated numeric-core strings (no leading
// zeros unless exactly "0") as unsigned integers without converting to a
// machine integer type: a longer digit string is always numerically
// larger, and equal-length strings compare lexicographically.
func compareNumeric(a, b string) int {
	if len(a) != len(b) {
		if len(a) < len(b) {
			return -1
		}
		return 1
	}
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func comparePrerelease(a, b string) int {
	aMore, bMore := true, true
	for aMore && bMore {
		var ai, bi string
		ai, a, aMore = strings.Cut(a, ".")
		bi, b, bMore = strings.Cut(b, ".")
		if c := compareIdentifier(ai, bi); c != 0 {
			return c
		}
	}

	switch {
	case aMore == bMore:
		return 0
	case bMore:
		return -1
	default:
		return 1
	}
}

func compareIdentifier(a, b string) int {
	aNum := isNumericIdentifier(a)
	bNum := isNumericIdentifier(b)

	switch {
	case aNum && bNum:
		return compareNumeric(a, b)
	case aNum && !bNum:
		return -1
	case !aNum && bNum:
		return 1
	default:
		switch {
		case a < b:
			return -1
		case a > b:
			return 1
		default:
			return 0
		}
	}
}

func isNumericIdentifier(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
