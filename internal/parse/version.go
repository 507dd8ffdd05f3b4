package parse

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Firmware builds report themselves with strings like "JunctionRelay v1.4.2",
// "1.4.2-beta.1" or "v0.9". The trailing version token is what we compare.
var versionRe = regexp.MustCompile(`(?i)v?(\d+)\.(\d+)(?:\.(\d+))?(?:-([0-9a-z.-]+))?\s*$`)

// Version is a parsed firmware version.
type Version struct {
	Major int
	Minor int
	Patch int
	Pre   string // pre-release tag, empty for final builds
}

// ParseVersion extracts the version from a raw firmware string.
func ParseVersion(raw string) (Version, error) {
	s := strings.TrimSpace(raw)
	m := versionRe.FindStringSubmatch(s)
	if m == nil {
		return Version{}, fmt.Errorf("no version found in %q", raw)
	}

	major, _ := strconv.Atoi(m[1])
	minor, _ := strconv.Atoi(m[2])
	patch := 0
	if m[3] != "" {
		patch, _ = strconv.Atoi(m[3])
	}
	return Version{Major: major, Minor: minor, Patch: patch, Pre: strings.ToLower(m[4])}, nil
}

// Compare orders two versions: -1 when a < b, 0 when equal, 1 when a > b.
// At an equal triple, a pre-release build sorts before the final build.
func Compare(a, b Version) int {
	if c := cmpInt(a.Major, b.Major); c != 0 {
		return c
	}
	if c := cmpInt(a.Minor, b.Minor); c != 0 {
		return c
	}
	if c := cmpInt(a.Patch, b.Patch); c != 0 {
		return c
	}
	switch {
	case a.Pre == b.Pre:
		return 0
	case a.Pre == "":
		return 1
	case b.Pre == "":
		return -1
	}
	return strings.Compare(a.Pre, b.Pre)
}

// String renders the canonical form, e.g. "1.4.2-beta.1".
func (v Version) String() string {
	s := fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
	if v.Pre != "" {
		s += "-" + v.Pre
	}
	return s
}

func cmpInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}
