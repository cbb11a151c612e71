package names

import (
	"regexp"
	"strings"
)

var (
	disallowed = regexp.MustCompile(`[^\w\s_-]`)
	whitespace = regexp.MustCompile(`\s+`)
)

// Sanitize canonicalises a room, sensor or group name so names reported on the bus
// can be matched against group names on the bridge.
func Sanitize(s string) string {
	s = disallowed.ReplaceAllString(s, "")
	s = whitespace.ReplaceAllString(s, " ")
	return strings.ToLower(strings.TrimSpace(s))
}
