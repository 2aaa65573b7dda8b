package holehe

import (
	"regexp"
	"strings"
)

// Marker is the substring holehe prints on lines for platforms where the email is registered.
const Marker = "[+]"

var ansiEscape = regexp.MustCompile(`\x1b\[[0-9;]*[A-Za-z]`)

// ParsePlatforms returns one entry per output line containing Marker: the text
// after the first marker, cut at the first colon, trimmed. Order and duplicates
// are preserved. The result is never nil.
func ParsePlatforms(stdout string) []string {
	platforms := []string{}
	for _, line := range strings.Split(stdout, "\n") {
		_, after, found := strings.Cut(line, Marker)
		if !found {
			continue
		}
		name, _, _ := strings.Cut(after, ":")
		name = ansiEscape.ReplaceAllString(name, "")
		platforms = append(platforms, strings.TrimSpace(name))
	}
	return platforms
}
