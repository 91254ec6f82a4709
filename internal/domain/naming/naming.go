package naming

import (
	"fmt"
	"regexp"
	"strings"
)

// Fallback is the display name used when a title sanitizes to nothing.
const Fallback = "untitled"

var unsafeChars = regexp.MustCompile(`[\\/:*?"<>|]+`)

// Sanitize maps an arbitrary title to a filesystem-safe name. Runs of unsafe
// characters collapse to a single underscore; surrounding whitespace and
// leftover underscores are trimmed. Never returns an empty string.
func Sanitize(title string) string {
	name := strings.TrimSpace(title)
	name = unsafeChars.ReplaceAllString(name, "_")
	name = strings.Trim(name, "_ \t")
	if name == "" {
		return Fallback
	}
	return name
}

// ResolveDuplicates rewrites colliding names with a stable numeric prefix.
// Every occurrence of a name that appears more than once becomes
// "NN - name", where NN is that occurrence's 1-based position in the original
// order. Unique names pass through untouched, so applying the function to its
// own output is a no-op.
func ResolveDuplicates(names []string) []string {
	counts := make(map[string]int, len(names))
	for _, n := range names {
		counts[n]++
	}

	out := make([]string, len(names))
	for i, n := range names {
		if counts[n] > 1 {
			out[i] = fmt.Sprintf("%02d - %s", i+1, n)
		} else {
			out[i] = n
		}
	}
	return out
}
