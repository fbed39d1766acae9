package tag

import (
	"regexp"
	"sort"
	"strings"
)

// None is reported for filenames that carry no bracketed tag.
const None = "none"

var bracketPattern = regexp.MustCompile(`\[([^\[\]]+)\]`)

// Extract returns the inner text of the first bracketed segment in name.
func Extract(name string) (string, bool) {
	m := bracketPattern.FindStringSubmatch(name)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// ExtractOr is Extract with a fallback for untagged names.
func ExtractOr(name, fallback string) string {
	if t, ok := Extract(name); ok {
		return t
	}
	return fallback
}

// Marker wraps a tag in brackets. The result is used verbatim both for
// matching filenames and as the destination folder name.
func Marker(tagName string) string {
	return "[" + tagName + "]"
}

// Matches reports whether a basename contains the literal marker for tagName.
// This is plain substring containment; Extract plays no part in it, so a file
// named "a[x][y].txt" matches both "x" and "y".
func Matches(name, tagName string) bool {
	return strings.Contains(name, Marker(tagName))
}

// Count is the number of files carrying a given tag.
type Count struct {
	Tag   string
	Files int
}

// Collect counts the first bracketed tag of every name. Untagged names are
// ignored. The result is sorted by tag.
func Collect(names []string) []Count {
	counts := make(map[string]int)
	for _, name := range names {
		if t, ok := Extract(name); ok {
			counts[t]++
		}
	}

	result := make([]Count, 0, len(counts))
	for t, n := range counts {
		result = append(result, Count{Tag: t, Files: n})
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Tag < result[j].Tag })
	return result
}
