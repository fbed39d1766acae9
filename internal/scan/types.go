package scan

import (
	"errors"
	"sort"
)

// ErrSourceUnreadable is returned when the scan root is missing, is not a
// directory, or cannot be listed.
var ErrSourceUnreadable = errors.New("source directory is unreadable")

// Groups maps a file extension to the matched paths carrying it, in the order
// the walk found them. The empty extension holds files without a dot.
type Groups map[string][]string

// Extensions returns the group keys sorted ascending; "" sorts first.
func (g Groups) Extensions() []string {
	exts := make([]string, 0, len(g))
	for ext := range g {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}

// Sorted returns a sorted copy of the paths grouped under ext.
func (g Groups) Sorted(ext string) []string {
	paths := append([]string(nil), g[ext]...)
	sort.Strings(paths)
	return paths
}

// Len returns the total number of paths across all groups.
func (g Groups) Len() int {
	n := 0
	for _, paths := range g {
		n += len(paths)
	}
	return n
}

// Result contains everything a scan found
type Result struct {
	Groups Groups
	Errors []ScanError
}

// ScanError represents a non-fatal error during scanning
type ScanError struct {
	Path string
	Err  error
}

func (e ScanError) Error() string {
	return e.Path + ": " + e.Err.Error()
}

func (e ScanError) Unwrap() error {
	return e.Err
}
