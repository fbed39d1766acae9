package scan

import (
	"fmt"
	"os"
	"strings"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"

	"github.com/gabssanto/gestor/internal/tag"
)

// Extension returns the part of a basename after its last dot, or "" when the
// name has no dot at all.
func Extension(name string) string {
	i := strings.LastIndexByte(name, '.')
	if i < 0 {
		return ""
	}
	return name[i+1:]
}

// Scan walks the tree under root and groups every file whose basename
// contains "[tagName]" by extension. Paths are built by joining root with the
// entries below it, so a relative root yields relative paths.
func Scan(fs billy.Filesystem, root, tagName string) (*Result, error) {
	result := &Result{Groups: make(Groups)}

	err := walk(fs, root, result, func(path, name string) {
		if !tag.Matches(name, tagName) {
			return
		}
		ext := Extension(name)
		result.Groups[ext] = append(result.Groups[ext], path)
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

// Tags walks the tree under root and counts the first bracketed tag of every
// file name.
func Tags(fs billy.Filesystem, root string) ([]tag.Count, []ScanError, error) {
	var names []string
	result := &Result{}

	err := walk(fs, root, result, func(_, name string) {
		names = append(names, name)
	})
	if err != nil {
		return nil, nil, err
	}

	return tag.Collect(names), result.Errors, nil
}

// walk visits every file below root. Symlinks are never followed: a link to a
// directory is skipped, a link to anything else is visited as a file. A
// symlinked root is followed. A directory below root that cannot be listed
// is recorded in result.Errors and skipped.
func walk(fs billy.Filesystem, root string, result *Result, visit func(path, name string)) error {
	info, err := fs.Stat(root)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrSourceUnreadable, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: not a directory: %s", ErrSourceUnreadable, root)
	}

	entries, err := fs.ReadDir(root)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrSourceUnreadable, err)
	}

	walkFn := func(path string, info os.FileInfo, err error) error {
		if err != nil {
			// Skip entries we can't access
			result.Errors = append(result.Errors, ScanError{Path: path, Err: err})
			return nil
		}

		switch {
		case info.IsDir():
		case info.Mode()&os.ModeSymlink != 0:
			if target, err := fs.Stat(path); err == nil && target.IsDir() {
				return nil
			}
			visit(path, info.Name())
		default:
			visit(path, info.Name())
		}
		return nil
	}

	for _, entry := range entries {
		if err := util.Walk(fs, fs.Join(root, entry.Name()), walkFn); err != nil {
			return err
		}
	}
	return nil
}
