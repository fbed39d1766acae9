// Package fsys binds gestor to the host filesystem through go-billy.
package fsys

import (
	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
)

var _ billy.Filesystem = (*OS)(nil)

// OS is a billy.Filesystem that acts like the native filesystem. Paths are
// passed to the OS untouched, so relative paths resolve against the working
// directory and may climb above it.
type OS struct {
	osfs.ChrootOS
}

// New returns the native filesystem.
func New() *OS {
	return &OS{}
}

// Chroot returns a new filesystem rooted at path.
func (o *OS) Chroot(path string) (billy.Filesystem, error) {
	return osfs.New(path), nil
}

// Root returns the root path for this filesystem.
func (o *OS) Root() string {
	return "/"
}
