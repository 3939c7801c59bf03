// Package fsys provides the go-billy filesystems mdcompact runs against.
package fsys

import (
	"fmt"
	"os"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/osfs"
)

// nativeOS is a billy.Filesystem that resolves paths exactly like the
// operating system does, so absolute paths keep their meaning.
type nativeOS struct {
	osfs.ChrootOS
}

//nolint:ireturn // billy.Filesystem is an interface; signature is dictated by upstream.
func (n *nativeOS) Chroot(path string) (billy.Filesystem, error) {
	return osfs.New(path), nil
}

func (n *nativeOS) Root() string {
	return string(os.PathSeparator)
}

// NewOS returns the native filesystem.
//
//nolint:ireturn
func NewOS() billy.Filesystem {
	return &nativeOS{}
}

// NewMemory returns an empty in-memory filesystem.
//
//nolint:ireturn
func NewMemory() billy.Filesystem {
	return memfs.New()
}

// IsDir reports whether path exists on fs and is a directory.
func IsDir(fs billy.Filesystem, path string) (bool, error) {
	info, err := fs.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("stat %q: %w", path, err)
	}
	return info.IsDir(), nil
}
