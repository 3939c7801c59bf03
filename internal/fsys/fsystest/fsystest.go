// Package fsystest holds filesystem helpers shared by mdcompact's tests.
package fsystest

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"
)

// ErrInjected is returned by Faulty for every path it was told to fail.
var ErrInjected = errors.New("injected failure")

// Faulty wraps a billy.Filesystem and fails Open, Remove or ReadDir for
// selected paths.
type Faulty struct {
	billy.Filesystem

	OpenFails    map[string]error
	RemoveFails  map[string]error
	ReadDirFails map[string]error
}

// NewFaulty wraps fs with no failures configured.
func NewFaulty(fs billy.Filesystem) *Faulty {
	return &Faulty{
		Filesystem:   fs,
		OpenFails:    make(map[string]error),
		RemoveFails:  make(map[string]error),
		ReadDirFails: make(map[string]error),
	}
}

// FailOpen makes every Open of path fail with a permission error.
func (f *Faulty) FailOpen(path string) {
	f.OpenFails[filepath.Clean(path)] = &os.PathError{Op: "open", Path: path, Err: os.ErrPermission}
}

// FailRemove makes every Remove of path fail with ErrInjected.
func (f *Faulty) FailRemove(path string) {
	f.RemoveFails[filepath.Clean(path)] = &os.PathError{Op: "remove", Path: path, Err: ErrInjected}
}

// FailReadDir makes every ReadDir of path fail with a permission error.
func (f *Faulty) FailReadDir(path string) {
	f.ReadDirFails[filepath.Clean(path)] = &os.PathError{Op: "open", Path: path, Err: os.ErrPermission}
}

//nolint:ireturn
func (f *Faulty) Open(name string) (billy.File, error) {
	if err, ok := f.OpenFails[filepath.Clean(name)]; ok {
		return nil, err
	}
	return f.Filesystem.Open(name)
}

func (f *Faulty) Remove(name string) error {
	if err, ok := f.RemoveFails[filepath.Clean(name)]; ok {
		return err
	}
	return f.Filesystem.Remove(name)
}

func (f *Faulty) ReadDir(path string) ([]os.FileInfo, error) {
	if err, ok := f.ReadDirFails[filepath.Clean(path)]; ok {
		return nil, err
	}
	return f.Filesystem.ReadDir(path)
}

// WriteTree writes every path => content pair into fs.
func WriteTree(t *testing.T, fs billy.Filesystem, files map[string]string) {
	t.Helper()
	for p, content := range files {
		if err := util.WriteFile(fs, p, []byte(content), 0o600); err != nil {
			t.Fatalf("write %s: %v", p, err)
		}
	}
}

// Exists reports whether path is present on fs.
func Exists(t *testing.T, fs billy.Filesystem, path string) bool {
	t.Helper()
	_, err := fs.Stat(path)
	if err == nil {
		return true
	}
	if os.IsNotExist(err) {
		return false
	}
	t.Fatalf("stat %s: %v", path, err)
	return false
}
