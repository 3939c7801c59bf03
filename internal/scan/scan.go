// Package scan walks a directory tree and collects candidate files.
package scan

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"mdcompact/internal/fsys"
	"mdcompact/internal/logging"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/go-git/go-billy/v5"
)

// ErrInvalidRoot is returned when the scan root is missing or not a directory.
var ErrInvalidRoot = errors.New("invalid scan root")

// Scanner collects files whose names end in one of Extensions, skipping any
// directory named in SkipDirs. Any non-directory entry can match, links
// included.
type Scanner struct {
	FS         billy.Filesystem
	Extensions []string
	SkipDirs   []string

	// Exclude lists full paths that are never returned, such as the file the
	// run itself writes.
	Exclude []string
}

// Scan walks root depth-first. Entries of every directory are visited in
// lexicographic name order, so the returned order is stable across
// platforms. Subdirectories that cannot be listed are logged and skipped; a
// root that cannot be listed is an ErrInvalidRoot.
func (s *Scanner) Scan(ctx context.Context, root string) ([]string, error) {
	ok, err := fsys.IsDir(s.FS, root)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalidRoot, root, err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s is missing or not a directory", ErrInvalidRoot, root)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	entries, err := s.list(root)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalidRoot, root, err)
	}

	w := &walker{
		Scanner: s,
		skip:    toSet(s.SkipDirs, func(d string) string { return d }),
		exclude: toSet(s.Exclude, filepath.Clean),
	}
	if err := w.visit(ctx, root, entries); err != nil {
		return w.found, err
	}
	return w.found, nil
}

type walker struct {
	*Scanner
	skip    map[string]struct{}
	exclude map[string]struct{}
	found   []string
}

func (w *walker) walk(ctx context.Context, dir string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	entries, err := w.list(dir)
	if err != nil {
		logging.FromContext(ctx).Warn("skipping unreadable directory",
			slog.String("dir", dir), slog.Any("error", err))
		return nil
	}
	return w.visit(ctx, dir, entries)
}

func (w *walker) visit(ctx context.Context, dir string, entries []os.FileInfo) error {
	for _, entry := range entries {
		p := w.FS.Join(dir, entry.Name())
		if entry.IsDir() {
			if _, pruned := w.skip[entry.Name()]; pruned {
				continue
			}
			if err := w.walk(ctx, p); err != nil {
				return err
			}
			continue
		}
		if _, excluded := w.exclude[filepath.Clean(p)]; excluded {
			continue
		}
		if w.matches(entry.Name()) {
			w.found = append(w.found, p)
		}
	}
	return nil
}

// list reads dir sorted by name.
func (s *Scanner) list(dir string) ([]os.FileInfo, error) {
	entries, err := s.FS.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name() < entries[j].Name()
	})
	return entries, nil
}

func (s *Scanner) matches(name string) bool {
	for _, ext := range s.Extensions {
		if strings.HasSuffix(name, ext) {
			return true
		}
	}
	return false
}

func toSet(items []string, key func(string) string) map[string]struct{} {
	set := make(map[string]struct{}, len(items))
	for _, it := range items {
		set[key(it)] = struct{}{}
	}
	return set
}
