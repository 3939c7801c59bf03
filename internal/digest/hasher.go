// Package digest computes SHA-256 content digests for candidate files.
package digest

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mdcompact/internal/logging"
	"mdcompact/internal/metrics"
	"mdcompact/internal/progress"
	"sync/atomic"

	"github.com/go-git/go-billy/v5"
)

const bufSize = 1 << 20 // 1 MiB

// Result is the outcome of hashing one file. Err is set when the file could
// not be read; such a file has no digest and takes no part in grouping.
type Result struct {
	Path   string
	Digest string
	Size   int64
	Err    error
}

func (r Result) OK() bool { return r.Err == nil && r.Digest != "" }

// FileSHA256 returns the lower-case hex SHA-256 of path and the number of
// bytes read.
func FileSHA256(fs billy.Filesystem, path string, onProgress func(n int64)) (sum string, size int64, err error) {
	f, err := fs.Open(path)
	if err != nil {
		return "", 0, err
	}
	defer func() { err = errors.Join(err, f.Close()) }()

	h := sha256.New()
	buf := make([]byte, bufSize)
	for {
		n, rerr := f.Read(buf)
		if n > 0 {
			_, _ = h.Write(buf[:n])
			size += int64(n)
			if onProgress != nil {
				onProgress(int64(n))
			}
		}
		if rerr == io.EOF {
			break
		}
		if rerr != nil {
			return "", 0, rerr
		}
	}

	return hex.EncodeToString(h.Sum(nil)), size, nil
}

// Hasher hashes candidates one at a time.
type Hasher struct {
	FS    billy.Filesystem
	Stats *metrics.Stats
	Bar   *progress.Bar
}

// Hash returns one Result per path, in input order. A file that cannot be
// read yields a Result with Err set; it never stops the loop. Only context
// cancellation does, and then the results gathered so far are returned with
// ctx's error.
func (h *Hasher) Hash(ctx context.Context, paths []string) ([]Result, error) {
	logger := logging.FromContext(ctx)
	stats := h.Stats
	if stats == nil {
		stats = &metrics.Stats{}
	}

	results := make([]Result, 0, len(paths))
	for _, p := range paths {
		if err := ctx.Err(); err != nil {
			return results, err
		}

		sum, size, err := FileSHA256(h.FS, p, func(n int64) {
			atomic.AddInt64(&stats.BytesHashed, n)
		})
		h.Bar.FileDone()
		if err != nil {
			atomic.AddInt64(&stats.HashErrors, 1)
			logger.Warn("skipping unreadable file", slog.String("path", p), slog.Any("error", err))
			results = append(results, Result{Path: p, Err: fmt.Errorf("hash %s: %w", p, err)})
			continue
		}

		atomic.AddInt64(&stats.Hashed, 1)
		results = append(results, Result{Path: p, Digest: sum, Size: size})
	}
	return results, nil
}
