package dedupe

import (
	"context"
	"log/slog"
	"mdcompact/internal/logging"
	"mdcompact/internal/metrics"
	"sync/atomic"

	"github.com/go-git/go-billy/v5"
)

// Deduplicator removes every file of a duplicate set except the one chosen
// by SelectKeep.
type Deduplicator struct {
	FS     billy.Filesystem
	Notify Notifier
	Stats  *metrics.Stats
	DryRun bool
}

// Run processes sets in order. A failed removal is recorded in the Outcome
// and the run moves on to the next file. Only context cancellation ends it
// early; the partial Outcome is returned along with ctx's error.
func (d *Deduplicator) Run(ctx context.Context, sets []DuplicateSet) (Outcome, error) {
	logger := logging.FromContext(ctx)
	stats := d.Stats
	if stats == nil {
		stats = &metrics.Stats{}
	}

	var out Outcome
	for _, set := range sets {
		keep, rest := SelectKeep(set.Paths)
		out.Kept = append(out.Kept, keep)
		logger.Debug("keeping file", slog.String("path", keep), slog.String("digest", set.Digest))

		for _, dup := range rest {
			if err := ctx.Err(); err != nil {
				return out, err
			}

			if d.DryRun {
				out.Planned = append(out.Planned, dup)
				if d.Notify != nil {
					d.Notify.WouldRemove(dup, set.Size)
				}
				continue
			}

			if err := d.FS.Remove(dup); err != nil {
				atomic.AddInt64(&stats.RemoveErrors, 1)
				out.Failures = append(out.Failures, Failure{Path: dup, Err: err})
				logger.Warn("remove failed", slog.String("path", dup), slog.Any("error", err))
				if d.Notify != nil {
					d.Notify.RemoveFailed(dup, err)
				}
				continue
			}

			atomic.AddInt64(&stats.Removed, 1)
			atomic.AddInt64(&stats.BytesReclaimed, set.Size)
			out.Removed = append(out.Removed, dup)
			out.ReclaimedBytes += set.Size
			if d.Notify != nil {
				d.Notify.Removed(dup, set.Size)
			}
		}
	}
	return out, nil
}
