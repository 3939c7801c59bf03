// Package compact runs one compaction pass over a directory tree:
// scan, hash, group, delete duplicates, write the summary.
package compact

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"mdcompact/internal/config"
	"mdcompact/internal/dedupe"
	"mdcompact/internal/digest"
	"mdcompact/internal/logging"
	"mdcompact/internal/metrics"
	"mdcompact/internal/notify"
	"mdcompact/internal/progress"
	"mdcompact/internal/report"
	"mdcompact/internal/scan"
	"sync/atomic"

	"github.com/go-git/go-billy/v5"
)

// Deps are the collaborators of a run.
type Deps struct {
	FS billy.Filesystem

	// Notify prints the console lines. The zero value prints nothing.
	Notify notify.Notifier

	// Progress is where the hashing bar is drawn. Nil disables it.
	Progress io.Writer
}

// Result summarises a finished run.
type Result struct {
	Candidates int
	Grouping   dedupe.Grouping
	// Duplicates is counted before any deletion is attempted.
	Duplicates int
	Outcome    dedupe.Outcome
	// ReportPath is empty when no report was written.
	ReportPath string
	Stats      *metrics.Stats
}

// Run executes the pipeline once. Per-file read and delete failures are
// contained; a bad root, a cancelled context or a failed report write are
// returned as errors.
func Run(ctx context.Context, cfg config.Config, deps Deps) (*Result, error) {
	logger := logging.FromContext(ctx)
	stats := &metrics.Stats{}
	stats.Start()
	defer stats.Stop()

	res := &Result{Stats: stats}
	n := deps.Notify

	n.FindingDuplicates()

	scanner := &scan.Scanner{
		FS:         deps.FS,
		Extensions: cfg.Extensions,
		SkipDirs:   cfg.SkipDirs,
		Exclude:    []string{cfg.ReportPath()},
	}
	paths, err := scanner.Scan(ctx, cfg.Root)
	if err != nil {
		return res, fmt.Errorf("scan %s: %w", cfg.Root, err)
	}
	res.Candidates = len(paths)
	atomic.StoreInt64(&stats.Candidates, int64(len(paths)))
	logger.Info("scan finished", slog.String("root", cfg.Root), slog.Int("candidates", len(paths)))

	var bar *progress.Bar
	if deps.Progress != nil && len(paths) > 0 {
		bar = progress.New(deps.Progress, int64(len(paths)), func() (int64, int64, int64, int64) {
			return atomic.LoadInt64(&stats.Hashed) + atomic.LoadInt64(&stats.HashErrors),
				atomic.LoadInt64(&stats.Candidates),
				atomic.LoadInt64(&stats.HashErrors),
				atomic.LoadInt64(&stats.BytesHashed)
		})
	}
	hasher := &digest.Hasher{FS: deps.FS, Stats: stats, Bar: bar}
	results, err := hasher.Hash(ctx, paths)
	bar.Close()
	if err != nil {
		return res, fmt.Errorf("hash: %w", err)
	}

	res.Grouping = dedupe.Group(dedupe.Records(results))
	res.Duplicates = dedupe.TotalDuplicates(res.Grouping.Sets)
	atomic.StoreInt64(&stats.UniqueDigests, int64(res.Grouping.Unique))
	atomic.StoreInt64(&stats.DuplicateSets, int64(len(res.Grouping.Sets)))
	atomic.StoreInt64(&stats.Duplicates, int64(res.Duplicates))

	n.Found(len(res.Grouping.Sets), res.Duplicates)

	if res.Duplicates > 0 {
		n.RemovingDuplicates()
		d := &dedupe.Deduplicator{FS: deps.FS, Notify: n, Stats: stats, DryRun: cfg.DryRun}
		res.Outcome, err = d.Run(ctx, res.Grouping.Sets)
		if err != nil {
			return res, fmt.Errorf("remove duplicates: %w", err)
		}

		if cfg.DryRun {
			n.Planned(len(res.Outcome.Kept), len(res.Outcome.Planned))
		} else {
			n.Kept(len(res.Outcome.Kept), len(res.Outcome.Removed), res.Outcome.ReclaimedBytes)

			path := cfg.ReportPath()
			summary := report.Summary{
				Title:   cfg.ReportTitle,
				Groups:  len(res.Grouping.Sets),
				Removed: res.Outcome.Removed,
				Limit:   cfg.ReportLimit,
			}
			if err := report.Write(deps.FS, path, summary); err != nil {
				return res, err
			}
			res.ReportPath = path
			n.ReportWritten(path)
		}
	}

	n.Complete()
	logger.Info("compaction finished",
		slog.Int("duplicate_sets", len(res.Grouping.Sets)),
		slog.Int("removed", len(res.Outcome.Removed)),
		slog.Int("failures", len(res.Outcome.Failures)),
		slog.Duration("elapsed", stats.Duration()),
	)
	return res, nil
}
