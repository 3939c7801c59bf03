package metrics

import (
	"fmt"
	"io"
	"sync/atomic"

	"github.com/dustin/go-humanize"
)

type Snapshot struct {
	DurationMs     int64
	Candidates     int64
	Hashed         int64
	HashErrors     int64
	BytesHashed    int64
	UniqueDigests  int64
	DuplicateSets  int64
	Duplicates     int64
	Removed        int64
	RemoveErrors   int64
	BytesReclaimed int64
}

func (s *Stats) Snapshot() Snapshot {
	dur := s.Duration()

	return Snapshot{
		DurationMs:     dur.Milliseconds(),
		Candidates:     atomic.LoadInt64(&s.Candidates),
		Hashed:         atomic.LoadInt64(&s.Hashed),
		HashErrors:     atomic.LoadInt64(&s.HashErrors),
		BytesHashed:    atomic.LoadInt64(&s.BytesHashed),
		UniqueDigests:  atomic.LoadInt64(&s.UniqueDigests),
		DuplicateSets:  atomic.LoadInt64(&s.DuplicateSets),
		Duplicates:     atomic.LoadInt64(&s.Duplicates),
		Removed:        atomic.LoadInt64(&s.Removed),
		RemoveErrors:   atomic.LoadInt64(&s.RemoveErrors),
		BytesReclaimed: atomic.LoadInt64(&s.BytesReclaimed),
	}
}

func Print(w io.Writer, s *Stats) {
	snap := s.Snapshot()

	fmt.Fprintln(w, "--- stats ---")
	fmt.Fprintln(w, "duration_ms:", snap.DurationMs)
	fmt.Fprintln(w, "candidates:", snap.Candidates)
	fmt.Fprintln(w, "hashed:", snap.Hashed)
	fmt.Fprintln(w, "hash_errors:", snap.HashErrors)
	fmt.Fprintln(w, "bytes_hashed:", humanize.Bytes(uint64(snap.BytesHashed)))
	fmt.Fprintln(w, "unique_digests:", snap.UniqueDigests)
	fmt.Fprintln(w, "duplicate_sets:", snap.DuplicateSets)
	fmt.Fprintln(w, "duplicates:", snap.Duplicates)
	fmt.Fprintln(w, "removed:", snap.Removed)
	fmt.Fprintln(w, "remove_errors:", snap.RemoveErrors)
	fmt.Fprintln(w, "bytes_reclaimed:", humanize.Bytes(uint64(snap.BytesReclaimed)))

	if snap.DurationMs > 0 {
		secs := float64(snap.DurationMs) / 1000.0
		bps := float64(snap.BytesHashed) / secs
		fmt.Fprintln(w, "throughput:", humanize.Bytes(uint64(bps))+"/s")
	}
}
