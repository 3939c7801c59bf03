package metrics

import "time"

// Stats counts what a run did. Fields are updated with sync/atomic because
// the progress bar reads them from its own goroutine.
type Stats struct {
	Candidates  int64
	Hashed      int64
	HashErrors  int64
	BytesHashed int64

	UniqueDigests int64
	DuplicateSets int64
	Duplicates    int64

	Removed        int64
	RemoveErrors   int64
	BytesReclaimed int64

	Started  time.Time
	Finished time.Time
}

func (s *Stats) Start() { s.Started = time.Now() }
func (s *Stats) Stop()  { s.Finished = time.Now() }
func (s *Stats) Duration() time.Duration {
	if s.Started.IsZero() {
		return 0
	}
	if s.Finished.IsZero() {
		return time.Since(s.Started)
	}
	return s.Finished.Sub(s.Started)
}
