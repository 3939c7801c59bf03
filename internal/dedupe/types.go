// Package dedupe groups hashed files by digest and removes all but one file
// of every group.
package dedupe

// FileRecord is a candidate file with its content digest.
type FileRecord struct {
	Path   string
	Digest string
	Size   int64
}

// DuplicateSet is a digest shared by two or more files. Paths are in the
// order the files were scanned.
type DuplicateSet struct {
	Digest string
	Size   int64
	Paths  []string
}

// Grouping is the output of Group.
type Grouping struct {
	// Unique is the number of distinct digests among readable files.
	Unique int
	// Sets are the digests with more than one file, in first-seen order.
	Sets []DuplicateSet
}

// Failure is a file that could not be removed.
type Failure struct {
	Path string
	Err  error
}

// Outcome is what Deduplicator.Run did.
type Outcome struct {
	// Kept holds one path per duplicate set, in set order.
	Kept []string
	// Removed holds successfully deleted paths, in deletion order.
	Removed []string
	// Planned holds the paths a dry run would have deleted.
	Planned  []string
	Failures []Failure

	ReclaimedBytes int64
}

// Notifier receives one call per deletion attempt.
type Notifier interface {
	Removed(path string, size int64)
	RemoveFailed(path string, err error)
	WouldRemove(path string, size int64)
}
