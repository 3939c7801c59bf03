package dedupe

import "mdcompact/internal/digest"

// Records keeps the readable results. A file whose digest could not be
// computed never becomes a record, so it is never grouped or deleted.
func Records(results []digest.Result) []FileRecord {
	records := make([]FileRecord, 0, len(results))
	for _, r := range results {
		if !r.OK() {
			continue
		}
		records = append(records, FileRecord{Path: r.Path, Digest: r.Digest, Size: r.Size})
	}
	return records
}

// Group partitions records by digest. Digests seen only once are counted in
// Unique but dropped from Sets.
func Group(records []FileRecord) Grouping {
	index := make(map[string]int)
	var all []DuplicateSet

	for _, r := range records {
		i, ok := index[r.Digest]
		if !ok {
			i = len(all)
			index[r.Digest] = i
			all = append(all, DuplicateSet{Digest: r.Digest, Size: r.Size})
		}
		all[i].Paths = append(all[i].Paths, r.Path)
	}

	g := Grouping{Unique: len(all)}
	for _, set := range all {
		if len(set.Paths) > 1 {
			g.Sets = append(g.Sets, set)
		}
	}
	return g
}

// TotalDuplicates is the number of files that are not the kept copy of their
// set.
func TotalDuplicates(sets []DuplicateSet) int {
	total := 0
	for _, s := range sets {
		total += len(s.Paths) - 1
	}
	return total
}
