package dedupe

import (
	"os"
	"sort"
	"strings"
)

// Depth counts the path separators in p.
func Depth(p string) int {
	return strings.Count(p, string(os.PathSeparator))
}

// SelectKeep picks the file to keep from paths: the fewest separators, then
// the shortest path. Ties go to the earlier entry. paths is not modified.
func SelectKeep(paths []string) (keep string, rest []string) {
	if len(paths) == 0 {
		return "", nil
	}

	sorted := make([]string, len(paths))
	copy(sorted, paths)
	sort.SliceStable(sorted, func(i, j int) bool {
		di, dj := Depth(sorted[i]), Depth(sorted[j])
		if di != dj {
			return di < dj
		}
		return len(sorted[i]) < len(sorted[j])
	})

	return sorted[0], sorted[1:]
}
