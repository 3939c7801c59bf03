// Package report writes the markdown summary of a compaction run.
package report

import (
	"bufio"
	"bytes"
	"fmt"
	"io"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"
)

// Summary is the content of the report.
type Summary struct {
	Title string
	// Groups is the number of digests that had duplicates.
	Groups int
	// Removed are the deleted paths, in deletion order.
	Removed []string
	// Limit caps how many Removed paths are listed.
	Limit int
}

// Render writes s to w.
func Render(w io.Writer, s Summary) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "# %s Compaction Summary\n\n", s.Title)
	fmt.Fprintf(bw, "- Total unique files: %d\n", s.Groups)
	fmt.Fprintf(bw, "- Duplicates removed: %d\n", len(s.Removed))
	fmt.Fprintf(bw, "- Space optimization: %d redundant files eliminated\n\n", len(s.Removed))
	fmt.Fprint(bw, "## Files Removed\n\n")

	listed := s.Removed
	if s.Limit >= 0 && len(listed) > s.Limit {
		listed = listed[:s.Limit]
	}
	for _, p := range listed {
		fmt.Fprintf(bw, "- %s\n", p)
	}
	if more := len(s.Removed) - len(listed); more > 0 {
		fmt.Fprintf(bw, "\n...and %d more files\n", more)
	}

	return bw.Flush()
}

// Write renders s to path on fs, replacing whatever was there.
func Write(fs billy.Filesystem, path string, s Summary) error {
	var buf bytes.Buffer
	if err := Render(&buf, s); err != nil {
		return fmt.Errorf("render report: %w", err)
	}
	if err := util.WriteFile(fs, path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write report %s: %w", path, err)
	}
	return nil
}
