// Package notify prints the human-readable progress lines of a run.
package notify

import (
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
)

var (
	bold  = color.New(color.Bold)
	green = color.New(color.FgGreen)
	red   = color.New(color.FgRed)
	cyan  = color.New(color.FgCyan)
)

// Notifier writes one line per event. The zero value discards everything.
type Notifier struct {
	w io.Writer
}

func New(w io.Writer) (n Notifier) {
	n.w = w
	return
}

func (n Notifier) out() io.Writer {
	if n.w == nil {
		return io.Discard
	}
	return n.w
}

func (n Notifier) FindingDuplicates() {
	fmt.Fprintln(n.out(), "Finding duplicate files...")
}

func (n Notifier) Found(sets, duplicates int) {
	bold.Fprintf(n.out(), "Found %d unique files with %d duplicates\n", sets, duplicates)
}

func (n Notifier) RemovingDuplicates() {
	fmt.Fprintln(n.out(), "\nRemoving duplicates...")
}

func (n Notifier) Removed(path string, _ int64) {
	green.Fprintf(n.out(), "Removed duplicate: %s\n", path)
}

func (n Notifier) RemoveFailed(path string, err error) {
	red.Fprintf(n.out(), "Error removing %s: %v\n", path, err)
}

func (n Notifier) WouldRemove(path string, size int64) {
	cyan.Fprintf(n.out(), "Would remove duplicate: %s (%s)\n", path, humanize.Bytes(uint64(size)))
}

func (n Notifier) Kept(kept, removed int, reclaimed int64) {
	bold.Fprintf(
		n.out(),
		"\nKept %d files, removed %d duplicates (%s reclaimed)\n",
		kept,
		removed,
		humanize.Bytes(uint64(reclaimed)),
	)
}

func (n Notifier) Planned(kept, planned int) {
	bold.Fprintf(n.out(), "\nDry run: would keep %d files and remove %d duplicates\n", kept, planned)
}

func (n Notifier) ReportWritten(path string) {
	fmt.Fprintf(n.out(), "Summary written to %s\n", path)
}

func (n Notifier) Complete() {
	bold.Fprintln(n.out(), "\nCompaction complete!")
}
