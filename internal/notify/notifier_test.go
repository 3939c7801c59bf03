package notify

import (
	"bytes"
	"errors"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
)

func TestNotifier_Lines(t *testing.T) {
	color.NoColor = true

	tests := []struct {
		name string
		call func(n Notifier)
		want string
	}{
		{"finding", func(n Notifier) { n.FindingDuplicates() }, "Finding duplicate files...\n"},
		{"found", func(n Notifier) { n.Found(2, 5) }, "Found 2 unique files with 5 duplicates\n"},
		{"removed", func(n Notifier) { n.Removed("/r/b/x.md", 10) }, "Removed duplicate: /r/b/x.md\n"},
		{
			"remove failed",
			func(n Notifier) { n.RemoveFailed("/r/b/x.md", errors.New("permission denied")) },
			"Error removing /r/b/x.md: permission denied\n",
		},
		{"would remove", func(n Notifier) { n.WouldRemove("/r/b/x.md", 2048) }, "Would remove duplicate: /r/b/x.md (2.0 kB)\n"},
		{"kept", func(n Notifier) { n.Kept(1, 2, 0) }, "\nKept 1 files, removed 2 duplicates (0 B reclaimed)\n"},
		{"complete", func(n Notifier) { n.Complete() }, "\nCompaction complete!\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.call(New(&buf))
			assert.Equal(t, tt.want, buf.String())
		})
	}
}

func TestNotifier_ZeroValueDiscards(t *testing.T) {
	var n Notifier
	assert.NotPanics(t, func() {
		n.FindingDuplicates()
		n.Found(1, 1)
		n.RemoveFailed("/r/x.md", errors.New("boom"))
		n.Kept(1, 1, 1)
		n.Complete()
	})
}
