package dedupe

import (
	"errors"
	"mdcompact/internal/digest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecords_DropsUnreadable(t *testing.T) {
	results := []digest.Result{
		{Path: "/a.md", Digest: "d1", Size: 3},
		{Path: "/b.md", Err: errors.New("permission denied")},
		{Path: "/c.md"},
	}

	got := Records(results)
	assert.Equal(t, []FileRecord{{Path: "/a.md", Digest: "d1", Size: 3}}, got)
}

func TestGroup_TableDriven(t *testing.T) {
	tests := []struct {
		name       string
		records    []FileRecord
		wantUnique int
		wantSets   []DuplicateSet
	}{
		{
			name:       "empty",
			records:    nil,
			wantUnique: 0,
			wantSets:   nil,
		},
		{
			name: "all distinct",
			records: []FileRecord{
				{Path: "/a.md", Digest: "d1"},
				{Path: "/b.md", Digest: "d2"},
			},
			wantUnique: 2,
			wantSets:   nil,
		},
		{
			name: "insertion order kept within and across sets",
			records: []FileRecord{
				{Path: "/z/x.md", Digest: "d2", Size: 5},
				{Path: "/a/x.md", Digest: "d1", Size: 1},
				{Path: "/y.md", Digest: "d3", Size: 9},
				{Path: "/b/x.md", Digest: "d1", Size: 1},
				{Path: "/a/y.md", Digest: "d2", Size: 5},
				{Path: "/c/x.md", Digest: "d1", Size: 1},
			},
			wantUnique: 3,
			wantSets: []DuplicateSet{
				{Digest: "d2", Size: 5, Paths: []string{"/z/x.md", "/a/y.md"}},
				{Digest: "d1", Size: 1, Paths: []string{"/a/x.md", "/b/x.md", "/c/x.md"}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Group(tt.records)
			assert.Equal(t, tt.wantUnique, got.Unique)
			assert.Equal(t, tt.wantSets, got.Sets)
			for _, s := range got.Sets {
				require.GreaterOrEqual(t, len(s.Paths), 2)
			}
		})
	}
}

func TestTotalDuplicates(t *testing.T) {
	sets := []DuplicateSet{
		{Paths: []string{"a", "b"}},
		{Paths: []string{"c", "d", "e"}},
	}
	assert.Equal(t, 3, TotalDuplicates(sets))
	assert.Equal(t, 0, TotalDuplicates(nil))
}
