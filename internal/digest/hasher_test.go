package digest

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"mdcompact/internal/fsys"
	"mdcompact/internal/fsys/fsystest"
	"mdcompact/internal/metrics"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-git/go-billy/v5/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func expectedHex(content []byte) string {
	h := sha256.Sum256(content)
	return hex.EncodeToString(h[:])
}

func TestFileSHA256_TableDriven(t *testing.T) {
	fs := fsys.NewMemory()

	contentSmall := []byte("hello world")
	contentLarge := bytes.Repeat([]byte("A"), 2<<20+17)

	tests := []struct {
		name    string
		content []byte
		missing bool
		wantErr bool
	}{
		{"small", contentSmall, false, false},
		{"larger than buffer", contentLarge, false, false},
		{"empty file", []byte{}, false, false},
		{"file missing", nil, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := filepath.Join("/tree", tt.name+".md")
			if !tt.missing {
				require.NoError(t, util.WriteFile(fs, p, tt.content, 0o600))
			}

			var progressed int64
			sum, size, err := FileSHA256(fs, p, func(n int64) { progressed += n })
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)

			assert.Equal(t, expectedHex(tt.content), sum)
			assert.Equal(t, int64(len(tt.content)), size)
			assert.Equal(t, int64(len(tt.content)), progressed)
		})
	}
}

func TestFileSHA256_OSFilesystem(t *testing.T) {
	p := filepath.Join(t.TempDir(), "note.md")
	require.NoError(t, os.WriteFile(p, []byte("# note\n"), 0o600))

	sum, _, err := FileSHA256(fsys.NewOS(), p, nil)
	require.NoError(t, err)
	assert.Equal(t, expectedHex([]byte("# note\n")), sum)
}

func TestHasher_ContainsUnreadableFiles(t *testing.T) {
	mem := fsys.NewMemory()
	fsystest.WriteTree(t, mem, map[string]string{
		"/t/a.md": "same",
		"/t/b.md": "same",
		"/t/c.md": "other",
	})
	fs := fsystest.NewFaulty(mem)
	fs.FailOpen("/t/b.md")

	stats := &metrics.Stats{}
	h := &Hasher{FS: fs, Stats: stats}

	paths := []string{"/t/a.md", "/t/b.md", "/t/c.md", "/t/gone.md"}
	results, err := h.Hash(context.Background(), paths)
	require.NoError(t, err)
	require.Len(t, results, 4)

	for i, p := range paths {
		assert.Equal(t, p, results[i].Path)
	}
	assert.True(t, results[0].OK())
	assert.Equal(t, expectedHex([]byte("same")), results[0].Digest)
	assert.False(t, results[1].OK())
	assert.True(t, errors.Is(results[1].Err, os.ErrPermission))
	assert.Empty(t, results[1].Digest)
	assert.True(t, results[2].OK())
	assert.False(t, results[3].OK())

	snap := stats.Snapshot()
	assert.Equal(t, int64(2), snap.Hashed)
	assert.Equal(t, int64(2), snap.HashErrors)
	assert.Equal(t, int64(len("same")+len("other")), snap.BytesHashed)
}

func TestHasher_StopsOnCancel(t *testing.T) {
	fs := fsys.NewMemory()
	fsystest.WriteTree(t, fs, map[string]string{"/t/a.md": "a"})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results, err := (&Hasher{FS: fs}).Hash(ctx, []string{"/t/a.md"})
	require.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, results)
}
