package fsys_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-git/go-billy/v5/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mdcompact/internal/fsys"
)

func TestNewOS_UsesNativePaths(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "a", "note.md")

	fs := fsys.NewOS()
	require.NoError(t, util.WriteFile(fs, p, []byte("hello"), 0o600))

	data, err := os.ReadFile(p)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(data))

	require.NoError(t, fs.Remove(p))
	_, err = os.Stat(p)
	assert.True(t, os.IsNotExist(err))
}

func TestIsDir(t *testing.T) {
	fs := fsys.NewMemory()
	require.NoError(t, util.WriteFile(fs, "/root/file.md", []byte("x"), 0o600))

	tests := []struct {
		name string
		path string
		want bool
	}{
		{"directory", "/root", true},
		{"regular file", "/root/file.md", false},
		{"missing", "/nope", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := fsys.IsDir(fs, tt.path)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
