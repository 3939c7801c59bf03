package progress

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNilBarIsNoop(t *testing.T) {
	var b *Bar
	b.FileDone()
	b.Close()
}

func TestBar_CountsFiles(t *testing.T) {
	var buf bytes.Buffer
	b := New(&buf, 3, func() (int64, int64, int64, int64) { return 0, 3, 0, 0 })
	for i := 0; i < 3; i++ {
		b.FileDone()
	}
	b.Close()

	assert.Contains(t, buf.String(), "hashing")
}

func TestInteractive_BufferIsNotTerminal(t *testing.T) {
	assert.False(t, Interactive(&bytes.Buffer{}))
}
