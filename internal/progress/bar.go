package progress

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/schollz/progressbar/v3"
)

type SnapshotFn func() (hashed, total, errc, bytesHashed int64)

// Bar renders hashing progress on its own goroutine. A nil *Bar is valid and
// does nothing.
type Bar struct {
	bar  *progressbar.ProgressBar
	ch   chan int64
	done chan struct{}
	stop chan struct{}

	snap   SnapshotFn
	lastB  int64
	lastAt time.Time
}

// Interactive reports whether w is a terminal worth drawing a bar on.
func Interactive(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func New(w io.Writer, totalFiles int64, snap SnapshotFn) *Bar {
	b := &Bar{
		ch:     make(chan int64, 1024),
		done:   make(chan struct{}),
		stop:   make(chan struct{}),
		snap:   snap,
		lastAt: time.Now(),
	}

	b.bar = progressbar.NewOptions64(
		totalFiles,
		progressbar.OptionSetWriter(w),
		progressbar.OptionUseANSICodes(true),
		progressbar.OptionSetDescription("hashing"),
		progressbar.OptionShowCount(),
		progressbar.OptionSetPredictTime(true),
		progressbar.OptionThrottle(120*time.Millisecond),
	)

	_ = b.bar.RenderBlank()
	go func() {
		defer close(b.done)
		for n := range b.ch {
			_ = b.bar.Add64(n)
		}
		_ = b.bar.Finish()
	}()

	go func() {
		t := time.NewTicker(1 * time.Second)
		defer t.Stop()
		for {
			select {
			case <-t.C:
				b.updateDescription()
			case <-b.stop:
				return
			}
		}
	}()

	return b
}

// FileDone advances the bar by one file.
func (b *Bar) FileDone() {
	if b == nil {
		return
	}
	b.ch <- 1
}

func (b *Bar) Close() {
	if b == nil {
		return
	}
	close(b.stop)
	close(b.ch)
	<-b.done
}

func (b *Bar) updateDescription() {
	if b.snap == nil {
		return
	}
	hashed, total, errc, bytesHashed := b.snap()

	now := time.Now()
	dt := now.Sub(b.lastAt).Seconds()

	mbps := 0.0
	if dt > 0 {
		dBytes := bytesHashed - b.lastB
		mbps = (float64(dBytes) / 1_000_000.0) / dt
	}

	b.lastB = bytesHashed
	b.lastAt = now

	desc := fmt.Sprintf("hashing %d/%d files | err=%d | %.1f MB/s",
		hashed, total, errc, mbps,
	)
	b.bar.Describe(desc)
}
