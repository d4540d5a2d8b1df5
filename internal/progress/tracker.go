package progress

import (
	"fmt"
	"io"
	"os"

	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"
)

// Options configures the progress tracker.
type Options struct {
	// Output is where to render progress bars.
	// Default: os.Stdout
	Output io.Writer

	// Width is the bar width in characters.
	// Default: 48
	Width int
}

// Tracker renders one progress bar per in-flight transfer.
//
// A nil Tracker is valid and disables progress display; all methods on a
// nil Tracker (and on the nil Transfers it hands out) are no-ops, so
// callers never need to branch on whether progress is enabled.
type Tracker struct {
	p *mpb.Progress
}

// NewTracker creates a new progress tracker.
func NewTracker(opts Options) *Tracker {
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.Width <= 0 {
		opts.Width = 48
	}

	return &Tracker{
		p: mpb.New(
			mpb.WithOutput(opts.Output),
			mpb.WithWidth(opts.Width),
		),
	}
}

// StartTransfer adds a bar for a single transfer. size is the total
// expected byte count; pass a negative size when it is unknown.
func (t *Tracker) StartTransfer(name string, size int64) *Transfer {
	if t == nil {
		return nil
	}

	total := size
	if total < 0 {
		total = 0
	}

	bar := t.p.AddBar(total,
		mpb.BarRemoveOnComplete(),
		mpb.PrependDecorators(
			decor.Name(name, decor.WCSyncSpaceR),
			decor.CountersKibiByte("% .1f / % .1f"),
		),
		mpb.AppendDecorators(
			decor.Percentage(decor.WC{W: 5}),
		),
	)

	return &Transfer{bar: bar}
}

// Wait blocks until all transfers have completed or aborted and the
// final render has been flushed.
func (t *Tracker) Wait() {
	if t == nil {
		return
	}
	t.p.Wait()
}

// Transfer tracks cumulative bytes for one in-flight transfer.
type Transfer struct {
	bar *mpb.Bar
}

// Add records n more transferred bytes.
func (tr *Transfer) Add(n int) {
	if tr == nil {
		return
	}
	tr.bar.IncrBy(n)
}

// Reader wraps r so that every read updates the transfer.
func (tr *Transfer) Reader(r io.Reader) io.ReadCloser {
	if tr == nil {
		return io.NopCloser(r)
	}
	return tr.bar.ProxyReader(r)
}

// Complete marks the transfer as finished, fixing the total to whatever
// has been counted so far. Needed for transfers of unknown size; harmless
// for transfers that already reached their total.
func (tr *Transfer) Complete() {
	if tr == nil {
		return
	}
	tr.bar.SetTotal(-1, true)
}

// Abort drops the transfer's bar, e.g. after a failed download.
func (tr *Transfer) Abort() {
	if tr == nil {
		return
	}
	tr.bar.Abort(true)
}

// FormatBytes formats a byte count as a human-readable string.
func FormatBytes(b int64) string {
	const (
		kib = 1024
		mib = kib * 1024
		gib = mib * 1024
		tib = gib * 1024
	)

	switch {
	case b >= tib:
		return fmt.Sprintf("%.2f TiB", float64(b)/float64(tib))
	case b >= gib:
		return fmt.Sprintf("%.2f GiB", float64(b)/float64(gib))
	case b >= mib:
		return fmt.Sprintf("%.2f MiB", float64(b)/float64(mib))
	case b >= kib:
		return fmt.Sprintf("%.2f KiB", float64(b)/float64(kib))
	default:
		return fmt.Sprintf("%d B", b)
	}
}
