package fetcher

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"sync"

	"github.com/panjf2000/ants/v2"
	"github.com/rs/zerolog"

	"github.com/glacierkit/glacierkit/internal/progress"
)

// DefaultWorkers is the default number of concurrent transfers.
const DefaultWorkers = 4

// Options configures a batch fetch.
type Options struct {
	// Workers is the number of concurrent transfers.
	// Default: 4
	Workers int

	// Overwrite forces downloads even when the destination file
	// already exists.
	Overwrite bool

	// Progress is an optional per-transfer progress tracker.
	Progress *progress.Tracker

	// Logger receives per-task failures. Default: console output
	// on stdout.
	Logger *zerolog.Logger
}

// Result records the outcome of one key in a batch. Results are
// collected in completion order, not submission order.
type Result struct {
	// Key is the object key or source URL.
	Key string

	// Path is the local destination path.
	Path string

	// Bytes is the number of bytes written, including partial writes
	// on failure.
	Bytes int64

	// Skipped is true when the destination already existed and
	// Overwrite was not set. No fetch was attempted.
	Skipped bool

	// Err is the task's failure, if any. Failures never abort the
	// batch; they are logged and recorded here.
	Err error
}

// Fetch downloads a single object from the store into dest, reporting
// cumulative bytes to the tracker as they arrive.
//
// On failure the destination may be left partially written; there is no
// atomic rename and no cleanup. Callers that need all-or-nothing writes
// must arrange them on top.
func Fetch(ctx context.Context, store Store, key, dest string, tracker *progress.Tracker) (int64, error) {
	size, err := store.Size(ctx, key)
	if err != nil {
		return 0, fmt.Errorf("object metadata %s: %w", key, err)
	}

	r, err := store.Open(ctx, key)
	if err != nil {
		return 0, fmt.Errorf("open object %s: %w", key, err)
	}
	defer r.Close()

	if dir := filepath.Dir(dest); dir != "." && dir != string(filepath.Separator) {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return 0, fmt.Errorf("create directory for %s: %w", dest, err)
		}
	}

	f, err := os.Create(dest)
	if err != nil {
		return 0, fmt.Errorf("create %s: %w", dest, err)
	}

	tr := tracker.StartTransfer(key, size)

	n, err := io.Copy(f, tr.Reader(r))
	if err != nil {
		tr.Abort()
		f.Close()
		return n, fmt.Errorf("stream object %s: %w", key, err)
	}

	if err := f.Close(); err != nil {
		tr.Abort()
		return n, fmt.Errorf("close %s: %w", dest, err)
	}

	tr.Complete()
	return n, nil
}

// FetchAll downloads every key in keys from the store to a local path of
// the same name, using a bounded worker pool.
//
// Keys whose destination file already exists are skipped unless
// opts.Overwrite is set. A failed task is logged and recorded in its
// Result; it never aborts the other tasks, and FetchAll returns only
// after every submitted task has resolved. Inspecting the returned
// results for errors is optional.
func FetchAll(ctx context.Context, store Store, keys []string, opts Options) []Result {
	if opts.Workers <= 0 {
		opts.Workers = DefaultWorkers
	}

	logger := opts.Logger
	if logger == nil {
		l := zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()
		logger = &l
	}

	pool, err := ants.NewPool(opts.Workers)
	if err != nil {
		// Only reachable with a broken pool size; Workers has
		// already been defaulted above.
		logger.Error().Err(err).Msg("create worker pool")
		return nil
	}
	defer pool.Release()

	var (
		mu      sync.Mutex
		results []Result
		wg      sync.WaitGroup
	)

	record := func(r Result) {
		mu.Lock()
		results = append(results, r)
		mu.Unlock()
	}

	for _, key := range keys {
		dest := DestinationPath(key)

		if !opts.Overwrite {
			if info, err := os.Stat(dest); err == nil && !info.IsDir() {
				record(Result{Key: key, Path: dest, Skipped: true})
				continue
			}
		}

		key := key
		wg.Add(1)
		task := func() {
			defer wg.Done()

			n, err := Fetch(ctx, store, key, dest, opts.Progress)
			if err != nil {
				logger.Error().Str("object", key).Err(err).Msg("download failed")
			}
			record(Result{Key: key, Path: dest, Bytes: n, Err: err})
		}

		// Submit blocks while all workers are busy, which is the
		// batch's only admission control.
		if err := pool.Submit(task); err != nil {
			wg.Done()
			logger.Error().Str("object", key).Err(err).Msg("submit download")
			record(Result{Key: key, Path: dest, Err: err})
		}
	}

	wg.Wait()
	return results
}

// IsURL reports whether key is an absolute HTTP(S) URL rather than a
// bucket object key.
func IsURL(key string) bool {
	u, err := url.Parse(key)
	return err == nil && (u.Scheme == "http" || u.Scheme == "https")
}

// DestinationPath maps a key to its local destination: the key itself
// for bucket objects, or the final path element for HTTP(S) URLs.
func DestinationPath(key string) string {
	if IsURL(key) {
		u, _ := url.Parse(key)
		return path.Base(u.Path)
	}
	return filepath.FromSlash(key)
}
