package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"gocloud.dev/blob"
	_ "gocloud.dev/blob/fileblob"
	_ "gocloud.dev/blob/gcsblob"
	_ "gocloud.dev/blob/s3blob"

	"github.com/glacierkit/glacierkit/internal/config"
	"github.com/glacierkit/glacierkit/internal/fetcher"
	ghttp "github.com/glacierkit/glacierkit/internal/http"
	"github.com/glacierkit/glacierkit/internal/progress"
)

func runFetch(args []string) int {
	fs := flag.NewFlagSet("fetch", flag.ExitOnError)

	bucket := fs.String("bucket", "", "Bucket URL, e.g. s3://pism-cloud-data (required unless all files are URLs)")
	configPath := fs.String("config", "", "Path to YAML config file")
	workers := fs.Int("workers", 0, "Number of parallel downloads (default 4)")
	overwrite := fs.Bool("overwrite", false, "Re-download files that already exist locally")
	showProgress := fs.Bool("progress", true, "Show per-download progress bars")

	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, `Usage: glacierkit fetch [options] [key ...]

Download tutorial input files to local paths of the same name. Files
that already exist locally are skipped unless -overwrite is set. Keys
come from the command line or from the config file; keys that are
HTTP(S) URLs are fetched directly from the web.

Options:`)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return ExitInvalidArgs
	}

	cfg := config.Default()
	if *configPath != "" {
		fileCfg, err := config.LoadFromFile(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return ExitGeneralError
		}
		cfg = fileCfg
	}
	if err := cfg.LoadFromEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return ExitGeneralError
	}
	cfg = cfg.Merge(config.Config{
		Bucket:    *bucket,
		Files:     fs.Args(),
		Workers:   *workers,
		Overwrite: *overwrite,
	})
	if !*showProgress {
		cfg.Progress = false
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		fs.Usage()
		return ExitInvalidArgs
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		fmt.Fprintln(os.Stderr, "\n[glacierkit] Received interrupt, shutting down...")
		cancel()
	}()

	// URL keys always go to the web; a bucket only serves the rest.
	var store fetcher.Store = fetcher.HTTPStore{Client: ghttp.NewClient(ghttp.DefaultOptions())}
	if cfg.Bucket != "" {
		b, err := blob.OpenBucket(ctx, cfg.Bucket)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: open bucket %s: %v\n", cfg.Bucket, err)
			return ExitStoreError
		}
		defer b.Close()
		store = fetcher.RouterStore{Bucket: fetcher.BucketStore{Bucket: b}, HTTP: store}
	}

	var tracker *progress.Tracker
	if cfg.Progress {
		tracker = progress.NewTracker(progress.Options{})
	}

	results := fetcher.FetchAll(ctx, store, cfg.Files, fetcher.Options{
		Workers:   cfg.Workers,
		Overwrite: cfg.Overwrite,
		Progress:  tracker,
	})
	tracker.Wait()

	var downloaded, skipped, failed int
	var bytes int64
	for _, r := range results {
		switch {
		case r.Skipped:
			skipped++
		case r.Err != nil:
			failed++
		default:
			downloaded++
			bytes += r.Bytes
		}
	}

	fmt.Fprintf(os.Stderr, "[glacierkit] Downloaded %d file(s) (%s) | skipped %d | failed %d\n",
		downloaded, progress.FormatBytes(bytes), skipped, failed)

	if failed > 0 {
		return ExitStoreError
	}
	return ExitSuccess
}
