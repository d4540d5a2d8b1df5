// Package fetcher downloads tutorial input files from an object store.
//
// A single-object fetch reads the object's size from store metadata and
// streams its bytes to a local file, feeding a per-transfer progress bar.
// A batch fetch runs single-object fetches over a bounded worker pool,
// skipping files that already exist locally.
//
// # Usage
//
//	bucket, err := blob.OpenBucket(ctx, "s3://tutorial-inputs")
//	...
//	results := fetcher.FetchAll(ctx, fetcher.BucketStore{Bucket: bucket}, keys, fetcher.Options{
//	    Workers:  4,
//	    Progress: tracker,
//	})
//
// # Failure handling
//
// A failed task is logged and recorded in its Result but never aborts
// sibling tasks; the batch always runs every remaining task to
// completion. Partial files from failed transfers are left on disk.
//
// # Sources
//
// The store is passed in by the caller; no default client is ever
// constructed. BucketStore adapts any gocloud blob bucket (S3, GCS,
// local directories, in-memory buckets in tests), HTTPStore serves
// plain HTTP(S) URLs.
package fetcher
