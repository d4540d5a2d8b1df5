// Package http provides the HTTP client used for tutorial inputs that
// are published on plain HTTP(S) instead of an object store.
//
// This package handles:
//   - HEAD requests to get file metadata (size)
//   - Streaming GET requests
//   - Retry with exponential backoff and jitter
//
// # Usage
//
//	client := http.NewClient(http.DefaultOptions())
//
//	// Get file info
//	info, err := client.Head(ctx, url)
//	// info.Size, info.ETag
//
//	// Stream the body
//	body, err := client.Get(ctx, url)
//	defer body.Close()
package http
