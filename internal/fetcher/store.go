package fetcher

import (
	"context"
	"io"

	"gocloud.dev/blob"

	ghttp "github.com/glacierkit/glacierkit/internal/http"
)

// Store is the object-store capability the fetcher needs: the total size
// of an object from its metadata, and a byte stream of its content. Any
// client exposing these two operations can serve as a source.
type Store interface {
	// Size returns the object's total size in bytes from store metadata.
	Size(ctx context.Context, key string) (int64, error)

	// Open returns a reader streaming the object's content.
	Open(ctx context.Context, key string) (io.ReadCloser, error)
}

// BucketStore adapts a gocloud blob bucket to the Store interface.
// The bucket is owned by the caller, who remains responsible for
// closing it.
type BucketStore struct {
	Bucket *blob.Bucket
}

func (s BucketStore) Size(ctx context.Context, key string) (int64, error) {
	attrs, err := s.Bucket.Attributes(ctx, key)
	if err != nil {
		return 0, err
	}
	return attrs.Size, nil
}

func (s BucketStore) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	return s.Bucket.NewReader(ctx, key, nil)
}

// HTTPStore serves keys that are absolute HTTP(S) URLs, for tutorial
// inputs published on a plain web server instead of an object store.
type HTTPStore struct {
	Client *ghttp.Client
}

func (s HTTPStore) Size(ctx context.Context, key string) (int64, error) {
	info, err := s.Client.Head(ctx, key)
	if err != nil {
		return 0, err
	}
	return info.Size, nil
}

func (s HTTPStore) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	return s.Client.Get(ctx, key)
}

// RouterStore dispatches each key by shape: HTTP(S) URLs go to HTTP,
// every other key to Bucket. A batch can then mix bucket objects and
// web URLs.
type RouterStore struct {
	Bucket Store
	HTTP   Store
}

func (s RouterStore) Size(ctx context.Context, key string) (int64, error) {
	return s.pick(key).Size(ctx, key)
}

func (s RouterStore) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	return s.pick(key).Open(ctx, key)
}

func (s RouterStore) pick(key string) Store {
	if IsURL(key) {
		return s.HTTP
	}
	return s.Bucket
}
