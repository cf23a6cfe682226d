package storage

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"
)

// ErrNotExist is returned when a named object is absent.
var ErrNotExist = errors.New("object does not exist")

// ObjectStore provides an interface for durable object storage operations.
// Object names are slash-separated and relative to the store root.
type ObjectStore interface {
	// Put writes data under name, replacing any previous object.
	Put(ctx context.Context, name string, data []byte) error

	// Get reads the object stored under name. It returns an error wrapping
	// ErrNotExist when there is none.
	Get(ctx context.Context, name string) ([]byte, error)

	// List returns the names of objects under prefix, sorted.
	List(ctx context.Context, prefix string) ([]string, error)

	// URI returns a human-readable location for name.
	URI(name string) string

	// Close releases resources held by the store.
	Close() error
}

// Open returns the backend matching root: a "gs://bucket/prefix" URI selects
// Google Cloud Storage, anything else is a local directory.
func Open(ctx context.Context, root string, opts ...GCSOption) (ObjectStore, error) {
	if strings.HasPrefix(root, "gs://") {
		bucket, prefix, err := ParseGCSURI(root)
		if err != nil {
			return nil, err
		}
		return NewGCSStore(ctx, bucket, prefix, opts...)
	}
	return NewLocalStore(root)
}

// ParseGCSURI splits "gs://bucket/path/to/prefix" into bucket and object prefix.
// The prefix may be empty.
func ParseGCSURI(uri string) (bucket, prefix string, err error) {
	if !strings.HasPrefix(uri, "gs://") {
		return "", "", fmt.Errorf("invalid GCS URI: %s", uri)
	}

	trimmed := strings.TrimPrefix(uri, "gs://")
	parts := strings.SplitN(trimmed, "/", 2)
	if parts[0] == "" {
		return "", "", fmt.Errorf("invalid GCS URI (no bucket): %s", uri)
	}
	if len(parts) == 2 {
		prefix = strings.Trim(parts[1], "/")
	}
	return parts[0], prefix, nil
}

func cleanName(name string) (string, error) {
	cleaned := path.Clean("/" + name)[1:]
	if cleaned == "" || cleaned == "." {
		return "", fmt.Errorf("invalid object name %q", name)
	}
	return cleaned, nil
}
