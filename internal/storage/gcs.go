package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"sort"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
)

// GCSOption configures the Google Cloud Storage client.
type GCSOption = option.ClientOption

// WithCredentialsFile authenticates with a service account key file instead
// of Application Default Credentials.
func WithCredentialsFile(path string) GCSOption {
	return option.WithCredentialsFile(path)
}

// GCSStore is the ObjectStore backed by a Google Cloud Storage bucket.
// It holds one shared client for its lifetime.
type GCSStore struct {
	client *storage.Client
	bucket string
	prefix string

	// uploadTimeout bounds a single object write.
	uploadTimeout time.Duration
}

// NewGCSStore creates a store rooted at gs://bucket/prefix.
// It assumes Application Default Credentials are configured unless an option says otherwise.
func NewGCSStore(ctx context.Context, bucket, prefix string, opts ...GCSOption) (*GCSStore, error) {
	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("NewGCSStore: create storage client: %w", err)
	}
	return &GCSStore{
		client:        client,
		bucket:        bucket,
		prefix:        strings.Trim(prefix, "/"),
		uploadTimeout: 5 * time.Minute,
	}, nil
}

func (s *GCSStore) objectName(name string) (string, error) {
	cleaned, err := cleanName(name)
	if err != nil {
		return "", err
	}
	if s.prefix == "" {
		return cleaned, nil
	}
	return path.Join(s.prefix, cleaned), nil
}

// Put uploads data under name, overwriting any existing object.
func (s *GCSStore) Put(ctx context.Context, name string, data []byte) error {
	objectName, err := s.objectName(name)
	if err != nil {
		return fmt.Errorf("GCSStore.Put: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, s.uploadTimeout)
	defer cancel()

	w := s.client.Bucket(s.bucket).Object(objectName).NewWriter(ctx)

	if _, err := w.Write(data); err != nil {
		_ = w.Close()
		return fmt.Errorf("GCSStore.Put: write gs://%s/%s: %w", s.bucket, objectName, err)
	}

	// Close to finalize the upload
	if err := w.Close(); err != nil {
		return fmt.Errorf("GCSStore.Put: finalize gs://%s/%s: %w", s.bucket, objectName, err)
	}

	return nil
}

// Get downloads the object stored under name.
func (s *GCSStore) Get(ctx context.Context, name string) ([]byte, error) {
	objectName, err := s.objectName(name)
	if err != nil {
		return nil, fmt.Errorf("GCSStore.Get: %w", err)
	}

	r, err := s.client.Bucket(s.bucket).Object(objectName).NewReader(ctx)
	if errors.Is(err, storage.ErrObjectNotExist) {
		return nil, fmt.Errorf("GCSStore.Get: gs://%s/%s: %w", s.bucket, objectName, ErrNotExist)
	}
	if err != nil {
		return nil, fmt.Errorf("GCSStore.Get: open gs://%s/%s: %w", s.bucket, objectName, err)
	}
	defer r.Close()

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("GCSStore.Get: read gs://%s/%s: %w", s.bucket, objectName, err)
	}

	return data, nil
}

// List returns names, relative to the store root, of objects under prefix.
func (s *GCSStore) List(ctx context.Context, prefix string) ([]string, error) {
	full := strings.Trim(prefix, "/")
	if s.prefix != "" {
		full = path.Join(s.prefix, full)
	}
	if full != "" && strings.HasSuffix(prefix, "/") {
		full += "/"
	}

	it := s.client.Bucket(s.bucket).Objects(ctx, &storage.Query{Prefix: full})

	var names []string
	for {
		attrs, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("GCSStore.List: iter next: %w", err)
		}
		name := attrs.Name
		if s.prefix != "" {
			name = strings.TrimPrefix(name, s.prefix+"/")
		}
		names = append(names, name)
	}

	sort.Strings(names)
	return names, nil
}

// URI returns the gs:// URI of name.
func (s *GCSStore) URI(name string) string {
	objectName, err := s.objectName(name)
	if err != nil {
		objectName = name
	}
	return fmt.Sprintf("gs://%s/%s", s.bucket, objectName)
}

// Close closes the storage client.
func (s *GCSStore) Close() error {
	if s.client != nil {
		return s.client.Close()
	}
	return nil
}

var _ ObjectStore = (*GCSStore)(nil)
