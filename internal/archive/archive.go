// Package archive stores the raw records of one job partition as a
// gzip-compressed JSON array. Archives are the source of truth for the
// transform phase, which never re-fetches.
package archive

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"path"

	"github.com/klauspost/compress/gzip"

	"github.com/dvloznov/lda-connector/internal/storage"
)

// Prefix is the object-store directory holding raw archives.
const Prefix = "raw"

// Name returns the deterministic archive name of a job partition, e.g. "filings_2024".
func Name(job string, year int) string {
	return fmt.Sprintf("%s_%d", job, year)
}

// ObjectName returns the object name an archive is stored under.
func ObjectName(name string) string {
	return path.Join(Prefix, name+".json.gz")
}

// Store reads and writes archives through an object store.
type Store struct {
	objects storage.ObjectStore
}

// NewStore creates an archive store on objects.
func NewStore(objects storage.ObjectStore) *Store {
	return &Store{objects: objects}
}

// Write serializes records to the archive name, replacing any previous archive.
func (s *Store) Write(ctx context.Context, records []json.RawMessage, name string) error {
	if records == nil {
		records = []json.RawMessage{}
	}

	var buf bytes.Buffer
	zw, err := gzip.NewWriterLevel(&buf, gzip.DefaultCompression)
	if err != nil {
		return fmt.Errorf("archive.Write: %s: create gzip writer: %w", name, err)
	}
	if err := json.NewEncoder(zw).Encode(records); err != nil {
		zw.Close()
		return fmt.Errorf("archive.Write: %s: encode records: %w", name, err)
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("archive.Write: %s: finish gzip stream: %w", name, err)
	}

	if err := s.objects.Put(ctx, ObjectName(name), buf.Bytes()); err != nil {
		return fmt.Errorf("archive.Write: %s: %w", name, err)
	}
	return nil
}

// Read loads the records of archive name in their archived order. A missing
// archive returns an error wrapping storage.ErrNotExist.
func (s *Store) Read(ctx context.Context, name string) ([]json.RawMessage, error) {
	data, err := s.objects.Get(ctx, ObjectName(name))
	if err != nil {
		return nil, fmt.Errorf("archive.Read: %s: %w", name, err)
	}

	zr, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("archive.Read: %s: open gzip stream: %w", name, err)
	}
	defer zr.Close()

	plain, err := io.ReadAll(zr)
	if err != nil {
		return nil, fmt.Errorf("archive.Read: %s: decompress: %w", name, err)
	}

	var records []json.RawMessage
	if err := json.Unmarshal(plain, &records); err != nil {
		return nil, fmt.Errorf("archive.Read: %s: decode records: %w", name, err)
	}
	return records, nil
}

// URI returns where archive name is stored.
func (s *Store) URI(name string) string {
	return s.objects.URI(ObjectName(name))
}
