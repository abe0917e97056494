package cache

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/klauspost/compress/gzip"
)

// FileCache stores entries as gzip-compressed JSON files under a local
// directory. Level text and timing arrays are highly repetitive, so the
// compression typically cuts cache size by an order of magnitude.
type FileCache struct {
	dir string
}

// NewFileCache creates a file cache rooted at dir, creating it if needed.
func NewFileCache(dir string) (Cache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &FileCache{dir: dir}, nil
}

// fileEntry is the on-disk form of one cached value. A zero ExpiresAt
// means the entry never expires.
type fileEntry struct {
	Data      []byte    `json:"data"`
	ExpiresAt time.Time `json:"expires_at"`
}

// path maps a key to its file. The first two hash characters become a
// shard subdirectory so one directory never collects every entry.
func (c *FileCache) path(key string) string {
	sum := Hash([]byte(key))
	return filepath.Join(c.dir, sum[:2], sum[2:]+".json.gz")
}

// Get returns the cached value for key, expiring and discarding stale or
// unreadable entries as it encounters them.
func (c *FileCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	name := c.path(key)

	f, err := os.Open(name)
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	defer f.Close()

	entry, err := decodeEntry(f)
	if err != nil {
		// Corrupt entry. Drop it and report a miss.
		_ = os.Remove(name)
		return nil, false, nil
	}
	if !entry.ExpiresAt.IsZero() && time.Now().After(entry.ExpiresAt) {
		_ = os.Remove(name)
		return nil, false, nil
	}

	return entry.Data, true, nil
}

// Set writes data under key with the given ttl. A ttl of zero or less
// keeps the entry until it is deleted or the cache is cleared.
func (c *FileCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	entry := fileEntry{Data: data}
	if ttl > 0 {
		entry.ExpiresAt = time.Now().Add(ttl)
	}

	blob, err := encodeEntry(entry)
	if err != nil {
		return err
	}

	name := c.path(key)
	if err := os.MkdirAll(filepath.Dir(name), 0o755); err != nil {
		return err
	}
	return os.WriteFile(name, blob, 0o644)
}

// Delete removes the entry for key. Missing entries are not an error.
func (c *FileCache) Delete(ctx context.Context, key string) error {
	err := os.Remove(c.path(key))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// Close is a no-op; every operation opens and closes its own file.
func (c *FileCache) Close() error { return nil }

// encodeEntry renders an entry as gzipped JSON.
func encodeEntry(entry fileEntry) ([]byte, error) {
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	if err := json.NewEncoder(zw).Encode(entry); err != nil {
		return nil, err
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// decodeEntry parses one cache file.
func decodeEntry(r io.Reader) (fileEntry, error) {
	var entry fileEntry

	zr, err := gzip.NewReader(r)
	if err != nil {
		return entry, err
	}
	defer zr.Close()

	if err := json.NewDecoder(zr).Decode(&entry); err != nil {
		return entry, err
	}
	return entry, nil
}
