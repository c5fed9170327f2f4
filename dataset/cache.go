package dataset

import (
	"fmt"
	"os"
	"path/filepath"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/singleflight"
)

// Cache memoizes loaded tables by source identity: absolute path, size and
// modification time. A changed file is a new key, so stale tables are never
// served. Concurrent loads of the same source share one read.
//
// A nil Cache, or one created with size 0, loads on every call.
type Cache struct {
	tables *lru.Cache[sourceKey, *Table]
	group  singleflight.Group
}

type sourceKey struct {
	path    string
	size    int64
	modTime int64
}

func (k sourceKey) String() string {
	return fmt.Sprintf("%s|%d|%d", k.path, k.size, k.modTime)
}

// NewCache creates a cache holding at most size tables.
func NewCache(size int) (*Cache, error) {
	if size <= 0 {
		return &Cache{}, nil
	}
	tables, err := lru.New[sourceKey, *Table](size)
	if err != nil {
		return nil, fmt.Errorf("create table cache: %w", err)
	}
	return &Cache{tables: tables}, nil
}

// Load returns the table for path, loading it on a miss.
func (c *Cache) Load(path string) (*Table, bool, error) {
	if c == nil || c.tables == nil {
		t, err := LoadFile(path)
		return t, false, err
	}

	key, err := identify(path)
	if err != nil {
		return nil, false, err
	}
	if t, ok := c.tables.Get(key); ok {
		return t, true, nil
	}

	v, err, _ := c.group.Do(key.String(), func() (any, error) {
		t, err := LoadFile(path)
		if err != nil {
			return nil, err
		}
		c.tables.Add(key, t)
		return t, nil
	})
	if err != nil {
		return nil, false, err
	}
	return v.(*Table), false, nil
}

// Len returns the number of cached tables.
func (c *Cache) Len() int {
	if c == nil || c.tables == nil {
		return 0
	}
	return c.tables.Len()
}

// Purge drops every cached table.
func (c *Cache) Purge() {
	if c == nil || c.tables == nil {
		return
	}
	c.tables.Purge()
}

func identify(path string) (sourceKey, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return sourceKey{}, &MalformedSourceError{Source: path, Reason: "cannot resolve path", Err: err}
	}
	info, err := os.Stat(abs)
	if err != nil {
		return sourceKey{}, &MalformedSourceError{Source: path, Reason: "cannot open source", Err: err}
	}
	if info.IsDir() {
		return sourceKey{}, &MalformedSourceError{Source: path, Reason: "source is a directory"}
	}
	return sourceKey{path: abs, size: info.Size(), modTime: info.ModTime().UnixNano()}, nil
}
