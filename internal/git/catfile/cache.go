package catfile

import (
	"context"
	"fmt"

	lru "github.com/hashicorp/golang-lru"
	"gitlab.com/gitlab-org/gitref/internal/git"
)

const (
	// CacheMaxItems is the default configuration for maximum entries in the header cache
	CacheMaxItems = 1000
)

// Cache is an InfoReader remembering the headers returned by another
// InfoReader. Objects are immutable, so a header never goes stale. Missing
// objects are not remembered as they may show up later.
type Cache struct {
	reader InfoReader
	lru    *lru.Cache
}

// NewCache wraps reader into a Cache holding at most maxEntries headers.
func NewCache(reader InfoReader, maxEntries int) (*Cache, error) {
	if maxEntries <= 0 {
		maxEntries = CacheMaxItems
	}

	l, err := lru.New(maxEntries)
	if err != nil {
		return nil, fmt.Errorf("create object header cache: %w", err)
	}

	return &Cache{reader: reader, lru: l}, nil
}

// Info implements InfoReader.
func (c *Cache) Info(ctx context.Context, oid git.ObjectID) (*ObjectInfo, error) {
	if v, ok := c.lru.Get(oid); ok {
		catfileCacheLookups.WithLabelValues("hit").Inc()
		info := v.(ObjectInfo)
		return &info, nil
	}
	catfileCacheLookups.WithLabelValues("miss").Inc()

	info, err := c.reader.Info(ctx, oid)
	if err != nil {
		return nil, err
	}

	c.lru.Add(oid, *info)
	return info, nil
}

// Len returns the number of cached headers.
func (c *Cache) Len() int {
	return c.lru.Len()
}
