// Package store holds the client-side weather query cache: entries keyed by
// (query kind, city), fresh for a configurable window and invalidated
// explicitly on user-triggered refresh.
package store

import (
	"errors"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// Query kinds mirroring the dashboard's three weather views.
const (
	KindCurrent = "current"
	KindHourly  = "hourly"
	KindDaily   = "daily"
)

// ErrNotFound is returned when no fresh entry exists for a key.
var ErrNotFound = errors.New("no cached weather data")

const keySeparator = "|"

// Cache is a keyed TTL cache for weather query results. Writes are
// last-write-wins per key, so a stale in-flight result superseded by a
// refresh is simply overwritten.
type Cache struct {
	entries *gocache.Cache
}

// NewCache creates a cache whose entries stay fresh for ttl.
func NewCache(ttl time.Duration) *Cache {
	return &Cache{
		entries: gocache.New(ttl, 2*ttl),
	}
}

// Get returns the fresh value stored under (kind, key) or ErrNotFound.
func (c *Cache) Get(kind, key string) (any, error) {
	value, ok := c.entries.Get(kind + keySeparator + key)
	if !ok {
		return nil, ErrNotFound
	}
	return value, nil
}

// Set stores value under (kind, key) with the cache's freshness window.
func (c *Cache) Set(kind, key string, value any) {
	c.entries.SetDefault(kind+keySeparator+key, value)
}

// Invalidate drops every entry belonging to the given query kinds.
func (c *Cache) Invalidate(kinds ...string) {
	for key := range c.entries.Items() {
		for _, kind := range kinds {
			if strings.HasPrefix(key, kind+keySeparator) {
				c.entries.Delete(key)
				break
			}
		}
	}
}

// Flush drops everything.
func (c *Cache) Flush() {
	c.entries.Flush()
}
