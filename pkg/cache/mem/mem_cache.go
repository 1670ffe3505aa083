/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package mem

import (
	"sync"

	"github.com/nzcp/nzcp-go/spi/cache"
)

var _ cache.Cache = (*Cache)(nil)

// Cache is an unbounded in-memory cache.Cache implementation.
type Cache struct {
	db map[string]interface{}
	sync.RWMutex
}

// New instantiates Cache.
func New() *Cache {
	return &Cache{db: make(map[string]interface{})}
}

// Get fetches the value stored under key.
func (c *Cache) Get(key string) (interface{}, bool) {
	c.RLock()
	v, ok := c.db[key]
	c.RUnlock()

	return v, ok
}

// Set stores value under key.
func (c *Cache) Set(key string, value interface{}) {
	c.Lock()
	c.db[key] = value
	c.Unlock()
}

// Delete removes key from the cache.
func (c *Cache) Delete(key string) {
	c.Lock()
	delete(c.db, key)
	c.Unlock()
}

// Len returns the number of cached entries.
func (c *Cache) Len() int {
	c.RLock()
	defer c.RUnlock()

	return len(c.db)
}

// Clear drops every entry.
func (c *Cache) Clear() {
	c.Lock()
	c.db = make(map[string]interface{})
	c.Unlock()
}
