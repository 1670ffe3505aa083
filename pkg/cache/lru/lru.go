/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package lru provides a bounded, optionally expiring cache.Cache backed by gcache.
package lru

import (
	"time"

	"github.com/bluele/gcache"

	"github.com/nzcp/nzcp-go/pkg/common/log"
	"github.com/nzcp/nzcp-go/spi/cache"
)

const (
	// DefaultSize is the number of documents kept when no size is given.
	DefaultSize = 100

	logModule = "nzcp/cache"
)

var logger = log.New(logModule)

var _ cache.Cache = (*Cache)(nil)

// Opt configures Cache.
type Opt func(opts *options)

type options struct {
	size int
	ttl  time.Duration
}

// WithSize bounds the cache to size entries. Values below one fall back to DefaultSize.
func WithSize(size int) Opt {
	return func(opts *options) {
		opts.size = size
	}
}

// WithTTL expires entries ttl after they were set. Zero disables expiry.
func WithTTL(ttl time.Duration) Opt {
	return func(opts *options) {
		opts.ttl = ttl
	}
}

// Cache is a least recently used cache. The underlying gcache is thread safe.
type Cache struct {
	gstore gcache.Cache
	ttl    time.Duration
}

// New returns a new LRU cache.
func New(opts ...Opt) *Cache {
	o := &options{size: DefaultSize}

	for _, opt := range opts {
		opt(o)
	}

	if o.size < 1 {
		o.size = DefaultSize
	}

	return &Cache{
		gstore: gcache.New(o.size).LRU().Build(),
		ttl:    o.ttl,
	}
}

// Get returns the value stored under key.
func (c *Cache) Get(key string) (interface{}, bool) {
	v, err := c.gstore.Get(key)
	if err != nil {
		return nil, false
	}

	return v, true
}

// Set stores value under key.
func (c *Cache) Set(key string, value interface{}) {
	var err error

	if c.ttl > 0 {
		err = c.gstore.SetWithExpire(key, value, c.ttl)
	} else {
		err = c.gstore.Set(key, value)
	}

	if err != nil {
		logger.Warnf("failed to cache %s: %s", key, err)
	}
}

// Len returns the number of live entries.
func (c *Cache) Len() int {
	return c.gstore.Len(true)
}

// Purge drops every entry.
func (c *Cache) Purge() {
	c.gstore.Purge()
}
