// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package kvstore

import (
	"time"

	cache "github.com/patrickmn/go-cache"
)

const (
	defaultCleanup    = 1 * time.Minute
	defaultExpiration = 2 * time.Minute
)

// write through cache of encoded entries in front of the database
type readCache struct {
	cache *cache.Cache
}

func newReadCache(expiration time.Duration) *readCache {
	if expiration <= 0 {
		expiration = defaultExpiration
	}
	return &readCache{
		cache: cache.New(expiration, defaultCleanup),
	}
}

func (c *readCache) get(key string) ([]byte, bool) {
	obj, found := c.cache.Get(key)
	if !found {
		return nil, false
	}
	return obj.([]byte), true
}

func (c *readCache) set(key string, value []byte) {
	c.cache.SetDefault(key, value)
}

func (c *readCache) remove(key string) {
	c.cache.Delete(key)
}

func (c *readCache) clear() {
	c.cache.Flush()
}
