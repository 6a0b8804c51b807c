// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package kvstore

import (
	"sort"
	"sync"
	"time"

	cache "github.com/patrickmn/go-cache"

	"github.com/bitmark-inc/txmetadata/fault"
)

// Memory - a Store held in process memory
//
// nothing expires; the contents are lost when the process exits
type Memory struct {
	mutex     sync.Mutex // serialises version check and write
	items     *cache.Cache
	available bool
	stats     Stats
}

// NewMemory - an empty in-memory store
func NewMemory() *Memory {
	return &Memory{
		items:     cache.New(cache.NoExpiration, 0),
		available: true,
	}
}

// SetAvailable - simulate loss (false) or recovery (true) of the back end
func (m *Memory) SetAvailable(available bool) {
	m.mutex.Lock()
	m.available = available
	m.mutex.Unlock()
}

// Stats - operation counts
func (m *Memory) Stats() *Stats {
	return &m.stats
}

// Get - read an entry, including tombstones
func (m *Memory) Get(key string) (*Entry, error) {
	if "" == key {
		return nil, fault.ErrEmptyKey
	}
	m.stats.Gets.Increment()

	m.mutex.Lock()
	available := m.available
	m.mutex.Unlock()

	if !available {
		m.stats.Failures.Increment()
		return nil, fault.ErrStoreUnavailable
	}

	obj, found := m.items.Get(key)
	if !found {
		m.stats.Misses.Increment()
		return nil, fault.ErrKeyNotFound
	}
	return obj.(*Entry).clone(), nil
}

// Set - write an entry if its version matches the stored version
func (m *Memory) Set(entry *Entry) (uint64, error) {
	if nil == entry || "" == entry.Key {
		return 0, fault.ErrEmptyKey
	}

	m.mutex.Lock()
	defer m.mutex.Unlock()

	if !m.available {
		m.stats.Failures.Increment()
		return 0, fault.ErrStoreUnavailable
	}

	current := uint64(0)
	if obj, found := m.items.Get(entry.Key); found {
		current = obj.(*Entry).Version
	}
	if entry.Version != current {
		m.stats.Conflicts.Increment()
		return 0, fault.ErrVersionConflict
	}

	stored := entry.clone()
	stored.Version = current + 1
	stored.LastModified = time.Now().UTC()
	m.items.Set(entry.Key, stored, cache.NoExpiration)
	m.stats.Sets.Increment()

	return stored.Version, nil
}

// Keys - all keys in the store, tombstones included, sorted
func (m *Memory) Keys() ([]string, error) {
	m.mutex.Lock()
	available := m.available
	m.mutex.Unlock()

	if !available {
		m.stats.Failures.Increment()
		return nil, fault.ErrStoreUnavailable
	}

	items := m.items.Items()
	keys := make([]string, 0, len(items))
	for key := range items {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys, nil
}
