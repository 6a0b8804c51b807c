// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package kvstore_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/txmetadata/fault"
	"github.com/bitmark-inc/txmetadata/kvstore"
)

// behaviour common to every Store implementation
func checkStore(t *testing.T, store kvstore.Store) {

	_, err := store.Get("missing")
	assert.Equal(t, fault.ErrKeyNotFound, err, "missing key")

	// first write must present version zero
	v1, err := store.Set(&kvstore.Entry{
		Header:  kvstore.Header{Key: "k1"},
		Payload: []byte("one"),
	})
	assert.Nil(t, err, "first set")
	assert.Equal(t, uint64(1), v1, "first version")

	entry, err := store.Get("k1")
	assert.Nil(t, err, "get after set")
	assert.Equal(t, "k1", entry.Key)
	assert.Equal(t, uint64(1), entry.Version)
	assert.False(t, entry.Deleted)
	assert.False(t, entry.LastModified.IsZero(), "last modified must be set")
	assert.Equal(t, []byte("one"), entry.Payload)

	// a returned payload is a copy
	entry.Payload[0] = 'X'
	again, _ := store.Get("k1")
	assert.Equal(t, []byte("one"), again.Payload, "store data modified through returned entry")

	// stale version is rejected and leaves the first writer's data
	_, err = store.Set(&kvstore.Entry{
		Header:  kvstore.Header{Key: "k1", Version: 0},
		Payload: []byte("stale"),
	})
	assert.Equal(t, fault.ErrVersionConflict, err, "stale write")

	// a future version is also a conflict
	_, err = store.Set(&kvstore.Entry{
		Header:  kvstore.Header{Key: "k1", Version: 7},
		Payload: []byte("future"),
	})
	assert.Equal(t, fault.ErrVersionConflict, err, "future write")

	entry, _ = store.Get("k1")
	assert.Equal(t, []byte("one"), entry.Payload, "payload after conflict")

	// correct version succeeds
	v2, err := store.Set(&kvstore.Entry{
		Header:  kvstore.Header{Key: "k1", Version: v1},
		Payload: []byte("two"),
	})
	assert.Nil(t, err, "second set")
	assert.Equal(t, uint64(2), v2, "second version")

	// tombstone keeps the entry retrievable
	v3, err := kvstore.Tombstone(store, "k1", v2)
	assert.Nil(t, err, "tombstone")
	assert.Equal(t, uint64(3), v3, "tombstone version")

	entry, err = store.Get("k1")
	assert.Nil(t, err, "get tombstone")
	assert.True(t, entry.Deleted, "tombstone flag")
	assert.Equal(t, uint64(3), entry.Version)
	assert.Equal(t, 0, len(entry.Payload), "tombstone payload")

	_, err = store.Set(&kvstore.Entry{Header: kvstore.Header{Key: ""}})
	assert.Equal(t, fault.ErrEmptyKey, err, "empty key")
}

// two writers read the same version; only the first write lands
func checkConcurrentWriters(t *testing.T, store kvstore.Store) {
	const writers = 10

	var wg sync.WaitGroup
	results := make(chan error, writers)

	for i := 0; i < writers; i += 1 {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			_, err := store.Set(&kvstore.Entry{
				Header:  kvstore.Header{Key: "race"},
				Payload: []byte{byte(n)},
			})
			results <- err
		}(i)
	}
	wg.Wait()
	close(results)

	succeeded := 0
	for err := range results {
		if nil == err {
			succeeded += 1
		} else if !fault.IsErrConflict(err) {
			t.Errorf("unexpected error: %s", err)
		}
	}
	assert.Equal(t, 1, succeeded, "exactly one writer must succeed")

	entry, err := store.Get("race")
	assert.Nil(t, err)
	assert.Equal(t, uint64(1), entry.Version)
}

type testObject struct {
	key     string
	version uint64
	data    string
}

func (o testObject) Key() string           { return o.key }
func (o testObject) Version() uint64       { return o.version }
func (o testObject) Pack() ([]byte, error) { return []byte(o.data), nil }

func TestMemoryStore(t *testing.T) {
	store := kvstore.NewMemory()
	checkStore(t, store)
	checkConcurrentWriters(t, store)

	keys, err := store.Keys()
	assert.Nil(t, err)
	assert.Equal(t, []string{"k1", "race"}, keys, "keys")

	assert.Equal(t, uint64(1), store.Stats().Misses.Uint64(), "misses")
	assert.True(t, store.Stats().Conflicts.Uint64() >= 2, "conflicts")
}

func TestMemoryUnavailable(t *testing.T) {
	store := kvstore.NewMemory()
	store.SetAvailable(false)

	_, err := store.Get("k")
	assert.True(t, fault.IsErrUnavailable(err), "get while unavailable")

	_, err = store.Set(&kvstore.Entry{Header: kvstore.Header{Key: "k"}})
	assert.True(t, fault.IsErrUnavailable(err), "set while unavailable")

	keys, err := store.Keys()
	assert.True(t, fault.IsErrUnavailable(err), "keys while unavailable")
	assert.Nil(t, keys, "keys while unavailable")

	store.SetAvailable(true)
	_, err = store.Set(&kvstore.Entry{Header: kvstore.Header{Key: "k"}})
	assert.Nil(t, err, "set after recovery")
	assert.Equal(t, uint64(3), store.Stats().Failures.Uint64(), "failures")

	keys, err = store.Keys()
	assert.Nil(t, err, "keys after recovery")
	assert.Equal(t, []string{"k"}, keys)
}

func TestPut(t *testing.T) {
	store := kvstore.NewMemory()

	version, err := kvstore.Put(store, testObject{key: "obj", data: "first"})
	assert.Nil(t, err)
	assert.Equal(t, uint64(1), version)

	_, err = kvstore.Put(store, testObject{key: "obj", data: "stale"})
	assert.Equal(t, fault.ErrVersionConflict, err)

	version, err = kvstore.Put(store, testObject{key: "obj", version: version, data: "second"})
	assert.Nil(t, err)
	assert.Equal(t, uint64(2), version)

	entry, _ := store.Get("obj")
	assert.Equal(t, []byte("second"), entry.Payload)

	_, err = kvstore.Put(store, testObject{key: ""})
	assert.Equal(t, fault.ErrEmptyKey, err)

	_, err = kvstore.Put(nil, testObject{key: "x"})
	assert.Equal(t, fault.ErrNilStore, err)
}
