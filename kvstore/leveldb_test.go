// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package kvstore_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/txmetadata/fault"
	"github.com/bitmark-inc/txmetadata/kvstore"
)

func TestLevelDBStore(t *testing.T) {
	directory := setup(t)
	defer teardown(directory)

	store, err := kvstore.OpenLevelDB(databaseName(directory), kvstore.LevelDBOptions{})
	if nil != err {
		t.Fatalf("open error: %s", err)
	}
	defer store.Close()

	checkStore(t, store)
	checkConcurrentWriters(t, store)

	keys, err := store.Keys()
	assert.Nil(t, err)
	assert.Equal(t, []string{"k1", "race"}, keys, "keys")

	assert.True(t, store.Stats().CacheHits.Uint64() > 0, "cache was never used")
}

func TestLevelDBReopen(t *testing.T) {
	directory := setup(t)
	defer teardown(directory)

	name := databaseName(directory)

	store, err := kvstore.OpenLevelDB(name, kvstore.LevelDBOptions{SyncWrites: true})
	if nil != err {
		t.Fatalf("open error: %s", err)
	}
	version, err := store.Set(&kvstore.Entry{
		Header:  kvstore.Header{Key: "txn2-abc"},
		Payload: []byte{0x01, 0x02, 0x03},
	})
	assert.Nil(t, err)
	assert.Equal(t, uint64(1), version)

	_, err = kvstore.Tombstone(store, "tkxf-def", 0)
	assert.Nil(t, err)

	err = store.Close()
	assert.Nil(t, err, "close")

	// closed store reports unavailable
	_, err = store.Get("txn2-abc")
	assert.True(t, fault.IsErrUnavailable(err), "get after close: %v", err)

	store, err = kvstore.OpenLevelDB(name, kvstore.LevelDBOptions{ReadOnly: true})
	if nil != err {
		t.Fatalf("reopen error: %s", err)
	}
	defer store.Close()

	entry, err := store.Get("txn2-abc")
	assert.Nil(t, err, "get after reopen")
	assert.Equal(t, uint64(1), entry.Version)
	assert.Equal(t, []byte{0x01, 0x02, 0x03}, entry.Payload)

	entry, err = store.Get("tkxf-def")
	assert.Nil(t, err, "tombstone after reopen")
	assert.True(t, entry.Deleted)

	seen := 0
	err = store.Map(func(entry *kvstore.Entry) error {
		seen += 1
		return nil
	})
	assert.Nil(t, err)
	assert.Equal(t, 2, seen, "entries mapped")
}
