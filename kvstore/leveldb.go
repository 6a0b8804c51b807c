// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package kvstore

import (
	"encoding/binary"
	"fmt"
	"sync"
	"time"

	"github.com/bitmark-inc/logger"
	"github.com/pkg/errors"
	"github.com/syndtr/goleveldb/leveldb"
	ldb_opt "github.com/syndtr/goleveldb/leveldb/opt"
	ldb_util "github.com/syndtr/goleveldb/leveldb/util"

	"github.com/bitmark-inc/txmetadata/fault"
)

// for database version
var versionKey = []byte{0x00, 'V', 'E', 'R', 'S', 'I', 'O', 'N'}

const (
	currentDBVersion = 0x100
	metadataPrefix   = 'M'

	// version(8) ++ unix nanoseconds(8) ++ deleted(1)
	entryHeaderLength = 17
)

// LevelDB - a Store kept in a LevelDB database
type LevelDB struct {
	mutex      sync.Mutex // serialises database access that fills the cache
	db         *leveldb.DB
	cache      *readCache
	syncWrites bool
	stats      Stats
	log        *logger.L
}

// LevelDBOptions - optional settings for OpenLevelDB
type LevelDBOptions struct {
	ReadOnly        bool
	SyncWrites      bool
	CacheExpiration time.Duration
}

// OpenLevelDB - open or create the database
func OpenLevelDB(name string, options LevelDBOptions) (*LevelDB, error) {
	opt := &ldb_opt.Options{
		ErrorIfExist:   false,
		ErrorIfMissing: options.ReadOnly,
		ReadOnly:       options.ReadOnly,
	}

	db, err := leveldb.OpenFile(name, opt)
	if nil != err {
		return nil, errors.Wrapf(err, "open: %q", name)
	}

	version, err := getVersion(db)
	if nil != err {
		db.Close()
		return nil, err
	}

	// ensure no database downgrade
	if version > currentDBVersion {
		db.Close()
		return nil, fmt.Errorf("database version: %d > current version: %d", version, currentDBVersion)
	}

	if 0 == version && !options.ReadOnly {
		if err := putVersion(db, currentDBVersion); nil != err {
			db.Close()
			return nil, err
		}
	}

	s := &LevelDB{
		db:         db,
		cache:      newReadCache(options.CacheExpiration),
		syncWrites: options.SyncWrites,
		log:        logger.New("kvstore"),
	}
	s.log.Infof("opened: %q  version: %d", name, version)
	return s, nil
}

// Close - release the database
func (s *LevelDB) Close() error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if nil == s.db {
		return nil
	}
	s.cache.clear()
	err := s.db.Close()
	s.db = nil
	s.log.Info("closed")
	return err
}

// Stats - operation counts
func (s *LevelDB) Stats() *Stats {
	return &s.stats
}

// Get - read an entry, including tombstones
func (s *LevelDB) Get(key string) (*Entry, error) {
	if "" == key {
		return nil, fault.ErrEmptyKey
	}
	s.stats.Gets.Increment()

	value, err := s.read(key)
	if nil != err {
		if fault.Is(err, fault.ErrKeyNotFound) {
			s.stats.Misses.Increment()
		} else {
			s.stats.Failures.Increment()
		}
		return nil, err
	}
	return unpackEntry(key, value)
}

// Set - write an entry if its version matches the stored version
func (s *LevelDB) Set(entry *Entry) (uint64, error) {
	if nil == entry || "" == entry.Key {
		return 0, fault.ErrEmptyKey
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()

	current := uint64(0)
	value, err := s.load(entry.Key)
	if nil == err {
		if len(value) < entryHeaderLength {
			s.stats.Failures.Increment()
			return 0, errors.Wrapf(fault.ErrCorruptRecord, "stored entry: %q", entry.Key)
		}
		current = binary.BigEndian.Uint64(value[:8])
	} else if !fault.Is(err, fault.ErrKeyNotFound) {
		s.stats.Failures.Increment()
		return 0, err
	}

	if entry.Version != current {
		s.stats.Conflicts.Increment()
		s.log.Debugf("conflict: %q  observed: %d  current: %d", entry.Key, entry.Version, current)
		return 0, fault.ErrVersionConflict
	}

	next := current + 1
	packed := packEntry(next, time.Now(), entry.Deleted, entry.Payload)

	err = s.db.Put(prefixKey(entry.Key), packed, &ldb_opt.WriteOptions{Sync: s.syncWrites})
	if nil != err {
		s.stats.Failures.Increment()
		s.cache.remove(entry.Key)
		return 0, errors.Wrapf(fault.ErrStoreUnavailable, "leveldb put: %s", err)
	}
	s.cache.set(entry.Key, packed)
	s.stats.Sets.Increment()

	s.log.Debugf("set: %q  version: %d  deleted: %v  bytes: %d", entry.Key, next, entry.Deleted, len(entry.Payload))
	return next, nil
}

// Keys - all keys in the store, tombstones included
func (s *LevelDB) Keys() ([]string, error) {
	keys := make([]string, 0)
	err := s.Map(func(entry *Entry) error {
		keys = append(keys, entry.Key)
		return nil
	})
	return keys, err
}

// Map - run a function on all entries in key order
func (s *LevelDB) Map(f func(entry *Entry) error) error {
	maxRange := ldb_util.BytesPrefix([]byte{metadataPrefix})

	s.mutex.Lock()
	if nil == s.db {
		s.mutex.Unlock()
		return fault.ErrStoreUnavailable
	}
	iter := s.db.NewIterator(maxRange, nil)
	s.mutex.Unlock()

	var err error
iterating:
	for iter.Next() {

		// contents of the returned slice must not be modified, and are
		// only valid until the next call to Next
		key := string(iter.Key()[1:]) // strip the prefix
		value := make([]byte, len(iter.Value()))
		copy(value, iter.Value())

		entry, e := unpackEntry(key, value)
		if nil != e {
			err = e
			break iterating
		}
		err = f(entry)
		if nil != err {
			break iterating
		}
	}
	iter.Release()
	if nil == err {
		err = iter.Error()
	}
	return err
}

// fetch the raw stored value, cache first
func (s *LevelDB) read(key string) ([]byte, error) {
	if value, found := s.cache.get(key); found {
		s.stats.CacheHits.Increment()
		return value, nil
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()

	return s.load(key)
}

// fetch the raw stored value from the database and refresh the cache
//
// the mutex must be held so a concurrent Set cannot be overtaken by an
// older value being cached after it
func (s *LevelDB) load(key string) ([]byte, error) {
	if nil == s.db {
		return nil, fault.ErrStoreUnavailable
	}
	value, err := s.db.Get(prefixKey(key), nil)
	if leveldb.ErrNotFound == err {
		s.cache.remove(key)
		return nil, fault.ErrKeyNotFound
	} else if nil != err {
		return nil, errors.Wrapf(fault.ErrStoreUnavailable, "leveldb get: %s", err)
	}
	s.cache.set(key, value)
	return value, nil
}

// prepend the prefix onto the key
func prefixKey(key string) []byte {
	prefixedKey := make([]byte, 1, len(key)+1)
	prefixedKey[0] = metadataPrefix
	return append(prefixedKey, key...)
}

func packEntry(version uint64, modified time.Time, deleted bool, payload []byte) []byte {
	buffer := make([]byte, entryHeaderLength, entryHeaderLength+len(payload))
	binary.BigEndian.PutUint64(buffer[0:8], version)
	binary.BigEndian.PutUint64(buffer[8:16], uint64(modified.UnixNano()))
	if deleted {
		buffer[16] = 1
	}
	return append(buffer, payload...)
}

func unpackEntry(key string, value []byte) (*Entry, error) {
	if len(value) < entryHeaderLength {
		return nil, errors.Wrapf(fault.ErrCorruptRecord, "stored entry: %q  length: %d", key, len(value))
	}
	entry := &Entry{
		Header: Header{
			Key:          key,
			Version:      binary.BigEndian.Uint64(value[0:8]),
			LastModified: time.Unix(0, int64(binary.BigEndian.Uint64(value[8:16]))).UTC(),
			Deleted:      0 != value[16],
		},
	}
	if len(value) > entryHeaderLength {
		entry.Payload = make([]byte, len(value)-entryHeaderLength)
		copy(entry.Payload, value[entryHeaderLength:])
	}
	return entry, nil
}

func getVersion(db *leveldb.DB) (int, error) {
	versionValue, err := db.Get(versionKey, nil)
	if leveldb.ErrNotFound == err {
		return 0, nil
	} else if nil != err {
		return 0, err
	}

	if 4 != len(versionValue) {
		return 0, fmt.Errorf("incompatible database version length: expected: %d  actual: %d", 4, len(versionValue))
	}
	return int(binary.BigEndian.Uint32(versionValue)), nil
}

func putVersion(db *leveldb.DB, version int) error {
	currentVersion := make([]byte, 4)
	binary.BigEndian.PutUint32(currentVersion, uint32(version))

	return db.Put(versionKey, currentVersion, nil)
}
