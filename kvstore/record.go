// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package kvstore

import (
	"time"

	"github.com/bitmark-inc/txmetadata/fault"
)

// Header - the replication metadata of an entry
type Header struct {
	Key          string    `json:"key"`
	Version      uint64    `json:"version"`
	LastModified time.Time `json:"lastModified"`
	Deleted      bool      `json:"deleted"`
}

// Entry - a header and its opaque payload
type Entry struct {
	Header
	Payload []byte `json:"payload"`
}

// Object - anything that can be written to a store
//
// Version is the version last observed from the store, zero for an
// object that has never been stored
type Object interface {
	Key() string
	Version() uint64
	Pack() ([]byte, error)
}

// Store - the replicated store client
//
// Get returns fault.ErrKeyNotFound for a key that was never written.
// Set returns the new version, fault.ErrVersionConflict if
// entry.Version does not match the current version, and
// fault.ErrStoreUnavailable (possibly wrapped) if the back end failed.
type Store interface {
	Get(key string) (*Entry, error)
	Set(entry *Entry) (uint64, error)
}

// Lister - stores that can enumerate their keys
type Lister interface {
	Keys() ([]string, error)
}

// Put - pack an object and write it at its observed version
func Put(store Store, object Object) (uint64, error) {
	if nil == store {
		return 0, fault.ErrNilStore
	}
	if "" == object.Key() {
		return 0, fault.ErrEmptyKey
	}
	payload, err := object.Pack()
	if nil != err {
		return 0, err
	}
	entry := &Entry{
		Header: Header{
			Key:     object.Key(),
			Version: object.Version(),
		},
		Payload: payload,
	}
	return store.Set(entry)
}

// Tombstone - mark a key as deleted, keeping the entry retrievable
func Tombstone(store Store, key string, observedVersion uint64) (uint64, error) {
	if nil == store {
		return 0, fault.ErrNilStore
	}
	if "" == key {
		return 0, fault.ErrEmptyKey
	}
	entry := &Entry{
		Header: Header{
			Key:     key,
			Version: observedVersion,
			Deleted: true,
		},
	}
	return store.Set(entry)
}

// copy an entry so callers never share a payload slice with the store
func (e *Entry) clone() *Entry {
	c := *e
	if nil != e.Payload {
		c.Payload = make([]byte, len(e.Payload))
		copy(c.Payload, e.Payload)
	}
	return &c
}
