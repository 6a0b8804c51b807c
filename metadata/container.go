// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package metadata

import (
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/bitmark-inc/txmetadata/fault"
	"github.com/bitmark-inc/txmetadata/kvstore"
)

// Container - the metadata slot of a single transaction
//
// the first access performs a lookup and the result is kept for the
// life of the container; it is only replaced by a record the container
// has written itself
type Container struct {
	mutex sync.Mutex

	store    kvstore.Store
	key      string
	settings Settings
	cached   *Result
}

// NewContainer - an empty container; nothing is read until first use
func NewContainer(store kvstore.Store, key string, settings Settings) *Container {
	return &Container{
		store:    store,
		key:      key,
		settings: settings,
	}
}

// Key - store key of the record
func (c *Container) Key() string {
	return c.key
}

// Metadata - the stored record, nil if absent or unreadable
func (c *Container) Metadata() *TxMetadata {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	return c.result().Metadata
}

// Result - the full lookup result
func (c *Container) Result() Result {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	return c.result()
}

// CreateMetadata - write a new record unless one already exists
//
// returns true only if a record was written
func (c *Container) CreateMetadata(source Source, params CreateParams) bool {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	return c.create(source, params)
}

// Save - set the comment, creating the record if necessary
func (c *Container) Save(comment string, source Source, params CreateParams) bool {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	r := c.result()
	switch r.Status {
	case Present:
		return c.submit(r.Metadata.WithComment(comment), "save")
	case Absent:
		params.Comment = comment
		return c.create(source, params)
	default:
		log().Warnf("save: %q  skipped, record is %s", c.key, r.Status)
		return false
	}
}

// UpdateFeeRate - rewrite an existing record with a new fee rate
func (c *Container) UpdateFeeRate(feeRate decimal.Decimal) bool {
	if feeRate.IsNegative() {
		log().Warnf("update fee rate: %q  error: %s", c.key, fault.ErrNegativeFeeRate)
		return false
	}

	c.mutex.Lock()
	defer c.mutex.Unlock()

	r := c.result()
	if Present != r.Status {
		return false
	}
	return c.submit(r.Metadata.WithFeeRate(feeRate), "fee rate")
}

// UpdateTokenTag - rewrite an existing record with a new token tag
func (c *Container) UpdateTokenTag(tag string) bool {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	r := c.result()
	if Present != r.Status {
		return false
	}
	return c.submit(r.Metadata.WithTokenTag(tag), "token tag")
}

// lock must be held
func (c *Container) result() Result {
	if nil != c.cached {
		return *c.cached
	}
	r := Lookup(c.store, c.key)
	if Unavailable != r.Status {
		c.cached = &r
	}
	return r
}

// lock must be held
func (c *Container) create(source Source, params CreateParams) bool {
	r := c.result()
	switch r.Status {
	case Absent:
	case Present:
		return false
	default:
		log().Warnf("create: %q  skipped, record is %s", c.key, r.Status)
		return false
	}

	m, err := New(c.key, source, params, c.settings)
	if nil != err {
		log().Warnf("create: %q  error: %s", c.key, err)
		return false
	}

	// a tombstone keeps its version, writes continue from there
	m.Header.Version = r.Header.Version

	return c.submit(m, "create")
}

// write at the observed version and cache what was written
//
// lock must be held
func (c *Container) submit(m *TxMetadata, operation string) bool {
	version, err := kvstore.Put(c.store, m)
	switch {
	case nil == err:
	case fault.IsErrConflict(err):
		log().Warnf("%s: %q  observed version: %d  error: %s", operation, c.key, m.Version(), err)
		return false
	case fault.IsErrUnavailable(err):
		log().Errorf("%s: %q  error: %s", operation, c.key, err)
		return false
	default:
		log().Errorf("%s: %q  unexpected error: %s", operation, c.key, err)
		return false
	}

	stored := m.withHeader(kvstore.Header{
		Key:          c.key,
		Version:      version,
		LastModified: time.Now().UTC(),
		Deleted:      false,
	})
	c.cached = &Result{
		Status:   Present,
		Header:   stored.Header,
		Metadata: stored,
	}

	log().Infof("%s: %q  version: %d", operation, c.key, version)
	return true
}
