// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package metadata

import (
	"github.com/bitmark-inc/txmetadata/fault"
	"github.com/bitmark-inc/txmetadata/kvstore"
)

// Status - outcome of a lookup
type Status int

// possible lookup outcomes
const (
	Absent Status = iota
	Corrupt
	Unavailable
	Present
)

func (s Status) String() string {
	switch s {
	case Absent:
		return "absent"
	case Corrupt:
		return "corrupt"
	case Unavailable:
		return "unavailable"
	case Present:
		return "present"
	default:
		return "*unknown*"
	}
}

// MarshalText - status as a JSON string
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Result - a tagged lookup result
//
// Metadata is set only for Present.  Header holds whatever the store
// reported, so an Absent result for a tombstone still carries the
// version needed to write the key again.  Err is set for Corrupt and
// Unavailable.
type Result struct {
	Status   Status         `json:"status"`
	Header   kvstore.Header `json:"header"`
	Metadata *TxMetadata    `json:"metadata,omitempty"`
	Err      error          `json:"-"`
}

// Lookup - fetch and decode the record stored under key
//
// never returns an error; failures are reported through the status
func Lookup(store kvstore.Store, key string) Result {
	result := Result{
		Status: Absent,
		Header: kvstore.Header{Key: key},
	}

	if nil == store {
		result.Status = Unavailable
		result.Err = fault.ErrNilStore
		return result
	}

	entry, err := store.Get(key)
	switch {
	case nil == err:
	case fault.IsErrNotFound(err):
		log().Debugf("lookup: %q  not found", key)
		return result
	case fault.IsErrRecord(err):
		log().Warnf("lookup: %q  corrupt entry: %s", key, err)
		result.Status = Corrupt
		result.Err = err
		return result
	case fault.IsErrUnavailable(err):
		log().Errorf("lookup: %q  error: %s", key, err)
		result.Status = Unavailable
		result.Err = err
		return result
	default:
		log().Errorf("lookup: %q  unexpected error: %s", key, err)
		result.Status = Unavailable
		result.Err = err
		return result
	}

	result.Header = entry.Header
	if entry.Deleted {
		log().Debugf("lookup: %q  tombstone at version: %d", key, entry.Version)
		return result
	}

	m, err := FromEntry(entry)
	switch {
	case nil == err:
		result.Status = Present
		result.Metadata = m
	case fault.Is(err, fault.ErrNoData):
		log().Debugf("lookup: %q  no data at version: %d", key, entry.Version)
	default:
		log().Warnf("lookup: %q  corrupt at version: %d  error: %s", key, entry.Version, err)
		result.Status = Corrupt
		result.Err = err
	}
	return result
}
