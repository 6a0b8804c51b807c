// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package kvstore - versioned key/value object store
//
// Every stored entry carries a version that the store increments on
// each successful write, a last modified time and a deleted
// (tombstone) flag.  A write must present the version it last
// observed for the key (zero for a key never seen) and is rejected
// with fault.ErrVersionConflict if the store has moved on.
//
// A tombstoned entry is still returned by Get so that replication can
// see the deletion; callers treat it as absent.
//
// LevelDB layout:
//
//   0x00 ++ "VERSION"          - database version (big endian uint32)
//   M ++ key                   - metadata entry
//                                data: version(8) ++ unix nanoseconds(8) ++ deleted(1) ++ payload
//
// Notes:
// 1. ++      = concatenation of byte data
// 2. version = big endian uint64, never zero for a stored entry
// 3. payload = opaque bytes, normally an objectcodec encoding
package kvstore
