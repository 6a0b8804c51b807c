// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package objectcodec - self describing versioned object encoding
//
// An encoded object is:
//
//   Varint64(schema version) ++ field ++ field ++ …
//
// and each field is:
//
//   Varint64(name length) ++ name ++ type(1 byte) ++ value
//
// values by type:
//
//   uint    Varint64
//   int     zig-zag Varint64
//   float   8 bytes big endian IEEE-754 double
//   string  Varint64(length) ++ UTF-8 bytes
//   time    zig-zag Varint64(Unix seconds) ++ Varint64(nanoseconds)
//   0x80+   Varint64(length) ++ bytes
//
// Type codes from 0x80 up are reserved for values carrying their own
// length. A reader skips such a field when it does not know the type,
// reporting its name through Fields.Skipped. An unknown type below 0x80
// cannot be skipped and the object is rejected with
// fault.ErrUnknownFieldType.
//
// A schema version of zero (or an empty buffer) is "no data" and
// decodes to fault.ErrNoData rather than to a zero valued object.
// Readers look fields up by name, so fields added by a newer writer
// are ignored by an older reader.
package objectcodec
