// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package objectcodec

import (
	"encoding/binary"
	"math"
	"time"
	"unicode/utf8"

	"github.com/bitmark-inc/txmetadata/fault"
	"github.com/bitmark-inc/txmetadata/util"
)

// FieldType - type code written in front of each value
type FieldType byte

// enumerate the possible field types
const (
	nullType   = FieldType(iota) // not used
	UintType   = FieldType(iota)
	IntType    = FieldType(iota)
	FloatType  = FieldType(iota)
	StringType = FieldType(iota)
	TimeType   = FieldType(iota)

	// this item must be last
	invalidType = FieldType(iota)
)

// types from here up are written as Varint64(length) ++ bytes so that
// a reader that does not know the type can step over the value
const firstSizedType = FieldType(0x80)

// byte sizes for various fields
const (
	maxNameLength   = 255
	maxStringLength = 65536
	floatLength     = 8
)

// String - the name of a field type
func (t FieldType) String() string {
	switch t {
	case UintType:
		return "uint"
	case IntType:
		return "int"
	case FloatType:
		return "float"
	case StringType:
		return "string"
	case TimeType:
		return "time"
	default:
		return "*unknown*"
	}
}

// Encoder - accumulate the fields of one object
//
// the first error is kept and returned by Bytes, later puts are ignored
type Encoder struct {
	buffer []byte
	names  map[string]struct{}
	err    error
}

// NewEncoder - start an object with the given schema version
func NewEncoder(schemaVersion uint64) *Encoder {
	e := &Encoder{
		buffer: util.ToVarint64(schemaVersion),
		names:  make(map[string]struct{}),
	}
	if 0 == schemaVersion {
		e.err = fault.ErrZeroSchemaVersion
	}
	return e
}

// PutUint - append an unsigned integer field
func (e *Encoder) PutUint(name string, value uint64) *Encoder {
	if e.header(name, UintType) {
		e.buffer = append(e.buffer, util.ToVarint64(value)...)
	}
	return e
}

// PutInt - append a signed integer field
func (e *Encoder) PutInt(name string, value int64) *Encoder {
	if e.header(name, IntType) {
		e.buffer = append(e.buffer, util.ToSignedVarint64(value)...)
	}
	return e
}

// PutFloat - append a double precision field
func (e *Encoder) PutFloat(name string, value float64) *Encoder {
	if e.header(name, FloatType) {
		b := make([]byte, floatLength)
		binary.BigEndian.PutUint64(b, math.Float64bits(value))
		e.buffer = append(e.buffer, b...)
	}
	return e
}

// PutString - append a string field
func (e *Encoder) PutString(name string, value string) *Encoder {
	if len(value) > maxStringLength {
		e.fail(fault.ErrStringTooLong)
		return e
	}
	if !utf8.ValidString(value) {
		e.fail(fault.ErrInvalidUTF8)
		return e
	}
	if e.header(name, StringType) {
		e.buffer = append(e.buffer, util.ToVarint64(uint64(len(value)))...)
		e.buffer = append(e.buffer, value...)
	}
	return e
}

// PutTime - append a timestamp field
//
// the location is not stored, decoding always returns UTC
func (e *Encoder) PutTime(name string, value time.Time) *Encoder {
	if e.header(name, TimeType) {
		e.buffer = append(e.buffer, util.ToSignedVarint64(value.Unix())...)
		e.buffer = append(e.buffer, util.ToVarint64(uint64(value.Nanosecond()))...)
	}
	return e
}

// Bytes - the completed encoding
func (e *Encoder) Bytes() ([]byte, error) {
	if nil != e.err {
		return nil, e.err
	}
	return e.buffer, nil
}

// write name and type, false if the field must be skipped
func (e *Encoder) header(name string, fieldType FieldType) bool {
	if nil != e.err {
		return false
	}
	if 0 == len(name) || len(name) > maxNameLength {
		e.fail(fault.ErrInvalidFieldName)
		return false
	}
	if _, ok := e.names[name]; ok {
		e.fail(fault.ErrDuplicateField)
		return false
	}
	e.names[name] = struct{}{}

	e.buffer = append(e.buffer, util.ToVarint64(uint64(len(name)))...)
	e.buffer = append(e.buffer, name...)
	e.buffer = append(e.buffer, byte(fieldType))
	return true
}

func (e *Encoder) fail(err error) {
	if nil == e.err {
		e.err = err
	}
}
