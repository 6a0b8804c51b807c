// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package objectcodec

import (
	"encoding/binary"
	"math"
	"sort"
	"time"

	"github.com/bitmark-inc/txmetadata/fault"
	"github.com/bitmark-inc/txmetadata/util"
)

// a single decoded value
type value struct {
	fieldType FieldType
	u         uint64
	i         int64
	f         float64
	s         string
	t         time.Time
}

// Fields - the decoded contents of an object, accessed by name
type Fields struct {
	SchemaVersion uint64
	values        map[string]value
	skipped       []string
}

// Decode - split a buffer into its named fields
//
// returns fault.ErrNoData for an empty buffer or a zero schema
// version and fault.ErrCorruptRecord (or another RecordError) for any
// malformed input
func Decode(buffer []byte) (fields *Fields, err error) {

	defer func() {
		if r := recover(); nil != r {
			fields = nil
			err = fault.ErrCorruptRecord
		}
	}()

	if 0 == len(buffer) {
		return nil, fault.ErrNoData
	}

	schemaVersion, n := util.FromVarint64(buffer)
	if 0 == n {
		return nil, fault.ErrCorruptRecord
	}
	if 0 == schemaVersion {
		return nil, fault.ErrNoData
	}

	fields = &Fields{
		SchemaVersion: schemaVersion,
		values:        make(map[string]value),
	}

	for n < len(buffer) {

		// name
		nameLength, nameOffset := util.ClippedVarint64(buffer[n:], 1, maxNameLength)
		if 0 == nameOffset {
			return nil, fault.ErrCorruptRecord
		}
		n += nameOffset
		if n+nameLength+1 > len(buffer) {
			return nil, fault.ErrCorruptRecord
		}
		name := string(buffer[n : n+nameLength])
		n += nameLength

		if _, ok := fields.values[name]; ok || fields.isSkipped(name) {
			return nil, fault.ErrDuplicateField
		}

		// type
		v := value{
			fieldType: FieldType(buffer[n]),
		}
		n += 1

		switch v.fieldType {

		case UintType:
			u, length := util.FromVarint64(buffer[n:])
			if 0 == length {
				return nil, fault.ErrCorruptRecord
			}
			v.u = u
			n += length

		case IntType:
			i, length := util.FromSignedVarint64(buffer[n:])
			if 0 == length {
				return nil, fault.ErrCorruptRecord
			}
			v.i = i
			n += length

		case FloatType:
			if n+floatLength > len(buffer) {
				return nil, fault.ErrCorruptRecord
			}
			v.f = math.Float64frombits(binary.BigEndian.Uint64(buffer[n : n+floatLength]))
			n += floatLength

		case StringType:
			stringLength, stringOffset := util.ClippedVarint64(buffer[n:], 0, maxStringLength)
			if 0 == stringOffset {
				return nil, fault.ErrCorruptRecord
			}
			n += stringOffset
			if n+stringLength > len(buffer) {
				return nil, fault.ErrCorruptRecord
			}
			v.s = string(buffer[n : n+stringLength])
			n += stringLength

		case TimeType:
			seconds, secondsLength := util.FromSignedVarint64(buffer[n:])
			if 0 == secondsLength {
				return nil, fault.ErrCorruptRecord
			}
			n += secondsLength
			nanoseconds, nanosecondsLength := util.FromVarint64(buffer[n:])
			if 0 == nanosecondsLength || nanoseconds >= uint64(time.Second) {
				return nil, fault.ErrCorruptRecord
			}
			n += nanosecondsLength
			v.t = time.Unix(seconds, int64(nanoseconds)).UTC()

		default:
			if v.fieldType < firstSizedType {
				return nil, fault.ErrUnknownFieldType
			}

			// a newer type, skip over it
			skipLength, skipOffset := util.ClippedVarint64(buffer[n:], 0, maxStringLength)
			if 0 == skipOffset {
				return nil, fault.ErrCorruptRecord
			}
			n += skipOffset
			if n+skipLength > len(buffer) {
				return nil, fault.ErrCorruptRecord
			}
			n += skipLength
			fields.skipped = append(fields.skipped, name)
			continue
		}

		fields.values[name] = v
	}

	return fields, nil
}

// Has - check if a field is present
func (f *Fields) Has(name string) bool {
	_, ok := f.values[name]
	return ok
}

// Names - sorted list of all field names present
func (f *Fields) Names() []string {
	names := make([]string, 0, len(f.values))
	for name := range f.values {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Skipped - names of fields whose type this reader does not know
func (f *Fields) Skipped() []string {
	return f.skipped
}

func (f *Fields) isSkipped(name string) bool {
	for _, s := range f.skipped {
		if s == name {
			return true
		}
	}
	return false
}

// Type - the type of a field
func (f *Fields) Type(name string) (FieldType, bool) {
	v, ok := f.values[name]
	return v.fieldType, ok
}

// Uint - fetch an unsigned integer field
func (f *Fields) Uint(name string) (uint64, error) {
	v, err := f.get(name, UintType)
	return v.u, err
}

// Int - fetch a signed integer field
func (f *Fields) Int(name string) (int64, error) {
	v, err := f.get(name, IntType)
	return v.i, err
}

// Float - fetch a double precision field
func (f *Fields) Float(name string) (float64, error) {
	v, err := f.get(name, FloatType)
	return v.f, err
}

// String - fetch a string field
func (f *Fields) String(name string) (string, error) {
	v, err := f.get(name, StringType)
	return v.s, err
}

// Time - fetch a timestamp field
func (f *Fields) Time(name string) (time.Time, error) {
	v, err := f.get(name, TimeType)
	return v.t, err
}

func (f *Fields) get(name string, fieldType FieldType) (value, error) {
	v, ok := f.values[name]
	if !ok {
		return value{}, fault.ErrFieldNotFound
	}
	if v.fieldType != fieldType {
		return value{}, fault.ErrFieldTypeMismatch
	}
	return v, nil
}
