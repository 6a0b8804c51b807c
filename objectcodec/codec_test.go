// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package objectcodec_test

import (
	"bytes"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/txmetadata/fault"
	"github.com/bitmark-inc/txmetadata/objectcodec"
)

func TestRoundTrip(t *testing.T) {
	created := time.Date(2019, time.March, 14, 15, 9, 26, 535897932, time.UTC)

	packed, err := objectcodec.NewEncoder(3).
		PutUint("height", 612345).
		PutInt("offset", -42).
		PutFloat("ratio", 0.1).
		PutString("comment", "coffee ☕").
		PutString("empty", "").
		PutTime("created", created).
		Bytes()
	assert.Nil(t, err, "encode error")

	fields, err := objectcodec.Decode(packed)
	assert.Nil(t, err, "decode error")
	assert.Equal(t, uint64(3), fields.SchemaVersion, "schema version")
	assert.Equal(t, []string{"comment", "created", "empty", "height", "offset", "ratio"}, fields.Names(), "names")

	height, err := fields.Uint("height")
	assert.Nil(t, err)
	assert.Equal(t, uint64(612345), height, "height")

	offset, err := fields.Int("offset")
	assert.Nil(t, err)
	assert.Equal(t, int64(-42), offset, "offset")

	ratio, err := fields.Float("ratio")
	assert.Nil(t, err)
	assert.Equal(t, 0.1, ratio, "ratio")

	comment, err := fields.String("comment")
	assert.Nil(t, err)
	assert.Equal(t, "coffee ☕", comment, "comment")

	empty, err := fields.String("empty")
	assert.Nil(t, err)
	assert.Equal(t, "", empty, "empty")

	when, err := fields.Time("created")
	assert.Nil(t, err)
	assert.True(t, created.Equal(when), "created: %s  expected: %s", when, created)
}

func TestSpecialFloats(t *testing.T) {
	values := []float64{0, -0.5, math.MaxFloat64, math.SmallestNonzeroFloat64, math.Inf(1)}
	for i, v := range values {
		packed, err := objectcodec.NewEncoder(1).PutFloat("f", v).Bytes()
		if nil != err {
			t.Fatalf("%d: encode error: %s", i, err)
		}
		fields, err := objectcodec.Decode(packed)
		if nil != err {
			t.Fatalf("%d: decode error: %s", i, err)
		}
		f, _ := fields.Float("f")
		if f != v {
			t.Errorf("%d: float: %g  expected: %g", i, f, v)
		}
	}
}

func TestNoData(t *testing.T) {
	tests := [][]byte{
		nil,
		{},
		{0x00},
		{0x00, 0x01, 'a', byte(objectcodec.UintType), 0x01},
	}
	for i, buffer := range tests {
		fields, err := objectcodec.Decode(buffer)
		if fault.ErrNoData != err {
			t.Errorf("%d: Decode(%x) error: %v  expected: %v", i, buffer, err, fault.ErrNoData)
		}
		if nil != fields {
			t.Errorf("%d: Decode(%x) returned fields: %v", i, buffer, fields)
		}
	}
}

func TestCorrupt(t *testing.T) {
	good, err := objectcodec.NewEncoder(1).
		PutString("comment", "hello").
		PutUint("size", 250).
		PutTime("created", time.Unix(1500000000, 0)).
		Bytes()
	if nil != err {
		t.Fatalf("encode error: %s", err)
	}

	// every strict prefix longer than the version either ends on a field
	// boundary or must be rejected
	for i := 2; i < len(good); i += 1 {
		fields, err := objectcodec.Decode(good[:i])
		if nil == err {
			continue
		}
		if !fault.IsErrRecord(err) {
			t.Errorf("%d: truncated error: %v  is not a record error", i, err)
		}
		if nil != fields {
			t.Errorf("%d: truncated returned fields", i)
		}
	}

	tests := []struct {
		buffer []byte
		err    error
	}{
		{[]byte{0x80}, fault.ErrCorruptRecord},
		{[]byte{0x01, 0x00}, fault.ErrCorruptRecord},
		{[]byte{0x01, 0x05, 'a', 'b'}, fault.ErrCorruptRecord},
		{[]byte{0x01, 0x01, 'a', 0x09, 0x00}, fault.ErrUnknownFieldType},
		{[]byte{0x01, 0x01, 'a', 0x00}, fault.ErrUnknownFieldType},
		{[]byte{0x01, 0x01, 'a', byte(objectcodec.StringType), 0x10, 'x'}, fault.ErrCorruptRecord},
		{[]byte{0x01, 0x01, 'a', byte(objectcodec.FloatType), 0x01, 0x02}, fault.ErrCorruptRecord},
		{[]byte{0x01, 0x01, 'a', byte(objectcodec.UintType), 0x01, 0x01, 'a', byte(objectcodec.UintType), 0x02}, fault.ErrDuplicateField},
		{[]byte{0x01, 0x01, 'a', 0x7f, 0x00}, fault.ErrUnknownFieldType},
		{[]byte{0x01, 0x01, 'a', 0x81}, fault.ErrCorruptRecord},
		{[]byte{0x01, 0x01, 'a', 0x81, 0x05, 'x'}, fault.ErrCorruptRecord},
		{[]byte{0x01, 0x01, 'a', 0x81, 0x00, 0x01, 'a', byte(objectcodec.UintType), 0x02}, fault.ErrDuplicateField},
	}
	for i, item := range tests {
		_, err := objectcodec.Decode(item.buffer)
		if item.err != err {
			t.Errorf("%d: Decode(%x) error: %v  expected: %v", i, item.buffer, err, item.err)
		}
	}
}

func TestUnknownFieldsIgnored(t *testing.T) {
	newer, err := objectcodec.NewEncoder(2).
		PutString("comment", "kept").
		PutFloat("futureField", 1.5).
		PutString("anotherFutureField", "x").
		Bytes()
	if nil != err {
		t.Fatalf("encode error: %s", err)
	}

	fields, err := objectcodec.Decode(newer)
	assert.Nil(t, err, "decode error")

	comment, err := fields.String("comment")
	assert.Nil(t, err)
	assert.Equal(t, "kept", comment, "comment")

	_, err = fields.Uint("missing")
	assert.Equal(t, fault.ErrFieldNotFound, err, "missing field")

	_, err = fields.Uint("comment")
	assert.Equal(t, fault.ErrFieldTypeMismatch, err, "wrong type")

	fieldType, ok := fields.Type("futureField")
	assert.True(t, ok)
	assert.Equal(t, objectcodec.FloatType, fieldType)
}

// a field of a type added by a newer writer is stepped over
func TestUnknownSizedTypeSkipped(t *testing.T) {
	known, err := objectcodec.NewEncoder(3).
		PutString("comment", "kept").
		Bytes()
	if nil != err {
		t.Fatalf("encode error: %s", err)
	}

	buffer := append([]byte{}, known...)
	buffer = append(buffer, 0x06, 'f', 'u', 't', 'u', 'r', 'e', 0x90, 0x03, 0xde, 0xad, 0xbf)
	buffer = append(buffer, 0x04, 's', 'i', 'z', 'e', byte(objectcodec.UintType), 0x2a)

	fields, err := objectcodec.Decode(buffer)
	if !assert.Nil(t, err, "decode error") {
		return
	}
	assert.Equal(t, uint64(3), fields.SchemaVersion)

	comment, err := fields.String("comment")
	assert.Nil(t, err)
	assert.Equal(t, "kept", comment)

	size, err := fields.Uint("size")
	assert.Nil(t, err, "field after the skipped one")
	assert.Equal(t, uint64(42), size)

	assert.False(t, fields.Has("future"), "skipped field present")
	assert.Equal(t, []string{"future"}, fields.Skipped())
	assert.Equal(t, []string{"comment", "size"}, fields.Names())
}

func TestEncoderErrors(t *testing.T) {
	tests := []struct {
		encoder *objectcodec.Encoder
		err     error
	}{
		{objectcodec.NewEncoder(0).PutUint("a", 1), fault.ErrZeroSchemaVersion},
		{objectcodec.NewEncoder(1).PutUint("", 1), fault.ErrInvalidFieldName},
		{objectcodec.NewEncoder(1).PutUint("a", 1).PutString("a", "x"), fault.ErrDuplicateField},
		{objectcodec.NewEncoder(1).PutString("s", "\xff\xfe"), fault.ErrInvalidUTF8},
		{objectcodec.NewEncoder(1).PutString("s", string(bytes.Repeat([]byte{'z'}, 65537))), fault.ErrStringTooLong},
	}
	for i, item := range tests {
		b, err := item.encoder.Bytes()
		if item.err != err {
			t.Errorf("%d: error: %v  expected: %v", i, err, item.err)
		}
		if nil != b {
			t.Errorf("%d: unexpected bytes: %x", i, b)
		}
	}
}
