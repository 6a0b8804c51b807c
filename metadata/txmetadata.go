// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package metadata

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/bitmark-inc/txmetadata/fault"
	"github.com/bitmark-inc/txmetadata/kvstore"
	"github.com/bitmark-inc/txmetadata/objectcodec"
)

// current encoding, written on every Pack
const currentSchemaVersion = 1

// field names in the encoded object
const (
	blockHeightField = "blockHeight"
	rateField        = "exchangeRate"
	rateCodeField    = "exchangeRateCode"
	feeRateField     = "feeRate"
	sizeField        = "size"
	createdField     = "createdAt"
	deviceIdField    = "deviceId"
	commentField     = "comment"
	tokenTagField    = "tokenTag"
)

// TxMetadata - the annotation record for one transaction
//
// values are treated as immutable once built; the With… methods
// return modified copies
type TxMetadata struct {
	Header           kvstore.Header  `json:"header"`
	SchemaVersion    uint64          `json:"schemaVersion"`
	BlockHeight      uint64          `json:"blockHeight"`      // height when created, 0 if unconfirmed
	ExchangeRate     decimal.Decimal `json:"exchangeRate"`     // fiat per unit
	ExchangeRateCode string          `json:"exchangeRateCode"` // e.g. "USD"
	FeeRate          decimal.Decimal `json:"feeRate"`
	Size             uint64          `json:"size"` // bytes, 0 if unknown
	CreatedAt        time.Time       `json:"createdAt"`
	DeviceId         string          `json:"deviceId"`
	Comment          string          `json:"comment"`
	TokenTag         string          `json:"tokenTag,omitempty"`
}

// Rate - an exchange rate snapshot
type Rate struct {
	Value decimal.Decimal `json:"value"`
	Code  string          `json:"code"`
}

// Source - the transaction facts copied into a new record
type Source interface {
	ConfirmedBlockHeight() uint64 // 0 while unconfirmed
	ByteSize() uint64             // 0 if unknown
}

// CreateParams - caller supplied values for a new record
type CreateParams struct {
	Rate     Rate
	FeeRate  decimal.Decimal
	Comment  string
	TokenTag string
}

// Settings - per wallet values that used to be global state
type Settings struct {
	DeviceId string
	FiatCode string // used when a Rate has no code
}

// New - build a fresh, never stored record
//
// this does not touch any store
func New(key string, source Source, params CreateParams, settings Settings) (*TxMetadata, error) {
	if "" == key {
		return nil, fault.ErrEmptyKey
	}
	if params.FeeRate.IsNegative() {
		return nil, fault.ErrNegativeFeeRate
	}

	code := params.Rate.Code
	if "" == code {
		code = settings.FiatCode
	}

	m := &TxMetadata{
		Header: kvstore.Header{
			Key:     key,
			Version: 0,
			Deleted: false,
		},
		SchemaVersion:    currentSchemaVersion,
		ExchangeRate:     params.Rate.Value,
		ExchangeRateCode: code,
		FeeRate:          params.FeeRate,
		CreatedAt:        time.Now().UTC(),
		DeviceId:         settings.DeviceId,
		Comment:          params.Comment,
		TokenTag:         params.TokenTag,
	}
	if nil != source {
		m.BlockHeight = source.ConfirmedBlockHeight()
		m.Size = source.ByteSize()
	}
	return m, nil
}

// Key - store key
func (m *TxMetadata) Key() string {
	return m.Header.Key
}

// Version - version last observed from the store
func (m *TxMetadata) Version() uint64 {
	return m.Header.Version
}

// Pack - encode all fields
func (m *TxMetadata) Pack() ([]byte, error) {
	return objectcodec.NewEncoder(currentSchemaVersion).
		PutUint(blockHeightField, m.BlockHeight).
		PutString(rateField, m.ExchangeRate.String()).
		PutString(rateCodeField, m.ExchangeRateCode).
		PutString(feeRateField, m.FeeRate.String()).
		PutUint(sizeField, m.Size).
		PutTime(createdField, m.CreatedAt).
		PutString(deviceIdField, m.DeviceId).
		PutString(commentField, m.Comment).
		PutString(tokenTagField, m.TokenTag).
		Bytes()
}

// FromEntry - decode a fetched entry into a new record
//
// an empty payload or a zero schema version gives fault.ErrNoData;
// malformed data gives a fault.RecordError
func FromEntry(entry *kvstore.Entry) (*TxMetadata, error) {
	if nil == entry {
		return nil, fault.ErrNoData
	}
	m, err := Unpack(entry.Payload)
	if nil != err {
		return nil, err
	}
	m.Header = entry.Header
	return m, nil
}

// Unpack - decode payload bytes, the header is left empty
//
// fields missing from the payload keep their zero value so records
// written by older versions still load
func Unpack(payload []byte) (*TxMetadata, error) {
	fields, err := objectcodec.Decode(payload)
	if nil != err {
		return nil, err
	}

	m := &TxMetadata{
		SchemaVersion: fields.SchemaVersion,
	}

	r := reader{fields: fields}
	m.BlockHeight = r.uint(blockHeightField)
	m.ExchangeRate = r.decimal(rateField)
	m.ExchangeRateCode = r.string(rateCodeField)
	m.FeeRate = r.decimal(feeRateField)
	m.Size = r.uint(sizeField)
	m.CreatedAt = r.time(createdField)
	m.DeviceId = r.string(deviceIdField)
	m.Comment = r.string(commentField)
	m.TokenTag = r.string(tokenTagField)

	if nil != r.err {
		return nil, r.err
	}
	return m, nil
}

// WithComment - copy with a new comment
func (m *TxMetadata) WithComment(comment string) *TxMetadata {
	c := *m
	c.Comment = comment
	return &c
}

// WithFeeRate - copy with a new fee rate
func (m *TxMetadata) WithFeeRate(feeRate decimal.Decimal) *TxMetadata {
	c := *m
	c.FeeRate = feeRate
	return &c
}

// WithTokenTag - copy with a new token transfer tag
func (m *TxMetadata) WithTokenTag(tag string) *TxMetadata {
	c := *m
	c.TokenTag = tag
	return &c
}

// withHeader - copy carrying the header the store reported
func (m *TxMetadata) withHeader(header kvstore.Header) *TxMetadata {
	c := *m
	c.Header = header
	return &c
}

// reads optional fields, keeping the first hard error
type reader struct {
	fields *objectcodec.Fields
	err    error
}

// missing fields are allowed, wrong types are not
func (r *reader) check(err error) bool {
	if nil == err {
		return true
	}
	if !fault.Is(err, fault.ErrFieldNotFound) && nil == r.err {
		r.err = err
	}
	return false
}

func (r *reader) uint(name string) uint64 {
	u, err := r.fields.Uint(name)
	if !r.check(err) {
		return 0
	}
	return u
}

func (r *reader) string(name string) string {
	s, err := r.fields.String(name)
	if !r.check(err) {
		return ""
	}
	return s
}

func (r *reader) time(name string) time.Time {
	t, err := r.fields.Time(name)
	if !r.check(err) {
		return time.Time{}
	}
	return t
}

func (r *reader) decimal(name string) decimal.Decimal {
	s, err := r.fields.String(name)
	if !r.check(err) {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(s)
	if nil != err {
		r.check(fault.ErrCorruptRecord)
		return decimal.Zero
	}
	return d
}
