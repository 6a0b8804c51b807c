// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fault

import (
	"github.com/pkg/errors"
)

// GenericError - error base
type GenericError string

// to allow for different classes of errors
type ConflictError GenericError
type ExistsError GenericError
type InvalidError GenericError
type NotFoundError GenericError
type ProcessError GenericError
type RecordError GenericError
type UnavailableError GenericError

// common errors - keep in alphabetic order
var (
	ErrConfigurationNotTable  = InvalidError("configuration must return a table")
	ErrCorruptRecord          = RecordError("corrupt record")
	ErrDataDirectory          = InvalidError("data directory is not valid")
	ErrDuplicateField         = RecordError("duplicate field name")
	ErrEmptyKey               = InvalidError("key must not be empty")
	ErrFieldNotFound          = NotFoundError("field not found")
	ErrFieldTypeMismatch      = RecordError("field type mismatch")
	ErrInvalidCurrency        = InvalidError("invalid currency")
	ErrInvalidDirection       = InvalidError("invalid transfer direction")
	ErrInvalidFiatCurrency    = InvalidError("invalid fiat currency code")
	ErrInvalidFieldName       = InvalidError("invalid field name")
	ErrInvalidFileName        = InvalidError("file name must not contain a directory")
	ErrInvalidTransactionHash = InvalidError("invalid transaction hash")
	ErrInvalidTransferState   = InvalidError("invalid transfer state")
	ErrInvalidUTF8            = InvalidError("invalid UTF-8 string")
	ErrKeyNotFound            = NotFoundError("key not found")
	ErrNegativeFeeRate        = InvalidError("fee rate must not be negative")
	ErrNilStore               = InvalidError("store is nil")
	ErrNoData                 = NotFoundError("no data")
	ErrStoreUnavailable       = UnavailableError("store unavailable")
	ErrStringTooLong          = InvalidError("string too long")
	ErrUnknownFieldType       = RecordError("unknown field type")
	ErrVersionConflict        = ConflictError("version conflict")
	ErrZeroSchemaVersion      = InvalidError("schema version must be greater than zero")
)

// Error - the error interface base method
func (e GenericError) Error() string { return string(e) }

// the error interface methods
func (e ConflictError) Error() string    { return string(e) }
func (e ExistsError) Error() string      { return string(e) }
func (e InvalidError) Error() string     { return string(e) }
func (e NotFoundError) Error() string    { return string(e) }
func (e ProcessError) Error() string     { return string(e) }
func (e RecordError) Error() string      { return string(e) }
func (e UnavailableError) Error() string { return string(e) }

// determine the class of an error
func IsErrConflict(e error) bool    { _, ok := errors.Cause(e).(ConflictError); return ok }
func IsErrExists(e error) bool      { _, ok := errors.Cause(e).(ExistsError); return ok }
func IsErrInvalid(e error) bool     { _, ok := errors.Cause(e).(InvalidError); return ok }
func IsErrNotFound(e error) bool    { _, ok := errors.Cause(e).(NotFoundError); return ok }
func IsErrProcess(e error) bool     { _, ok := errors.Cause(e).(ProcessError); return ok }
func IsErrRecord(e error) bool      { _, ok := errors.Cause(e).(RecordError); return ok }
func IsErrUnavailable(e error) bool { _, ok := errors.Cause(e).(UnavailableError); return ok }

// Is - check that the cause of an error is a specific instance
func Is(e error, target error) bool {
	return nil != e && errors.Cause(e) == target
}
