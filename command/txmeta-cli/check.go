// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"os"
	"path/filepath"

	"github.com/shopspring/decimal"

	"github.com/bitmark-inc/txmetadata/currency"
	"github.com/bitmark-inc/txmetadata/fault"
	"github.com/bitmark-inc/txmetadata/transaction"
	"github.com/bitmark-inc/txmetadata/util"
)

var (
	ErrConfigFileNotFound = fault.NotFoundError("config file not found")
	ErrInvalidDecimal     = fault.InvalidError("invalid decimal value")
	ErrRequiredConfigFile = fault.InvalidError("config file is required unless --memory is given")
	ErrRequiredCurrency   = fault.InvalidError("currency is required")
	ErrRequiredHash       = fault.InvalidError("transaction hash is required")
	ErrRequiredState      = fault.InvalidError("transfer state is required")
)

// config is required
func checkConfigFile(file string) (string, error) {
	if "" == file {
		return "", ErrRequiredConfigFile
	}

	file, err := filepath.Abs(os.ExpandEnv(file))
	if nil != err {
		return "", err
	}
	if !util.EnsureFileExists(file) {
		return "", ErrConfigFileNotFound
	}
	return file, nil
}

// hash is required
func checkHash(hash string) (string, error) {
	if "" == hash {
		return "", ErrRequiredHash
	}
	return hash, nil
}

// currency is required and must be known
func checkCurrency(s string) (currency.Currency, error) {
	if "" == s {
		return currency.Nothing, ErrRequiredCurrency
	}
	return currency.FromString(s)
}

// state is required and must be known
func checkState(s string) (transaction.TransferState, error) {
	if "" == s {
		return 0, ErrRequiredState
	}
	return transaction.TransferStateFromString(s)
}

// blank is zero
func checkDecimal(s string) (decimal.Decimal, error) {
	if "" == s {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(s)
	if nil != err {
		return decimal.Zero, ErrInvalidDecimal
	}
	return d, nil
}
