// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package currency - the crypto currencies a wallet can hold and how
// many confirmations each needs before a transfer is final
package currency

import (
	"fmt"
	"strings"

	"github.com/bitmark-inc/txmetadata/fault"
)

// Currency - currency enumeration
type Currency uint64

// possible currency values
const (
	Nothing      Currency = iota // this must be the first value
	Bitcoin      Currency = iota
	BitcoinCash  Currency = iota
	Litecoin     Currency = iota
	Ethereum     Currency = iota
	maximumValue Currency = iota // this must be the last value
	First        Currency = Nothing + 1
	Last         Currency = maximumValue - 1
	Count        int      = int(Last) // count of currencies
)

// static properties of each currency
type properties struct {
	symbol                  string
	names                   []string
	confirmationsUntilFinal uint64
	tokenCapable            bool
}

var table = map[Currency]properties{
	Bitcoin: {
		symbol:                  "BTC",
		names:                   []string{"btc", "bitcoin"},
		confirmationsUntilFinal: 6,
	},
	BitcoinCash: {
		symbol:                  "BCH",
		names:                   []string{"bch", "bitcoincash", "bitcoin-cash"},
		confirmationsUntilFinal: 6,
	},
	Litecoin: {
		symbol:                  "LTC",
		names:                   []string{"ltc", "litecoin"},
		confirmationsUntilFinal: 12,
	},
	Ethereum: {
		symbol:                  "ETH",
		names:                   []string{"eth", "ethereum"},
		confirmationsUntilFinal: 12,
		tokenCapable:            true,
	},
}

// FromString - convert a symbol or name to a currency
func FromString(in string) (Currency, error) {
	s := strings.ToLower(in)
	for c, p := range table {
		for _, name := range p.names {
			if name == s {
				return c, nil
			}
		}
	}
	return Nothing, fault.ErrInvalidCurrency
}

// String - convert a currency to its symbol
func (currency Currency) String() string {
	if p, ok := table[currency]; ok {
		return p.symbol
	}
	return ""
}

// GoString - convert both enum value and symbol, for debugging
func (currency Currency) GoString() string {
	return fmt.Sprintf("<Currency#%d:%q>", currency, currency.String())
}

// Scan - convert a currency string
func (currency *Currency) Scan(state fmt.ScanState, verb rune) error {
	token, err := state.Token(true, func(c rune) bool {
		if c >= '0' && c <= '9' {
			return true
		}
		if c >= 'A' && c <= 'Z' {
			return true
		}
		if c >= 'a' && c <= 'z' {
			return true
		}
		return '-' == c
	})
	if nil != err {
		return err
	}
	parsed, err := FromString(string(token))
	if nil != err {
		return err
	}

	*currency = parsed
	return nil
}

// IsValid - valid currency if in range of First to Last
// Nothing is not considered as valid
func (currency Currency) IsValid() bool {
	return currency >= First && currency <= Last
}

// ConfirmationsUntilFinal - confirmations after which a transfer is
// considered irreversible
func (currency Currency) ConfirmationsUntilFinal() uint64 {
	return table[currency].confirmationsUntilFinal
}

// CanCarryTokens - whether transfers of this currency may move tokens
func (currency Currency) CanCarryTokens() bool {
	return table[currency].tokenCapable
}
