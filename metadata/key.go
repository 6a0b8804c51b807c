// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package metadata

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"

	"github.com/btcsuite/btcd/chaincfg/chainhash"

	"github.com/bitmark-inc/txmetadata/fault"
)

// key prefixes
const (
	TokenKeyPrefix = "tkxf-"
	BaseKeyPrefix  = "txn2-"
)

// MakeKey - derive the store key for a transaction hash
//
// the hash is in the usual display form, i.e. byte reversed, and
// chainhash reverses it back before the digest is taken; existing
// stored keys depend on this order so it must not change
func MakeKey(transactionHash string, token bool) (string, error) {
	s := strings.TrimPrefix(strings.TrimPrefix(transactionHash, "0x"), "0X")
	if chainhash.MaxHashStringSize != len(s) {
		return "", fault.ErrInvalidTransactionHash
	}

	hash, err := chainhash.NewHashFromStr(s)
	if nil != err {
		return "", fault.ErrInvalidTransactionHash
	}

	digest := sha256.Sum256(hash[:])

	prefix := BaseKeyPrefix
	if token {
		prefix = TokenKeyPrefix
	}
	return prefix + hex.EncodeToString(digest[:]), nil
}

// IsTokenKey - true if the key belongs to a token style transfer
func IsTokenKey(key string) bool {
	return strings.HasPrefix(key, TokenKeyPrefix)
}
