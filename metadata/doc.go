// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package metadata - user annotations attached to blockchain transactions
//
// A TxMetadata record holds the comment, the fiat exchange rate at the
// time of the transfer, the fee rate, the originating device and an
// optional token transfer tag.  It is stored in a kvstore.Store under
// a key derived only from the transaction hash:
//
//   prefix ++ hex(SHA-256(reversed hash bytes))
//
//   prefix = "tkxf-" token style transfer
//            "txn2-" base asset transfer
//
// A Container is attached to each transaction object and decides when
// the record is fetched, created or rewritten.  All store failures stop
// at the container: they are logged and the operation reports that it
// did not happen.
package metadata
