// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package transaction - wallet view of a single blockchain transfer
//
// A transfer moves through these states as it is built, broadcast and
// mined:
//
//   created -> signed -> submitted -> pending -> included
//                                        \          \
//                                         +-> failed  +-> deleted
//
// The user visible status is derived from the state and, once
// included, from the number of confirmations compared with the final
// threshold of the currency:
//
//   created|signed|submitted|pending   pending
//   included, 0 confirmations          pending
//   included, 1..threshold-1           confirmed
//   included, >= threshold             complete
//   failed|deleted                     invalid
//
// Each transaction carries a metadata.Container.  Received transfers
// get a metadata record automatically the first time they are seen
// before becoming complete, so that the exchange rate of the day is
// captured.  Sent transfers are given a record by the sender.
package transaction
