// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package transaction

import (
	"strings"

	"github.com/bitmark-inc/txmetadata/fault"
)

// TransferState - progress of a transfer through the network
type TransferState byte

// possible transfer states
const (
	Created   = TransferState('C')
	Signed    = TransferState('S')
	Submitted = TransferState('U')
	Pending   = TransferState('P')
	Included  = TransferState('I')
	Failed    = TransferState('F')
	Deleted   = TransferState('D')
)

var transferStateNames = map[TransferState]string{
	Created:   "created",
	Signed:    "signed",
	Submitted: "submitted",
	Pending:   "pending",
	Included:  "included",
	Failed:    "failed",
	Deleted:   "deleted",
}

// TransferStateFromString - parse a state name
func TransferStateFromString(s string) (TransferState, error) {
	s = strings.ToLower(s)
	for state, name := range transferStateNames {
		if name == s {
			return state, nil
		}
	}
	return 0, fault.ErrInvalidTransferState
}

// IsValid - true for the known states
func (state TransferState) IsValid() bool {
	_, ok := transferStateNames[state]
	return ok
}

func (state TransferState) String() string {
	if s, ok := transferStateNames[state]; ok {
		return s
	}
	return "?"
}

// MarshalText - convert state to text
func (state TransferState) MarshalText() ([]byte, error) {
	if !state.IsValid() {
		return nil, fault.ErrInvalidTransferState
	}
	return []byte(state.String()), nil
}

// UnmarshalText - convert text to state
func (state *TransferState) UnmarshalText(s []byte) error {
	parsed, err := TransferStateFromString(string(s))
	if nil != err {
		return err
	}
	*state = parsed
	return nil
}

// Status - user visible status of a transaction
type Status byte

// possible statuses
const (
	StatusPending   = Status('P')
	StatusConfirmed = Status('C')
	StatusComplete  = Status('F')
	StatusInvalid   = Status('X')
)

func (status Status) String() string {
	switch status {
	case StatusPending:
		return "pending"
	case StatusConfirmed:
		return "confirmed"
	case StatusComplete:
		return "complete"
	case StatusInvalid:
		return "invalid"
	default:
		return "?"
	}
}

// MarshalText - convert status to text
func (status Status) MarshalText() ([]byte, error) {
	return []byte(status.String()), nil
}

// DeriveStatus - status from state and confirmations
//
// finalThreshold is the number of confirmations after which a transfer
// can no longer be reversed; a threshold of zero is treated as one
func DeriveStatus(state TransferState, confirmations uint64, finalThreshold uint64) Status {
	switch state {
	case Created, Signed, Submitted, Pending:
		return StatusPending

	case Included:
		if 0 == finalThreshold {
			finalThreshold = 1
		}
		switch {
		case 0 == confirmations:
			return StatusPending
		case confirmations < finalThreshold:
			return StatusConfirmed
		default:
			return StatusComplete
		}

	default:
		return StatusInvalid
	}
}
