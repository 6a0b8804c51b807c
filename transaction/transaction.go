// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package transaction

import (
	"strings"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/bitmark-inc/txmetadata/currency"
	"github.com/bitmark-inc/txmetadata/fault"
	"github.com/bitmark-inc/txmetadata/kvstore"
	"github.com/bitmark-inc/txmetadata/metadata"
)

// Direction - which side of the transfer this wallet is on
type Direction byte

// possible directions
const (
	Sent     = Direction('S')
	Received = Direction('R')
)

func (direction Direction) String() string {
	switch direction {
	case Sent:
		return "sent"
	case Received:
		return "received"
	default:
		return "?"
	}
}

// DirectionFromString - parse "sent" or "received"
func DirectionFromString(s string) (Direction, error) {
	switch strings.ToLower(s) {
	case "sent", "send", "s":
		return Sent, nil
	case "received", "receive", "r":
		return Received, nil
	default:
		return 0, fault.ErrInvalidDirection
	}
}

// MarshalText - convert direction to text
func (direction Direction) MarshalText() ([]byte, error) {
	return []byte(direction.String()), nil
}

// Info - the chain facts of a transfer
type Info struct {
	Hash          string            `json:"hash"`
	Currency      currency.Currency `json:"currency"`
	Token         bool              `json:"token"`
	Direction     Direction         `json:"direction"`
	State         TransferState     `json:"state"`
	Confirmations uint64            `json:"confirmations"`
	BlockHeight   uint64            `json:"blockHeight"`
	Size          uint64            `json:"size"`
	FeeRate       decimal.Decimal   `json:"feeRate"`
}

// Transaction - a transfer together with its metadata slot
type Transaction struct {
	mutex sync.RWMutex

	info      Info
	key       string
	container *metadata.Container
}

// New - attach a transfer to the metadata store
func New(info Info, store kvstore.Store, settings metadata.Settings) (*Transaction, error) {
	if !info.Currency.IsValid() {
		return nil, fault.ErrInvalidCurrency
	}
	if info.Token && !info.Currency.CanCarryTokens() {
		return nil, fault.ErrInvalidCurrency
	}
	if !info.State.IsValid() {
		return nil, fault.ErrInvalidTransferState
	}
	if Sent != info.Direction && Received != info.Direction {
		return nil, fault.ErrInvalidDirection
	}

	key, err := metadata.MakeKey(info.Hash, info.Token)
	if nil != err {
		return nil, err
	}

	return &Transaction{
		info:      info,
		key:       key,
		container: metadata.NewContainer(store, key, settings),
	}, nil
}

// Info - copy of the current chain facts
func (t *Transaction) Info() Info {
	t.mutex.RLock()
	defer t.mutex.RUnlock()
	return t.info
}

// MetadataKey - store key of the metadata record
func (t *Transaction) MetadataKey() string {
	return t.key
}

// Container - the metadata slot
func (t *Transaction) Container() *metadata.Container {
	return t.container
}

// Metadata - the stored record, nil if there is none
func (t *Transaction) Metadata() *metadata.TxMetadata {
	return t.container.Metadata()
}

// Status - derived user visible status
func (t *Transaction) Status() Status {
	t.mutex.RLock()
	defer t.mutex.RUnlock()
	return t.status()
}

func (t *Transaction) status() Status {
	return DeriveStatus(t.info.State, t.info.Confirmations, t.info.Currency.ConfirmationsUntilFinal())
}

// ConfirmedBlockHeight - height of the including block once it has at
// least one confirmation
func (t *Transaction) ConfirmedBlockHeight() uint64 {
	t.mutex.RLock()
	defer t.mutex.RUnlock()
	if Included == t.info.State && t.info.Confirmations > 0 {
		return t.info.BlockHeight
	}
	return 0
}

// ByteSize - serialised size, zero if not known
func (t *Transaction) ByteSize() uint64 {
	t.mutex.RLock()
	defer t.mutex.RUnlock()
	return t.info.Size
}

// Update - record new chain facts then create metadata if due
//
// returns true if a metadata record was written
func (t *Transaction) Update(state TransferState, confirmations uint64, blockHeight uint64, rate metadata.Rate) (bool, error) {
	if !state.IsValid() {
		return false, fault.ErrInvalidTransferState
	}

	t.mutex.Lock()
	t.info.State = state
	t.info.Confirmations = confirmations
	t.info.BlockHeight = blockHeight
	t.mutex.Unlock()

	return t.AutoCreateMetadata(rate), nil
}

// AutoCreateMetadata - create a record for a received transfer that
// is not yet complete
//
// the rate given is the current rate, which is only a fair record of
// the value while the transfer is still settling
func (t *Transaction) AutoCreateMetadata(rate metadata.Rate) bool {
	t.mutex.RLock()
	direction := t.info.Direction
	status := t.status()
	feeRate := t.info.FeeRate
	t.mutex.RUnlock()

	if Received != direction {
		return false
	}
	if StatusComplete == status || StatusInvalid == status {
		return false
	}

	return t.container.CreateMetadata(t, metadata.CreateParams{
		Rate:    rate,
		FeeRate: feeRate,
	})
}

// CreateMetadata - explicit creation, as done by the sender
func (t *Transaction) CreateMetadata(params metadata.CreateParams) bool {
	if params.FeeRate.IsZero() {
		params.FeeRate = t.Info().FeeRate
	}
	return t.container.CreateMetadata(t, params)
}

// SaveComment - set the user comment, creating the record if needed
func (t *Transaction) SaveComment(comment string, rate metadata.Rate) bool {
	return t.container.Save(comment, t, metadata.CreateParams{
		Rate:    rate,
		FeeRate: t.Info().FeeRate,
	})
}
