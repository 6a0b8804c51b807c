// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package transaction_test

import (
	"os"
	"reflect"
	"testing"

	"github.com/bitmark-inc/logger"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/txmetadata/currency"
	"github.com/bitmark-inc/txmetadata/fault"
	"github.com/bitmark-inc/txmetadata/kvstore"
	"github.com/bitmark-inc/txmetadata/metadata"
	"github.com/bitmark-inc/txmetadata/transaction"
)

const (
	testingDirName = "testing"
	testHash       = "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855"
)

var (
	testSettings = metadata.Settings{
		DeviceId: "device-two",
		FiatCode: "USD",
	}
	rate100 = metadata.Rate{
		Value: decimal.RequireFromString("100.0"),
		Code:  "USD",
	}
)

func setupTestLogger() {
	removeFiles()
	_ = os.Mkdir(testingDirName, 0700)

	logging := logger.Configuration{
		Directory: testingDirName,
		File:      "testing.log",
		Size:      1048576,
		Count:     10,
		Console:   false,
		Levels: map[string]string{
			logger.DefaultTag: "critical",
		},
	}

	// start logging
	_ = logger.Initialise(logging)
}

func removeFiles() {
	_ = os.RemoveAll(testingDirName)
}

func TestMain(m *testing.M) {
	setupTestLogger()
	rc := m.Run()
	logger.Finalise()
	removeFiles()
	os.Exit(rc)
}

func receivedInfo() transaction.Info {
	return transaction.Info{
		Hash:      testHash,
		Currency:  currency.Bitcoin,
		Direction: transaction.Received,
		State:     transaction.Pending,
		Size:      225,
		FeeRate:   decimal.NewFromInt(20),
	}
}

func TestNewInvalid(t *testing.T) {
	store := kvstore.NewMemory()

	tests := []struct {
		modify func(info *transaction.Info)
		err    error
	}{
		{func(info *transaction.Info) { info.Currency = currency.Nothing }, fault.ErrInvalidCurrency},
		{func(info *transaction.Info) { info.Token = true }, fault.ErrInvalidCurrency},
		{func(info *transaction.Info) { info.State = transaction.TransferState(0) }, fault.ErrInvalidTransferState},
		{func(info *transaction.Info) { info.Direction = transaction.Direction(0) }, fault.ErrInvalidDirection},
		{func(info *transaction.Info) { info.Hash = "1234" }, fault.ErrInvalidTransactionHash},
	}

	for i, item := range tests {
		info := receivedInfo()
		item.modify(&info)
		_, err := transaction.New(info, store, testSettings)
		if item.err != err {
			t.Errorf("%d: error: %v  expected: %s", i, err, item.err)
		}
	}
}

func TestTokenKey(t *testing.T) {
	info := receivedInfo()
	info.Currency = currency.Ethereum
	info.Token = true

	tx, err := transaction.New(info, kvstore.NewMemory(), testSettings)
	assert.Nil(t, err, "new")
	assert.True(t, metadata.IsTokenKey(tx.MetadataKey()), "key: %s", tx.MetadataKey())
}

func TestReceivedAutoCreate(t *testing.T) {
	store := kvstore.NewMemory()

	tx, err := transaction.New(receivedInfo(), store, testSettings)
	assert.Nil(t, err, "new")

	written, err := tx.Update(transaction.Included, 0, 0, rate100)
	assert.Nil(t, err, "update")
	assert.True(t, written, "metadata written")
	assert.Equal(t, transaction.StatusPending, tx.Status())

	m := tx.Metadata()
	if !assert.NotNil(t, m, "metadata") {
		return
	}
	assert.True(t, decimal.NewFromInt(100).Equal(m.ExchangeRate), "rate: %s", m.ExchangeRate)
	assert.Equal(t, "USD", m.ExchangeRateCode)
	assert.Equal(t, uint64(0), m.BlockHeight, "unconfirmed height")
	assert.Equal(t, uint64(225), m.Size)
	assert.True(t, decimal.NewFromInt(20).Equal(m.FeeRate))
	assert.Equal(t, "device-two", m.DeviceId)
	assert.Equal(t, "", m.Comment)

	// later updates keep the first record
	written, err = tx.Update(transaction.Included, 3, 1000, metadata.Rate{Value: decimal.NewFromInt(999), Code: "USD"})
	assert.Nil(t, err, "second update")
	assert.False(t, written, "second write")
	assert.Equal(t, transaction.StatusConfirmed, tx.Status())
	assert.True(t, decimal.NewFromInt(100).Equal(tx.Metadata().ExchangeRate), "rate changed")
	assert.Equal(t, uint64(1), store.Stats().Sets.Uint64(), "writes")

	// reaching the final threshold does not touch the stored record
	written, err = tx.Update(transaction.Included, 6, 1003, metadata.Rate{Value: decimal.NewFromInt(999), Code: "USD"})
	assert.Nil(t, err, "final update")
	assert.False(t, written, "write at threshold")
	assert.Equal(t, transaction.StatusComplete, tx.Status())
	assert.True(t, decimal.NewFromInt(100).Equal(tx.Metadata().ExchangeRate), "rate changed at threshold")
	assert.Equal(t, uint64(0), tx.Metadata().BlockHeight, "height changed at threshold")
	assert.Equal(t, uint64(1), store.Stats().Sets.Uint64(), "writes at threshold")

	stored := metadata.NewContainer(store, tx.MetadataKey(), testSettings).Metadata()
	if assert.NotNil(t, stored, "stored metadata") {
		assert.True(t, decimal.NewFromInt(100).Equal(stored.ExchangeRate), "stored rate")
		assert.Equal(t, uint64(1), stored.Version(), "stored version")
	}
}

func TestReceivedConfirmedHeight(t *testing.T) {
	tx, err := transaction.New(receivedInfo(), kvstore.NewMemory(), testSettings)
	assert.Nil(t, err, "new")

	written, err := tx.Update(transaction.Included, 2, 654321, rate100)
	assert.Nil(t, err, "update")
	assert.True(t, written, "metadata written")
	assert.Equal(t, uint64(654321), tx.Metadata().BlockHeight)
}

func TestNoAutoCreate(t *testing.T) {

	tests := []struct {
		direction     transaction.Direction
		state         transaction.TransferState
		confirmations uint64
	}{
		{transaction.Received, transaction.Included, 6},
		{transaction.Received, transaction.Included, 60},
		{transaction.Received, transaction.Failed, 0},
		{transaction.Received, transaction.Deleted, 0},
		{transaction.Sent, transaction.Pending, 0},
		{transaction.Sent, transaction.Included, 1},
	}

	for i, item := range tests {
		store := kvstore.NewMemory()
		info := receivedInfo()
		info.Direction = item.direction

		tx, err := transaction.New(info, store, testSettings)
		if nil != err {
			t.Fatalf("%d: new error: %s", i, err)
		}
		written, err := tx.Update(item.state, item.confirmations, 100, rate100)
		if nil != err {
			t.Errorf("%d: update error: %s", i, err)
		}
		if written {
			t.Errorf("%d: direction: %s  state: %s  confirmations: %d  unexpected write", i, item.direction, item.state, item.confirmations)
		}
		if 0 != store.Stats().Sets.Uint64() {
			t.Errorf("%d: store writes: %d", i, store.Stats().Sets.Uint64())
		}
	}
}

func TestSentExplicitCreate(t *testing.T) {
	store := kvstore.NewMemory()
	info := receivedInfo()
	info.Direction = transaction.Sent
	info.State = transaction.Signed

	tx, err := transaction.New(info, store, testSettings)
	assert.Nil(t, err, "new")

	assert.True(t, tx.CreateMetadata(metadata.CreateParams{Rate: rate100, Comment: "rent"}), "create")
	assert.False(t, tx.CreateMetadata(metadata.CreateParams{Rate: rate100}), "second create")

	m := tx.Metadata()
	assert.Equal(t, "rent", m.Comment)
	assert.True(t, decimal.NewFromInt(20).Equal(m.FeeRate), "fee rate taken from transfer")

	assert.True(t, tx.SaveComment("rent for may", rate100), "save")
	assert.Equal(t, "rent for may", tx.Metadata().Comment)
	assert.Equal(t, uint64(2), tx.Metadata().Version())
}

func TestUpdateInvalidState(t *testing.T) {
	tx, err := transaction.New(receivedInfo(), kvstore.NewMemory(), testSettings)
	assert.Nil(t, err, "new")

	_, err = tx.Update(transaction.TransferState('?'), 0, 0, rate100)
	assert.Equal(t, fault.ErrInvalidTransferState, err)
	assert.Equal(t, transaction.Pending, tx.Info().State, "state changed")
}

func TestDirectionFromString(t *testing.T) {
	d, err := transaction.DirectionFromString("Received")
	assert.Nil(t, err)
	assert.Equal(t, transaction.Received, d)

	d, err = transaction.DirectionFromString("sent")
	assert.Nil(t, err)
	assert.Equal(t, transaction.Sent, d)

	_, err = transaction.DirectionFromString("sideways")
	assert.Equal(t, fault.ErrInvalidDirection, err)
}

// the lock is internal, so callers cannot hold it around a method call
func TestTransactionLockNotExported(t *testing.T) {
	transactionType := reflect.TypeOf(&transaction.Transaction{})
	for _, name := range []string{"Lock", "Unlock", "RLock", "RUnlock"} {
		if _, ok := transactionType.MethodByName(name); ok {
			t.Errorf("transaction exports: %s", name)
		}
	}
}
