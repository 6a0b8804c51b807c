// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"github.com/urfave/cli"

	"github.com/bitmark-inc/txmetadata/metadata"
	"github.com/bitmark-inc/txmetadata/transaction"
)

type updateResult struct {
	Transaction transaction.Info   `json:"transaction"`
	Status      transaction.Status `json:"status"`
	Key         string             `json:"key"`
	Written     bool               `json:"written"`
	Result      metadata.Result    `json:"result"`
}

func runUpdate(c *cli.Context) error {

	m := c.App.Metadata["env"].(*environment)

	hash, err := checkHash(c.String("hash"))
	if nil != err {
		return err
	}
	cur, err := checkCurrency(c.String("currency"))
	if nil != err {
		return err
	}
	state, err := checkState(c.String("state"))
	if nil != err {
		return err
	}
	direction, err := transaction.DirectionFromString(c.String("direction"))
	if nil != err {
		return err
	}
	feeRate, err := checkDecimal(c.String("fee-rate"))
	if nil != err {
		return err
	}
	rate, err := rateFromFlags(c)
	if nil != err {
		return err
	}

	// the transfer as last seen, before the new facts are applied
	info := transaction.Info{
		Hash:      hash,
		Currency:  cur,
		Token:     c.Bool("token"),
		Direction: direction,
		State:     transaction.Created,
		Size:      c.Uint64("size"),
		FeeRate:   feeRate,
	}
	tx, err := transaction.New(info, m.store, m.settings)
	if nil != err {
		return err
	}

	written, err := tx.Update(state, c.Uint64("confirmations"), c.Uint64("block-height"), rate)
	if nil != err {
		return err
	}

	return printJson(m.w, updateResult{
		Transaction: tx.Info(),
		Status:      tx.Status(),
		Key:         tx.MetadataKey(),
		Written:     written,
		Result:      tx.Container().Result(),
	})
}
