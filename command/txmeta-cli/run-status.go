// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"github.com/urfave/cli"

	"github.com/bitmark-inc/txmetadata/currency"
	"github.com/bitmark-inc/txmetadata/transaction"
)

type statusResult struct {
	Currency      currency.Currency         `json:"currency"`
	State         transaction.TransferState `json:"state"`
	Confirmations uint64                    `json:"confirmations"`
	Threshold     uint64                    `json:"threshold"`
	Status        transaction.Status        `json:"status"`
}

func runStatus(c *cli.Context) error {

	m := c.App.Metadata["env"].(*environment)

	cur, err := checkCurrency(c.String("currency"))
	if nil != err {
		return err
	}
	state, err := checkState(c.String("state"))
	if nil != err {
		return err
	}
	confirmations := c.Uint64("confirmations")
	threshold := cur.ConfirmationsUntilFinal()

	return printJson(m.w, statusResult{
		Currency:      cur,
		State:         state,
		Confirmations: confirmations,
		Threshold:     threshold,
		Status:        transaction.DeriveStatus(state, confirmations, threshold),
	})
}
