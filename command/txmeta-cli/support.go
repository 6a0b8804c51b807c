// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"github.com/urfave/cli"

	"github.com/bitmark-inc/txmetadata/metadata"
)

// chain facts given on the command line
type chainFacts struct {
	height uint64
	size   uint64
}

func (f chainFacts) ConfirmedBlockHeight() uint64 { return f.height }
func (f chainFacts) ByteSize() uint64             { return f.size }

func chainFactsFromFlags(c *cli.Context) chainFacts {
	return chainFacts{
		height: c.Uint64("block-height"),
		size:   c.Uint64("size"),
	}
}

func rateFromFlags(c *cli.Context) (metadata.Rate, error) {
	value, err := checkDecimal(c.String("rate"))
	if nil != err {
		return metadata.Rate{}, err
	}
	return metadata.Rate{
		Value: value,
		Code:  c.String("rate-code"),
	}, nil
}

func createParamsFromFlags(c *cli.Context) (metadata.CreateParams, error) {
	rate, err := rateFromFlags(c)
	if nil != err {
		return metadata.CreateParams{}, err
	}
	feeRate, err := checkDecimal(c.String("fee-rate"))
	if nil != err {
		return metadata.CreateParams{}, err
	}
	return metadata.CreateParams{
		Rate:     rate,
		FeeRate:  feeRate,
		Comment:  c.String("comment"),
		TokenTag: c.String("tag"),
	}, nil
}

// container for the transaction named by --hash and --token
func containerFromFlags(c *cli.Context, env *environment) (*metadata.Container, error) {
	hash, err := checkHash(c.String("hash"))
	if nil != err {
		return nil, err
	}
	key, err := metadata.MakeKey(hash, c.Bool("token"))
	if nil != err {
		return nil, err
	}
	return metadata.NewContainer(env.store, key, env.settings), nil
}

// output of the writing commands
type writeResult struct {
	Key     string          `json:"key"`
	Written bool            `json:"written"`
	Result  metadata.Result `json:"result"`
}
