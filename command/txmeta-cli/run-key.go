// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"github.com/urfave/cli"

	"github.com/bitmark-inc/txmetadata/metadata"
)

type keyResult struct {
	Hash  string `json:"hash"`
	Token bool   `json:"token"`
	Key   string `json:"key"`
}

func runKey(c *cli.Context) error {

	m := c.App.Metadata["env"].(*environment)

	hash, err := checkHash(c.String("hash"))
	if nil != err {
		return err
	}
	token := c.Bool("token")

	key, err := metadata.MakeKey(hash, token)
	if nil != err {
		return err
	}

	return printJson(m.w, keyResult{
		Hash:  hash,
		Token: token,
		Key:   key,
	})
}
