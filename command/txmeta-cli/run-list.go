// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"github.com/urfave/cli"

	"github.com/bitmark-inc/txmetadata/metadata"
)

type listItem struct {
	Key    string           `json:"key"`
	Token  bool             `json:"token"`
	Result *metadata.Result `json:"result,omitempty"`
}

func runList(c *cli.Context) error {

	m := c.App.Metadata["env"].(*environment)

	keys, err := m.store.Keys()
	if nil != err {
		return err
	}

	records := c.Bool("records")
	items := make([]listItem, 0, len(keys))
	for _, key := range keys {
		item := listItem{
			Key:   key,
			Token: metadata.IsTokenKey(key),
		}
		if records {
			r := metadata.Lookup(m.store, key)
			item.Result = &r
		}
		items = append(items, item)
	}

	return printJson(m.w, items)
}
