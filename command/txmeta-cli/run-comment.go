// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"github.com/urfave/cli"
)

func runComment(c *cli.Context) error {

	m := c.App.Metadata["env"].(*environment)

	container, err := containerFromFlags(c, m)
	if nil != err {
		return err
	}
	params, err := createParamsFromFlags(c)
	if nil != err {
		return err
	}

	written := container.Save(c.String("comment"), chainFactsFromFlags(c), params)

	return printJson(m.w, writeResult{
		Key:     container.Key(),
		Written: written,
		Result:  container.Result(),
	})
}
