// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"github.com/urfave/cli"
)

func runShow(c *cli.Context) error {

	m := c.App.Metadata["env"].(*environment)

	container, err := containerFromFlags(c, m)
	if nil != err {
		return err
	}

	r := container.Result()
	if m.verbose && nil != r.Err {
		m.log.Warnf("show: %q  error: %s", container.Key(), r.Err)
	}

	return printJson(m.w, writeResult{
		Key:     container.Key(),
		Written: false,
		Result:  r,
	})
}
