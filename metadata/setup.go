// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package metadata

import (
	"sync"

	"github.com/bitmark-inc/logger"
)

const logTag = "metadata"

// the logger is created on first use so that the package can be
// imported before logger.Initialise has run
var globalData struct {
	once sync.Once
	log  *logger.L
}

func log() *logger.L {
	globalData.once.Do(func() {
		globalData.log = logger.New(logTag)
	})
	return globalData.log
}
