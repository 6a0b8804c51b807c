// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package kvstore

import (
	"github.com/bitmark-inc/txmetadata/counter"
)

// Stats - operation counts for a store
type Stats struct {
	Gets      counter.Counter `json:"gets"`
	Misses    counter.Counter `json:"misses"`
	CacheHits counter.Counter `json:"cacheHits"`
	Sets      counter.Counter `json:"sets"`
	Conflicts counter.Counter `json:"conflicts"`
	Failures  counter.Counter `json:"failures"`
}
