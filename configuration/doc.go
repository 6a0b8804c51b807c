// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package configuration - parse a Lua configuration file
//
// most of base Lua is available such as reading files to set key data
// and getenv to extract environment supplied items.
//
// a minimal file:
//
//   return {
//       data_directory = ".",
//       database = { name = "txmetadata.leveldb" },
//       device_id = "9f0c1bb6-3c59-4fd1-9e44-b1cf6a4e52a2",
//       fiat_currency = "USD",
//   }
package configuration
