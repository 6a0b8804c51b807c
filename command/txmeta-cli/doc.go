// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// txmeta-cli - inspect and edit stored transaction metadata
//
// reads a Lua configuration file (see package configuration) and opens
// the LevelDB store it names; with --memory the store is a throwaway
// in-memory one and the configuration file is optional.
//
// all results are printed as indented JSON on stdout.
//
//   txmeta-cli -c txmeta.conf key --hash=HASH
//   txmeta-cli -c txmeta.conf comment --hash=HASH --comment="rent"
//   txmeta-cli -c txmeta.conf update --hash=HASH --currency=btc \
//       --direction=received --state=included --confirmations=0 --rate=100.0
//   txmeta-cli status --currency=ltc --state=included --confirmations=4
package main
