// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package util

import (
	"os"
	"path/filepath"
)

// EnsureAbsolute - make a relative path absolute by prefixing directory
//
// the result is always cleaned
func EnsureAbsolute(directory string, filePath string) string {
	if !filepath.IsAbs(filePath) {
		filePath = filepath.Join(directory, filePath)
	}
	return filepath.Clean(filePath)
}

// EnsureFileExists - true only for an existing regular file
//
// directories and unreadable paths do not count
func EnsureFileExists(name string) bool {
	info, err := os.Stat(name)
	if nil != err {
		return false
	}
	return info.Mode().IsRegular()
}
