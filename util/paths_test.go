// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package util_test

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/txmetadata/util"
)

func TestEnsureAbsolute(t *testing.T) {
	tests := []struct {
		directory string
		path      string
		expected  string
	}{
		{"/data", "txmetadata.leveldb", "/data/txmetadata.leveldb"},
		{"/data", "log/../txmetadata.log", "/data/txmetadata.log"},
		{"/data", "/var/db/x", "/var/db/x"},
		{"/data/", "./a//b", "/data/a/b"},
	}

	for i, item := range tests {
		actual := util.EnsureAbsolute(item.directory, item.path)
		if item.expected != actual {
			t.Errorf("%d: path: %q  actual: %q  expected: %q", i, item.path, actual, item.expected)
		}
	}
}

func TestEnsureFileExists(t *testing.T) {
	directory, err := ioutil.TempDir("", "util-paths-")
	if nil != err {
		t.Fatalf("temp dir error: %s", err)
	}
	defer os.RemoveAll(directory)

	file := filepath.Join(directory, "present.conf")
	if err := ioutil.WriteFile(file, []byte("-- empty\n"), 0600); nil != err {
		t.Fatalf("write error: %s", err)
	}

	assert.True(t, util.EnsureFileExists(file), "regular file")
	assert.False(t, util.EnsureFileExists(directory), "directory")
	assert.False(t, util.EnsureFileExists(filepath.Join(directory, "absent.conf")), "missing file")
}
