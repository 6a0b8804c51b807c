// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package configuration

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/bitmark-inc/logger"
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/bitmark-inc/txmetadata/fault"
	"github.com/bitmark-inc/txmetadata/util"
)

// basic defaults (directories and files are relative to the "DataDirectory" from Configuration file)
const (
	defaultDataDirectory = "" // this will error; use "." for the same directory as the config file

	defaultLevelDBDirectory = "data"
	defaultDatabase         = "txmetadata.leveldb"
	defaultCacheSeconds     = 300

	defaultFiatCurrency = "USD"

	defaultLogDirectory = "log"
	defaultLogFile      = "txmetadata.log"
	defaultLogCount     = 10          //  number of log files retained
	defaultLogSize      = 1024 * 1024 // rotate when <logfile> exceeds this size
)

// LoglevelMap - to hold log levels
type LoglevelMap map[string]string

// path expanded or calculated defaults
var (
	defaultLogLevels = LoglevelMap{
		logger.DefaultTag: "critical",
	}
)

// DatabaseType - metadata store location and options
type DatabaseType struct {
	Directory    string `gluamapper:"directory" json:"directory"`
	Name         string `gluamapper:"name" json:"name"`
	SyncWrites   bool   `gluamapper:"sync_writes" json:"sync_writes"`
	CacheSeconds int    `gluamapper:"cache_seconds" json:"cache_seconds"`
}

// Configuration - everything read from the configuration file
type Configuration struct {
	DataDirectory string               `gluamapper:"data_directory" json:"data_directory"`
	Database      DatabaseType         `gluamapper:"database" json:"database"`
	DeviceId      string               `gluamapper:"device_id" json:"device_id"`
	FiatCurrency  string               `gluamapper:"fiat_currency" json:"fiat_currency"`
	Logging       logger.Configuration `gluamapper:"logging" json:"logging"`

	// set when no device_id was configured and a random one was used
	DeviceIdGenerated bool `gluamapper:"-" json:"device_id_generated"`
}

// DatabaseFile - absolute path of the LevelDB database
func (c *Configuration) DatabaseFile() string {
	return filepath.Join(c.Database.Directory, c.Database.Name)
}

// Load - read decode and verify the configuration
func Load(configurationFileName string) (*Configuration, error) {

	configurationFileName, err := filepath.Abs(filepath.Clean(configurationFileName))
	if nil != err {
		return nil, err
	}

	// absolute path to the main directory
	dataDirectory, _ := filepath.Split(configurationFileName)

	options := &Configuration{
		DataDirectory: defaultDataDirectory,
		FiatCurrency:  defaultFiatCurrency,

		Database: DatabaseType{
			Directory:    defaultLevelDBDirectory,
			Name:         defaultDatabase,
			CacheSeconds: defaultCacheSeconds,
		},

		Logging: logger.Configuration{
			Directory: defaultLogDirectory,
			File:      defaultLogFile,
			Size:      defaultLogSize,
			Count:     defaultLogCount,
			Levels:    defaultLogLevels,
		},
	}

	if err := ParseConfigurationFile(configurationFileName, options); err != nil {
		return nil, errors.Wrapf(err, "configuration file: %q", configurationFileName)
	}

	// ensure absolute data directory
	if "" == options.DataDirectory || "~" == options.DataDirectory {
		return nil, errors.Wrapf(fault.ErrDataDirectory, "path: %q", options.DataDirectory)
	} else if "." == options.DataDirectory {
		options.DataDirectory = dataDirectory // same directory as the configuration file
	}
	options.DataDirectory = filepath.Clean(options.DataDirectory)

	// this directory must exist - i.e. must be created prior to running
	if fileInfo, err := os.Stat(options.DataDirectory); nil != err {
		return nil, err
	} else if !fileInfo.IsDir() {
		return nil, errors.Wrapf(fault.ErrDataDirectory, "path: %q is not a directory", options.DataDirectory)
	}

	options.FiatCurrency = strings.ToUpper(strings.TrimSpace(options.FiatCurrency))
	if !isCurrencyCode(options.FiatCurrency) {
		return nil, errors.Wrapf(fault.ErrInvalidFiatCurrency, "fiat currency: %q", options.FiatCurrency)
	}

	if "" == strings.TrimSpace(options.DeviceId) {
		options.DeviceId = uuid.New().String()
		options.DeviceIdGenerated = true
	}

	if options.Database.CacheSeconds < 0 {
		options.Database.CacheSeconds = 0
	}

	// fail if any of these are not simple file names
	for _, f := range []string{options.Database.Name, options.Logging.File} {
		switch filepath.Dir(f) {
		case "", ".":
		default:
			return nil, errors.Wrapf(fault.ErrInvalidFileName, "file: %q", f)
		}
	}

	// make absolute and create directories if they do not already exist
	for _, d := range []*string{
		&options.Database.Directory,
		&options.Logging.Directory,
	} {
		*d = util.EnsureAbsolute(options.DataDirectory, *d)
		if err := os.MkdirAll(*d, 0700); nil != err {
			return nil, err
		}
	}

	// done
	return options, nil
}

// ISO 4217 style three letter code
func isCurrencyCode(s string) bool {
	if 3 != len(s) {
		return false
	}
	for _, c := range s {
		if c < 'A' || c > 'Z' {
			return false
		}
	}
	return true
}
