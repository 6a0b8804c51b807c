// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io"
	"io/ioutil"
	"os"
	"time"

	"github.com/bitmark-inc/exitwithstatus"
	"github.com/bitmark-inc/logger"
	"github.com/google/uuid"
	"github.com/urfave/cli"

	"github.com/bitmark-inc/txmetadata/configuration"
	"github.com/bitmark-inc/txmetadata/kvstore"
	"github.com/bitmark-inc/txmetadata/metadata"
)

// a store the commands can use
type store interface {
	kvstore.Store
	kvstore.Lister
	Stats() *kvstore.Stats
}

type environment struct {
	config   *configuration.Configuration
	settings metadata.Settings
	store    store
	closer   io.Closer
	scratch  string // temporary log directory for --memory without a configuration
	verbose  bool
	log      *logger.L
	e        io.Writer
	w        io.Writer
}

// set by the linker: go build -ldflags "-X main.version=M.N" ./...
var version = "zero" // do not change this value

func main() {
	// ensure exit handler is first
	defer exitwithstatus.Handler()

	app := newApp()
	err := app.Run(os.Args)
	if nil != err {
		exitwithstatus.Message("%s: terminated with error: %s", app.Name, err)
	}
}

// the command line application with all of its commands
func newApp() *cli.App {
	app := cli.NewApp()
	app.Name = "txmeta-cli"
	app.Usage = "transaction metadata store"
	app.Version = version
	app.HideVersion = true

	app.Writer = os.Stdout
	app.ErrWriter = os.Stderr

	hashFlag := cli.StringFlag{
		Name:  "hash, t",
		Value: "",
		Usage: "*transaction `HASH` (hex, display order)",
	}
	tokenFlag := cli.BoolFlag{
		Name:  "token, k",
		Usage: " token style transfer",
	}
	rateFlag := cli.StringFlag{
		Name:  "rate, r",
		Value: "0",
		Usage: " fiat exchange `RATE` per unit",
	}
	rateCodeFlag := cli.StringFlag{
		Name:  "rate-code",
		Value: "",
		Usage: " fiat currency `CODE` of the rate [configured fiat currency]",
	}
	feeRateFlag := cli.StringFlag{
		Name:  "fee-rate, f",
		Value: "0",
		Usage: " fee `RATE` paid",
	}
	sizeFlag := cli.Uint64Flag{
		Name:  "size, s",
		Value: 0,
		Usage: " transaction size in `BYTES`",
	}
	heightFlag := cli.Uint64Flag{
		Name:  "block-height, b",
		Value: 0,
		Usage: " confirmed block `HEIGHT`",
	}
	currencyFlag := cli.StringFlag{
		Name:  "currency, y",
		Value: "",
		Usage: "*currency `SYMBOL` [btc|bch|ltc|eth]",
	}
	stateFlag := cli.StringFlag{
		Name:  "state, a",
		Value: "",
		Usage: "*transfer `STATE` [created|signed|submitted|pending|included|failed|deleted]",
	}
	confirmationsFlag := cli.Uint64Flag{
		Name:  "confirmations, n",
		Value: 0,
		Usage: " number of `CONFIRMATIONS`",
	}

	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:  "config-file, c",
			Value: "",
			Usage: " configuration `FILE`",
		},
		cli.BoolFlag{
			Name:  "memory, m",
			Usage: " use a temporary in-memory store",
		},
		cli.BoolFlag{
			Name:  "verbose, v",
			Usage: " verbose result",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:      "key",
			Usage:     "derive the metadata key of a transaction",
			ArgsUsage: "\n   (* = required)",
			Flags:     []cli.Flag{hashFlag, tokenFlag},
			Action:    runKey,
		},
		{
			Name:      "show",
			Usage:     "look up the metadata of a transaction",
			ArgsUsage: "\n   (* = required)",
			Flags:     []cli.Flag{hashFlag, tokenFlag},
			Action:    runShow,
		},
		{
			Name:      "comment",
			Usage:     "set the comment, creating the metadata if necessary",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				hashFlag,
				tokenFlag,
				cli.StringFlag{
					Name:  "comment, o",
					Value: "",
					Usage: " comment `STRING`",
				},
				rateFlag,
				rateCodeFlag,
				feeRateFlag,
				sizeFlag,
				heightFlag,
			},
			Action: runComment,
		},
		{
			Name:      "create",
			Usage:     "create metadata for a sent transaction",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				hashFlag,
				tokenFlag,
				cli.StringFlag{
					Name:  "comment, o",
					Value: "",
					Usage: " comment `STRING`",
				},
				cli.StringFlag{
					Name:  "tag, g",
					Value: "",
					Usage: " token transfer `TAG`",
				},
				rateFlag,
				rateCodeFlag,
				feeRateFlag,
				sizeFlag,
				heightFlag,
			},
			Action: runCreate,
		},
		{
			Name:      "update",
			Usage:     "apply new chain facts to a transaction, creating metadata for received transfers",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				hashFlag,
				tokenFlag,
				currencyFlag,
				cli.StringFlag{
					Name:  "direction, d",
					Value: "received",
					Usage: " `DIRECTION` [sent|received]",
				},
				stateFlag,
				confirmationsFlag,
				heightFlag,
				sizeFlag,
				feeRateFlag,
				rateFlag,
				rateCodeFlag,
			},
			Action: runUpdate,
		},
		{
			Name:      "status",
			Usage:     "derive the status of a transfer",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				currencyFlag,
				stateFlag,
				confirmationsFlag,
			},
			Action: runStatus,
		},
		{
			Name:      "list",
			Usage:     "list stored metadata keys",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.BoolFlag{
					Name:  "records, l",
					Usage: " include each record",
				},
			},
			Action: runList,
		},
	}

	app.Before = func(c *cli.Context) error {

		e := c.App.ErrWriter
		w := c.App.Writer
		verbose := c.GlobalBool("verbose")

		// status needs no store and no configuration
		command := c.Args().Get(0)
		switch command {
		case "", "help", "h", "status", "key":
			c.App.Metadata["env"] = &environment{
				verbose: verbose,
				e:       e,
				w:       w,
			}
			return nil
		}

		memory := c.GlobalBool("memory")
		file := c.GlobalString("config-file")

		env := &environment{
			verbose: verbose,
			e:       e,
			w:       w,
		}

		if "" != file {
			file, err := checkConfigFile(file)
			if nil != err {
				return err
			}
			if env.verbose {
				fmt.Fprintf(e, "reading config file: %s\n", file)
			}
			config, err := configuration.Load(file)
			if nil != err {
				return err
			}
			env.config = config
		} else if memory {
			scratch, err := ioutil.TempDir("", app.Name)
			if nil != err {
				return err
			}
			env.scratch = scratch
			env.config = &configuration.Configuration{
				DeviceId:          uuid.New().String(),
				DeviceIdGenerated: true,
				FiatCurrency:      "USD",
				Logging: logger.Configuration{
					Directory: scratch,
					File:      app.Name + ".log",
					Size:      1048576,
					Count:     1,
					Levels: map[string]string{
						logger.DefaultTag: "critical",
					},
				},
			}
		} else {
			return ErrRequiredConfigFile
		}

		// start logging
		if err := logger.Initialise(env.config.Logging); nil != err {
			return err
		}
		env.log = logger.New("main")
		env.log.Infof("version: %s  command: %s", version, command)

		if env.config.DeviceIdGenerated {
			env.log.Warnf("no device_id configured, using: %s", env.config.DeviceId)
		}

		env.settings = metadata.Settings{
			DeviceId: env.config.DeviceId,
			FiatCode: env.config.FiatCurrency,
		}

		if memory {
			env.store = kvstore.NewMemory()
		} else {
			options := kvstore.LevelDBOptions{
				ReadOnly:        "list" == command || "show" == command,
				SyncWrites:      env.config.Database.SyncWrites,
				CacheExpiration: time.Duration(env.config.Database.CacheSeconds) * time.Second,
			}
			db, err := kvstore.OpenLevelDB(env.config.DatabaseFile(), options)
			if nil != err {
				logger.Finalise()
				return err
			}
			env.store = db
			env.closer = db
		}

		if verbose {
			printJson(e, env.config)
		}

		c.App.Metadata["env"] = env
		return nil
	}

	app.After = func(c *cli.Context) error {
		env, ok := c.App.Metadata["env"].(*environment)
		if !ok || nil == env.log {
			return nil
		}

		if env.verbose && nil != env.store {
			printJson(env.e, env.store.Stats())
		}

		var err error
		if nil != env.closer {
			err = env.closer.Close()
		}

		env.log.Info("finished")
		logger.Finalise()

		if "" != env.scratch {
			_ = os.RemoveAll(env.scratch)
		}
		return err
	}

	return app
}
