// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	cli "gopkg.in/urfave/cli.v1"
)

var (
	dataDirFlag = cli.StringFlag{
		Name:  "data-dir",
		Value: defaultDataDir(),
		Usage: "directory for auction databases",
	}
	apiAddrFlag = cli.StringFlag{
		Name:  "api-addr",
		Value: "localhost:8669",
		Usage: "API service listening address",
	}
	apiCorsFlag = cli.StringFlag{
		Name:  "api-cors",
		Value: "",
		Usage: "comma separated list of domains from which to accept cross origin requests to API",
	}
	startHeightFlag = cli.UintFlag{
		Name:  "start-height",
		Value: 0,
		Usage: "block height at which bidding opens (exclusive)",
	}
	durationFlag = cli.UintFlag{
		Name:  "duration",
		Value: 8640,
		Usage: "bidding window length in blocks, must be positive",
	}
	beneficiaryFlag = cli.StringFlag{
		Name:  "beneficiary",
		Usage: "address that receives the winning bid on finalize",
	}
	genesisFlag = cli.StringFlag{
		Name:  "genesis",
		Usage: "path to a genesis allocation file (json list of {address, balance})",
	}
	blockIntervalFlag = cli.Uint64Flag{
		Name:  "block-interval",
		Value: 10,
		Usage: "seconds per block of the height oracle",
	}
	verbosityFlag = cli.IntFlag{
		Name:  "verbosity",
		Value: 1,
		Usage: "log verbosity (0:debug, 1:info, 2:warn, 3:error)",
	}
)
