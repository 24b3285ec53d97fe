// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	cli "gopkg.in/urfave/cli.v1"

	"github.com/vechain/mmt/log"
)

var (
	dataDirFlag = cli.StringFlag{
		Name:  "data-dir",
		Value: defaultDataDir(),
		Usage: "directory for ledger databases",
	}
	genesisFlag = cli.StringFlag{
		Name:  "genesis",
		Usage: "path to a genesis file (YAML or JSON), devnet if not set",
	}
	fromFlag = cli.StringFlag{
		Name:  "from",
		Value: "0",
		Usage: "command origin, an address or the index of a dev account",
	}
	verbosityFlag = cli.IntFlag{
		Name:  "verbosity",
		Value: log.LegacyLevelInfo,
		Usage: "log verbosity (0-9)",
	}
	jsonLogsFlag = cli.BoolFlag{
		Name:  "json-logs",
		Usage: "output logs in JSON format",
	}
	persistFlag = cli.BoolFlag{
		Name:  "persist",
		Usage: "save ledger data to disk (default stored in memory)",
	}
	enableMetricsFlag = cli.BoolFlag{
		Name:  "enable-metrics",
		Usage: "enables metrics collection",
	}
	metricsAddrFlag = cli.StringFlag{
		Name:  "metrics-addr",
		Value: "localhost:2112",
		Usage: "metrics service listening address",
	}

	// events filter flags
	kindFlag = cli.StringFlag{
		Name:  "kind",
		Usage: "event kind (Transfer|ModelCreated|MergeRequested|ModelStaked|StakeSettled|MergeFinalized)",
	}
	mergeFlag = cli.Uint64Flag{
		Name:  "merge",
		Usage: "merge proposal id",
	}
	addressFlag = cli.StringFlag{
		Name:  "address",
		Usage: "address the events refer to",
	}
	offsetFlag = cli.Uint64Flag{
		Name:  "offset",
		Usage: "number of events to skip",
	}
	limitFlag = cli.Uint64Flag{
		Name:  "limit",
		Value: 100,
		Usage: "maximum number of events",
	}
	descFlag = cli.BoolFlag{
		Name:  "desc",
		Usage: "newest first",
	}

	// solo flags
	votersFlag = cli.IntFlag{
		Name:  "voters",
		Value: 8,
		Usage: "number of dev accounts staking concurrently",
	}
)

var commonFlags = []cli.Flag{
	dataDirFlag,
	genesisFlag,
	verbosityFlag,
	jsonLogsFlag,
	enableMetricsFlag,
	metricsAddrFlag,
}

func withFlags(flags ...cli.Flag) []cli.Flag {
	return append(append([]cli.Flag{}, commonFlags...), flags...)
}
