// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// mmt operates a ModelMerge staking ledger kept in a local data directory.
package main

import (
	"fmt"
	"os"

	cli "gopkg.in/urfave/cli.v1"

	"github.com/vechain/mmt/log"
)

var (
	version       string
	gitCommit     string
	gitTag        string
	copyrightYear string

	logger = log.WithContext("pkg", "main")
)

func fullVersion() string {
	versionMeta := "release"
	if gitTag == "" {
		versionMeta = "dev"
	}
	return fmt.Sprintf("%s-%s-%s", version, gitCommit, versionMeta)
}

func newApp() *cli.App {
	app := cli.NewApp()
	app.Version = fullVersion()
	app.Name = "mmt"
	app.Usage = "ModelMerge staking ledger"
	app.Copyright = fmt.Sprintf("2025-%s VeChain Foundation <https://vechain.org/>", copyrightYear)
	app.Commands = []cli.Command{
		{
			Name:   "init",
			Usage:  "build the genesis state of a data dir",
			Flags:  commonFlags,
			Action: ledgerAction(0, initAction),
		},
		{
			Name:   "info",
			Usage:  "show token and staking totals",
			Flags:  commonFlags,
			Action: ledgerAction(0, infoAction),
		},
		{
			Name:      "balance",
			Usage:     "show the token balance of an account",
			ArgsUsage: "<address>",
			Flags:     commonFlags,
			Action:    ledgerAction(1, balanceAction),
		},
		{
			Name:      "rewards",
			Usage:     "show the cumulative staking rewards of a validator",
			ArgsUsage: "<address>",
			Flags:     commonFlags,
			Action:    ledgerAction(1, rewardsAction),
		},
		{
			Name:      "mint",
			Usage:     "mint tokens (owner only)",
			ArgsUsage: "<to> <amount>",
			Flags:     withFlags(fromFlag),
			Action:    ledgerAction(2, mintAction),
		},
		{
			Name:      "transfer",
			Usage:     "transfer tokens",
			ArgsUsage: "<to> <amount>",
			Flags:     withFlags(fromFlag),
			Action:    ledgerAction(2, transferAction),
		},
		{
			Name:      "create-model",
			Usage:     "register a model",
			ArgsUsage: "<uri>",
			Flags:     withFlags(fromFlag),
			Action:    ledgerAction(1, createModelAction),
		},
		{
			Name:      "model",
			Usage:     "show a model",
			ArgsUsage: "<id>",
			Flags:     commonFlags,
			Action:    ledgerAction(1, modelAction),
		},
		{
			Name:      "create-merge",
			Usage:     "open a merge proposal",
			ArgsUsage: "<base model id> <proposed model id>",
			Flags:     withFlags(fromFlag),
			Action:    ledgerAction(2, createMergeAction),
		},
		{
			Name:      "merge",
			Usage:     "show a merge proposal",
			ArgsUsage: "<id>",
			Flags:     commonFlags,
			Action:    ledgerAction(1, mergeAction),
		},
		{
			Name:      "stake",
			Usage:     "stake tokens on the outcome of a merge proposal",
			ArgsUsage: "<merge id> <amount> <yes|no>",
			Flags:     withFlags(fromFlag),
			Action:    ledgerAction(3, stakeAction),
		},
		{
			Name:      "stakes",
			Usage:     "list the stakes of a merge proposal",
			ArgsUsage: "<merge id>",
			Flags:     commonFlags,
			Action:    ledgerAction(1, stakesAction),
		},
		{
			Name:   "events",
			Usage:  "query the event log",
			Flags:  withFlags(kindFlag, mergeFlag, addressFlag, offsetFlag, limitFlag, descFlag),
			Action: ledgerAction(0, eventsAction),
		},
		{
			Name:   "replay",
			Usage:  "rebuild the state from the command log and verify it",
			Flags:  commonFlags,
			Action: ledgerAction(0, replayAction),
		},
		{
			Name:   "solo",
			Usage:  "run a devnet demo driving a merge proposal to quorum",
			Flags:  withFlags(persistFlag, votersFlag),
			Action: soloAction,
		},
	}
	return app
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
