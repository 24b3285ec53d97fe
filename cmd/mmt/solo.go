// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"context"
	"fmt"
	"math/big"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/vechain/mmt/builtin"
	"github.com/vechain/mmt/builtin/proposals"
	"github.com/vechain/mmt/builtin/reverts"
	"github.com/vechain/mmt/co"
	"github.com/vechain/mmt/genesis"
	"github.com/vechain/mmt/mmt"
	"github.com/vechain/mmt/state"
	"github.com/vechain/mmt/tx"
)

var soloStake = mmt.Tokens(10)

// soloAction drives one merge proposal of the devnet to quorum, with dev
// accounts staking concurrently.
func soloAction(ctx *cli.Context) error {
	defer func() { logger.Info("exited") }()

	initLogger(ctx)
	closeMetrics, err := initMetrics(ctx)
	if err != nil {
		return err
	}
	defer closeMetrics()

	gene := genesis.NewDevnet()
	var instanceDir string
	if ctx.Bool(persistFlag.Name) {
		if instanceDir, err = makeInstanceDir(ctx, gene); err != nil {
			return err
		}
	}
	l, err := openLedger(gene, instanceDir)
	if err != nil {
		return err
	}
	defer l.Close()

	accs := genesis.DevAccounts()
	voters := ctx.Int(votersFlag.Name)
	if voters < 1 || voters >= len(accs) {
		return fmt.Errorf("voters must be in [1, %d)", len(accs))
	}
	printSoloStartupMessage(ctx, l)

	exitCtx, stop := handleExitSignal()
	defer stop()

	proposer := accs[0].Address
	mergeID, err := soloProposal(exitCtx, l, proposer)
	if err != nil {
		return err
	}

	// index settlements while the voters race
	receipts := make(chan *tx.Receipt, 64)
	sub := l.rt.SubscribeReceipts(receipts)
	var goes co.Goes
	settled := make(chan int, 1)
	goes.Go(func(<-chan struct{}) {
		n := 0
		defer func() { settled <- n }()
		for {
			select {
			case <-sub.Err():
				return
			case r := <-receipts:
				for _, ev := range r.Events {
					switch ev.Kind {
					case tx.KindStakeSettled:
						n++
					case tx.KindMergeFinalized:
						logger.Info("merge finalized", "id", mergeID, "seq", r.Nonce)
						return
					}
				}
			}
		}
	})

	g, gctx := errgroup.WithContext(exitCtx)
	for i := 1; i <= voters; i++ {
		voter := accs[i].Address
		prediction := i%3 != 0
		g.Go(func() error {
			for gctx.Err() == nil {
				_, err := l.rt.Execute(gctx, voter, builtin.StakeOnMerge(mergeID, soloStake, prediction))
				if errors.Is(err, reverts.ErrProposalNotPending) {
					return nil
				}
				if err != nil {
					return errors.Wrapf(err, "stake of %v", voter)
				}
			}
			return gctx.Err()
		})
	}
	if err := g.Wait(); err != nil {
		sub.Unsubscribe()
		goes.Wait()
		return err
	}
	n := <-settled
	sub.Unsubscribe()
	goes.Wait()

	if err := printSoloSummary(ctx, l, mergeID, accs[1:voters+1], n); err != nil {
		return err
	}

	if ctx.Bool(enableMetricsFlag.Name) {
		fmt.Fprintln(ctx.App.Writer, "metrics available, press Ctrl+C to exit")
		<-exitCtx.Done()
	}
	return nil
}

func soloProposal(ctx context.Context, l *ledger, proposer mmt.Address) (uint64, error) {
	var base, proposed, mergeID uint64
	for _, step := range []struct {
		clause *tx.Clause
		out    *uint64
	}{
		{builtin.CreateModel("ipfs://solo/base"), &base},
		{builtin.CreateModel("ipfs://solo/proposed"), &proposed},
	} {
		receipt, err := l.rt.Execute(ctx, proposer, step.clause)
		if err != nil {
			return 0, err
		}
		if err := receipt.DecodeOutput(step.out); err != nil {
			return 0, err
		}
	}
	receipt, err := l.rt.Execute(ctx, proposer, builtin.CreateMergeRequest(base, proposed))
	if err != nil {
		return 0, err
	}
	if err := receipt.DecodeOutput(&mergeID); err != nil {
		return 0, err
	}
	logger.Info("merge requested", "id", mergeID, "base", base, "proposed", proposed)
	return mergeID, nil
}

func printSoloStartupMessage(ctx *cli.Context, l *ledger) {
	fmt.Fprintf(ctx.App.Writer, `Starting MMT solo
    Network     [ %v %v ]
    Data dir    [ %v ]
`,
		l.gene.ID(), l.gene.Name(),
		l.dir)
}

func printSoloSummary(ctx *cli.Context, l *ledger, mergeID uint64, voters []genesis.DevAccount, settled int) error {
	var (
		p       *proposals.Proposal
		results = make([]map[string]any, 0, len(voters))
	)
	if err := l.rt.View(func(st *state.State) (err error) {
		if p, err = builtin.Proposals.Native(st, nil).GetMergeRequest(mergeID); err != nil {
			return err
		}
		stk := builtin.Staking.Native(st, nil)
		token := builtin.Token.Native(st, nil)
		for _, v := range voters {
			bal, err := token.BalanceOf(v.Address)
			if err != nil {
				return err
			}
			rewards, err := stk.ValidatorRewards(v.Address)
			if err != nil {
				return err
			}
			results = append(results, map[string]any{
				"voter":   v.Address,
				"balance": formatAmount(bal),
				"rewards": formatAmount(rewards),
				"won":     rewards.Cmp(new(big.Int)) > 0,
			})
		}
		return nil
	}); err != nil {
		return err
	}
	return printJSON(ctx.App.Writer, map[string]any{
		"merge":   p,
		"settled": settled,
		"voters":  results,
	})
}
