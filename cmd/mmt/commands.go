// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/rlp"
	"github.com/pkg/errors"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/vechain/mmt/builtin"
	"github.com/vechain/mmt/builtin/models"
	"github.com/vechain/mmt/builtin/proposals"
	"github.com/vechain/mmt/builtin/staking"
	"github.com/vechain/mmt/builtin/staking/stakes"
	"github.com/vechain/mmt/logdb"
	"github.com/vechain/mmt/lvldb"
	"github.com/vechain/mmt/mmt"
	"github.com/vechain/mmt/runtime"
	"github.com/vechain/mmt/state"
	"github.com/vechain/mmt/tx"
)

// ledgerAction sets up the ambient stack, opens the instance and runs f against it.
func ledgerAction(nArgs int, f func(ctx *cli.Context, l *ledger) error) func(*cli.Context) error {
	return func(ctx *cli.Context) error {
		if ctx.NArg() != nArgs {
			return fmt.Errorf("expected %d arguments, got %d", nArgs, ctx.NArg())
		}
		initLogger(ctx)
		closeMetrics, err := initMetrics(ctx)
		if err != nil {
			return err
		}
		defer closeMetrics()

		l, err := openInstance(ctx)
		if err != nil {
			return err
		}
		defer l.Close()
		return f(ctx, l)
	}
}

type commandResult struct {
	Receipt *tx.Receipt `json:"receipt"`
	Result  any         `json:"result,omitempty"`
}

// execute submits clause as a command of the --from account and prints its
// receipt along with the decoded output.
func execute(ctx *cli.Context, l *ledger, clause *tx.Clause, out any) error {
	from, err := parseAccount(ctx.String(fromFlag.Name))
	if err != nil {
		return err
	}
	receipt, err := l.rt.Execute(context.Background(), from, clause)
	if err != nil {
		if receipt != nil {
			return fmt.Errorf("command %v reverted: %v", receipt.Nonce, receipt.Error)
		}
		return err
	}
	if out != nil {
		if err := receipt.DecodeOutput(out); err != nil {
			return errors.Wrap(err, "decode output")
		}
	}
	return printJSON(ctx.App.Writer, &commandResult{receipt, out})
}

func call(l *ledger, clause *tx.Clause, out any) error {
	data, err := l.rt.Call(mmt.Address{}, clause)
	if err != nil {
		return err
	}
	return rlp.DecodeBytes(data, out)
}

func initAction(ctx *cli.Context, l *ledger) error {
	return printJSON(ctx.App.Writer, map[string]any{
		"genesisId": l.gene.ID().String(),
		"name":      l.gene.Name(),
		"dataDir":   l.dir,
		"nextSeq":   l.rt.NextSeq(),
	})
}

type ledgerInfo struct {
	Genesis        mmt.Bytes32 `json:"genesisId"`
	Network        string      `json:"network"`
	Name           string      `json:"name"`
	Symbol         string      `json:"symbol"`
	Decimals       uint8       `json:"decimals"`
	Owner          mmt.Address `json:"owner"`
	TotalSupply    string      `json:"totalSupply"`
	MaxSupply      string      `json:"maxSupply"`
	TotalBurned    string      `json:"totalBurned"`
	Quorum         uint64      `json:"quorum"`
	Models         uint64      `json:"models"`
	Merges         uint64      `json:"merges"`
	FinalizedCount uint64      `json:"finalized"`
	PendingEscrow  string      `json:"pendingEscrow"`
	NextSeq        uint64      `json:"nextSeq"`
}

func readInfo(st *state.State, info *ledgerInfo) (err error) {
	token := builtin.Token.Native(st, nil)
	if info.Name, err = token.Name(); err != nil {
		return err
	}
	if info.Symbol, err = token.Symbol(); err != nil {
		return err
	}
	info.Decimals = token.Decimals()
	if info.Owner, err = token.Owner(); err != nil {
		return err
	}

	amounts := []struct {
		get func() (*big.Int, error)
		dst *string
	}{
		{token.TotalSupply, &info.TotalSupply},
		{token.MaxSupply, &info.MaxSupply},
		{token.TotalBurned, &info.TotalBurned},
		{builtin.Staking.Native(st, nil).PendingEscrow, &info.PendingEscrow},
	}
	for _, a := range amounts {
		v, err := a.get()
		if err != nil {
			return err
		}
		*a.dst = formatAmount(v)
	}

	stk := builtin.Staking.Native(st, nil)
	if info.Quorum, err = stk.Quorum(); err != nil {
		return err
	}
	if info.FinalizedCount, err = stk.FinalizedCount(); err != nil {
		return err
	}
	if info.Models, err = builtin.Models.Native(st, nil).ModelCount(); err != nil {
		return err
	}
	info.Merges, err = builtin.Proposals.Native(st, nil).MergeCount()
	return err
}

func infoAction(ctx *cli.Context, l *ledger) error {
	info := ledgerInfo{
		Genesis: l.gene.ID(),
		Network: l.gene.Name(),
		NextSeq: l.rt.NextSeq(),
	}
	if err := l.rt.View(func(st *state.State) error {
		return readInfo(st, &info)
	}); err != nil {
		return err
	}
	return printJSON(ctx.App.Writer, &info)
}

func balanceAction(ctx *cli.Context, l *ledger) error {
	addr, err := parseAccount(ctx.Args().Get(0))
	if err != nil {
		return err
	}
	var bal big.Int
	if err := call(l, builtin.BalanceOf(addr), &bal); err != nil {
		return err
	}
	return printJSON(ctx.App.Writer, map[string]any{
		"address": addr,
		"balance": formatAmount(&bal),
	})
}

func rewardsAction(ctx *cli.Context, l *ledger) error {
	addr, err := parseAccount(ctx.Args().Get(0))
	if err != nil {
		return err
	}
	var rewards builtin.SignedAmount
	if err := call(l, builtin.GetValidatorRewards(addr), &rewards); err != nil {
		return err
	}
	var agg *staking.Aggregate
	if err := l.rt.View(func(st *state.State) (err error) {
		agg, err = builtin.Staking.Native(st, nil).Aggregate(addr)
		return err
	}); err != nil {
		return err
	}
	return printJSON(ctx.App.Writer, map[string]any{
		"address":   addr,
		"rewards":   formatAmount(rewards.Big()),
		"earned":    formatAmount(agg.Rewards),
		"penalties": formatAmount(agg.Penalties),
		"wins":      agg.Wins,
		"losses":    agg.Losses,
	})
}

func mintAction(ctx *cli.Context, l *ledger) error {
	to, err := parseAccount(ctx.Args().Get(0))
	if err != nil {
		return err
	}
	amount, err := parseAmount(ctx.Args().Get(1))
	if err != nil {
		return err
	}
	return execute(ctx, l, builtin.Mint(to, amount), nil)
}

func transferAction(ctx *cli.Context, l *ledger) error {
	to, err := parseAccount(ctx.Args().Get(0))
	if err != nil {
		return err
	}
	amount, err := parseAmount(ctx.Args().Get(1))
	if err != nil {
		return err
	}
	var ok bool
	return execute(ctx, l, builtin.Transfer(to, amount), &ok)
}

func createModelAction(ctx *cli.Context, l *ledger) error {
	var id uint64
	return execute(ctx, l, builtin.CreateModel(ctx.Args().Get(0)), &id)
}

func modelAction(ctx *cli.Context, l *ledger) error {
	id, err := parseUint(ctx.Args().Get(0), "model id")
	if err != nil {
		return err
	}
	var m models.Model
	if err := call(l, builtin.GetModel(id), &m); err != nil {
		return err
	}
	return printJSON(ctx.App.Writer, &m)
}

func createMergeAction(ctx *cli.Context, l *ledger) error {
	base, err := parseUint(ctx.Args().Get(0), "base model id")
	if err != nil {
		return err
	}
	proposed, err := parseUint(ctx.Args().Get(1), "proposed model id")
	if err != nil {
		return err
	}
	var id uint64
	return execute(ctx, l, builtin.CreateMergeRequest(base, proposed), &id)
}

func mergeAction(ctx *cli.Context, l *ledger) error {
	id, err := parseUint(ctx.Args().Get(0), "merge id")
	if err != nil {
		return err
	}
	var p proposals.Proposal
	if err := call(l, builtin.GetMergeRequest(id), &p); err != nil {
		return err
	}
	return printJSON(ctx.App.Writer, &p)
}

func stakeAction(ctx *cli.Context, l *ledger) error {
	mergeID, err := parseUint(ctx.Args().Get(0), "merge id")
	if err != nil {
		return err
	}
	amount, err := parseAmount(ctx.Args().Get(1))
	if err != nil {
		return err
	}
	prediction, err := parsePrediction(ctx.Args().Get(2))
	if err != nil {
		return err
	}
	var tally staking.Tally
	return execute(ctx, l, builtin.StakeOnMerge(mergeID, amount, prediction), &tally)
}

func stakesAction(ctx *cli.Context, l *ledger) error {
	mergeID, err := parseUint(ctx.Args().Get(0), "merge id")
	if err != nil {
		return err
	}
	var all []*stakes.Stake
	if err := call(l, builtin.GetStakes(mergeID), &all); err != nil {
		return err
	}
	return printJSON(ctx.App.Writer, all)
}

type eventView struct {
	Seq       uint64      `json:"seq"`
	TxID      mmt.Bytes32 `json:"txID"`
	Timestamp uint64      `json:"timestamp"`
	Origin    mmt.Address `json:"origin"`
	Event     *tx.Event   `json:"event"`
}

func eventsAction(ctx *cli.Context, l *ledger) error {
	criteria := &logdb.EventCriteria{}
	if s := ctx.String(kindFlag.Name); s != "" {
		kind := tx.EventKind(s)
		if !kind.Valid() {
			return fmt.Errorf("unknown event kind %q", s)
		}
		criteria.Kind = &kind
	}
	if ctx.IsSet(mergeFlag.Name) {
		mergeID := ctx.Uint64(mergeFlag.Name)
		criteria.MergeID = &mergeID
	}
	if s := ctx.String(addressFlag.Name); s != "" {
		addr, err := parseAccount(s)
		if err != nil {
			return err
		}
		criteria.Subject = &addr
	}

	filter := &logdb.EventFilter{
		CriteriaSet: []*logdb.EventCriteria{criteria},
		Options: &logdb.Options{
			Offset: ctx.Uint64(offsetFlag.Name),
			Limit:  ctx.Uint64(limitFlag.Name),
		},
	}
	if ctx.Bool(descFlag.Name) {
		filter.Order = logdb.DESC
	}

	events, err := l.logDB.FilterEvents(context.Background(), filter)
	if err != nil {
		return err
	}
	views := make([]*eventView, 0, len(events))
	for _, ev := range events {
		views = append(views, &eventView{ev.Seq, ev.TxID, ev.Timestamp, ev.Origin, ev.TxEvent()})
	}
	return printJSON(ctx.App.Writer, views)
}

// replayAction rebuilds the ledger from the command log in memory and compares
// the resulting state with the instance's.
func replayAction(ctx *cli.Context, l *ledger) error {
	db, err := lvldb.NewMem()
	if err != nil {
		return err
	}
	defer db.Close()

	fresh := state.NewStater(db)
	if _, err := l.gene.Build(fresh); err != nil {
		return errors.Wrap(err, "build genesis")
	}
	n, err := runtime.Replay(context.Background(), fresh, l.logDB)
	if err != nil {
		return err
	}

	want, err := l.stater.Checksum()
	if err != nil {
		return err
	}
	got, err := fresh.Checksum()
	if err != nil {
		return err
	}
	if err := printJSON(ctx.App.Writer, map[string]any{
		"commands": n,
		"checksum": want.String(),
		"replayed": got.String(),
	}); err != nil {
		return err
	}
	if want != got {
		return errors.New("replayed state differs from the data dir")
	}
	return nil
}
