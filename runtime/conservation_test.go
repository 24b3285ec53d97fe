// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package runtime_test

import (
	"context"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/rlp"
	fuzz "github.com/google/gofuzz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/mmt/builtin"
	"github.com/vechain/mmt/builtin/reverts"
	"github.com/vechain/mmt/mmt"
	"github.com/vechain/mmt/tx"
)

type randomOp struct {
	Kind       uint8
	Voter      uint8
	Merge      uint8
	Amount     uint16
	Prediction bool
}

func (r *testRuntime) viewAmount(method string) *big.Int {
	data, err := r.Call(owner, builtin.View(method))
	require.NoError(r.t, err)
	var v big.Int
	require.NoError(r.t, rlp.DecodeBytes(data, &v))
	return &v
}

// minted sums the amounts of the receipt's Transfer events from the zero address.
func minted(t *testing.T, receipt *tx.Receipt) *big.Int {
	sum := new(big.Int)
	for _, ev := range receipt.Events {
		if ev.Kind != tx.KindTransfer {
			continue
		}
		p, err := ev.Decode()
		require.NoError(t, err)
		if transfer := p.(*tx.Transfer); transfer.From.IsZero() {
			sum.Add(sum, transfer.Amount)
		}
	}
	return sum
}

func TestRandomSequenceConservation(t *testing.T) {
	const voters = 6

	contracts := []mmt.Address{
		builtin.Params.Address,
		builtin.Token.Address,
		builtin.Models.Address,
		builtin.Proposals.Address,
		builtin.Staking.Address,
	}

	for _, seed := range []int64{1, 7, 42} {
		rt := newRuntime(t, 5, voters)
		f := fuzz.NewWithSeed(seed).NilChance(0)

		holders := []mmt.Address{owner}
		for i := range voters {
			holders = append(holders, voter(i))
		}
		origins := append(append([]mmt.Address{}, holders[1:]...), contracts...)

		totalMinted := rt.viewAmount("totalSupply")
		var merges, reserved int
		for range 300 {
			var op randomOp
			f.Fuzz(&op)

			from := origins[int(op.Voter)%len(origins)]
			amount := new(big.Int).Mul(big.NewInt(int64(op.Amount%300)), big.NewInt(1e17))

			var clause *tx.Clause
			switch op.Kind % 4 {
			case 0:
				if builtin.IsContract(from) || (merges > 0 && op.Merge%3 != 0) {
					continue
				}
				rt.newMerge(from)
				merges++
				continue
			case 1, 2:
				clause = builtin.StakeOnMerge(uint64(op.Merge)%uint64(merges+1)+1, amount, op.Prediction)
			case 3:
				clause = builtin.Transfer(voter(int(op.Merge)%voters), amount)
			}

			receipt, err := rt.Execute(context.Background(), from, clause)
			if err != nil {
				require.True(t, reverts.IsRevertErr(err), "seed %v: %v", seed, err)
				require.True(t, receipt.Reverted)
			}
			if builtin.IsContract(from) {
				require.ErrorIs(t, err, reverts.ErrReservedOrigin)
				reserved++
			}
			totalMinted.Add(totalMinted, minted(t, receipt))

			held := new(big.Int)
			for _, a := range holders {
				bal := rt.balance(a)
				require.GreaterOrEqual(t, bal.Sign(), 0)
				held.Add(held, bal)
			}
			escrow := rt.viewAmount("pendingEscrow")
			require.Zero(t, escrow.Cmp(rt.balance(builtin.Staking.Address)), "seed %v seq %v", seed, rt.NextSeq())

			net := new(big.Int).Sub(totalMinted, rt.viewAmount("totalBurned"))
			require.Zero(t, new(big.Int).Add(held, escrow).Cmp(net), "seed %v seq %v", seed, rt.NextSeq())
			require.Zero(t, rt.viewAmount("totalSupply").Cmp(net), "seed %v seq %v", seed, rt.NextSeq())
		}
		assert.Positive(t, merges)
		assert.Positive(t, reserved)
	}
}
