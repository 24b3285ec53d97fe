// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staking

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/mmt/builtin/proposals"
	"github.com/vechain/mmt/builtin/reverts"
	"github.com/vechain/mmt/mmt"
	"github.com/vechain/mmt/tx"
)

func TestStakeOnMergeValidation(t *testing.T) {
	ts := newTestSetup(t, 0)
	id := ts.newProposal(t)
	alice := voter(1)
	ts.fund(t, alice, mmt.Tokens(10))

	tests := []struct {
		name       string
		mergeID    uint64
		amount     *big.Int
		prediction bool
		err        error
	}{
		{"unknown proposal", 99, mmt.Tokens(1), true, reverts.ErrProposalNotFound},
		{"zero amount", id, big.NewInt(0), true, reverts.ErrInvalidAmount},
		{"negative amount", id, big.NewInt(-1), true, reverts.ErrInvalidAmount},
		{"nil amount", id, nil, true, reverts.ErrInvalidAmount},
		{"exceeds balance", id, mmt.Tokens(11), true, reverts.ErrInsufficientBalance},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ts.staking.StakeOnMerge(alice, tt.mergeID, tt.amount, tt.prediction, 2)
			assert.ErrorIs(t, err, tt.err)
			assert.True(t, reverts.IsRevertErr(err))
		})
	}
	assert.Equal(t, mmt.Tokens(10), ts.balance(t, alice))
}

func TestStakeOnMergeEscrow(t *testing.T) {
	ts := newTestSetup(t, 0)
	id := ts.newProposal(t)
	alice, bob := voter(1), voter(2)
	ts.fund(t, alice, mmt.Tokens(100))
	ts.fund(t, bob, mmt.Tokens(100))

	tally, err := ts.staking.StakeOnMerge(alice, id, mmt.Tokens(30), true, 2)
	require.NoError(t, err)
	assert.Equal(t, mmt.Tokens(30), tally.YesStake)
	assert.Zero(t, tally.NoStake.Sign())
	assert.Equal(t, uint64(1), tally.VoteCount)
	assert.False(t, tally.Finalized)

	// additive on the same side, counted as another vote
	tally, err = ts.staking.StakeOnMerge(alice, id, mmt.Tokens(5), true, 3)
	require.NoError(t, err)
	assert.Equal(t, mmt.Tokens(35), tally.YesStake)
	assert.Equal(t, uint64(2), tally.VoteCount)

	_, err = ts.staking.StakeOnMerge(alice, id, mmt.Tokens(5), false, 4)
	assert.ErrorIs(t, err, reverts.ErrConflictingPrediction)

	tally, err = ts.staking.StakeOnMerge(bob, id, mmt.Tokens(20), false, 5)
	require.NoError(t, err)
	assert.Equal(t, mmt.Tokens(20), tally.NoStake)

	assert.Equal(t, mmt.Tokens(65), ts.balance(t, alice))
	assert.Equal(t, mmt.Tokens(80), ts.balance(t, bob))
	assert.Equal(t, mmt.Tokens(55), ts.balance(t, ts.staking.Address()))

	escrow, err := ts.staking.PendingEscrow()
	require.NoError(t, err)
	assert.Equal(t, mmt.Tokens(55), escrow)

	st, err := ts.staking.GetStake(id, alice)
	require.NoError(t, err)
	assert.Equal(t, mmt.Tokens(35), st.Amount)
	assert.True(t, st.Prediction)
	assert.Equal(t, uint64(2), st.Count)

	voters, err := ts.staking.Voters(id)
	require.NoError(t, err)
	assert.Equal(t, []mmt.Address{alice, bob}, voters)

	staked := ts.eventsOf(tx.KindModelStaked)
	require.Len(t, staked, 3)
	assert.Equal(t, &tx.ModelStaked{MergeID: id, Voter: bob, Amount: mmt.Tokens(20), Claim: false}, staked[2])

	p, err := ts.proposals.GetMergeRequest(id)
	require.NoError(t, err)
	assert.True(t, p.IsPending())
	assert.Equal(t, uint64(3), p.VoteCount)
}

// 100 voters, 60 stake yes and 40 stake no, 10 tokens each.
func TestSettlementExample(t *testing.T) {
	ts := newTestSetup(t, 0)
	id := ts.newProposal(t)

	for i := 0; i < 100; i++ {
		ts.fund(t, voter(i), mmt.Tokens(10))
	}
	supplyBefore := ts.supply(t)

	var tally *Tally
	for i := 0; i < 100; i++ {
		var err error
		tally, err = ts.staking.StakeOnMerge(voter(i), id, mmt.Tokens(10), i < 60, 10+uint64(i))
		require.NoError(t, err)
		if i < 99 {
			assert.False(t, tally.Finalized, "finalized early at vote %d", i+1)
		}
	}
	assert.True(t, tally.Finalized)
	assert.Equal(t, proposals.OutcomeAccepted, tally.Outcome)
	assert.Equal(t, mmt.Tokens(600), tally.YesStake)
	assert.Equal(t, mmt.Tokens(400), tally.NoStake)

	// 10 + 15% and 10 - 25%
	winner := new(big.Int).Div(mmt.Tokens(115), big.NewInt(10))
	loser := new(big.Int).Div(mmt.Tokens(75), big.NewInt(10))
	for i := 0; i < 100; i++ {
		want := loser
		if i < 60 {
			want = winner
		}
		assert.Zero(t, want.Cmp(ts.balance(t, voter(i))), "voter %d", i)
	}

	escrow, err := ts.staking.PendingEscrow()
	require.NoError(t, err)
	assert.Zero(t, escrow.Sign())
	assert.Zero(t, ts.balance(t, ts.staking.Address()).Sign())

	// supply grows by 60 * 1.5 and shrinks by 40 * 2.5
	expected := new(big.Int).Add(supplyBefore, mmt.Tokens(90))
	expected.Sub(expected, mmt.Tokens(100))
	assert.Zero(t, expected.Cmp(ts.supply(t)))

	burned, err := ts.token.TotalBurned()
	require.NoError(t, err)
	assert.Equal(t, mmt.Tokens(100), burned)

	r, err := ts.staking.ValidatorRewards(voter(0))
	require.NoError(t, err)
	assert.Zero(t, new(big.Int).Div(mmt.Tokens(15), big.NewInt(10)).Cmp(r))

	r, err = ts.staking.ValidatorRewards(voter(99))
	require.NoError(t, err)
	assert.Zero(t, new(big.Int).Div(mmt.Tokens(-25), big.NewInt(10)).Cmp(r))

	agg, err := ts.staking.Aggregate(voter(99))
	require.NoError(t, err)
	assert.Equal(t, uint64(1), agg.Losses)

	p, err := ts.proposals.GetMergeRequest(id)
	require.NoError(t, err)
	assert.Equal(t, proposals.StatusFinalized, p.Status)
	assert.Equal(t, uint64(109), p.FinalizedAt)

	assert.Len(t, ts.eventsOf(tx.KindStakeSettled), 100)
	finalized := ts.eventsOf(tx.KindMergeFinalized)
	require.Len(t, finalized, 1)
	assert.Equal(t, &tx.MergeFinalized{MergeID: id, Accepted: true, YesStake: mmt.Tokens(600), NoStake: mmt.Tokens(400)}, finalized[0])

	count, err := ts.staking.FinalizedCount()
	require.NoError(t, err)
	assert.Equal(t, uint64(1), count)
}

func TestFinalizedIsImmutable(t *testing.T) {
	ts := newTestSetup(t, 2)
	id := ts.newProposal(t)
	alice, bob, carol := voter(1), voter(2), voter(3)
	for _, a := range []mmt.Address{alice, bob, carol} {
		ts.fund(t, a, mmt.Tokens(10))
	}

	_, err := ts.staking.StakeOnMerge(alice, id, mmt.Tokens(5), true, 1)
	require.NoError(t, err)
	tally, err := ts.staking.StakeOnMerge(bob, id, mmt.Tokens(5), false, 2)
	require.NoError(t, err)
	assert.True(t, tally.Finalized)
	// tie is rejected
	assert.Equal(t, proposals.OutcomeRejected, tally.Outcome)

	before, err := ts.proposals.GetMergeRequest(id)
	require.NoError(t, err)

	_, err = ts.staking.StakeOnMerge(carol, id, mmt.Tokens(5), true, 3)
	assert.ErrorIs(t, err, reverts.ErrProposalNotPending)

	after, err := ts.proposals.GetMergeRequest(id)
	require.NoError(t, err)
	assert.Equal(t, before, after)
	assert.Equal(t, mmt.Tokens(10), ts.balance(t, carol))
	assert.Len(t, ts.eventsOf(tx.KindMergeFinalized), 1)

	// alice predicted yes on a rejected merge and lost
	assert.Equal(t, new(big.Int).Add(mmt.Tokens(5), big.NewInt(3_750_000_000_000_000_000)), ts.balance(t, alice))
	assert.Equal(t, new(big.Int).Add(mmt.Tokens(5), big.NewInt(5_750_000_000_000_000_000)), ts.balance(t, bob))
}

func TestSettlementSupplyCap(t *testing.T) {
	ts := newTestSetup(t, 1)
	require.NoError(t, ts.staking.params.Set(mmt.KeyMaxSupply, mmt.Tokens(100)))
	id := ts.newProposal(t)
	alice := voter(1)
	ts.fund(t, alice, mmt.Tokens(100))

	// reward would push supply above the cap
	_, err := ts.staking.StakeOnMerge(alice, id, mmt.Tokens(100), true, 1)
	assert.ErrorIs(t, err, reverts.ErrSupplyExceeded)
}

func TestEscrowAccountCannotStake(t *testing.T) {
	ts := newTestSetup(t, 3)
	id := ts.newProposal(t)
	alice := voter(1)
	ts.fund(t, alice, mmt.Tokens(100))

	_, err := ts.staking.StakeOnMerge(alice, id, mmt.Tokens(100), true, 2)
	require.NoError(t, err)

	// the escrow balance belongs to alice, not to the contract
	_, err = ts.staking.StakeOnMerge(ts.staking.Address(), id, mmt.Tokens(100), true, 3)
	assert.ErrorIs(t, err, reverts.ErrReservedOrigin)

	escrow, err := ts.staking.PendingEscrow()
	require.NoError(t, err)
	assert.Equal(t, mmt.Tokens(100), escrow)
	assert.Equal(t, escrow, ts.balance(t, ts.staking.Address()))

	p, err := ts.proposals.GetMergeRequest(id)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), p.VoteCount)
}

func TestMultipleProposals(t *testing.T) {
	ts := newTestSetup(t, 3)
	first := ts.newProposal(t)
	second := ts.newProposal(t)
	assert.NotEqual(t, first, second)

	for i := 0; i < 3; i++ {
		ts.fund(t, voter(i), mmt.Tokens(100))
	}
	for i := 0; i < 3; i++ {
		_, err := ts.staking.StakeOnMerge(voter(i), first, mmt.Tokens(10), i != 0, 1)
		require.NoError(t, err)
		if i < 2 {
			_, err = ts.staking.StakeOnMerge(voter(i), second, mmt.Tokens(10), true, 1)
			require.NoError(t, err)
		}
	}

	p1, err := ts.proposals.GetMergeRequest(first)
	require.NoError(t, err)
	assert.Equal(t, proposals.OutcomeAccepted, p1.Outcome)

	p2, err := ts.proposals.GetMergeRequest(second)
	require.NoError(t, err)
	assert.True(t, p2.IsPending())

	escrow, err := ts.staking.PendingEscrow()
	require.NoError(t, err)
	assert.Equal(t, mmt.Tokens(20), escrow)
	assert.Equal(t, escrow, ts.balance(t, ts.staking.Address()))
}
