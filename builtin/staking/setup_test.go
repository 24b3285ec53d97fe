// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staking

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vechain/mmt/builtin/models"
	"github.com/vechain/mmt/builtin/params"
	"github.com/vechain/mmt/builtin/proposals"
	"github.com/vechain/mmt/builtin/solidity"
	"github.com/vechain/mmt/builtin/token"
	"github.com/vechain/mmt/lvldb"
	"github.com/vechain/mmt/mmt"
	"github.com/vechain/mmt/state"
	"github.com/vechain/mmt/tx"
)

var (
	owner    = mmt.BytesToAddress([]byte("owner"))
	proposer = mmt.BytesToAddress([]byte("proposer"))
)

type testSetup struct {
	state     *state.State
	staking   *Staking
	token     *token.Token
	models    *models.Registry
	proposals *proposals.Registry
	events    []tx.Payload
}

func voter(i int) mmt.Address {
	return mmt.BytesToAddress([]byte{0xee, byte(i >> 8), byte(i)})
}

// newTestSetup wires the contracts over a fresh state. A quorum of 0 keeps the default.
func newTestSetup(t *testing.T, quorum uint64) *testSetup {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	st := state.NewStater(db).NewState()
	ts := &testSetup{state: st}
	emit := func(_ mmt.Address, p tx.Payload) error {
		ts.events = append(ts.events, p)
		return nil
	}
	ctx := func(name string) *solidity.Context {
		return solidity.NewContext(mmt.BytesToAddress([]byte(name)), st, emit)
	}

	p := params.New(mmt.BytesToAddress([]byte("Params")), st)
	require.NoError(t, p.SetAddress(mmt.KeyOwner, owner))
	if quorum > 0 {
		require.NoError(t, p.Set(mmt.KeyQuorumVotes, new(big.Int).SetUint64(quorum)))
	}

	ts.token = token.New(ctx("Token"), p)
	ts.models = models.New(ctx("Models"))
	ts.proposals = proposals.New(ctx("Proposals"), ts.models)
	ts.staking = New(ctx("Staking"), p, ts.token, ts.proposals)
	return ts
}

// newProposal creates two models and a merge request between them.
func (ts *testSetup) newProposal(t *testing.T) uint64 {
	base, err := ts.models.CreateModel(proposer, "base", 1)
	require.NoError(t, err)
	proposed, err := ts.models.CreateModel(proposer, "proposed", 1)
	require.NoError(t, err)
	id, err := ts.proposals.CreateMergeRequest(proposer, base, proposed, 1)
	require.NoError(t, err)
	return id
}

func (ts *testSetup) fund(t *testing.T, addr mmt.Address, amount *big.Int) {
	require.NoError(t, ts.token.Mint(owner, addr, amount))
}

func (ts *testSetup) balance(t *testing.T, addr mmt.Address) *big.Int {
	bal, err := ts.token.BalanceOf(addr)
	require.NoError(t, err)
	return bal
}

func (ts *testSetup) supply(t *testing.T) *big.Int {
	supply, err := ts.token.TotalSupply()
	require.NoError(t, err)
	return supply
}

func (ts *testSetup) eventsOf(kind tx.EventKind) []tx.Payload {
	var out []tx.Payload
	for _, e := range ts.events {
		if e.Kind() == kind {
			out = append(out, e)
		}
	}
	return out
}
