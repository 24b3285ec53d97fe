// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package tx

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/rlp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/mmt/mmt"
)

type stakeArgs struct {
	MergeID    uint64
	Amount     *big.Int
	Prediction bool
}

func TestTransaction(t *testing.T) {
	clause, err := NewClause("stakeOnMerge", &stakeArgs{1, big.NewInt(10), true})
	require.NoError(t, err)

	origin := mmt.BytesToAddress([]byte("voter"))
	trx := new(Builder).Origin(origin).Clause(clause).Timestamp(1700000000).Nonce(7).Build()

	assert.Equal(t, origin, trx.Origin())
	assert.Equal(t, "stakeOnMerge", trx.Clause().Method())
	assert.Equal(t, uint64(1700000000), trx.Timestamp())
	assert.Equal(t, uint64(7), trx.Nonce())

	data, err := rlp.EncodeToBytes(trx)
	require.NoError(t, err)

	var decoded Transaction
	require.NoError(t, rlp.DecodeBytes(data, &decoded))
	assert.Equal(t, trx.ID(), decoded.ID())

	var args stakeArgs
	require.NoError(t, decoded.Clause().DecodeArgs(&args))
	assert.Equal(t, uint64(1), args.MergeID)
	assert.Equal(t, big.NewInt(10), args.Amount)
	assert.True(t, args.Prediction)

	other := new(Builder).Origin(origin).Clause(clause).Timestamp(1700000000).Nonce(8).Build()
	assert.NotEqual(t, trx.ID(), other.ID())
}

func TestClauseWithoutArgs(t *testing.T) {
	clause, err := NewClause("totalSupply", nil)
	require.NoError(t, err)
	assert.Empty(t, clause.Args())
	assert.Contains(t, clause.String(), "totalSupply")
}
