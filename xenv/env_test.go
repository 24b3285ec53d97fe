// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package xenv

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/rlp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/mmt/builtin/reverts"
	"github.com/vechain/mmt/mmt"
	"github.com/vechain/mmt/tx"
)

func TestEnvironment(t *testing.T) {
	origin := mmt.BytesToAddress([]byte("caller"))
	args, err := rlp.EncodeToBytes([]any{uint64(3), big.NewInt(9)})
	require.NoError(t, err)

	env := New(nil, &TransactionContext{Origin: origin, Timestamp: 42}, args)
	assert.Equal(t, origin, env.Caller())
	assert.Equal(t, uint64(42), env.Timestamp())

	var parsed struct {
		ID     uint64
		Amount *big.Int
	}
	require.NoError(t, env.ParseArgs(&parsed))
	assert.Equal(t, uint64(3), parsed.ID)
	assert.Equal(t, big.NewInt(9), parsed.Amount)

	var wrong struct{ URI string }
	err = env.ParseArgs(&wrong)
	assert.ErrorIs(t, err, reverts.ErrInvalidArgs)

	require.NoError(t, env.Log(mmt.Address{1}, &tx.ModelCreated{ModelID: 1, Creator: origin, URI: "u"}))
	require.Len(t, env.Events(), 1)
	assert.Equal(t, tx.KindModelCreated, env.Events()[0].Kind)
}
