// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package params

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/mmt/lvldb"
	"github.com/vechain/mmt/mmt"
	"github.com/vechain/mmt/state"
)

func TestParam(t *testing.T) {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	defer db.Close()
	st := state.NewStater(db).NewState()

	p := New(mmt.BytesToAddress([]byte("par")), st)

	key := mmt.BytesToBytes32([]byte("key"))
	value := big.NewInt(10)
	require.NoError(t, p.Set(key, value))

	v, err := p.Get(key)
	require.NoError(t, err)
	assert.Equal(t, value, v)

	q, err := p.GetUint64(mmt.KeyQuorumVotes, mmt.QuorumVotes)
	require.NoError(t, err)
	assert.Equal(t, mmt.QuorumVotes, q)

	require.NoError(t, p.Set(mmt.KeyQuorumVotes, big.NewInt(3)))
	q, err = p.GetUint64(mmt.KeyQuorumVotes, mmt.QuorumVotes)
	require.NoError(t, err)
	assert.Equal(t, uint64(3), q)

	owner := mmt.BytesToAddress([]byte("owner"))
	require.NoError(t, p.SetAddress(mmt.KeyOwner, owner))
	got, err := p.GetAddress(mmt.KeyOwner)
	require.NoError(t, err)
	assert.Equal(t, owner, got)
}
