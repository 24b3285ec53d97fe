// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"errors"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/rlp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/mmt/lvldb"
	"github.com/vechain/mmt/mmt"
)

func newStater(t *testing.T) *Stater {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewStater(db)
}

func TestStateStorage(t *testing.T) {
	st := newStater(t).NewState()
	addr := mmt.BytesToAddress([]byte("token"))
	key := mmt.BytesToBytes32([]byte("total-supply"))

	v, err := st.GetStorage(addr, key)
	assert.NoError(t, err)
	assert.True(t, v.IsZero())

	st.SetStorage(addr, key, mmt.BytesToBytes32([]byte{0x01, 0x02}))
	v, err = st.GetStorage(addr, key)
	assert.NoError(t, err)
	assert.Equal(t, mmt.BytesToBytes32([]byte{0x01, 0x02}), v)

	st.SetStorage(addr, key, mmt.Bytes32{})
	raw, err := st.GetRawStorage(addr, key)
	assert.NoError(t, err)
	assert.Empty(t, raw)
}

func TestEncodeDecodeStorage(t *testing.T) {
	st := newStater(t).NewState()
	addr := mmt.BytesToAddress([]byte("token"))
	key := mmt.BytesToBytes32([]byte("balance"))

	err := st.EncodeStorage(addr, key, func() ([]byte, error) {
		return rlp.EncodeToBytes(big.NewInt(42))
	})
	assert.NoError(t, err)

	var got big.Int
	err = st.DecodeStorage(addr, key, func(raw []byte) error {
		return rlp.DecodeBytes(raw, &got)
	})
	assert.NoError(t, err)
	assert.Equal(t, int64(42), got.Int64())

	err = st.EncodeStorage(addr, key, func() ([]byte, error) { return nil, errors.New("bad") })
	assert.EqualError(t, err, "state: bad")
}

func TestCheckpointRevert(t *testing.T) {
	st := newStater(t).NewState()
	addr := mmt.BytesToAddress([]byte("staking"))
	k1 := mmt.BytesToBytes32([]byte("k1"))
	k2 := mmt.BytesToBytes32([]byte("k2"))

	st.SetStorage(addr, k1, mmt.BytesToBytes32([]byte("v1")))
	cp := st.NewCheckpoint()
	st.SetStorage(addr, k1, mmt.BytesToBytes32([]byte("v1'")))
	st.SetStorage(addr, k2, mmt.BytesToBytes32([]byte("v2")))
	st.RevertTo(cp)

	v, _ := st.GetStorage(addr, k1)
	assert.Equal(t, mmt.BytesToBytes32([]byte("v1")), v)
	v, _ = st.GetStorage(addr, k2)
	assert.True(t, v.IsZero())
	assert.Equal(t, 1, st.Stage().Len())
}

func TestStageCommit(t *testing.T) {
	stater := newStater(t)
	st := stater.NewState()
	addr := mmt.BytesToAddress([]byte("models"))

	storage := map[mmt.Bytes32]mmt.Bytes32{
		mmt.BytesToBytes32([]byte("s1")): mmt.BytesToBytes32([]byte("v1")),
		mmt.BytesToBytes32([]byte("s2")): mmt.BytesToBytes32([]byte("v2")),
		mmt.BytesToBytes32([]byte("s3")): mmt.BytesToBytes32([]byte("v3")),
	}
	for k, v := range storage {
		st.SetStorage(addr, k, v)
	}

	stage := st.Stage()
	assert.Equal(t, 3, stage.Len())
	assert.Equal(t, stage.Hash(), st.Stage().Hash())
	require.NoError(t, stater.Commit(stage))

	sum1, err := stater.Checksum()
	require.NoError(t, err)

	st = stater.NewState()
	for k, v := range storage {
		got, err := st.GetStorage(addr, k)
		assert.NoError(t, err)
		assert.Equal(t, v, got)
	}

	// deleting a slot removes it from the committed storage
	st.SetStorage(addr, mmt.BytesToBytes32([]byte("s1")), mmt.Bytes32{})
	require.NoError(t, stater.Commit(st.Stage()))

	sum2, err := stater.Checksum()
	require.NoError(t, err)
	assert.NotEqual(t, sum1, sum2)

	got, err := stater.NewState().GetStorage(addr, mmt.BytesToBytes32([]byte("s1")))
	assert.NoError(t, err)
	assert.True(t, got.IsZero())
}
