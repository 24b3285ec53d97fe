// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package token

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/mmt/builtin/params"
	"github.com/vechain/mmt/builtin/reverts"
	"github.com/vechain/mmt/builtin/solidity"
	"github.com/vechain/mmt/lvldb"
	"github.com/vechain/mmt/mmt"
	"github.com/vechain/mmt/state"
	"github.com/vechain/mmt/tx"
)

var (
	owner = mmt.BytesToAddress([]byte("owner"))
	alice = mmt.BytesToAddress([]byte("alice"))
	bob   = mmt.BytesToAddress([]byte("bob"))
)

type setup struct {
	token  *Token
	events []tx.Payload
}

func newSetup(t *testing.T, maxSupply *big.Int) *setup {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	st := state.NewStater(db).NewState()

	p := params.New(mmt.BytesToAddress([]byte("Params")), st)
	require.NoError(t, p.SetAddress(mmt.KeyOwner, owner))
	if maxSupply != nil {
		require.NoError(t, p.Set(mmt.KeyMaxSupply, maxSupply))
	}

	s := &setup{}
	ctx := solidity.NewContext(mmt.BytesToAddress([]byte("Token")), st, func(_ mmt.Address, p tx.Payload) error {
		s.events = append(s.events, p)
		return nil
	})
	s.token = New(ctx, p)
	return s
}

func balance(t *testing.T, tk *Token, addr mmt.Address) *big.Int {
	bal, err := tk.BalanceOf(addr)
	require.NoError(t, err)
	return bal
}

func TestMetadata(t *testing.T) {
	s := newSetup(t, nil)
	require.NoError(t, s.token.SetMetadata(mmt.TokenName, mmt.TokenSymbol))

	name, err := s.token.Name()
	require.NoError(t, err)
	assert.Equal(t, "ModelMerge Token", name)

	symbol, err := s.token.Symbol()
	require.NoError(t, err)
	assert.Equal(t, "MMT", symbol)
	assert.Equal(t, uint8(18), s.token.Decimals())

	o, err := s.token.Owner()
	require.NoError(t, err)
	assert.Equal(t, owner, o)

	maxSupply, err := s.token.MaxSupply()
	require.NoError(t, err)
	assert.Equal(t, mmt.MaxSupply, maxSupply)
}

func TestMint(t *testing.T) {
	tests := []struct {
		name   string
		caller mmt.Address
		amount *big.Int
		err    error
	}{
		{"owner mints", owner, big.NewInt(100), nil},
		{"non owner", alice, big.NewInt(100), reverts.ErrUnauthorized},
		{"zero amount", owner, big.NewInt(0), reverts.ErrInvalidAmount},
		{"exceeds cap", owner, big.NewInt(1001), reverts.ErrSupplyExceeded},
		{"reaches cap", owner, big.NewInt(1000), nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newSetup(t, big.NewInt(1000))
			err := s.token.Mint(tt.caller, alice, tt.amount)
			if tt.err != nil {
				assert.ErrorIs(t, err, tt.err)
				assert.Equal(t, 0, balance(t, s.token, alice).Sign())
				assert.Empty(t, s.events)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.amount, balance(t, s.token, alice))
			supply, err := s.token.TotalSupply()
			require.NoError(t, err)
			assert.Equal(t, tt.amount, supply)
			require.Len(t, s.events, 1)
			assert.Equal(t, &tx.Transfer{To: alice, Amount: tt.amount}, s.events[0])
		})
	}
}

func TestMintReward(t *testing.T) {
	s := newSetup(t, big.NewInt(1000))
	require.NoError(t, s.token.MintReward(alice, big.NewInt(900)))
	require.NoError(t, s.token.MintReward(alice, big.NewInt(0)))
	assert.ErrorIs(t, s.token.MintReward(bob, big.NewInt(101)), reverts.ErrSupplyExceeded)
	assert.Equal(t, big.NewInt(900), balance(t, s.token, alice))
}

func TestTransfer(t *testing.T) {
	s := newSetup(t, nil)
	require.NoError(t, s.token.Mint(owner, alice, big.NewInt(100)))

	require.NoError(t, s.token.Transfer(alice, bob, big.NewInt(40)))
	assert.Equal(t, big.NewInt(60), balance(t, s.token, alice))
	assert.Equal(t, big.NewInt(40), balance(t, s.token, bob))

	assert.ErrorIs(t, s.token.Transfer(alice, bob, big.NewInt(61)), reverts.ErrInsufficientBalance)
	assert.ErrorIs(t, s.token.Transfer(alice, bob, big.NewInt(-1)), reverts.ErrInvalidAmount)

	// full balance transfer clears the account
	require.NoError(t, s.token.Transfer(bob, alice, big.NewInt(40)))
	assert.Equal(t, 0, balance(t, s.token, bob).Sign())

	supply, err := s.token.TotalSupply()
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(100), supply)
	assert.Equal(t, &tx.Transfer{From: alice, To: bob, Amount: big.NewInt(40)}, s.events[1])
}

func TestBurn(t *testing.T) {
	s := newSetup(t, nil)
	require.NoError(t, s.token.Mint(owner, alice, big.NewInt(100)))

	require.NoError(t, s.token.Burn(alice, big.NewInt(25)))
	assert.ErrorIs(t, s.token.Burn(alice, big.NewInt(76)), reverts.ErrInsufficientBalance)

	supply, err := s.token.TotalSupply()
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(75), supply)

	burned, err := s.token.TotalBurned()
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(25), burned)

	assert.Equal(t, &tx.Transfer{From: alice, Amount: big.NewInt(25)}, s.events[len(s.events)-1])
}
