// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package token

import (
	"math/big"

	"github.com/ethereum/go-ethereum/rlp"

	"github.com/vechain/mmt/builtin/params"
	"github.com/vechain/mmt/builtin/reverts"
	"github.com/vechain/mmt/builtin/solidity"
	"github.com/vechain/mmt/log"
	"github.com/vechain/mmt/mmt"
	"github.com/vechain/mmt/tx"
)

var (
	logger = log.WithContext("pkg", "token")

	nameKey        = mmt.Keccak256([]byte("name"))
	symbolKey      = mmt.Keccak256([]byte("symbol"))
	totalSupplyKey = mmt.Keccak256([]byte("total-supply"))
	totalBurnedKey = mmt.Keccak256([]byte("total-burned"))
	balancesKey    = mmt.Keccak256([]byte("balances"))
)

// Token implements the MMT fungible token ledger.
type Token struct {
	ctx         *solidity.Context
	params      *params.Params
	totalSupply *solidity.Uint256
	totalBurned *solidity.Uint256
	balances    *solidity.Mapping[mmt.Address, *big.Int]
}

// New create a new instance.
func New(ctx *solidity.Context, params *params.Params) *Token {
	return &Token{
		ctx:         ctx,
		params:      params,
		totalSupply: solidity.NewUint256(ctx, totalSupplyKey),
		totalBurned: solidity.NewUint256(ctx, totalBurnedKey),
		balances:    solidity.NewMapping[mmt.Address, *big.Int](ctx, balancesKey),
	}
}

// Address returns the token contract address.
func (t *Token) Address() mmt.Address {
	return t.ctx.Address()
}

func (t *Token) getString(key mmt.Bytes32) (s string, err error) {
	err = t.ctx.State().DecodeStorage(t.ctx.Address(), key, func(raw []byte) error {
		if len(raw) == 0 {
			return nil
		}
		return rlp.DecodeBytes(raw, &s)
	})
	return
}

func (t *Token) setString(key mmt.Bytes32, s string) error {
	return t.ctx.State().EncodeStorage(t.ctx.Address(), key, func() ([]byte, error) {
		return rlp.EncodeToBytes(s)
	})
}

// SetMetadata stores the token name and symbol. Called once at genesis.
func (t *Token) SetMetadata(name, symbol string) error {
	if err := t.setString(nameKey, name); err != nil {
		return err
	}
	return t.setString(symbolKey, symbol)
}

func (t *Token) Name() (string, error) {
	return t.getString(nameKey)
}

func (t *Token) Symbol() (string, error) {
	return t.getString(symbolKey)
}

func (t *Token) Decimals() uint8 {
	return mmt.TokenDecimals
}

// Owner returns the account allowed to mint.
func (t *Token) Owner() (mmt.Address, error) {
	return t.params.GetAddress(mmt.KeyOwner)
}

// MaxSupply returns the hard cap of the total supply.
func (t *Token) MaxSupply() (*big.Int, error) {
	maxSupply, err := t.params.Get(mmt.KeyMaxSupply)
	if err != nil {
		return nil, err
	}
	if maxSupply.Sign() == 0 {
		return new(big.Int).Set(mmt.MaxSupply), nil
	}
	return maxSupply, nil
}

func (t *Token) TotalSupply() (*big.Int, error) {
	return t.totalSupply.Get()
}

// TotalBurned returns the amount destroyed by penalties and burns.
func (t *Token) TotalBurned() (*big.Int, error) {
	return t.totalBurned.Get()
}

func (t *Token) BalanceOf(addr mmt.Address) (*big.Int, error) {
	return t.balances.Get(addr)
}

func (t *Token) addBalance(addr mmt.Address, amount *big.Int) error {
	bal, err := t.balances.Get(addr)
	if err != nil {
		return err
	}
	return t.balances.Set(addr, bal.Add(bal, amount))
}

func (t *Token) subBalance(addr mmt.Address, amount *big.Int) error {
	bal, err := t.balances.Get(addr)
	if err != nil {
		return err
	}
	if bal.Cmp(amount) < 0 {
		return reverts.ErrInsufficientBalance
	}
	bal.Sub(bal, amount)
	if bal.Sign() == 0 {
		t.balances.Delete(addr)
		return nil
	}
	return t.balances.Set(addr, bal)
}

// Mint issues new tokens to the given account. Only the owner may mint.
func (t *Token) Mint(caller, to mmt.Address, amount *big.Int) error {
	owner, err := t.Owner()
	if err != nil {
		return err
	}
	if caller != owner {
		return reverts.ErrUnauthorized
	}
	if amount.Sign() <= 0 {
		return reverts.ErrInvalidAmount
	}
	return t.mint(to, amount)
}

// MintReward issues protocol rewards. It skips the owner check but not the supply cap.
func (t *Token) MintReward(to mmt.Address, amount *big.Int) error {
	if amount.Sign() < 0 {
		return reverts.ErrInvalidAmount
	}
	if amount.Sign() == 0 {
		return nil
	}
	return t.mint(to, amount)
}

func (t *Token) mint(to mmt.Address, amount *big.Int) error {
	supply, err := t.totalSupply.Get()
	if err != nil {
		return err
	}
	maxSupply, err := t.MaxSupply()
	if err != nil {
		return err
	}
	if new(big.Int).Add(supply, amount).Cmp(maxSupply) > 0 {
		logger.Debug("mint exceeds max supply", "to", to, "amount", amount, "supply", supply)
		return reverts.ErrSupplyExceeded
	}
	if err := t.addBalance(to, amount); err != nil {
		return err
	}
	t.totalSupply.Set(supply.Add(supply, amount))
	return t.ctx.Emit(&tx.Transfer{To: to, Amount: new(big.Int).Set(amount)})
}

// Transfer moves tokens between accounts.
func (t *Token) Transfer(from, to mmt.Address, amount *big.Int) error {
	if amount.Sign() < 0 {
		return reverts.ErrInvalidAmount
	}
	if err := t.subBalance(from, amount); err != nil {
		return err
	}
	if err := t.addBalance(to, amount); err != nil {
		return err
	}
	return t.ctx.Emit(&tx.Transfer{From: from, To: to, Amount: new(big.Int).Set(amount)})
}

// Burn destroys tokens held by from, reducing the total supply.
func (t *Token) Burn(from mmt.Address, amount *big.Int) error {
	if amount.Sign() < 0 {
		return reverts.ErrInvalidAmount
	}
	if amount.Sign() == 0 {
		return nil
	}
	if err := t.subBalance(from, amount); err != nil {
		return err
	}
	if err := t.totalSupply.Sub(amount); err != nil {
		return err
	}
	if err := t.totalBurned.Add(amount); err != nil {
		return err
	}
	return t.ctx.Emit(&tx.Transfer{From: from, Amount: new(big.Int).Set(amount)})
}
