// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package builtin

import (
	"math/big"

	"github.com/vechain/mmt/mmt"
	"github.com/vechain/mmt/tx"
)

type (
	CreateModelArgs struct {
		URI string
	}
	CreateMergeRequestArgs struct {
		BaseModelID     uint64
		ProposedModelID uint64
	}
	StakeOnMergeArgs struct {
		MergeID    uint64
		Amount     *big.Int
		Prediction bool
	}
	AddressArgs struct {
		Addr mmt.Address
	}
	IDArgs struct {
		ID uint64
	}
	GetStakeArgs struct {
		MergeID uint64
		Voter   mmt.Address
	}
	AmountArgs struct {
		To     mmt.Address
		Amount *big.Int
	}
)

// SignedAmount carries a possibly negative amount, which rlp cannot encode as an integer.
type SignedAmount struct {
	Negative bool
	Abs      *big.Int
}

func NewSignedAmount(v *big.Int) *SignedAmount {
	return &SignedAmount{Negative: v.Sign() < 0, Abs: new(big.Int).Abs(v)}
}

// Big returns the amount as a signed integer.
func (s *SignedAmount) Big() *big.Int {
	v := new(big.Int).Set(s.Abs)
	if s.Negative {
		v.Neg(v)
	}
	return v
}

func mustClause(method string, args any) *tx.Clause {
	c, err := tx.NewClause(method, args)
	if err != nil {
		panic(err)
	}
	return c
}

// Clause builders of the native methods.

func CreateModel(uri string) *tx.Clause {
	return mustClause("createModel", &CreateModelArgs{uri})
}

func CreateMergeRequest(baseModelID, proposedModelID uint64) *tx.Clause {
	return mustClause("createMergeRequest", &CreateMergeRequestArgs{baseModelID, proposedModelID})
}

func StakeOnMerge(mergeID uint64, amount *big.Int, prediction bool) *tx.Clause {
	return mustClause("stakeOnMerge", &StakeOnMergeArgs{mergeID, amount, prediction})
}

func Mint(to mmt.Address, amount *big.Int) *tx.Clause {
	return mustClause("mint", &AmountArgs{to, amount})
}

func Transfer(to mmt.Address, amount *big.Int) *tx.Clause {
	return mustClause("transfer", &AmountArgs{to, amount})
}

func BalanceOf(addr mmt.Address) *tx.Clause {
	return mustClause("balanceOf", &AddressArgs{addr})
}

func GetValidatorRewards(addr mmt.Address) *tx.Clause {
	return mustClause("getValidatorRewards", &AddressArgs{addr})
}

func GetModel(id uint64) *tx.Clause {
	return mustClause("getModel", &IDArgs{id})
}

func GetMergeRequest(id uint64) *tx.Clause {
	return mustClause("getMergeRequest", &IDArgs{id})
}

func GetStake(mergeID uint64, voter mmt.Address) *tx.Clause {
	return mustClause("getStake", &GetStakeArgs{mergeID, voter})
}

func GetStakes(mergeID uint64) *tx.Clause {
	return mustClause("getStakes", &IDArgs{mergeID})
}

// View builds a clause of a method without arguments, such as totalSupply.
func View(method string) *tx.Clause {
	return mustClause(method, nil)
}
