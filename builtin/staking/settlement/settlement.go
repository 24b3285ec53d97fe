// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package settlement computes the outcome of a proposal and the payout of
// every stake using checked 256-bit arithmetic. It does not touch state.
package settlement

import (
	"math/big"

	"github.com/holiman/uint256"

	"github.com/vechain/mmt/builtin/reverts"
	"github.com/vechain/mmt/mmt"
)

// Ratios are the reward and penalty rates in basis points.
type Ratios struct {
	RewardBP  uint64
	PenaltyBP uint64
}

// DefaultRatios pays +15% to winners and deducts 25% from losers.
var DefaultRatios = Ratios{RewardBP: mmt.RewardBasisPoints, PenaltyBP: mmt.PenaltyBasisPoints}

// Validate rejects a penalty above 100%.
func (r Ratios) Validate() error {
	if r.PenaltyBP > mmt.BasisPoints {
		return reverts.ErrArithmeticOverflow
	}
	return nil
}

// Accepted decides the outcome by stake weight. A tie is rejected.
func Accepted(yesStake, noStake *big.Int) bool {
	return yesStake.Cmp(noStake) > 0
}

// Position is a stake to settle.
type Position struct {
	Voter      mmt.Address
	Amount     *big.Int
	Prediction bool
}

// Result is the settlement of one position.
type Result struct {
	Voter mmt.Address
	Won   bool
	// Amount is the staked principal.
	Amount *big.Int
	// Payout is returned to the voter.
	Payout *big.Int
	// Reward is minted on top of the principal for winners.
	Reward *big.Int
	// Penalty is withheld from the principal of losers.
	Penalty *big.Int
}

// Returned is the part of the payout that comes out of escrow.
func (r *Result) Returned() *big.Int {
	return new(big.Int).Sub(r.Amount, r.Penalty)
}

// Totals aggregates a settlement.
type Totals struct {
	Escrow  *big.Int
	Rewards *big.Int
	Penalty *big.Int
	Payout  *big.Int
}

var denominator = uint256.NewInt(mmt.BasisPoints)

func fraction(amount *uint256.Int, bp uint64) (*uint256.Int, error) {
	v, overflow := new(uint256.Int).MulDivOverflow(amount, uint256.NewInt(bp), denominator)
	if overflow {
		return nil, reverts.ErrArithmeticOverflow
	}
	return v, nil
}

// Settle computes the payout of a single stake.
func Settle(amount *big.Int, won bool, ratios Ratios) (payout, reward, penalty *big.Int, err error) {
	if amount.Sign() < 0 {
		return nil, nil, nil, reverts.ErrInvalidAmount
	}
	a, overflow := uint256.FromBig(amount)
	if overflow {
		return nil, nil, nil, reverts.ErrArithmeticOverflow
	}
	if won {
		r, err := fraction(a, ratios.RewardBP)
		if err != nil {
			return nil, nil, nil, err
		}
		p, overflow := new(uint256.Int).AddOverflow(a, r)
		if overflow {
			return nil, nil, nil, reverts.ErrArithmeticOverflow
		}
		return p.ToBig(), r.ToBig(), new(big.Int), nil
	}
	pen, err := fraction(a, ratios.PenaltyBP)
	if err != nil {
		return nil, nil, nil, err
	}
	p, underflow := new(uint256.Int).SubOverflow(a, pen)
	if underflow {
		return nil, nil, nil, reverts.ErrArithmeticOverflow
	}
	return p.ToBig(), new(big.Int), pen.ToBig(), nil
}

// Plan settles all positions against the outcome, preserving their order.
func Plan(positions []Position, accepted bool, ratios Ratios) ([]*Result, *Totals, error) {
	if err := ratios.Validate(); err != nil {
		return nil, nil, err
	}
	var (
		results = make([]*Result, 0, len(positions))
		escrow  = new(uint256.Int)
		rewards = new(uint256.Int)
		penalty = new(uint256.Int)
		payout  = new(uint256.Int)
	)
	accumulate := func(sum *uint256.Int, v *big.Int) error {
		x, overflow := uint256.FromBig(v)
		if overflow {
			return reverts.ErrArithmeticOverflow
		}
		if _, overflow := sum.AddOverflow(sum, x); overflow {
			return reverts.ErrArithmeticOverflow
		}
		return nil
	}

	for _, pos := range positions {
		won := pos.Prediction == accepted
		p, r, pen, err := Settle(pos.Amount, won, ratios)
		if err != nil {
			return nil, nil, err
		}
		for _, acc := range []struct {
			sum *uint256.Int
			v   *big.Int
		}{{escrow, pos.Amount}, {rewards, r}, {penalty, pen}, {payout, p}} {
			if err := accumulate(acc.sum, acc.v); err != nil {
				return nil, nil, err
			}
		}
		results = append(results, &Result{
			Voter:   pos.Voter,
			Won:     won,
			Amount:  new(big.Int).Set(pos.Amount),
			Payout:  p,
			Reward:  r,
			Penalty: pen,
		})
	}
	return results, &Totals{
		Escrow:  escrow.ToBig(),
		Rewards: rewards.ToBig(),
		Penalty: penalty.ToBig(),
		Payout:  payout.ToBig(),
	}, nil
}
