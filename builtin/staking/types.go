// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staking

import (
	"math/big"

	"github.com/vechain/mmt/builtin/proposals"
)

// Tally is the state of a proposal after a stake was applied.
type Tally struct {
	MergeID   uint64            `json:"mergeId"`
	YesStake  *big.Int          `json:"yesStake"`
	NoStake   *big.Int          `json:"noStake"`
	VoteCount uint64            `json:"voteCount"`
	Finalized bool              `json:"finalized"`
	Outcome   proposals.Outcome `json:"outcome"`
}

func newTally(p *proposals.Proposal) *Tally {
	return &Tally{
		MergeID:   p.ID,
		YesStake:  new(big.Int).Set(p.YesStake),
		NoStake:   new(big.Int).Set(p.NoStake),
		VoteCount: p.VoteCount,
		Finalized: !p.IsPending(),
		Outcome:   p.Outcome,
	}
}

// Aggregate is the settlement history of a validator.
type Aggregate struct {
	Rewards   *big.Int `json:"rewards"`
	Penalties *big.Int `json:"penalties"`
	Wins      uint64   `json:"wins"`
	Losses    uint64   `json:"losses"`
}

// Net returns rewards minus penalties. It may be negative.
func (a *Aggregate) Net() *big.Int {
	return new(big.Int).Sub(a.Rewards, a.Penalties)
}
