// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package proposals

import (
	"math/big"

	"github.com/vechain/mmt/mmt"
)

// Status is the lifecycle state of a merge proposal.
type Status uint8

const (
	StatusPending Status = iota
	StatusFinalized
)

func (s Status) String() string {
	switch s {
	case StatusPending:
		return "pending"
	case StatusFinalized:
		return "finalized"
	}
	return "unknown"
}

func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Outcome is the result of a finalized proposal.
type Outcome uint8

const (
	OutcomeNone Outcome = iota
	OutcomeAccepted
	OutcomeRejected
)

func (o Outcome) String() string {
	switch o {
	case OutcomeNone:
		return "none"
	case OutcomeAccepted:
		return "accepted"
	case OutcomeRejected:
		return "rejected"
	}
	return "unknown"
}

func (o Outcome) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

// Proposal is a merge request of ProposedModelID into BaseModelID.
type Proposal struct {
	ID              uint64      `json:"id"`
	BaseModelID     uint64      `json:"baseModelId"`
	ProposedModelID uint64      `json:"proposedModelId"`
	Proposer        mmt.Address `json:"proposer"`
	Status          Status      `json:"status"`
	YesStake        *big.Int    `json:"yesStake"`
	NoStake         *big.Int    `json:"noStake"`
	VoteCount       uint64      `json:"voteCount"`
	CreatedAt       uint64      `json:"createdAt"`
	Outcome         Outcome     `json:"outcome"`
	FinalizedAt     uint64      `json:"finalizedAt"`
}

// IsPending reports whether the proposal still accepts stakes.
func (p *Proposal) IsPending() bool {
	return p.Status == StatusPending
}

// TotalStake returns YesStake + NoStake.
func (p *Proposal) TotalStake() *big.Int {
	return new(big.Int).Add(p.YesStake, p.NoStake)
}
