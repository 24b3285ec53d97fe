// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package proposals

import (
	"math/big"

	"github.com/vechain/mmt/builtin/models"
	"github.com/vechain/mmt/builtin/reverts"
	"github.com/vechain/mmt/builtin/solidity"
	"github.com/vechain/mmt/mmt"
	"github.com/vechain/mmt/tx"
)

var (
	countKey     = mmt.Keccak256([]byte("merge-count"))
	proposalsKey = mmt.Keccak256([]byte("merge-requests"))
)

// Registry implements the merge proposal registry.
type Registry struct {
	ctx       *solidity.Context
	models    *models.Registry
	count     *solidity.Uint64
	proposals *solidity.Mapping[solidity.Uint64Key, *Proposal]
}

func New(ctx *solidity.Context, models *models.Registry) *Registry {
	return &Registry{
		ctx:       ctx,
		models:    models,
		count:     solidity.NewUint64(ctx, countKey),
		proposals: solidity.NewMapping[solidity.Uint64Key, *Proposal](ctx, proposalsKey),
	}
}

// CreateMergeRequest opens a pending proposal with zero tallies.
// Both models must exist, otherwise nothing is recorded.
func (r *Registry) CreateMergeRequest(proposer mmt.Address, baseModelID, proposedModelID, now uint64) (uint64, error) {
	for _, id := range []uint64{baseModelID, proposedModelID} {
		ok, err := r.models.Exists(id)
		if err != nil {
			return 0, err
		}
		if !ok {
			return 0, reverts.ErrModelNotFound
		}
	}

	id, err := r.count.Increment()
	if err != nil {
		return 0, err
	}
	if err := r.proposals.Set(solidity.Uint64Key(id), &Proposal{
		ID:              id,
		BaseModelID:     baseModelID,
		ProposedModelID: proposedModelID,
		Proposer:        proposer,
		Status:          StatusPending,
		YesStake:        new(big.Int),
		NoStake:         new(big.Int),
		CreatedAt:       now,
	}); err != nil {
		return 0, err
	}
	if err := r.ctx.Emit(&tx.MergeRequested{
		MergeID:         id,
		BaseModelID:     baseModelID,
		ProposedModelID: proposedModelID,
		Proposer:        proposer,
	}); err != nil {
		return 0, err
	}
	return id, nil
}

// GetMergeRequest returns the proposal, or ErrProposalNotFound.
func (r *Registry) GetMergeRequest(id uint64) (*Proposal, error) {
	if id == 0 {
		return nil, reverts.ErrProposalNotFound
	}
	p, err := r.proposals.Get(solidity.Uint64Key(id))
	if err != nil {
		return nil, err
	}
	if p.ID != id {
		return nil, reverts.ErrProposalNotFound
	}
	if p.YesStake == nil {
		p.YesStake = new(big.Int)
	}
	if p.NoStake == nil {
		p.NoStake = new(big.Int)
	}
	return p, nil
}

// Update stores the mutated proposal.
func (r *Registry) Update(p *Proposal) error {
	return r.proposals.Set(solidity.Uint64Key(p.ID), p)
}

// MergeCount returns the number of created proposals.
func (r *Registry) MergeCount() (uint64, error) {
	return r.count.Get()
}
