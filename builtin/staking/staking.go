// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staking

import (
	"math/big"

	"github.com/vechain/mmt/builtin/params"
	"github.com/vechain/mmt/builtin/proposals"
	"github.com/vechain/mmt/builtin/reverts"
	"github.com/vechain/mmt/builtin/solidity"
	"github.com/vechain/mmt/builtin/staking/settlement"
	"github.com/vechain/mmt/builtin/staking/stakes"
	"github.com/vechain/mmt/builtin/token"
	"github.com/vechain/mmt/log"
	"github.com/vechain/mmt/mmt"
	"github.com/vechain/mmt/tx"
)

var (
	logger = log.WithContext("pkg", "staking")

	slotEscrow     = mmt.BytesToBytes32([]byte("pending-escrow"))
	slotFinalized  = mmt.BytesToBytes32([]byte("finalized-count"))
	slotAggregates = mmt.BytesToBytes32([]byte("validator-aggregates"))
)

// Staking implements the staking and voting ledger and settles proposals once
// they reach the quorum.
type Staking struct {
	ctx       *solidity.Context
	params    *params.Params
	token     *token.Token
	proposals *proposals.Registry

	stakesService *stakes.Service
	escrow        *solidity.Uint256
	finalized     *solidity.Uint64
	aggregates    *solidity.Mapping[mmt.Address, *Aggregate]
}

// New create a new instance. Escrowed tokens are held by the account of ctx.
func New(ctx *solidity.Context, params *params.Params, token *token.Token, proposals *proposals.Registry) *Staking {
	return &Staking{
		ctx:       ctx,
		params:    params,
		token:     token,
		proposals: proposals,

		stakesService: stakes.New(ctx),
		escrow:        solidity.NewUint256(ctx, slotEscrow),
		finalized:     solidity.NewUint64(ctx, slotFinalized),
		aggregates:    solidity.NewMapping[mmt.Address, *Aggregate](ctx, slotAggregates),
	}
}

// Address returns the escrow account.
func (s *Staking) Address() mmt.Address {
	return s.ctx.Address()
}

// Quorum returns the vote count that finalizes a proposal.
func (s *Staking) Quorum() (uint64, error) {
	return s.params.GetUint64(mmt.KeyQuorumVotes, mmt.QuorumVotes)
}

// Ratios returns the reward and penalty rates.
func (s *Staking) Ratios() (settlement.Ratios, error) {
	reward, err := s.params.GetUint64(mmt.KeyRewardBasisPoints, mmt.RewardBasisPoints)
	if err != nil {
		return settlement.Ratios{}, err
	}
	penalty, err := s.params.GetUint64(mmt.KeyPenaltyBasisPoints, mmt.PenaltyBasisPoints)
	if err != nil {
		return settlement.Ratios{}, err
	}
	return settlement.Ratios{RewardBP: reward, PenaltyBP: penalty}, nil
}

// StakeOnMerge escrows amount from voter on the prediction of a pending proposal.
// The stake that brings the vote count to the quorum finalizes the proposal.
func (s *Staking) StakeOnMerge(voter mmt.Address, mergeID uint64, amount *big.Int, prediction bool, now uint64) (*Tally, error) {
	p, err := s.proposals.GetMergeRequest(mergeID)
	if err != nil {
		return nil, err
	}
	if !p.IsPending() {
		return nil, reverts.ErrProposalNotPending
	}
	if voter == s.Address() {
		return nil, reverts.ErrReservedOrigin
	}
	if amount == nil || amount.Sign() <= 0 {
		return nil, reverts.ErrInvalidAmount
	}
	bal, err := s.token.BalanceOf(voter)
	if err != nil {
		return nil, err
	}
	if bal.Cmp(amount) < 0 {
		return nil, reverts.ErrInsufficientBalance
	}
	existing, err := s.stakesService.Get(mergeID, voter)
	if err != nil {
		return nil, err
	}
	if !existing.IsEmpty() && existing.Prediction != prediction {
		return nil, reverts.ErrConflictingPrediction
	}

	if err := s.token.Transfer(voter, s.Address(), amount); err != nil {
		return nil, err
	}
	if err := s.escrow.Add(amount); err != nil {
		return nil, err
	}
	if _, err := s.stakesService.Add(mergeID, voter, amount, prediction, now); err != nil {
		return nil, err
	}
	if prediction {
		p.YesStake.Add(p.YesStake, amount)
	} else {
		p.NoStake.Add(p.NoStake, amount)
	}
	p.VoteCount++

	if err := s.ctx.Emit(&tx.ModelStaked{
		MergeID: mergeID,
		Voter:   voter,
		Amount:  new(big.Int).Set(amount),
		Claim:   prediction,
	}); err != nil {
		return nil, err
	}

	quorum, err := s.Quorum()
	if err != nil {
		return nil, err
	}
	if p.VoteCount >= quorum {
		if err := s.finalize(p, now); err != nil {
			return nil, err
		}
	}
	if err := s.proposals.Update(p); err != nil {
		return nil, err
	}
	return newTally(p), nil
}

// finalize settles every stake of the proposal and marks it finalized.
func (s *Staking) finalize(p *proposals.Proposal, now uint64) error {
	ratios, err := s.Ratios()
	if err != nil {
		return err
	}
	all, err := s.stakesService.All(p.ID)
	if err != nil {
		return err
	}
	positions := make([]settlement.Position, 0, len(all))
	for _, st := range all {
		positions = append(positions, settlement.Position{
			Voter:      st.Voter,
			Amount:     st.Amount,
			Prediction: st.Prediction,
		})
	}

	accepted := settlement.Accepted(p.YesStake, p.NoStake)
	results, totals, err := settlement.Plan(positions, accepted, ratios)
	if err != nil {
		return err
	}

	escrow, err := s.escrow.Get()
	if err != nil {
		return err
	}
	if escrow.Cmp(totals.Escrow) < 0 {
		return reverts.ErrArithmeticOverflow
	}

	for _, r := range results {
		if err := s.settle(p.ID, r); err != nil {
			return err
		}
	}
	if err := s.escrow.Sub(totals.Escrow); err != nil {
		return err
	}
	if _, err := s.finalized.Increment(); err != nil {
		return err
	}

	p.Status = proposals.StatusFinalized
	p.FinalizedAt = now
	if accepted {
		p.Outcome = proposals.OutcomeAccepted
	} else {
		p.Outcome = proposals.OutcomeRejected
	}

	logger.Debug("merge finalized",
		"mergeId", p.ID,
		"outcome", p.Outcome,
		"yes", p.YesStake,
		"no", p.NoStake,
		"minted", totals.Rewards,
		"burned", totals.Penalty,
	)

	return s.ctx.Emit(&tx.MergeFinalized{
		MergeID:  p.ID,
		Accepted: accepted,
		YesStake: new(big.Int).Set(p.YesStake),
		NoStake:  new(big.Int).Set(p.NoStake),
	})
}

func (s *Staking) settle(mergeID uint64, r *settlement.Result) error {
	if returned := r.Returned(); returned.Sign() > 0 {
		if err := s.token.Transfer(s.Address(), r.Voter, returned); err != nil {
			return err
		}
	}
	if err := s.token.MintReward(r.Voter, r.Reward); err != nil {
		return err
	}
	if err := s.token.Burn(s.Address(), r.Penalty); err != nil {
		return err
	}

	agg, err := s.Aggregate(r.Voter)
	if err != nil {
		return err
	}
	agg.Rewards.Add(agg.Rewards, r.Reward)
	agg.Penalties.Add(agg.Penalties, r.Penalty)
	if r.Won {
		agg.Wins++
	} else {
		agg.Losses++
	}
	if err := s.aggregates.Set(r.Voter, agg); err != nil {
		return err
	}

	return s.ctx.Emit(&tx.StakeSettled{
		MergeID: mergeID,
		Voter:   r.Voter,
		Amount:  new(big.Int).Set(r.Amount),
		Payout:  new(big.Int).Set(r.Payout),
		Won:     r.Won,
	})
}

// GetStake returns the stake of voter on the proposal.
func (s *Staking) GetStake(mergeID uint64, voter mmt.Address) (*stakes.Stake, error) {
	return s.stakesService.Get(mergeID, voter)
}

// Stakes returns every stake of the proposal in the order voters joined.
func (s *Staking) Stakes(mergeID uint64) ([]*stakes.Stake, error) {
	return s.stakesService.All(mergeID)
}

// Voters returns the voters of the proposal in the order they joined.
func (s *Staking) Voters(mergeID uint64) ([]mmt.Address, error) {
	return s.stakesService.Voters(mergeID)
}

// Aggregate returns the settlement history of a validator.
func (s *Staking) Aggregate(addr mmt.Address) (*Aggregate, error) {
	agg, err := s.aggregates.Get(addr)
	if err != nil {
		return nil, err
	}
	if agg.Rewards == nil {
		agg.Rewards = new(big.Int)
	}
	if agg.Penalties == nil {
		agg.Penalties = new(big.Int)
	}
	return agg, nil
}

// ValidatorRewards returns cumulative rewards minus cumulative penalties.
func (s *Staking) ValidatorRewards(addr mmt.Address) (*big.Int, error) {
	agg, err := s.Aggregate(addr)
	if err != nil {
		return nil, err
	}
	return agg.Net(), nil
}

// PendingEscrow returns the total held for unsettled stakes.
func (s *Staking) PendingEscrow() (*big.Int, error) {
	return s.escrow.Get()
}

// FinalizedCount returns the number of finalized proposals.
func (s *Staking) FinalizedCount() (uint64, error) {
	return s.finalized.Get()
}
