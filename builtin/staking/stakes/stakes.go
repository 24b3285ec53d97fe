// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package stakes

import (
	"encoding/binary"
	"math/big"

	"github.com/vechain/mmt/builtin/reverts"
	"github.com/vechain/mmt/builtin/solidity"
	"github.com/vechain/mmt/mmt"
)

var (
	slotStakes      = mmt.BytesToBytes32([]byte("stakes"))
	slotVoters      = mmt.BytesToBytes32([]byte("voters"))
	slotVoterCounts = mmt.BytesToBytes32([]byte("voter-counts"))
)

// Stake is the position of one voter on one proposal. Repeated stakes on the
// same side accumulate into Amount.
type Stake struct {
	MergeID    uint64      `json:"mergeId"`
	Voter      mmt.Address `json:"voter"`
	Amount     *big.Int    `json:"amount"`
	Prediction bool        `json:"prediction"`
	PlacedAt   uint64      `json:"placedAt"`
	Count      uint64      `json:"count"`
}

// IsEmpty reports whether no stake was placed.
func (s *Stake) IsEmpty() bool {
	return s.Count == 0
}

type stakeKey struct {
	mergeID uint64
	voter   mmt.Address
}

func (k stakeKey) Bytes() []byte {
	b := make([]byte, 8, 8+mmt.AddressLength)
	binary.BigEndian.PutUint64(b, k.mergeID)
	return append(b, k.voter[:]...)
}

type voterKey struct {
	mergeID uint64
	index   uint64
}

func (k voterKey) Bytes() []byte {
	var b [16]byte
	binary.BigEndian.PutUint64(b[:8], k.mergeID)
	binary.BigEndian.PutUint64(b[8:], k.index)
	return b[:]
}

// Service keeps stake records and the order voters first staked in.
type Service struct {
	stakes      *solidity.Mapping[stakeKey, *Stake]
	voters      *solidity.Mapping[voterKey, mmt.Address]
	voterCounts *solidity.Mapping[solidity.Uint64Key, uint64]
}

func New(sctx *solidity.Context) *Service {
	return &Service{
		stakes:      solidity.NewMapping[stakeKey, *Stake](sctx, slotStakes),
		voters:      solidity.NewMapping[voterKey, mmt.Address](sctx, slotVoters),
		voterCounts: solidity.NewMapping[solidity.Uint64Key, uint64](sctx, slotVoterCounts),
	}
}

// Get returns the stake of voter on the proposal. An absent stake is empty, not an error.
func (s *Service) Get(mergeID uint64, voter mmt.Address) (*Stake, error) {
	st, err := s.stakes.Get(stakeKey{mergeID, voter})
	if err != nil {
		return nil, err
	}
	if st.IsEmpty() {
		return &Stake{MergeID: mergeID, Voter: voter, Amount: new(big.Int)}, nil
	}
	return st, nil
}

// Add records a stake of amount on prediction. A voter may only add to the side
// they first chose.
func (s *Service) Add(mergeID uint64, voter mmt.Address, amount *big.Int, prediction bool, now uint64) (*Stake, error) {
	st, err := s.Get(mergeID, voter)
	if err != nil {
		return nil, err
	}
	if st.IsEmpty() {
		if err := s.appendVoter(mergeID, voter); err != nil {
			return nil, err
		}
		st.Prediction = prediction
	} else if st.Prediction != prediction {
		return nil, reverts.ErrConflictingPrediction
	}

	st.Amount = new(big.Int).Add(st.Amount, amount)
	st.PlacedAt = now
	st.Count++
	if err := s.stakes.Set(stakeKey{mergeID, voter}, st); err != nil {
		return nil, err
	}
	return st, nil
}

func (s *Service) appendVoter(mergeID uint64, voter mmt.Address) error {
	n, err := s.voterCounts.Get(solidity.Uint64Key(mergeID))
	if err != nil {
		return err
	}
	if err := s.voters.Set(voterKey{mergeID, n}, voter); err != nil {
		return err
	}
	return s.voterCounts.Set(solidity.Uint64Key(mergeID), n+1)
}

// VoterCount returns the number of distinct voters on the proposal.
func (s *Service) VoterCount(mergeID uint64) (uint64, error) {
	return s.voterCounts.Get(solidity.Uint64Key(mergeID))
}

// Voters returns the distinct voters in the order they first staked.
func (s *Service) Voters(mergeID uint64) ([]mmt.Address, error) {
	n, err := s.VoterCount(mergeID)
	if err != nil {
		return nil, err
	}
	voters := make([]mmt.Address, 0, n)
	for i := uint64(0); i < n; i++ {
		v, err := s.voters.Get(voterKey{mergeID, i})
		if err != nil {
			return nil, err
		}
		voters = append(voters, v)
	}
	return voters, nil
}

// All returns the stakes of the proposal in voter order.
func (s *Service) All(mergeID uint64) ([]*Stake, error) {
	voters, err := s.Voters(mergeID)
	if err != nil {
		return nil, err
	}
	all := make([]*Stake, 0, len(voters))
	for _, v := range voters {
		st, err := s.Get(mergeID, v)
		if err != nil {
			return nil, err
		}
		all = append(all, st)
	}
	return all, nil
}
