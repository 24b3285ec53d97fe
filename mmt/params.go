// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package mmt

import (
	"math/big"
)

// Token constants.
const (
	TokenName     = "ModelMerge Token"
	TokenSymbol   = "MMT"
	TokenDecimals = 18
)

// Protocol constants of merge staking.
const (
	// QuorumVotes is the number of accepted stakes that finalizes a merge proposal.
	QuorumVotes uint64 = 100

	// BasisPoints is the denominator of reward and penalty ratios.
	BasisPoints uint64 = 10000

	// RewardBasisPoints is paid on top of the principal to the winning side (15%).
	RewardBasisPoints uint64 = 1500

	// PenaltyBasisPoints is deducted from the principal of the losing side (25%).
	PenaltyBasisPoints uint64 = 2500
)

// Keys of protocol params stored in state.
var (
	KeyQuorumVotes        = BytesToBytes32([]byte("quorum-votes"))
	KeyRewardBasisPoints  = BytesToBytes32([]byte("reward-basis-points"))
	KeyPenaltyBasisPoints = BytesToBytes32([]byte("penalty-basis-points"))
	KeyMaxSupply          = BytesToBytes32([]byte("max-supply"))
	KeyOwner              = BytesToBytes32([]byte("owner"))
)

var (
	// E18 is 10^18, one whole token in wei.
	E18 = big.NewInt(1e18)

	// MaxSupply is the default hard cap of the token, 100 million tokens.
	MaxSupply = new(big.Int).Mul(big.NewInt(100_000_000), E18)

	// InitialSupply is the default amount minted to the owner at genesis, 10 million tokens.
	InitialSupply = new(big.Int).Mul(big.NewInt(10_000_000), E18)
)

// Tokens converts an amount of whole tokens into wei.
func Tokens(n int64) *big.Int {
	return new(big.Int).Mul(big.NewInt(n), E18)
}
