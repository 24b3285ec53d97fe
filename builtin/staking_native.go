// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package builtin

import (
	"github.com/vechain/mmt/xenv"
)

func init() {
	defines := []struct {
		name     string
		readOnly bool
		run      func(env *xenv.Environment) (any, error)
	}{
		{"stakeOnMerge", false, func(env *xenv.Environment) (any, error) {
			var args StakeOnMergeArgs
			if err := env.ParseArgs(&args); err != nil {
				return nil, err
			}
			return Staking.Native(env.State(), env.Log).StakeOnMerge(env.Caller(), args.MergeID, args.Amount, args.Prediction, env.Timestamp())
		}},
		{"getStake", true, func(env *xenv.Environment) (any, error) {
			var args GetStakeArgs
			if err := env.ParseArgs(&args); err != nil {
				return nil, err
			}
			return Staking.Native(env.State(), env.Log).GetStake(args.MergeID, args.Voter)
		}},
		{"getStakes", true, func(env *xenv.Environment) (any, error) {
			var args IDArgs
			if err := env.ParseArgs(&args); err != nil {
				return nil, err
			}
			return Staking.Native(env.State(), env.Log).Stakes(args.ID)
		}},
		{"getValidatorRewards", true, func(env *xenv.Environment) (any, error) {
			var args AddressArgs
			if err := env.ParseArgs(&args); err != nil {
				return nil, err
			}
			rewards, err := Staking.Native(env.State(), env.Log).ValidatorRewards(args.Addr)
			if err != nil {
				return nil, err
			}
			return NewSignedAmount(rewards), nil
		}},
		{"pendingEscrow", true, func(env *xenv.Environment) (any, error) {
			return Staking.Native(env.State(), env.Log).PendingEscrow()
		}},
		{"QUORUM", true, func(env *xenv.Environment) (any, error) {
			return Staking.Native(env.State(), env.Log).Quorum()
		}},
	}
	for _, d := range defines {
		register(d.name, d.readOnly, d.run)
	}
}
