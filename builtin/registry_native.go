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
		{"createModel", false, func(env *xenv.Environment) (any, error) {
			var args CreateModelArgs
			if err := env.ParseArgs(&args); err != nil {
				return nil, err
			}
			return Models.Native(env.State(), env.Log).CreateModel(env.Caller(), args.URI, env.Timestamp())
		}},
		{"getModel", true, func(env *xenv.Environment) (any, error) {
			var args IDArgs
			if err := env.ParseArgs(&args); err != nil {
				return nil, err
			}
			return Models.Native(env.State(), env.Log).GetModel(args.ID)
		}},
		{"modelCount", true, func(env *xenv.Environment) (any, error) {
			return Models.Native(env.State(), env.Log).ModelCount()
		}},
		{"createMergeRequest", false, func(env *xenv.Environment) (any, error) {
			var args CreateMergeRequestArgs
			if err := env.ParseArgs(&args); err != nil {
				return nil, err
			}
			return Proposals.Native(env.State(), env.Log).CreateMergeRequest(env.Caller(), args.BaseModelID, args.ProposedModelID, env.Timestamp())
		}},
		{"getMergeRequest", true, func(env *xenv.Environment) (any, error) {
			var args IDArgs
			if err := env.ParseArgs(&args); err != nil {
				return nil, err
			}
			return Proposals.Native(env.State(), env.Log).GetMergeRequest(args.ID)
		}},
		{"mergeCount", true, func(env *xenv.Environment) (any, error) {
			return Proposals.Native(env.State(), env.Log).MergeCount()
		}},
	}
	for _, d := range defines {
		register(d.name, d.readOnly, d.run)
	}
}
