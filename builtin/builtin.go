// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package builtin

import (
	"github.com/vechain/mmt/builtin/models"
	"github.com/vechain/mmt/builtin/params"
	"github.com/vechain/mmt/builtin/proposals"
	"github.com/vechain/mmt/builtin/solidity"
	"github.com/vechain/mmt/builtin/staking"
	"github.com/vechain/mmt/builtin/token"
	"github.com/vechain/mmt/state"
)

// Builtin contracts binding.
var (
	Params    = &paramsContract{newContract("Params")}
	Token     = &tokenContract{newContract("Token")}
	Models    = &modelsContract{newContract("Models")}
	Proposals = &proposalsContract{newContract("Proposals")}
	Staking   = &stakingContract{newContract("Staking")}
)

type (
	paramsContract    struct{ *contract }
	tokenContract     struct{ *contract }
	modelsContract    struct{ *contract }
	proposalsContract struct{ *contract }
	stakingContract   struct{ *contract }
)

func (p *paramsContract) Native(state *state.State) *params.Params {
	return params.New(p.Address, state)
}

func (t *tokenContract) Native(state *state.State, emit solidity.EmitFunc) *token.Token {
	return token.New(t.context(state, emit), Params.Native(state))
}

func (m *modelsContract) Native(state *state.State, emit solidity.EmitFunc) *models.Registry {
	return models.New(m.context(state, emit))
}

func (p *proposalsContract) Native(state *state.State, emit solidity.EmitFunc) *proposals.Registry {
	return proposals.New(p.context(state, emit), Models.Native(state, emit))
}

// Native binds the staking contract. Its account holds the escrow.
func (s *stakingContract) Native(state *state.State, emit solidity.EmitFunc) *staking.Staking {
	return staking.New(
		s.context(state, emit),
		Params.Native(state),
		Token.Native(state, emit),
		Proposals.Native(state, emit),
	)
}
