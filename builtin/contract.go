// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package builtin

import (
	"github.com/vechain/mmt/builtin/solidity"
	"github.com/vechain/mmt/mmt"
	"github.com/vechain/mmt/state"
)

type contract struct {
	name    string
	Address mmt.Address
}

func newContract(name string) *contract {
	return &contract{
		name,
		mmt.BytesToAddress([]byte(name)),
	}
}

// Name returns the contract name.
func (c *contract) Name() string {
	return c.name
}

func (c *contract) context(state *state.State, emit solidity.EmitFunc) *solidity.Context {
	return solidity.NewContext(c.Address, state, emit)
}
