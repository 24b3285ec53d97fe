// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package genesis

import (
	"github.com/vechain/mmt/mmt"
	"github.com/vechain/mmt/state"
	"github.com/vechain/mmt/tx"
)

// Genesis to build the initial ledger state.
type Genesis struct {
	builder *Builder
	id      mmt.Bytes32
	name    string
}

// Build build the genesis state into stater.
func (g *Genesis) Build(stater *state.Stater) (tx.Events, error) {
	_, events, err := g.builder.Build(stater)
	return events, err
}

// ID returns genesis ID.
func (g *Genesis) ID() mmt.Bytes32 {
	return g.id
}

// Name returns network name.
func (g *Genesis) Name() string {
	return g.name
}
