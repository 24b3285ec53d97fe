// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package solidity

import (
	"github.com/vechain/mmt/mmt"
	"github.com/vechain/mmt/state"
	"github.com/vechain/mmt/tx"
)

// EmitFunc records an event emitted by the contract at address.
type EmitFunc func(address mmt.Address, payload tx.Payload) error

// Context binds storage helpers and the event sink to the account of a native contract.
type Context struct {
	address mmt.Address
	state   *state.State
	emit    EmitFunc
}

func NewContext(address mmt.Address, state *state.State, emit EmitFunc) *Context {
	return &Context{
		address: address,
		state:   state,
		emit:    emit,
	}
}

// Emit logs an event. Without a sink, as in read-only calls, it is dropped.
func (c *Context) Emit(payload tx.Payload) error {
	if c.emit == nil {
		return nil
	}
	return c.emit(c.address, payload)
}

func (c *Context) Address() mmt.Address {
	return c.address
}

func (c *Context) State() *state.State {
	return c.state
}
