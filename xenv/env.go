// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package xenv

import (
	"github.com/ethereum/go-ethereum/rlp"
	"github.com/pkg/errors"

	"github.com/vechain/mmt/builtin/reverts"
	"github.com/vechain/mmt/mmt"
	"github.com/vechain/mmt/state"
	"github.com/vechain/mmt/tx"
)

// TransactionContext transaction context.
type TransactionContext struct {
	ID        mmt.Bytes32
	Origin    mmt.Address
	Timestamp uint64
	Nonce     uint64
}

// Environment an env to execute native method.
type Environment struct {
	state  *state.State
	txCtx  *TransactionContext
	args   []byte
	events tx.Events
}

// New create a new env.
func New(state *state.State, txCtx *TransactionContext, args []byte) *Environment {
	return &Environment{
		state: state,
		txCtx: txCtx,
		args:  args,
	}
}

func (env *Environment) State() *state.State                     { return env.state }
func (env *Environment) TransactionContext() *TransactionContext { return env.txCtx }
func (env *Environment) Caller() mmt.Address                     { return env.txCtx.Origin }
func (env *Environment) Timestamp() uint64                       { return env.txCtx.Timestamp }

// ParseArgs decodes the rlp encoded method arguments into val.
func (env *Environment) ParseArgs(val any) error {
	if err := rlp.DecodeBytes(env.args, val); err != nil {
		return errors.WithMessage(reverts.ErrInvalidArgs, err.Error())
	}
	return nil
}

// Log records an event emitted by the contract at address.
func (env *Environment) Log(address mmt.Address, payload tx.Payload) error {
	ev, err := tx.NewEvent(address, payload)
	if err != nil {
		return err
	}
	env.events = append(env.events, ev)
	return nil
}

// Events returns the events emitted so far in emission order.
func (env *Environment) Events() tx.Events {
	return env.events
}
