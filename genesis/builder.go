// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package genesis

import (
	"encoding/binary"

	"github.com/pkg/errors"

	"github.com/vechain/mmt/builtin"
	"github.com/vechain/mmt/lvldb"
	"github.com/vechain/mmt/mmt"
	"github.com/vechain/mmt/state"
	"github.com/vechain/mmt/tx"
	"github.com/vechain/mmt/xenv"
)

// Builder helper to build genesis state.
type Builder struct {
	timestamp uint64

	stateProcs []func(state *state.State) error
	calls      []call
}

type call struct {
	clause *tx.Clause
	caller mmt.Address
}

// Timestamp set timestamp.
func (b *Builder) Timestamp(t uint64) *Builder {
	b.timestamp = t
	return b
}

// State add a state process
func (b *Builder) State(proc func(state *state.State) error) *Builder {
	b.stateProcs = append(b.stateProcs, proc)
	return b
}

// Call add a native method call.
func (b *Builder) Call(clause *tx.Clause, caller mmt.Address) *Builder {
	b.calls = append(b.calls, call{clause, caller})
	return b
}

// ComputeID compute genesis ID.
func (b *Builder) ComputeID() (mmt.Bytes32, error) {
	db, err := lvldb.NewMem()
	if err != nil {
		return mmt.Bytes32{}, err
	}
	defer db.Close()

	id, _, err := b.Build(state.NewStater(db))
	return id, err
}

// Build applies the presets to an empty stater and commits the result.
func (b *Builder) Build(stater *state.Stater) (id mmt.Bytes32, events tx.Events, err error) {
	st := stater.NewState()

	for _, proc := range b.stateProcs {
		if err := proc(st); err != nil {
			return mmt.Bytes32{}, nil, errors.Wrap(err, "state process")
		}
	}

	for _, call := range b.calls {
		env := xenv.New(st, &xenv.TransactionContext{
			Origin:    call.caller,
			Timestamp: b.timestamp,
		}, call.clause.Args())
		if _, err := builtin.Call(env, call.clause.Method()); err != nil {
			return mmt.Bytes32{}, nil, errors.Wrapf(err, "call %v", call.clause.Method())
		}
		events = append(events, env.Events()...)
	}

	stage := st.Stage()
	var ts [8]byte
	binary.BigEndian.PutUint64(ts[:], b.timestamp)
	id = mmt.Blake2b(stage.Hash().Bytes(), ts[:])

	if err := stater.Commit(stage); err != nil {
		return mmt.Bytes32{}, nil, errors.Wrap(err, "commit state")
	}
	return id, events, nil
}
