// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package builtin

import (
	"fmt"
	"sort"

	"github.com/ethereum/go-ethereum/rlp"
	"github.com/pkg/errors"

	"github.com/vechain/mmt/builtin/reverts"
	"github.com/vechain/mmt/mmt"
	"github.com/vechain/mmt/xenv"
)

// NativeMethod is a callable entry point of the builtin contracts.
type NativeMethod struct {
	name     string
	readOnly bool
	run      func(env *xenv.Environment) (any, error)
}

var nativeMethods = make(map[string]*NativeMethod)

// FindNativeMethod returns the method registered under name.
func FindNativeMethod(name string) (*NativeMethod, bool) {
	m, ok := nativeMethods[name]
	return m, ok
}

// NativeMethodNames returns all registered method names, sorted.
func NativeMethodNames() []string {
	names := make([]string, 0, len(nativeMethods))
	for name := range nativeMethods {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (m *NativeMethod) Name() string {
	return m.name
}

// ReadOnly reports whether the method never mutates state.
func (m *NativeMethod) ReadOnly() bool {
	return m.readOnly
}

// IsContract reports whether addr is the account of a builtin contract.
// Such accounts only move tokens through contract logic.
func IsContract(addr mmt.Address) bool {
	switch addr {
	case Params.Address, Token.Address, Models.Address, Proposals.Address, Staking.Address:
		return true
	}
	return false
}

// Call runs the method and returns its rlp encoded output.
// Mutating methods revert when the caller is a builtin contract.
func (m *NativeMethod) Call(env *xenv.Environment) (output []byte, err error) {
	if !m.readOnly && IsContract(env.Caller()) {
		return nil, errors.WithMessage(reverts.ErrReservedOrigin, m.name)
	}
	defer func() {
		if e := recover(); e != nil {
			err = fmt.Errorf("native %v: %v", m.name, e)
		}
	}()

	out, err := m.run(env)
	if err != nil {
		return nil, err
	}
	if out == nil {
		return nil, nil
	}
	data, err := rlp.EncodeToBytes(out)
	if err != nil {
		return nil, errors.Wrapf(err, "encode %v output", m.name)
	}
	return data, nil
}

// Call executes the clause method in env.
func Call(env *xenv.Environment, method string) ([]byte, error) {
	m, ok := FindNativeMethod(method)
	if !ok {
		return nil, errors.WithMessage(reverts.ErrUnknownMethod, method)
	}
	return m.Call(env)
}
