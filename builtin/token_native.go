// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package builtin

import (
	"github.com/vechain/mmt/xenv"
)

func register(name string, readOnly bool, run func(env *xenv.Environment) (any, error)) {
	if _, ok := nativeMethods[name]; ok {
		panic("duplicated native method " + name)
	}
	nativeMethods[name] = &NativeMethod{name: name, readOnly: readOnly, run: run}
}

func init() {
	defines := []struct {
		name     string
		readOnly bool
		run      func(env *xenv.Environment) (any, error)
	}{
		{"name", true, func(env *xenv.Environment) (any, error) {
			return Token.Native(env.State(), env.Log).Name()
		}},
		{"symbol", true, func(env *xenv.Environment) (any, error) {
			return Token.Native(env.State(), env.Log).Symbol()
		}},
		{"decimals", true, func(env *xenv.Environment) (any, error) {
			return Token.Native(env.State(), env.Log).Decimals(), nil
		}},
		{"owner", true, func(env *xenv.Environment) (any, error) {
			return Token.Native(env.State(), env.Log).Owner()
		}},
		{"MAX_SUPPLY", true, func(env *xenv.Environment) (any, error) {
			return Token.Native(env.State(), env.Log).MaxSupply()
		}},
		{"totalSupply", true, func(env *xenv.Environment) (any, error) {
			return Token.Native(env.State(), env.Log).TotalSupply()
		}},
		{"totalBurned", true, func(env *xenv.Environment) (any, error) {
			return Token.Native(env.State(), env.Log).TotalBurned()
		}},
		{"balanceOf", true, func(env *xenv.Environment) (any, error) {
			var args AddressArgs
			if err := env.ParseArgs(&args); err != nil {
				return nil, err
			}
			return Token.Native(env.State(), env.Log).BalanceOf(args.Addr)
		}},
		{"mint", false, func(env *xenv.Environment) (any, error) {
			var args AmountArgs
			if err := env.ParseArgs(&args); err != nil {
				return nil, err
			}
			return nil, Token.Native(env.State(), env.Log).Mint(env.Caller(), args.To, args.Amount)
		}},
		{"transfer", false, func(env *xenv.Environment) (any, error) {
			var args AmountArgs
			if err := env.ParseArgs(&args); err != nil {
				return nil, err
			}
			if err := Token.Native(env.State(), env.Log).Transfer(env.Caller(), args.To, args.Amount); err != nil {
				return nil, err
			}
			return true, nil
		}},
	}
	for _, d := range defines {
		register(d.name, d.readOnly, d.run)
	}
}
