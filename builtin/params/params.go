// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package params

import (
	"math/big"

	"github.com/ethereum/go-ethereum/rlp"

	"github.com/vechain/mmt/mmt"
	"github.com/vechain/mmt/state"
)

// Params binder of `Params` contract, holding protocol parameters set at genesis.
type Params struct {
	addr  mmt.Address
	state *state.State
}

func New(addr mmt.Address, state *state.State) *Params {
	return &Params{addr, state}
}

// Get native way to get param.
func (p *Params) Get(key mmt.Bytes32) (*big.Int, error) {
	var v big.Int
	err := p.state.DecodeStorage(p.addr, key, func(raw []byte) error {
		if len(raw) == 0 {
			return nil
		}
		return rlp.DecodeBytes(raw, &v)
	})
	return &v, err
}

// Set native way to set param.
func (p *Params) Set(key mmt.Bytes32, value *big.Int) error {
	return p.state.EncodeStorage(p.addr, key, func() ([]byte, error) {
		if value.Sign() == 0 {
			return nil, nil
		}
		return rlp.EncodeToBytes(value)
	})
}

// GetUint64 returns the param, or def when it is unset.
func (p *Params) GetUint64(key mmt.Bytes32, def uint64) (uint64, error) {
	v, err := p.Get(key)
	if err != nil {
		return 0, err
	}
	if v.Sign() == 0 {
		return def, nil
	}
	return v.Uint64(), nil
}

// GetAddress returns the param interpreted as an address.
func (p *Params) GetAddress(key mmt.Bytes32) (mmt.Address, error) {
	v, err := p.Get(key)
	if err != nil {
		return mmt.Address{}, err
	}
	return mmt.BytesToAddress(v.Bytes()), nil
}

// SetAddress stores an address param.
func (p *Params) SetAddress(key mmt.Bytes32, addr mmt.Address) error {
	return p.Set(key, new(big.Int).SetBytes(addr.Bytes()))
}
