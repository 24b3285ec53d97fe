// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package models

import (
	"github.com/vechain/mmt/builtin/reverts"
	"github.com/vechain/mmt/builtin/solidity"
	"github.com/vechain/mmt/mmt"
	"github.com/vechain/mmt/tx"
)

var (
	countKey  = mmt.Keccak256([]byte("model-count"))
	modelsKey = mmt.Keccak256([]byte("models"))
)

// Model is a registered model artifact. Records are immutable once created.
type Model struct {
	ID        uint64      `json:"id"`
	Creator   mmt.Address `json:"creator"`
	URI       string      `json:"uri"`
	Exists    bool        `json:"exists"`
	CreatedAt uint64      `json:"createdAt"`
}

// Registry implements the model registry.
type Registry struct {
	ctx    *solidity.Context
	count  *solidity.Uint64
	models *solidity.Mapping[solidity.Uint64Key, *Model]
}

func New(ctx *solidity.Context) *Registry {
	return &Registry{
		ctx:    ctx,
		count:  solidity.NewUint64(ctx, countKey),
		models: solidity.NewMapping[solidity.Uint64Key, *Model](ctx, modelsKey),
	}
}

// CreateModel registers a model under the next sequential id, starting at 1.
// URIs are not required to be unique.
func (r *Registry) CreateModel(creator mmt.Address, uri string, now uint64) (uint64, error) {
	id, err := r.count.Increment()
	if err != nil {
		return 0, err
	}
	if err := r.models.Set(solidity.Uint64Key(id), &Model{
		ID:        id,
		Creator:   creator,
		URI:       uri,
		Exists:    true,
		CreatedAt: now,
	}); err != nil {
		return 0, err
	}
	if err := r.ctx.Emit(&tx.ModelCreated{ModelID: id, Creator: creator, URI: uri}); err != nil {
		return 0, err
	}
	return id, nil
}

// GetModel returns the model, or ErrModelNotFound.
func (r *Registry) GetModel(id uint64) (*Model, error) {
	m, err := r.models.Get(solidity.Uint64Key(id))
	if err != nil {
		return nil, err
	}
	if !m.Exists {
		return nil, reverts.ErrModelNotFound
	}
	return m, nil
}

// Exists reports whether a model with the id was created.
func (r *Registry) Exists(id uint64) (bool, error) {
	m, err := r.models.Get(solidity.Uint64Key(id))
	if err != nil {
		return false, err
	}
	return m.Exists, nil
}

// ModelCount returns the number of created models, which is also the highest id.
func (r *Registry) ModelCount() (uint64, error) {
	return r.count.Get()
}
