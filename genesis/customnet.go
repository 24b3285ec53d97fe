// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package genesis

import (
	"encoding/json"
	"fmt"
	"io"
	"math/big"
	"os"

	"github.com/ethereum/go-ethereum/common/math"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/vechain/mmt/builtin"
	"github.com/vechain/mmt/mmt"
	"github.com/vechain/mmt/state"
)

// CustomGenesis is user customized genesis. JSON documents are accepted as well,
// being valid YAML.
type CustomGenesis struct {
	Name          string           `json:"name" yaml:"name"`
	LaunchTime    uint64           `json:"launchTime" yaml:"launchTime"`
	Token         Token            `json:"token" yaml:"token"`
	Owner         mmt.Address      `json:"owner" yaml:"owner"`
	InitialSupply *HexOrDecimal256 `json:"initialSupply" yaml:"initialSupply"`
	Accounts      []Account        `json:"accounts" yaml:"accounts"`
	Params        Params           `json:"params" yaml:"params"`
}

// Token is the token metadata.
type Token struct {
	Name      string           `json:"name" yaml:"name"`
	Symbol    string           `json:"symbol" yaml:"symbol"`
	MaxSupply *HexOrDecimal256 `json:"maxSupply" yaml:"maxSupply"`
}

// Account is an allocation minted at genesis.
type Account struct {
	Address mmt.Address      `json:"address" yaml:"address"`
	Balance *HexOrDecimal256 `json:"balance" yaml:"balance"`
}

// Params means the protocol params for params contract
type Params struct {
	QuorumVotes        *uint64 `json:"quorumVotes" yaml:"quorumVotes"`
	RewardBasisPoints  *uint64 `json:"rewardBasisPoints" yaml:"rewardBasisPoints"`
	PenaltyBasisPoints *uint64 `json:"penaltyBasisPoints" yaml:"penaltyBasisPoints"`
}

// HexOrDecimal256 marshals big.Int as hex or decimal.
type HexOrDecimal256 math.HexOrDecimal256

// NewHexOrDecimal256 wraps v.
func NewHexOrDecimal256(v *big.Int) *HexOrDecimal256 {
	return (*HexOrDecimal256)(new(big.Int).Set(v))
}

// Big returns the value as big.Int.
func (i *HexOrDecimal256) Big() *big.Int {
	if i == nil {
		return nil
	}
	return (*big.Int)(i)
}

// UnmarshalText implements encoding.TextUnmarshaler, used by yaml.
func (i *HexOrDecimal256) UnmarshalText(input []byte) error {
	bigint, ok := math.ParseBig256(string(input))
	if !ok {
		return fmt.Errorf("invalid hex or decimal integer %q", input)
	}
	*i = HexOrDecimal256(*bigint)
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (i HexOrDecimal256) MarshalText() ([]byte, error) {
	decimal256 := math.HexOrDecimal256(i)
	return decimal256.MarshalText()
}

// UnmarshalJSON implements the json.Unmarshaler interface.
func (i *HexOrDecimal256) UnmarshalJSON(input []byte) error {
	var hex string
	if err := json.Unmarshal(input, &hex); err != nil {
		return (*big.Int)(i).UnmarshalJSON(input)
	}
	return i.UnmarshalText([]byte(hex))
}

// MarshalJSON implements the json.Marshaler interface.
func (i HexOrDecimal256) MarshalJSON() ([]byte, error) {
	text, err := i.MarshalText()
	if err != nil {
		return nil, err
	}
	return json.Marshal(string(text))
}

// DecodeCustomGenesis reads a genesis document, rejecting unknown fields.
func DecodeCustomGenesis(r io.Reader) (*CustomGenesis, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var gen CustomGenesis
	if err := dec.Decode(&gen); err != nil {
		return nil, errors.Wrap(err, "decode genesis")
	}
	return &gen, nil
}

// LoadCustomGenesis reads the genesis document at path.
func LoadCustomGenesis(path string) (*CustomGenesis, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open genesis file")
	}
	defer f.Close()
	return DecodeCustomGenesis(f)
}

func bpParam(name string, v *uint64, def uint64) (*big.Int, error) {
	if v == nil {
		return new(big.Int).SetUint64(def), nil
	}
	if *v > mmt.BasisPoints {
		return nil, fmt.Errorf("%s must not exceed %d", name, mmt.BasisPoints)
	}
	return new(big.Int).SetUint64(*v), nil
}

// NewCustomNet create custom genesis.
func NewCustomNet(gen *CustomGenesis) (*Genesis, error) {
	if gen.Owner.IsZero() {
		return nil, errors.New("owner must be set")
	}

	name := gen.Token.Name
	if name == "" {
		name = mmt.TokenName
	}
	symbol := gen.Token.Symbol
	if symbol == "" {
		symbol = mmt.TokenSymbol
	}
	maxSupply := mmt.MaxSupply
	if gen.Token.MaxSupply != nil {
		if gen.Token.MaxSupply.Big().Sign() < 1 {
			return nil, errors.New("maxSupply must be a non-zero integer")
		}
		maxSupply = gen.Token.MaxSupply.Big()
	}

	quorum := uint64(mmt.QuorumVotes)
	if gen.Params.QuorumVotes != nil {
		if *gen.Params.QuorumVotes == 0 {
			return nil, errors.New("quorumVotes must be a non-zero integer")
		}
		quorum = *gen.Params.QuorumVotes
	}
	rewardBP, err := bpParam("rewardBasisPoints", gen.Params.RewardBasisPoints, mmt.RewardBasisPoints)
	if err != nil {
		return nil, err
	}
	penaltyBP, err := bpParam("penaltyBasisPoints", gen.Params.PenaltyBasisPoints, mmt.PenaltyBasisPoints)
	if err != nil {
		return nil, err
	}

	total := new(big.Int)
	if gen.InitialSupply != nil {
		if gen.InitialSupply.Big().Sign() < 0 {
			return nil, errors.New("initialSupply must be a non-negative integer")
		}
		total.Add(total, gen.InitialSupply.Big())
	}
	for _, a := range gen.Accounts {
		if a.Balance == nil || a.Balance.Big().Sign() < 1 {
			return nil, fmt.Errorf("%s: balance must be a non-zero integer", a.Address)
		}
		total.Add(total, a.Balance.Big())
	}
	if total.Cmp(maxSupply) > 0 {
		return nil, errors.New("initial allocations exceed maxSupply")
	}

	builder := new(Builder).
		Timestamp(gen.LaunchTime).
		State(func(st *state.State) error {
			params := builtin.Params.Native(st)
			if err := params.SetAddress(mmt.KeyOwner, gen.Owner); err != nil {
				return err
			}
			if err := params.Set(mmt.KeyMaxSupply, maxSupply); err != nil {
				return err
			}
			if err := params.Set(mmt.KeyQuorumVotes, new(big.Int).SetUint64(quorum)); err != nil {
				return err
			}
			if err := params.Set(mmt.KeyRewardBasisPoints, rewardBP); err != nil {
				return err
			}
			if err := params.Set(mmt.KeyPenaltyBasisPoints, penaltyBP); err != nil {
				return err
			}
			return builtin.Token.Native(st, nil).SetMetadata(name, symbol)
		})

	if gen.InitialSupply != nil && gen.InitialSupply.Big().Sign() > 0 {
		builder.Call(builtin.Mint(gen.Owner, gen.InitialSupply.Big()), gen.Owner)
	}
	for _, a := range gen.Accounts {
		builder.Call(builtin.Mint(a.Address, a.Balance.Big()), gen.Owner)
	}

	id, err := builder.ComputeID()
	if err != nil {
		return nil, err
	}
	netName := gen.Name
	if netName == "" {
		netName = "customnet"
	}
	return &Genesis{builder, id, netName}, nil
}
