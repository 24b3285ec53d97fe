// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package tx

import (
	"encoding/json"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/rlp"
	"github.com/pkg/errors"

	"github.com/vechain/mmt/mmt"
)

// EventKind names an event variant.
type EventKind string

const (
	KindTransfer       EventKind = "Transfer"
	KindModelCreated   EventKind = "ModelCreated"
	KindMergeRequested EventKind = "MergeRequested"
	KindModelStaked    EventKind = "ModelStaked"
	KindStakeSettled   EventKind = "StakeSettled"
	KindMergeFinalized EventKind = "MergeFinalized"
)

var signatures = map[EventKind]string{
	KindTransfer:       "Transfer(address,address,uint256)",
	KindModelCreated:   "ModelCreated(uint256,address,string)",
	KindMergeRequested: "MergeRequested(uint256,uint256,uint256,address)",
	KindModelStaked:    "ModelStaked(uint256,address,uint256,bool)",
	KindStakeSettled:   "StakeSettled(uint256,address,uint256,uint256,bool)",
	KindMergeFinalized: "MergeFinalized(uint256,bool,uint256,uint256)",
}

// Topic returns the keccak256 hash of the event signature.
func (k EventKind) Topic() mmt.Bytes32 {
	return mmt.Keccak256([]byte(signatures[k]))
}

// Valid reports whether k is a known kind.
func (k EventKind) Valid() bool {
	_, ok := signatures[k]
	return ok
}

// Index holds the indexed fields of an event.
type Index struct {
	MergeID  uint64
	Subjects []mmt.Address
}

// Payload is an event variant.
type Payload interface {
	Kind() EventKind
	Index() Index
}

// Transfer moves tokens. A zero From is a mint, a zero To is a burn.
type Transfer struct {
	From   mmt.Address
	To     mmt.Address
	Amount *big.Int
}

func (e *Transfer) Kind() EventKind { return KindTransfer }
func (e *Transfer) Index() Index {
	return Index{Subjects: []mmt.Address{e.From, e.To}}
}

type ModelCreated struct {
	ModelID uint64
	Creator mmt.Address
	URI     string
}

func (e *ModelCreated) Kind() EventKind { return KindModelCreated }
func (e *ModelCreated) Index() Index {
	return Index{Subjects: []mmt.Address{e.Creator}}
}

type MergeRequested struct {
	MergeID         uint64
	BaseModelID     uint64
	ProposedModelID uint64
	Proposer        mmt.Address
}

func (e *MergeRequested) Kind() EventKind { return KindMergeRequested }
func (e *MergeRequested) Index() Index {
	return Index{MergeID: e.MergeID, Subjects: []mmt.Address{e.Proposer}}
}

// ModelStaked records a stake. Claim is the voter's prediction.
type ModelStaked struct {
	MergeID uint64
	Voter   mmt.Address
	Amount  *big.Int
	Claim   bool
}

func (e *ModelStaked) Kind() EventKind { return KindModelStaked }
func (e *ModelStaked) Index() Index {
	return Index{MergeID: e.MergeID, Subjects: []mmt.Address{e.Voter}}
}

type StakeSettled struct {
	MergeID uint64
	Voter   mmt.Address
	Amount  *big.Int
	Payout  *big.Int
	Won     bool
}

func (e *StakeSettled) Kind() EventKind { return KindStakeSettled }
func (e *StakeSettled) Index() Index {
	return Index{MergeID: e.MergeID, Subjects: []mmt.Address{e.Voter}}
}

type MergeFinalized struct {
	MergeID  uint64
	Accepted bool
	YesStake *big.Int
	NoStake  *big.Int
}

func (e *MergeFinalized) Kind() EventKind { return KindMergeFinalized }
func (e *MergeFinalized) Index() Index {
	return Index{MergeID: e.MergeID}
}

func newPayload(kind EventKind) (Payload, error) {
	switch kind {
	case KindTransfer:
		return &Transfer{}, nil
	case KindModelCreated:
		return &ModelCreated{}, nil
	case KindMergeRequested:
		return &MergeRequested{}, nil
	case KindModelStaked:
		return &ModelStaked{}, nil
	case KindStakeSettled:
		return &StakeSettled{}, nil
	case KindMergeFinalized:
		return &MergeFinalized{}, nil
	}
	return nil, fmt.Errorf("unknown event kind %q", kind)
}

// Event is an emitted event with its payload rlp encoded.
type Event struct {
	Contract mmt.Address
	Kind     EventKind
	Data     []byte
}

// NewEvent encodes payload into an event emitted by contract.
func NewEvent(contract mmt.Address, payload Payload) (*Event, error) {
	data, err := rlp.EncodeToBytes(payload)
	if err != nil {
		return nil, errors.Wrap(err, "encode event")
	}
	return &Event{Contract: contract, Kind: payload.Kind(), Data: data}, nil
}

// Decode decodes the payload variant.
func (e *Event) Decode() (Payload, error) {
	p, err := newPayload(e.Kind)
	if err != nil {
		return nil, err
	}
	if err := rlp.DecodeBytes(e.Data, p); err != nil {
		return nil, errors.Wrapf(err, "decode %v event", e.Kind)
	}
	return p, nil
}

// MarshalJSON renders the event with its decoded payload.
func (e *Event) MarshalJSON() ([]byte, error) {
	payload, err := e.Decode()
	if err != nil {
		return nil, err
	}
	return json.Marshal(&struct {
		Contract mmt.Address `json:"contract"`
		Kind     EventKind   `json:"kind"`
		Payload  Payload     `json:"payload"`
	}{e.Contract, e.Kind, payload})
}

// Events slice of events.
type Events []*Event
