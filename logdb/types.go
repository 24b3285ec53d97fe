// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package logdb

import (
	"github.com/vechain/mmt/mmt"
	"github.com/vechain/mmt/tx"
)

// Command represents an executed transaction stored in db.
type Command struct {
	Seq       uint64
	TxID      mmt.Bytes32
	Origin    mmt.Address
	Method    string
	Timestamp uint64
	Reverted  bool
	Error     string
	Output    []byte
	Tx        *tx.Transaction
}

// Event represents tx.Event that can be stored in db.
type Event struct {
	Seq       uint64
	Index     uint32
	TxID      mmt.Bytes32
	Timestamp uint64
	Origin    mmt.Address
	Contract  mmt.Address
	Kind      tx.EventKind
	MergeID   uint64
	Subjects  []mmt.Address
	Data      []byte
}

// Decode decodes the event payload.
func (e *Event) Decode() (tx.Payload, error) {
	ev := tx.Event{Contract: e.Contract, Kind: e.Kind, Data: e.Data}
	return ev.Decode()
}

// TxEvent returns the event as emitted.
func (e *Event) TxEvent() *tx.Event {
	return &tx.Event{Contract: e.Contract, Kind: e.Kind, Data: e.Data}
}

type RangeType string

const (
	Seq  RangeType = "seq"
	Time RangeType = "time"
)

type Order string

const (
	ASC  Order = "asc"
	DESC Order = "desc"
)

// Range bounds seq or timestamp, both ends inclusive. To below From leaves the range open.
type Range struct {
	Unit RangeType
	From uint64
	To   uint64
}

type Options struct {
	Offset uint64
	Limit  uint64
}

// EventCriteria matches events on all of its non-nil fields.
type EventCriteria struct {
	Kind     *tx.EventKind
	MergeID  *uint64
	Subject  *mmt.Address
	Contract *mmt.Address
}

// EventFilter filter
type EventFilter struct {
	CriteriaSet []*EventCriteria
	Range       *Range
	Options     *Options
	Order       Order // default asc
}

// CommandFilter filter
type CommandFilter struct {
	Origin          *mmt.Address
	Method          *string
	ExcludeReverted bool
	Range           *Range
	Options         *Options
	Order           Order // default asc
}
