// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package tx

import (
	"fmt"
	"io"

	"github.com/ethereum/go-ethereum/rlp"

	"github.com/vechain/mmt/mmt"
)

// Transaction is an immutable command submitted to the runtime.
type Transaction struct {
	body body

	cache struct {
		id *mmt.Bytes32
	}
}

type body struct {
	Origin    mmt.Address
	Clause    *Clause
	Timestamp uint64
	Nonce     uint64
}

// ID returns the id of tx, blake2b over its rlp encoding.
func (t *Transaction) ID() mmt.Bytes32 {
	if cached := t.cache.id; cached != nil {
		return *cached
	}
	id := mmt.Blake2bFn(func(w io.Writer) {
		rlp.Encode(w, t)
	})
	t.cache.id = &id
	return id
}

// Origin returns the caller of the command.
func (t *Transaction) Origin() mmt.Address {
	return t.body.Origin
}

// Clause returns the called method and its arguments.
func (t *Transaction) Clause() *Clause {
	return t.body.Clause
}

// Timestamp returns the command time in unix seconds.
func (t *Transaction) Timestamp() uint64 {
	return t.body.Timestamp
}

// Nonce returns the sequence number assigned by the runtime.
func (t *Transaction) Nonce() uint64 {
	return t.body.Nonce
}

// EncodeRLP implements rlp.Encoder
func (t *Transaction) EncodeRLP(w io.Writer) error {
	return rlp.Encode(w, &t.body)
}

// DecodeRLP implements rlp.Decoder
func (t *Transaction) DecodeRLP(s *rlp.Stream) error {
	var body body
	if err := s.Decode(&body); err != nil {
		return err
	}
	*t = Transaction{body: body}
	return nil
}

func (t *Transaction) String() string {
	return fmt.Sprintf(`
	Tx(%v)
	Origin:    %v
	Clause:    %v
	Timestamp: %v
	Nonce:     %v`, t.ID(), t.body.Origin, t.body.Clause, t.body.Timestamp, t.body.Nonce)
}

// Builder to make it easy to build transaction.
type Builder struct {
	body body
}

// Origin set the caller.
func (b *Builder) Origin(origin mmt.Address) *Builder {
	b.body.Origin = origin
	return b
}

// Clause set the clause.
func (b *Builder) Clause(c *Clause) *Builder {
	b.body.Clause = c
	return b
}

// Timestamp set the command time.
func (b *Builder) Timestamp(ts uint64) *Builder {
	b.body.Timestamp = ts
	return b
}

// Nonce set nonce.
func (b *Builder) Nonce(nonce uint64) *Builder {
	b.body.Nonce = nonce
	return b
}

// Build build tx object.
func (b *Builder) Build() *Transaction {
	tx := Transaction{body: b.body}
	return &tx
}
