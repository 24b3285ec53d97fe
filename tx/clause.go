// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package tx

import (
	"fmt"
	"io"

	"github.com/ethereum/go-ethereum/rlp"
)

type clauseBody struct {
	Method string
	Args   []byte
}

// Clause is a call of one native method with rlp encoded arguments.
type Clause struct {
	body clauseBody
}

// NewClause creates a clause calling method with args rlp encoded.
// A nil args encodes no arguments.
func NewClause(method string, args any) (*Clause, error) {
	c := &Clause{clauseBody{Method: method}}
	if args != nil {
		data, err := rlp.EncodeToBytes(args)
		if err != nil {
			return nil, err
		}
		c.body.Args = data
	}
	return c, nil
}

// Method returns the called method name.
func (c *Clause) Method() string {
	return c.body.Method
}

// Args returns the encoded arguments.
func (c *Clause) Args() []byte {
	return append([]byte(nil), c.body.Args...)
}

// DecodeArgs decodes the arguments into val.
func (c *Clause) DecodeArgs(val any) error {
	return rlp.DecodeBytes(c.body.Args, val)
}

// EncodeRLP implements rlp.Encoder
func (c *Clause) EncodeRLP(w io.Writer) error {
	return rlp.Encode(w, &c.body)
}

// DecodeRLP implements rlp.Decoder
func (c *Clause) DecodeRLP(s *rlp.Stream) error {
	var body clauseBody
	if err := s.Decode(&body); err != nil {
		return err
	}
	*c = Clause{body}
	return nil
}

func (c *Clause) String() string {
	return fmt.Sprintf("(Method: %v Args: 0x%x)", c.body.Method, c.body.Args)
}
