// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package tx

import (
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/rlp"

	"github.com/vechain/mmt/mmt"
)

// Receipt represents the result of a transaction.
type Receipt struct {
	TxID      mmt.Bytes32   `json:"txID"`
	Nonce     uint64        `json:"nonce"`
	Origin    mmt.Address   `json:"origin"`
	Method    string        `json:"method"`
	Timestamp uint64        `json:"timestamp"`
	Reverted  bool          `json:"reverted"`
	Error     string        `json:"error,omitempty"`
	Output    hexutil.Bytes `json:"output,omitempty"`
	Events    Events        `json:"events"`
}

// DecodeOutput decodes the rlp encoded method output into val.
func (r *Receipt) DecodeOutput(val any) error {
	return rlp.DecodeBytes(r.Output, val)
}

// Receipts slice of receipts.
type Receipts []*Receipt
