// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"bytes"
	"io"
	"sort"

	"github.com/ethereum/go-ethereum/rlp"

	"github.com/vechain/mmt/kv"
	"github.com/vechain/mmt/mmt"
)

type change struct {
	key   storageKey
	value rlp.RawValue
}

// Stage abstracts changes on the storage slots, sorted by db key.
type Stage struct {
	changes []change
}

func newStage(m map[storageKey]rlp.RawValue) *Stage {
	changes := make([]change, 0, len(m))
	for k, v := range m {
		changes = append(changes, change{k, v})
	}
	sort.Slice(changes, func(i, j int) bool {
		return bytes.Compare(changes[i].key.dbKey(), changes[j].key.dbKey()) < 0
	})
	return &Stage{changes}
}

// Len returns the number of changed slots.
func (s *Stage) Len() int {
	return len(s.changes)
}

// Hash computes the checksum of the changes.
func (s *Stage) Hash() mmt.Bytes32 {
	return mmt.Blake2bFn(func(w io.Writer) {
		for _, c := range s.changes {
			w.Write(c.key.dbKey())
			w.Write(c.value)
		}
	})
}

// Commit puts all changes into the putter. Empty values delete the slot.
func (s *Stage) Commit(putter kv.Putter) error {
	for _, c := range s.changes {
		if len(c.value) == 0 {
			if err := putter.Delete(c.key.dbKey()); err != nil {
				return &Error{err}
			}
			continue
		}
		if err := putter.Put(c.key.dbKey(), c.value); err != nil {
			return &Error{err}
		}
	}
	return nil
}
