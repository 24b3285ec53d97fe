// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"bytes"
	"fmt"

	"github.com/ethereum/go-ethereum/rlp"

	"github.com/vechain/mmt/mmt"
	"github.com/vechain/mmt/stackedmap"
)

// storagePrefix prefixes every storage slot key in the kv store.
const storagePrefix = "s"

// Error is the error caused by state access failure.
type Error struct {
	cause error
}

func (e *Error) Error() string {
	return fmt.Sprintf("state: %v", e.cause)
}

func (e *Error) Unwrap() error {
	return e.cause
}

type storageKey struct {
	addr mmt.Address
	key  mmt.Bytes32
}

func (k storageKey) dbKey() []byte {
	b := make([]byte, 0, len(storagePrefix)+mmt.AddressLength+32)
	b = append(b, storagePrefix...)
	b = append(b, k.addr[:]...)
	return append(b, k.key[:]...)
}

// loader reads committed raw storage values.
type loader func(key storageKey) (rlp.RawValue, error)

// State manages the storage of native contracts.
type State struct {
	load loader
	sm   *stackedmap.StackedMap[storageKey, rlp.RawValue] // keeps revisions of storage
}

func newState(load loader) *State {
	s := &State{load: load}
	s.sm = stackedmap.New(func(key storageKey) (rlp.RawValue, bool, error) {
		v, err := s.load(key)
		if err != nil {
			return nil, false, err
		}
		return v, true, nil
	})
	return s
}

// GetRawStorage returns storage value in rlp raw for given address and key.
func (s *State) GetRawStorage(addr mmt.Address, key mmt.Bytes32) (rlp.RawValue, error) {
	data, _, err := s.sm.Get(storageKey{addr, key})
	if err != nil {
		return nil, &Error{err}
	}
	return data, nil
}

// SetRawStorage set storage value in rlp raw.
func (s *State) SetRawStorage(addr mmt.Address, key mmt.Bytes32, raw rlp.RawValue) {
	s.sm.Put(storageKey{addr, key}, raw)
}

// GetStorage returns storage value for the given address and key.
func (s *State) GetStorage(addr mmt.Address, key mmt.Bytes32) (mmt.Bytes32, error) {
	raw, err := s.GetRawStorage(addr, key)
	if err != nil {
		return mmt.Bytes32{}, err
	}
	if len(raw) == 0 {
		return mmt.Bytes32{}, nil
	}
	kind, content, _, err := rlp.Split(raw)
	if err != nil {
		return mmt.Bytes32{}, &Error{err}
	}
	if kind == rlp.List {
		// special case for rlp list, it should be customized storage value
		// return hash of raw data
		return mmt.Blake2b(raw), nil
	}
	return mmt.BytesToBytes32(content), nil
}

// SetStorage set storage value for the given address and key.
func (s *State) SetStorage(addr mmt.Address, key, value mmt.Bytes32) {
	if value.IsZero() {
		s.SetRawStorage(addr, key, nil)
		return
	}
	v, _ := rlp.EncodeToBytes(bytes.TrimLeft(value[:], "\x00"))
	s.SetRawStorage(addr, key, v)
}

// EncodeStorage set storage value encoded by given enc method.
func (s *State) EncodeStorage(addr mmt.Address, key mmt.Bytes32, enc func() ([]byte, error)) error {
	raw, err := enc()
	if err != nil {
		return &Error{err}
	}
	s.SetRawStorage(addr, key, raw)
	return nil
}

// DecodeStorage get and decode storage value.
func (s *State) DecodeStorage(addr mmt.Address, key mmt.Bytes32, dec func([]byte) error) error {
	raw, err := s.GetRawStorage(addr, key)
	if err != nil {
		return err
	}
	if err := dec(raw); err != nil {
		return &Error{err}
	}
	return nil
}

// NewCheckpoint makes a checkpoint of current state.
// It returns revision of the checkpoint.
func (s *State) NewCheckpoint() int {
	return s.sm.Push()
}

// RevertTo revert to checkpoint specified by revision.
func (s *State) RevertTo(revision int) {
	s.sm.PopTo(revision)
}

// Stage makes a stage object to compute checksum or commit state changes.
func (s *State) Stage() *Stage {
	changes := make(map[storageKey]rlp.RawValue)
	s.sm.Journal(func(k storageKey, v rlp.RawValue) bool {
		changes[k] = v
		return true
	})
	return newStage(changes)
}
