// Copyright (c) 2025 The Blockchain-Projects developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"fmt"
	"math/big"

	"github.com/Prakrit-Jain/Blockchain-Projects/bcp"
	"github.com/Prakrit-Jain/Blockchain-Projects/stackedmap"
)

// Error is the error caused by state access failure.
type Error struct {
	cause error
}

func (e *Error) Error() string {
	return fmt.Sprintf("state: %v", e.cause)
}

type (
	balanceKey struct{ addr bcp.Address }
	storageKey struct {
		addr bcp.Address
		key  bcp.Bytes32
	}
)

// State manages the ledger state: fungible balances and per-contract
// structured storage. All of it lives in memory; checkpoints give the
// all-or-nothing semantics contract operations rely on.
type State struct {
	sm *stackedmap.StackedMap
}

// New create state object.
func New() *State {
	state := State{
		sm: stackedmap.New(func(_ any) (any, bool) {
			return nil, false
		}),
	}
	// base level holds committed values and is never reverted
	state.sm.Push()
	return &state
}

// GetBalance returns balance for the given address.
func (s *State) GetBalance(addr bcp.Address) *big.Int {
	v, ok := s.sm.Get(balanceKey{addr})
	if !ok {
		return &big.Int{}
	}
	return v.(*big.Int)
}

// SetBalance set balance for the given address.
func (s *State) SetBalance(addr bcp.Address, balance *big.Int) {
	s.sm.Put(balanceKey{addr}, balance)
}

// GetRawStorage returns storage value in rlp raw for given address and key.
func (s *State) GetRawStorage(addr bcp.Address, key bcp.Bytes32) []byte {
	v, ok := s.sm.Get(storageKey{addr, key})
	if !ok {
		return nil
	}
	return v.([]byte)
}

// SetRawStorage set storage value in rlp raw.
func (s *State) SetRawStorage(addr bcp.Address, key bcp.Bytes32, raw []byte) {
	s.sm.Put(storageKey{addr, key}, raw)
}

// EncodeStorage set storage value encoded by given enc method.
// An empty encoded value deletes the storage slot.
func (s *State) EncodeStorage(addr bcp.Address, key bcp.Bytes32, enc func() ([]byte, error)) error {
	raw, err := enc()
	if err != nil {
		return &Error{err}
	}
	s.SetRawStorage(addr, key, raw)
	return nil
}

// DecodeStorage get and decode storage value.
func (s *State) DecodeStorage(addr bcp.Address, key bcp.Bytes32, dec func([]byte) error) error {
	raw := s.GetRawStorage(addr, key)
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

// RevertTo reverts state to given revision.
func (s *State) RevertTo(revision int) {
	if revision < 1 {
		// the base level is the committed state
		revision = 1
	}
	s.sm.PopTo(revision)
}
