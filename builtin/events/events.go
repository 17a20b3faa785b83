// Copyright (c) 2025 The Blockchain-Projects developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package events

import (
	"math/big"

	"github.com/Prakrit-Jain/Blockchain-Projects/bcp"
)

// Event names emitted by the builtin contracts.
const (
	NameStaked          = "Staked"
	NameWithdrawn       = "Withdrawn"
	NameTransfer        = "Transfer"
	NameTokensPurchased = "TokensPurchased"
	NameReferralReward  = "ReferralReward"
	NameRegistryAdded   = "RegistryAdded"
	NameRegistryUpdated = "RegistryUpdated"
	NameRegistryRemoved = "RegistryRemoved"
)

// Event is a record of something a contract did, exposed for observers.
// It carries no consumer contract; sinks are free to drop or store them.
type Event struct {
	Contract bcp.Address
	Name     string
	Account  bcp.Address
	Amount   *big.Int
	Tick     uint64
}

// Topic derives the EVM-log style topic of the event name.
func (ev *Event) Topic() bcp.Bytes32 {
	return bcp.Keccak256([]byte(ev.Name))
}

// Sink consumes emitted events.
type Sink interface {
	Emit(ev *Event) error
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(ev *Event) error

func (f SinkFunc) Emit(ev *Event) error {
	return f(ev)
}

// Nop discards all events.
func Nop() Sink {
	return SinkFunc(func(_ *Event) error { return nil })
}

// Mem collects events in memory, mostly for tests.
type Mem struct {
	evs []*Event
}

func NewMem() *Mem {
	return &Mem{}
}

func (m *Mem) Emit(ev *Event) error {
	m.evs = append(m.evs, ev)
	return nil
}

// Events returns all collected events in emission order.
func (m *Mem) Events() []*Event {
	return m.evs
}
