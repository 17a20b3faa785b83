// Copyright (c) 2025 The Blockchain-Projects developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package params

import (
	"math/big"

	"github.com/ethereum/go-ethereum/rlp"

	"github.com/Prakrit-Jain/Blockchain-Projects/bcp"
	"github.com/Prakrit-Jain/Blockchain-Projects/state"
)

// Params is the governed key/value store of protocol parameters.
// Values are numbers keyed by well-known names from the bcp package.
type Params struct {
	addr  bcp.Address
	state *state.State
}

func New(addr bcp.Address, state *state.State) *Params {
	return &Params{addr, state}
}

// Get returns the value of the given key. Unset keys read as zero.
func (p *Params) Get(key bcp.Bytes32) (*big.Int, error) {
	value := new(big.Int)
	err := p.state.DecodeStorage(p.addr, key, func(raw []byte) error {
		if len(raw) == 0 {
			return nil
		}
		return rlp.DecodeBytes(raw, value)
	})
	if err != nil {
		return nil, err
	}
	return value, nil
}

// Set sets the value of the given key. A zero value clears the slot.
func (p *Params) Set(key bcp.Bytes32, value *big.Int) error {
	return p.state.EncodeStorage(p.addr, key, func() ([]byte, error) {
		if value.Sign() == 0 {
			return nil, nil
		}
		return rlp.EncodeToBytes(value)
	})
}
