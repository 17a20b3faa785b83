// Copyright (c) 2025 The Blockchain-Projects developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package solidity

import (
	"github.com/ethereum/go-ethereum/rlp"

	"github.com/Prakrit-Jain/Blockchain-Projects/bcp"
)

// Address is a wrapper for storage and retrieval of an address,
// similar to storing an address in a smart contract.
type Address struct {
	context *Context
	pos     bcp.Bytes32
}

func NewAddress(context *Context, pos bcp.Bytes32) *Address {
	return &Address{context: context, pos: pos}
}

func (a *Address) Get() (bcp.Address, error) {
	var addr bcp.Address
	err := a.context.state.DecodeStorage(a.context.address, a.pos, func(raw []byte) error {
		if len(raw) == 0 {
			return nil
		}
		return rlp.DecodeBytes(raw, &addr)
	})
	return addr, err
}

func (a *Address) Set(addr bcp.Address) error {
	return a.context.state.EncodeStorage(a.context.address, a.pos, func() ([]byte, error) {
		if addr.IsZero() {
			return nil, nil
		}
		return rlp.EncodeToBytes(addr)
	})
}
