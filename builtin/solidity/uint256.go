// Copyright (c) 2025 The Blockchain-Projects developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package solidity

import (
	"math/big"

	"github.com/ethereum/go-ethereum/rlp"

	"github.com/Prakrit-Jain/Blockchain-Projects/bcp"
)

// Uint256 is a wrapper for storage and retrieval of an uint256,
// similar to storing an uint256 in a smart contract.
type Uint256 struct {
	context *Context
	pos     bcp.Bytes32
}

func NewUint256(context *Context, pos bcp.Bytes32) *Uint256 {
	return &Uint256{context: context, pos: pos}
}

func (u *Uint256) Get() (*big.Int, error) {
	value := new(big.Int)
	err := u.context.state.DecodeStorage(u.context.address, u.pos, func(raw []byte) error {
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

func (u *Uint256) Set(value *big.Int) error {
	return u.context.state.EncodeStorage(u.context.address, u.pos, func() ([]byte, error) {
		if value.Sign() == 0 {
			return nil, nil
		}
		return rlp.EncodeToBytes(value)
	})
}

func (u *Uint256) Add(value *big.Int) error {
	stored, err := u.Get()
	if err != nil {
		return err
	}
	return u.Set(stored.Add(stored, value))
}

func (u *Uint256) Sub(value *big.Int) error {
	stored, err := u.Get()
	if err != nil {
		return err
	}
	return u.Set(stored.Sub(stored, value))
}
