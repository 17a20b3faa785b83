// Copyright (c) 2025 The Blockchain-Projects developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package solidity

import (
	"reflect"

	"github.com/ethereum/go-ethereum/rlp"

	"github.com/Prakrit-Jain/Blockchain-Projects/bcp"
)

type Key interface {
	Bytes() []byte
}

// Mapping is a key/value storage abstraction for built-in contracts, similar
// to the mapping in Solidity. Values are RLP encoded; the slot of each entry
// is derived from the key and the mapping's base position.
type Mapping[K Key, V any] struct {
	context *Context
	basePos bcp.Bytes32
}

func NewMapping[K Key, V any](context *Context, pos bcp.Bytes32) *Mapping[K, V] {
	return &Mapping[K, V]{context: context, basePos: pos}
}

func (m *Mapping[K, V]) Get(key K) (value V, err error) {
	position := bcp.Blake2b(key.Bytes(), m.basePos.Bytes())
	err = m.context.state.DecodeStorage(m.context.address, position, func(raw []byte) error {
		if reflect.ValueOf(value).Kind() == reflect.Ptr {
			value = reflect.New(reflect.TypeOf(value).Elem()).Interface().(V)
		}
		if len(raw) == 0 {
			return nil
		}
		return rlp.DecodeBytes(raw, &value)
	})
	return
}

func (m *Mapping[K, V]) Set(key K, value V) error {
	position := bcp.Blake2b(key.Bytes(), m.basePos.Bytes())
	return m.context.state.EncodeStorage(m.context.address, position, func() ([]byte, error) {
		return rlp.EncodeToBytes(value)
	})
}

// Delete clears the entry for the given key.
func (m *Mapping[K, V]) Delete(key K) error {
	position := bcp.Blake2b(key.Bytes(), m.basePos.Bytes())
	return m.context.state.EncodeStorage(m.context.address, position, func() ([]byte, error) {
		return nil, nil
	})
}

// Has reports whether the entry for the given key holds a value.
func (m *Mapping[K, V]) Has(key K) (bool, error) {
	position := bcp.Blake2b(key.Bytes(), m.basePos.Bytes())
	var found bool
	err := m.context.state.DecodeStorage(m.context.address, position, func(raw []byte) error {
		found = len(raw) > 0
		return nil
	})
	return found, err
}
