// Copyright (c) 2025 The Blockchain-Projects developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package solidity

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Prakrit-Jain/Blockchain-Projects/bcp"
	"github.com/Prakrit-Jain/Blockchain-Projects/state"
)

type record struct {
	Owner bcp.Address
	Value *big.Int
}

func newTestContext() *Context {
	return NewContext(bcp.BytesToAddress([]byte("contract")), state.New())
}

func TestMappingGetSet(t *testing.T) {
	ctx := newTestContext()
	m := NewMapping[bcp.Address, *record](ctx, bcp.Blake2b([]byte("records")))

	key := bcp.BytesToAddress([]byte("a1"))

	// missing entries decode to the zero value
	empty, err := m.Get(key)
	require.NoError(t, err)
	assert.True(t, empty.Owner.IsZero())

	want := &record{Owner: key, Value: big.NewInt(42)}
	require.NoError(t, m.Set(key, want))

	got, err := m.Get(key)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	has, err := m.Has(key)
	require.NoError(t, err)
	assert.True(t, has)
}

func TestMappingDelete(t *testing.T) {
	ctx := newTestContext()
	m := NewMapping[bcp.Address, *record](ctx, bcp.Blake2b([]byte("records")))

	key := bcp.BytesToAddress([]byte("a1"))
	require.NoError(t, m.Set(key, &record{Owner: key, Value: big.NewInt(1)}))
	require.NoError(t, m.Delete(key))

	has, err := m.Has(key)
	require.NoError(t, err)
	assert.False(t, has)
}

func TestMappingDistinctSlots(t *testing.T) {
	ctx := newTestContext()
	m1 := NewMapping[bcp.Address, *big.Int](ctx, bcp.Blake2b([]byte("m1")))
	m2 := NewMapping[bcp.Address, *big.Int](ctx, bcp.Blake2b([]byte("m2")))

	key := bcp.BytesToAddress([]byte("a1"))
	require.NoError(t, m1.Set(key, big.NewInt(1)))

	v, err := m2.Get(key)
	require.NoError(t, err)
	assert.Equal(t, 0, v.Sign())
}

func TestUint256(t *testing.T) {
	ctx := newTestContext()
	u := NewUint256(ctx, bcp.Blake2b([]byte("total")))

	v, err := u.Get()
	require.NoError(t, err)
	assert.Equal(t, 0, v.Sign())

	require.NoError(t, u.Add(big.NewInt(100)))
	require.NoError(t, u.Sub(big.NewInt(40)))

	v, err = u.Get()
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(60), v)
}

func TestAddressSlot(t *testing.T) {
	ctx := newTestContext()
	slot := NewAddress(ctx, bcp.Blake2b([]byte("beneficiary")))

	addr, err := slot.Get()
	require.NoError(t, err)
	assert.True(t, addr.IsZero())

	want := bcp.BytesToAddress([]byte("a1"))
	require.NoError(t, slot.Set(want))

	addr, err = slot.Get()
	require.NoError(t, err)
	assert.Equal(t, want, addr)
}
