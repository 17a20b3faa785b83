// Copyright (c) 2025 The Blockchain-Projects developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package access

import (
	"math/big"

	"github.com/ethereum/go-ethereum/rlp"

	"github.com/Prakrit-Jain/Blockchain-Projects/bcp"
	"github.com/Prakrit-Jain/Blockchain-Projects/builtin/solidity"
	"github.com/Prakrit-Jain/Blockchain-Projects/state"
)

var slotAdminNum = bcp.Blake2b([]byte("admin-count"))

// Access implements the admin permission set gating privileged operations
// of the other contracts.
type Access struct {
	addr     bcp.Address
	state    *state.State
	adminNum *solidity.Uint256
}

// New create a new instance.
func New(addr bcp.Address, st *state.State) *Access {
	context := solidity.NewContext(addr, st)
	return &Access{
		addr:     addr,
		state:    st,
		adminNum: solidity.NewUint256(context, slotAdminNum),
	}
}

func (a *Access) getEntry(admin bcp.Address) (bool, error) {
	var granted bool
	if err := a.state.DecodeStorage(a.addr, bcp.BytesToBytes32(admin[:]), func(raw []byte) error {
		if len(raw) == 0 {
			return nil
		}
		return rlp.DecodeBytes(raw, &granted)
	}); err != nil {
		return false, err
	}
	return granted, nil
}

func (a *Access) setEntry(admin bcp.Address, granted bool) error {
	return a.state.EncodeStorage(a.addr, bcp.BytesToBytes32(admin[:]), func() ([]byte, error) {
		if !granted {
			return nil, nil
		}
		return rlp.EncodeToBytes(granted)
	})
}

// Has returns whether the given address holds the admin role.
func (a *Access) Has(admin bcp.Address) (bool, error) {
	return a.getEntry(admin)
}

// Grant adds the address to the admin set.
// Returns false when the address is already an admin.
func (a *Access) Grant(admin bcp.Address) (bool, error) {
	granted, err := a.getEntry(admin)
	if err != nil {
		return false, err
	}
	if granted {
		return false, nil
	}
	if err := a.setEntry(admin, true); err != nil {
		return false, err
	}
	if err := a.adminNum.Add(big.NewInt(1)); err != nil {
		return false, err
	}
	return true, nil
}

// Revoke removes the address from the admin set.
// Returns false when the address is not an admin.
func (a *Access) Revoke(admin bcp.Address) (bool, error) {
	granted, err := a.getEntry(admin)
	if err != nil {
		return false, err
	}
	if !granted {
		return false, nil
	}
	if err := a.setEntry(admin, false); err != nil {
		return false, err
	}
	if err := a.adminNum.Sub(big.NewInt(1)); err != nil {
		return false, err
	}
	return true, nil
}

// Count returns the number of granted admins.
func (a *Access) Count() (*big.Int, error) {
	return a.adminNum.Get()
}
