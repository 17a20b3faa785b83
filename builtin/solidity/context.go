// Copyright (c) 2025 The Blockchain-Projects developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package solidity

import (
	"github.com/Prakrit-Jain/Blockchain-Projects/bcp"
	"github.com/Prakrit-Jain/Blockchain-Projects/state"
)

// Context carries the storage identity of a contract: its well-known
// address and the state it reads and writes.
type Context struct {
	address bcp.Address
	state   *state.State
}

func NewContext(address bcp.Address, state *state.State) *Context {
	return &Context{
		address: address,
		state:   state,
	}
}

func (c *Context) Address() bcp.Address {
	return c.address
}

func (c *Context) State() *state.State {
	return c.state
}
