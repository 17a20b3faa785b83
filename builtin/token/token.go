// Copyright (c) 2025 The Blockchain-Projects developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package token

import (
	"math/big"

	"github.com/pkg/errors"

	"github.com/Prakrit-Jain/Blockchain-Projects/bcp"
	"github.com/Prakrit-Jain/Blockchain-Projects/builtin/events"
	"github.com/Prakrit-Jain/Blockchain-Projects/builtin/reverts"
	"github.com/Prakrit-Jain/Blockchain-Projects/builtin/solidity"
	"github.com/Prakrit-Jain/Blockchain-Projects/state"
)

var (
	slotTotalSupply = bcp.Blake2b([]byte("total-supply"))

	ErrInsufficientBalance = reverts.New("insufficient balance")
	ErrInvalidAmount       = reverts.New("invalid amount")
)

// Token implements the fungible unit ledger the other contracts move value
// through. Balances live directly on the state; only the total supply uses
// contract storage.
type Token struct {
	context *Context
	supply  *solidity.Uint256
	sink    events.Sink
}

type Context = solidity.Context

// New create a new instance.
func New(addr bcp.Address, st *state.State, sink events.Sink) *Token {
	context := solidity.NewContext(addr, st)
	return &Token{
		context: context,
		supply:  solidity.NewUint256(context, slotTotalSupply),
		sink:    sink,
	}
}

// BalanceOf returns token balance of an account.
func (t *Token) BalanceOf(addr bcp.Address) *big.Int {
	return t.context.State().GetBalance(addr)
}

// TotalSupply returns the amount of tokens ever minted.
func (t *Token) TotalSupply() (*big.Int, error) {
	return t.supply.Get()
}

// Mint credits new tokens to an account. Used by genesis and the presale.
func (t *Token) Mint(addr bcp.Address, amount *big.Int) error {
	if amount.Sign() < 0 {
		return ErrInvalidAmount
	}
	st := t.context.State()
	st.SetBalance(addr, new(big.Int).Add(st.GetBalance(addr), amount))
	if err := t.supply.Add(amount); err != nil {
		return errors.Wrap(err, "failed to update total supply")
	}
	return nil
}

// Transfer moves amount from one account to another.
func (t *Token) Transfer(from, to bcp.Address, amount *big.Int) error {
	if amount.Sign() < 0 {
		return ErrInvalidAmount
	}
	st := t.context.State()

	fromBal := st.GetBalance(from)
	if fromBal.Cmp(amount) < 0 {
		return ErrInsufficientBalance
	}
	st.SetBalance(from, new(big.Int).Sub(fromBal, amount))
	st.SetBalance(to, new(big.Int).Add(st.GetBalance(to), amount))

	return t.sink.Emit(&events.Event{
		Contract: t.context.Address(),
		Name:     events.NameTransfer,
		Account:  to,
		Amount:   new(big.Int).Set(amount),
	})
}

// Custodian binds the token to a custody account, yielding the pull/push
// value-transfer capability the reward ledger and presale consume.
func (t *Token) Custodian(custody bcp.Address) *Custodian {
	return &Custodian{token: t, custody: custody}
}

type Custodian struct {
	token   *Token
	custody bcp.Address
}

// Pull moves amount from the given account into custody.
func (c *Custodian) Pull(from bcp.Address, amount *big.Int) error {
	return c.token.Transfer(from, c.custody, amount)
}

// Push moves amount out of custody to the given account.
func (c *Custodian) Push(to bcp.Address, amount *big.Int) error {
	return c.token.Transfer(c.custody, to, amount)
}
