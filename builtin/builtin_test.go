// Copyright (c) 2025 The Blockchain-Projects developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package builtin

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Prakrit-Jain/Blockchain-Projects/bcp"
	"github.com/Prakrit-Jain/Blockchain-Projects/builtin/events"
	"github.com/Prakrit-Jain/Blockchain-Projects/state"
)

func TestContractAddresses(t *testing.T) {
	seen := make(map[bcp.Address]string)
	for _, c := range []*contract{
		Params.contract, Access.contract, Token.contract,
		Rewards.contract, Presale.contract, Registry.contract,
	} {
		assert.False(t, c.Address.IsZero())
		if prev, dup := seen[c.Address]; dup {
			t.Fatalf("%s and %s share an address", prev, c.Name)
		}
		seen[c.Address] = c.Name
	}
}

func TestRewardsBinding(t *testing.T) {
	st := state.New()
	account := bcp.BytesToAddress([]byte("account"))

	tok := Token.WithState(st, events.Nop())
	require.NoError(t, tok.Mint(account, big.NewInt(1000)))

	ledger := Rewards.WithState(st, events.Nop())
	require.NoError(t, ledger.Deposit(account, big.NewInt(1000), 1))

	assert.Equal(t, 0, tok.BalanceOf(account).Sign())
	assert.Equal(t, big.NewInt(1000), tok.BalanceOf(Rewards.Address))

	payout, err := ledger.Withdraw(account, 2)
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(1000), payout)
	assert.Equal(t, big.NewInt(1000), tok.BalanceOf(account))
}
