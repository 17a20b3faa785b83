// Copyright (c) 2025 The Blockchain-Projects developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package rewards

import (
	"errors"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Prakrit-Jain/Blockchain-Projects/bcp"
	"github.com/Prakrit-Jain/Blockchain-Projects/builtin/events"
	"github.com/Prakrit-Jain/Blockchain-Projects/builtin/token"
	"github.com/Prakrit-Jain/Blockchain-Projects/state"
)

var (
	ledgerAddr = bcp.BytesToAddress([]byte("rewards"))
	tokenAddr  = bcp.BytesToAddress([]byte("token"))
	acc1       = bcp.BytesToAddress([]byte("account1"))
	acc2       = bcp.BytesToAddress([]byte("account2"))
)

// eth converts a whole-unit amount to its scaled representation.
func eth(n int64) *big.Int {
	return new(big.Int).Mul(big.NewInt(n), big.NewInt(1e18))
}

func newTestLedger(t *testing.T, balances map[bcp.Address]*big.Int) (*Rewards, *token.Token, *events.Mem) {
	st := state.New()
	tok := token.New(tokenAddr, st, events.Nop())
	for addr, bal := range balances {
		require.NoError(t, tok.Mint(addr, bal))
	}
	sink := events.NewMem()
	ledger := New(ledgerAddr, st, tok.Custodian(ledgerAddr), sink)
	return ledger, tok, sink
}

func TestDepositAndWithdraw(t *testing.T) {
	ledger, tok, sink := newTestLedger(t, map[bcp.Address]*big.Int{acc1: eth(1000)})

	assert.NoError(t, ledger.Deposit(acc1, eth(1000), 1))

	assert.Equal(t, 0, tok.BalanceOf(acc1).Sign())
	assert.Equal(t, eth(1000), tok.BalanceOf(ledgerAddr))

	pos, err := ledger.GetPosition(acc1)
	require.NoError(t, err)
	assert.Equal(t, eth(1000), pos.Staked)
	assert.Equal(t, uint64(1), pos.LastTick)

	total, err := ledger.TotalStaked()
	require.NoError(t, err)
	assert.Equal(t, eth(1000), total)

	count, err := ledger.store.PositionCount()
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(1), count)

	// exactly one period elapses: reward is 1000/1000 = 1 whole unit
	payout, err := ledger.Withdraw(acc1, 14401)
	require.NoError(t, err)
	assert.Equal(t, eth(1001), payout)
	assert.Equal(t, eth(1001), tok.BalanceOf(acc1))

	pos, err = ledger.GetPosition(acc1)
	require.NoError(t, err)
	assert.True(t, pos.IsEmpty())

	total, err = ledger.TotalStaked()
	require.NoError(t, err)
	assert.Equal(t, 0, total.Sign())

	count, err = ledger.store.PositionCount()
	require.NoError(t, err)
	assert.Equal(t, 0, count.Sign())

	evs := sink.Events()
	require.Len(t, evs, 2)
	assert.Equal(t, events.NameStaked, evs[0].Name)
	assert.Equal(t, eth(1000), evs[0].Amount)
	assert.Equal(t, uint64(1), evs[0].Tick)
	assert.Equal(t, events.NameWithdrawn, evs[1].Name)
	assert.Equal(t, eth(1001), evs[1].Amount)
	assert.Equal(t, uint64(14401), evs[1].Tick)
}

func TestPendingReward(t *testing.T) {
	ledger, _, _ := newTestLedger(t, map[bcp.Address]*big.Int{acc1: eth(1631)})

	require.NoError(t, ledger.Deposit(acc1, eth(1631), 1))

	// floor(1631e18 * 999 / (14400 * 1000))
	want, _ := new(big.Int).SetString("113150625000000000", 10)

	pending, err := ledger.PendingReward(acc1, 1000)
	require.NoError(t, err)
	assert.Equal(t, want, pending)

	// pending never mutates the stored position
	again, err := ledger.PendingReward(acc1, 1000)
	require.NoError(t, err)
	assert.Equal(t, want, again)

	pos, err := ledger.GetPosition(acc1)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), pos.LastTick)
	assert.Equal(t, 0, pos.AccruedReward.Sign())
}

func TestPendingRewardSmallStake(t *testing.T) {
	ledger, _, _ := newTestLedger(t, map[bcp.Address]*big.Int{acc1: big.NewInt(1631)})

	require.NoError(t, ledger.Deposit(acc1, big.NewInt(1631), 1))

	// a stake of 1631 base units over 999 ticks truncates to zero whole units
	pending, err := ledger.PendingReward(acc1, 1000)
	require.NoError(t, err)
	assert.Equal(t, 0, pending.Sign())
}

func TestAccrueOnPreDepositBalance(t *testing.T) {
	ledger, _, _ := newTestLedger(t, map[bcp.Address]*big.Int{acc1: eth(3000)})

	require.NoError(t, ledger.Deposit(acc1, eth(1000), 1))
	require.NoError(t, ledger.Deposit(acc1, eth(2000), 14401))

	pos, err := ledger.GetPosition(acc1)
	require.NoError(t, err)
	assert.Equal(t, eth(3000), pos.Staked)
	assert.Equal(t, uint64(14401), pos.LastTick)

	// one full period on the first tranche only: 1000e18/1000 = 1e18, scaled
	wantScaled := new(big.Int).Mul(eth(1), big.NewInt(1e18))
	assert.Equal(t, wantScaled, pos.AccruedReward)

	pending, err := ledger.PendingReward(acc1, 14401)
	require.NoError(t, err)
	assert.Equal(t, eth(1), pending)
}

func TestWithdrawEmptiesPosition(t *testing.T) {
	ledger, _, _ := newTestLedger(t, map[bcp.Address]*big.Int{acc1: eth(500)})

	require.NoError(t, ledger.Deposit(acc1, eth(500), 1))
	_, err := ledger.Withdraw(acc1, 7200)
	require.NoError(t, err)

	pending, err := ledger.PendingReward(acc1, 20000)
	require.NoError(t, err)
	assert.Equal(t, 0, pending.Sign())

	_, err = ledger.Withdraw(acc1, 20000)
	assert.True(t, errors.Is(err, ErrNothingStaked))
}

func TestPendingRewardMonotonic(t *testing.T) {
	ledger, _, _ := newTestLedger(t, map[bcp.Address]*big.Int{acc1: eth(777)})

	require.NoError(t, ledger.Deposit(acc1, eth(777), 1))

	prev := big.NewInt(0)
	for tick := uint64(1); tick < 100000; tick += 7777 {
		pending, err := ledger.PendingReward(acc1, tick)
		require.NoError(t, err)
		assert.True(t, pending.Cmp(prev) >= 0, "pending reward decreased at tick %d", tick)
		prev = pending
	}
}

func TestDepositValidation(t *testing.T) {
	ledger, tok, _ := newTestLedger(t, map[bcp.Address]*big.Int{acc1: eth(10)})

	assert.True(t, errors.Is(ledger.Deposit(acc1, big.NewInt(0), 5), ErrInvalidAmount))
	assert.True(t, errors.Is(ledger.Deposit(acc1, big.NewInt(-1), 5), ErrInvalidAmount))
	assert.True(t, errors.Is(ledger.Deposit(acc1, eth(1), 0), ErrInvalidTick))
	_, err := ledger.Withdraw(acc1, 0)
	assert.True(t, errors.Is(err, ErrInvalidTick))

	// nothing moved, nothing recorded
	assert.Equal(t, eth(10), tok.BalanceOf(acc1))
	pos, err := ledger.GetPosition(acc1)
	require.NoError(t, err)
	assert.True(t, pos.IsEmpty())
}

func TestWithdrawNothingStaked(t *testing.T) {
	ledger, _, _ := newTestLedger(t, nil)

	_, err := ledger.Withdraw(acc1, 10)
	assert.True(t, errors.Is(err, ErrNothingStaked))
}

func TestDepositInsufficientBalance(t *testing.T) {
	ledger, tok, sink := newTestLedger(t, map[bcp.Address]*big.Int{acc1: eth(10)})

	err := ledger.Deposit(acc1, eth(100), 1)
	assert.True(t, errors.Is(err, ErrTransferFailed))

	// the whole operation rolled back
	pos, perr := ledger.GetPosition(acc1)
	require.NoError(t, perr)
	assert.True(t, pos.IsEmpty())

	total, terr := ledger.TotalStaked()
	require.NoError(t, terr)
	assert.Equal(t, 0, total.Sign())

	assert.Equal(t, eth(10), tok.BalanceOf(acc1))
	assert.Empty(t, sink.Events())
}

// brokenEngine fails pushes after a configurable number of successes.
type brokenEngine struct {
	inner    TransferEngine
	pushesOK int
}

func (e *brokenEngine) Pull(from bcp.Address, amount *big.Int) error {
	return e.inner.Pull(from, amount)
}

func (e *brokenEngine) Push(to bcp.Address, amount *big.Int) error {
	if e.pushesOK <= 0 {
		return errors.New("push rejected")
	}
	e.pushesOK--
	return e.inner.Push(to, amount)
}

func TestWithdrawPushFailureRollsBack(t *testing.T) {
	st := state.New()
	tok := token.New(tokenAddr, st, events.Nop())
	require.NoError(t, tok.Mint(acc1, eth(100)))

	engine := &brokenEngine{inner: tok.Custodian(ledgerAddr)}
	ledger := New(ledgerAddr, st, engine, events.Nop())

	require.NoError(t, ledger.Deposit(acc1, eth(100), 1))

	_, err := ledger.Withdraw(acc1, 14401)
	assert.True(t, errors.Is(err, ErrTransferFailed))

	// the position survived the failed payout intact
	pos, perr := ledger.GetPosition(acc1)
	require.NoError(t, perr)
	assert.Equal(t, eth(100), pos.Staked)
	assert.Equal(t, uint64(1), pos.LastTick)

	total, terr := ledger.TotalStaked()
	require.NoError(t, terr)
	assert.Equal(t, eth(100), total)
	assert.Equal(t, eth(100), tok.BalanceOf(ledgerAddr))

	// a later retry with a working engine pays out normally
	engine.pushesOK = 1
	payout, err := ledger.Withdraw(acc1, 14401)
	require.NoError(t, err)

	// one period on 100 staked earns 100/1000 = 0.1 whole units
	want := new(big.Int).Add(eth(100), big.NewInt(1e17))
	assert.Equal(t, want, payout)
}

// reentrantEngine re-enters Withdraw from inside Push, the way a malicious
// token callback would.
type reentrantEngine struct {
	inner    TransferEngine
	ledger   *Rewards
	account  bcp.Address
	tick     uint64
	innerErr error
	seenPos  *Position
}

func (e *reentrantEngine) Pull(from bcp.Address, amount *big.Int) error {
	return e.inner.Pull(from, amount)
}

func (e *reentrantEngine) Push(to bcp.Address, amount *big.Int) error {
	e.seenPos, _ = e.ledger.GetPosition(e.account)
	_, e.innerErr = e.ledger.Withdraw(e.account, e.tick)
	return e.inner.Push(to, amount)
}

func TestWithdrawReentrancy(t *testing.T) {
	st := state.New()
	tok := token.New(tokenAddr, st, events.Nop())
	require.NoError(t, tok.Mint(acc1, eth(100)))

	engine := &reentrantEngine{inner: tok.Custodian(ledgerAddr), account: acc1, tick: 14401}
	ledger := New(ledgerAddr, st, engine, events.Nop())
	engine.ledger = ledger

	require.NoError(t, ledger.Deposit(acc1, eth(100), 1))

	payout, err := ledger.Withdraw(acc1, 14401)
	require.NoError(t, err)

	// the nested call was rejected by the guard
	assert.True(t, errors.Is(engine.innerErr, ErrReentrancy))

	// the position was already zeroed when the push happened
	require.NotNil(t, engine.seenPos)
	assert.True(t, engine.seenPos.IsEmpty())

	// paid exactly once
	want := new(big.Int).Add(eth(100), big.NewInt(1e17))
	assert.Equal(t, want, payout)
	assert.Equal(t, want, tok.BalanceOf(acc1))
	assert.Equal(t, 0, tok.BalanceOf(ledgerAddr).Sign())
}

func TestTwoAccountsConservation(t *testing.T) {
	ledger, tok, _ := newTestLedger(t, map[bcp.Address]*big.Int{
		acc1: eth(300),
		acc2: eth(700),
	})

	require.NoError(t, ledger.Deposit(acc1, eth(300), 1))
	require.NoError(t, ledger.Deposit(acc2, eth(700), 100))

	total, err := ledger.TotalStaked()
	require.NoError(t, err)
	assert.Equal(t, eth(1000), total)
	assert.Equal(t, eth(1000), tok.BalanceOf(ledgerAddr))

	_, err = ledger.Withdraw(acc1, 200)
	require.NoError(t, err)

	total, err = ledger.TotalStaked()
	require.NoError(t, err)
	assert.Equal(t, eth(700), total)

	pos2, err := ledger.GetPosition(acc2)
	require.NoError(t, err)
	assert.Equal(t, eth(700), pos2.Staked)
}

func TestRewardDelta(t *testing.T) {
	r := &Rewards{config: DefaultConfig()}

	tests := []struct {
		name string
		pos  Position
		tick uint64
		want *big.Int
	}{
		{"never staked", Position{Staked: eth(100), AccruedReward: &big.Int{}}, 500, big.NewInt(0)},
		{"same tick", Position{Staked: eth(100), AccruedReward: &big.Int{}, LastTick: 500}, 500, big.NewInt(0)},
		{"earlier tick", Position{Staked: eth(100), AccruedReward: &big.Int{}, LastTick: 500}, 400, big.NewInt(0)},
		{"zero stake", Position{Staked: &big.Int{}, AccruedReward: &big.Int{}, LastTick: 1}, 500, big.NewInt(0)},
		{
			"one period",
			Position{Staked: eth(1000), AccruedReward: &big.Int{}, LastTick: 1},
			14401,
			new(big.Int).Mul(eth(1), big.NewInt(1e18)),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := r.rewardDelta(&tt.pos, tt.tick)
			assert.Equal(t, 0, got.Cmp(tt.want))
		})
	}
}
