// Copyright (c) 2025 The Blockchain-Projects developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package rewards

import (
	"math/big"

	"github.com/pkg/errors"

	"github.com/Prakrit-Jain/Blockchain-Projects/bcp"
	"github.com/Prakrit-Jain/Blockchain-Projects/builtin/events"
	"github.com/Prakrit-Jain/Blockchain-Projects/builtin/reverts"
	"github.com/Prakrit-Jain/Blockchain-Projects/log"
	"github.com/Prakrit-Jain/Blockchain-Projects/state"
)

var logger = log.WithContext("pkg", "rewards")

// Revert conditions of the reward ledger.
var (
	ErrInvalidAmount  = reverts.New("invalid amount")
	ErrInvalidTick    = reverts.New("invalid tick")
	ErrNothingStaked  = reverts.New("nothing staked")
	ErrTransferFailed = reverts.New("transfer failed")
	ErrReentrancy     = reverts.New("reentrant call")
)

func SetLogger(l log.Logger) {
	logger = l
}

// TransferEngine moves fungible units into and out of the ledger's custody.
// A failure aborts the calling operation with no partial state change.
type TransferEngine interface {
	Pull(from bcp.Address, amount *big.Int) error
	Push(to bcp.Address, amount *big.Int) error
}

// Rewards implements the staking reward ledger.
//
// Each account holds at most one position. Rewards accrue lazily: every
// mutating operation first settles the reward earned on the balance held
// during the elapsed interval, then applies its own change. All arithmetic
// is integer with floor division; truncation losses are part of the design.
//
// The clock is an external monotonic tick (block height) supplied by the
// caller on every operation. Ticks are 1-based; tick 0 is reserved as the
// never-staked sentinel of a position.
type Rewards struct {
	store  *storage
	engine TransferEngine
	sink   events.Sink
	config Config

	entered bool
}

// New create a new instance with the canonical reward configuration.
func New(addr bcp.Address, st *state.State, engine TransferEngine, sink events.Sink) *Rewards {
	return NewWithConfig(addr, st, engine, sink, DefaultConfig())
}

// NewWithConfig create a new instance with the given reward configuration.
func NewWithConfig(addr bcp.Address, st *state.State, engine TransferEngine, sink events.Sink, config Config) *Rewards {
	return &Rewards{
		store:  newStorage(addr, st),
		engine: engine,
		sink:   sink,
		config: config,
	}
}

// Address returns the ledger's custody address.
func (r *Rewards) Address() bcp.Address {
	return r.store.context.Address()
}

//
// Getters - no state change
//

// GetPosition returns the stored position of an account.
// A never-staked account yields a zero-valued position.
func (r *Rewards) GetPosition(account bcp.Address) (*Position, error) {
	return r.store.GetPosition(account)
}

// TotalStaked returns the sum of all staked principal.
func (r *Rewards) TotalStaked() (*big.Int, error) {
	return r.store.TotalStaked()
}

// PendingReward projects what the account's settled reward would be at the
// given tick, de-scaled to whole units. It never mutates stored state.
func (r *Rewards) PendingReward(account bcp.Address, tick uint64) (*big.Int, error) {
	pos, err := r.store.GetPosition(account)
	if err != nil {
		return nil, err
	}
	total := new(big.Int).Add(pos.AccruedReward, r.rewardDelta(pos, tick))
	return total.Div(total, r.config.Scale), nil
}

//
// Setters - state change
//

// Deposit stakes amount for the account at the given tick.
// Rewards already earned are settled on the pre-deposit balance first.
func (r *Rewards) Deposit(account bcp.Address, amount *big.Int, tick uint64) error {
	if err := r.enter(); err != nil {
		return err
	}
	defer r.leave()

	if amount == nil || amount.Sign() <= 0 {
		return ErrInvalidAmount
	}
	if tick == 0 {
		return ErrInvalidTick
	}

	st := r.store.context.State()
	checkpoint := st.NewCheckpoint()

	pos, err := r.store.GetPosition(account)
	if err != nil {
		return err
	}
	isNew := pos.IsEmpty()

	r.accrue(pos, tick)
	pos.Staked = new(big.Int).Add(pos.Staked, amount)

	if err := r.store.SetPosition(account, pos); err != nil {
		st.RevertTo(checkpoint)
		return err
	}
	if err := r.store.AddTotalStaked(amount); err != nil {
		st.RevertTo(checkpoint)
		return err
	}
	if isNew {
		if err := r.store.AddPositionCount(1); err != nil {
			st.RevertTo(checkpoint)
			return err
		}
	}

	if err := r.engine.Pull(account, amount); err != nil {
		st.RevertTo(checkpoint)
		return errors.WithMessage(ErrTransferFailed, err.Error())
	}

	metricsDepositCount().Add(1)
	logger.Debug("staked", "account", account, "amount", amount, "tick", tick)

	r.emit(&events.Event{
		Contract: r.Address(),
		Name:     events.NameStaked,
		Account:  account,
		Amount:   new(big.Int).Set(amount),
		Tick:     tick,
	})
	return nil
}

// Withdraw empties the account's position at the given tick and pays out
// principal plus the de-scaled accrued reward. The position is zeroed and
// committed before the external transfer is made, so a reentrant call
// observes an empty position rather than a double payout.
func (r *Rewards) Withdraw(account bcp.Address, tick uint64) (*big.Int, error) {
	if err := r.enter(); err != nil {
		return nil, err
	}
	defer r.leave()

	if tick == 0 {
		return nil, ErrInvalidTick
	}

	st := r.store.context.State()
	checkpoint := st.NewCheckpoint()

	pos, err := r.store.GetPosition(account)
	if err != nil {
		return nil, err
	}
	if pos.Staked.Sign() == 0 {
		return nil, ErrNothingStaked
	}

	r.accrue(pos, tick)

	// de-scale at payout time; sub-scale remainders are burned
	payout := new(big.Int).Div(pos.AccruedReward, r.config.Scale)
	payout.Add(payout, pos.Staked)

	if err := r.store.DeletePosition(account); err != nil {
		st.RevertTo(checkpoint)
		return nil, err
	}
	if err := r.store.SubTotalStaked(pos.Staked); err != nil {
		st.RevertTo(checkpoint)
		return nil, err
	}
	if err := r.store.AddPositionCount(-1); err != nil {
		st.RevertTo(checkpoint)
		return nil, err
	}

	if err := r.engine.Push(account, payout); err != nil {
		st.RevertTo(checkpoint)
		return nil, errors.WithMessage(ErrTransferFailed, err.Error())
	}

	metricsWithdrawCount().Add(1)
	metricsPayoutBucket().Observe(new(big.Int).Div(payout, r.config.Scale).Int64())
	logger.Debug("withdrawn", "account", account, "payout", payout, "tick", tick)

	r.emit(&events.Event{
		Contract: r.Address(),
		Name:     events.NameWithdrawn,
		Account:  account,
		Amount:   new(big.Int).Set(payout),
		Tick:     tick,
	})
	return payout, nil
}

//
// internals
//

// accrue settles the reward earned since the last recorded tick into the
// position. It never mutates the staked principal.
func (r *Rewards) accrue(pos *Position, tick uint64) {
	delta := r.rewardDelta(pos, tick)
	pos.AccruedReward = new(big.Int).Add(pos.AccruedReward, delta)
	pos.LastTick = tick
}

// rewardDelta computes the incremental scaled reward for the interval
// between the position's last tick and the given tick, on the pre-mutation
// staked balance. Floor division; a tiny stake over a short interval can
// legitimately round to zero.
func (r *Rewards) rewardDelta(pos *Position, tick uint64) *big.Int {
	if pos.LastTick == 0 || tick <= pos.LastTick || pos.Staked.Sign() == 0 {
		return &big.Int{}
	}
	elapsed := tick - pos.LastTick

	x := new(big.Int).SetUint64(elapsed)
	x.Mul(x, pos.Staked)
	x.Mul(x, new(big.Int).SetUint64(r.config.RateNumerator))
	x.Mul(x, r.config.Scale)

	div := new(big.Int).SetUint64(r.config.TicksPerPeriod)
	div.Mul(div, new(big.Int).SetUint64(r.config.RateDenominator))
	return x.Div(x, div)
}

func (r *Rewards) enter() error {
	if r.entered {
		return ErrReentrancy
	}
	r.entered = true
	return nil
}

func (r *Rewards) leave() {
	r.entered = false
}

// emit hands the event to the sink. The operation is already committed at
// this point, so a failing sink only gets logged.
func (r *Rewards) emit(ev *events.Event) {
	if err := r.sink.Emit(ev); err != nil {
		logger.Warn("failed to emit event", "name", ev.Name, "err", err)
	}
}
