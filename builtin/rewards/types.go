// Copyright (c) 2025 The Blockchain-Projects developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package rewards

import (
	"math/big"

	"github.com/Prakrit-Jain/Blockchain-Projects/bcp"
)

// Position is the per-account record of stake and reward state.
type Position struct {
	Staked        *big.Int // current principal staked
	AccruedReward *big.Int // reward earned but not settled, scaled by the scale factor
	LastTick      uint64   // clock value at last accrual; 0 means never staked
}

// IsEmpty returns whether the position is zero-valued.
func (p *Position) IsEmpty() bool {
	return p.Staked.Sign() == 0 &&
		p.AccruedReward.Sign() == 0 &&
		p.LastTick == 0
}

// normalize fills nil fields of a freshly decoded position.
func (p *Position) normalize() *Position {
	if p.Staked == nil {
		p.Staked = &big.Int{}
	}
	if p.AccruedReward == nil {
		p.AccruedReward = &big.Int{}
	}
	return p
}

// Config holds the reward-rate parameters of the ledger. They are fixed at
// construction and immutable thereafter.
type Config struct {
	RateNumerator   uint64
	RateDenominator uint64
	TicksPerPeriod  uint64
	Scale           *big.Int
}

// DefaultConfig returns the canonical reward configuration:
// 1 token of reward per 1000 staked per period of 14400 ticks.
func DefaultConfig() Config {
	return Config{
		RateNumerator:   bcp.RewardRateNumerator,
		RateDenominator: bcp.RewardRateDenominator,
		TicksPerPeriod:  bcp.TicksPerPeriod,
		Scale:           bcp.RewardScale,
	}
}
