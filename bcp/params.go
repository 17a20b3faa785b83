// Copyright (c) 2025 The Blockchain-Projects developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package bcp

import "math/big"

// Constants of the contract suite.
const (
	// RewardRateNumerator / RewardRateDenominator define the staking reward rate:
	// 1 token of reward per 1000 tokens staked per reward period.
	RewardRateNumerator   uint64 = 1
	RewardRateDenominator uint64 = 1000

	// TicksPerPeriod number of clock ticks (block heights) in one reward period.
	TicksPerPeriod uint64 = 14400

	// MaxReferralLevels depth of the presale referral chain.
	MaxReferralLevels = 3
)

// Keys of governance params.
var (
	KeyPresaleRate        = Blake2b([]byte("presale-rate"))
	KeyReferralLevel1     = Blake2b([]byte("referral-level-1"))
	KeyReferralLevel2     = Blake2b([]byte("referral-level-2"))
	KeyReferralLevel3     = Blake2b([]byte("referral-level-3"))
	KeyRegistryMaxNames   = Blake2b([]byte("registry-max-names"))
	KeyPresaleBeneficiary = Blake2b([]byte("presale-beneficiary"))

	// RewardScale fixed-point scale factor for accrued rewards.
	RewardScale = big.NewInt(1e18)

	// InitialPresaleRate tokens credited per unit of payment.
	InitialPresaleRate = big.NewInt(100)

	// InitialReferralLevels percentages paid to each level of the referral
	// chain, in percent of the purchase amount.
	InitialReferralLevels = []*big.Int{big.NewInt(10), big.NewInt(5), big.NewInt(2)}

	// InitialRegistryMaxNames cap of registry entries.
	InitialRegistryMaxNames = big.NewInt(1024)
)
