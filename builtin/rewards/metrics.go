// Copyright (c) 2025 The Blockchain-Projects developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package rewards

import "github.com/Prakrit-Jain/Blockchain-Projects/metrics"

var (
	metricsDepositCount  = metrics.LazyLoadCounter("rewards_deposit_count")
	metricsWithdrawCount = metrics.LazyLoadCounter("rewards_withdraw_count")

	// payout sizes in whole units, remainder below the scale discarded
	metricsPayoutBucket = metrics.LazyLoadHistogram("rewards_payout_bucket", []int64{
		0, 1, 10, 100, 1_000, 10_000, 100_000, 1_000_000,
	})
)
