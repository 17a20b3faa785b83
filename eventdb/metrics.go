// Copyright (c) 2025 The Blockchain-Projects developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package eventdb

import (
	"strings"

	"github.com/Prakrit-Jain/Blockchain-Projects/metrics"
)

var (
	metricsAppendCount     = metrics.LazyLoadCounter("eventdb_appended_count")
	metricsQueryParameters = metrics.LazyLoadCounterVec("eventdb_query_parameters", []string{"parameters"})
	metricsLimitBucket     = metrics.LazyLoadHistogram("eventdb_query_limit_bucket", []int64{
		0, 5, 10, 25, 50, 100, 250, 500, 1000,
	})
)

func metricsHandleFilter(filter *Filter) {
	if metrics.NoOp() {
		return
	}

	paramsUsed := make([]string, 0)
	if filter.Contract != nil {
		paramsUsed = append(paramsUsed, "contract")
	}
	if filter.Account != nil {
		paramsUsed = append(paramsUsed, "account")
	}
	if len(filter.Names) > 0 {
		paramsUsed = append(paramsUsed, "names")
	}
	if filter.Range != nil {
		paramsUsed = append(paramsUsed, "range")
	}
	metricsQueryParameters().AddWithLabel(1, map[string]string{"parameters": strings.Join(paramsUsed, ",")})

	if filter.Options != nil {
		limit := filter.Options.Limit
		if limit > 1000 {
			limit = 1001
		}
		metricsLimitBucket().Observe(int64(limit))
	}
}
