// Copyright (c) 2025 The Blockchain-Projects developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package metrics

import (
	"os"
	"time"

	"github.com/elastic/gosigar"
)

var (
	metricProcResident = LazyLoadGauge("process_resident_memory_bytes")
	metricProcSize     = LazyLoadGauge("process_virtual_memory_bytes")
	metricSysMemUsed   = LazyLoadGauge("system_memory_used_bytes")
)

// StartProcessCollector periodically samples process and system memory into
// gauges. The returned function stops the collector.
func StartProcessCollector(interval time.Duration) func() {
	done := make(chan struct{})
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		pid := os.Getpid()
		for {
			collectProcessMetrics(pid)
			select {
			case <-done:
				return
			case <-ticker.C:
			}
		}
	}()
	return func() { close(done) }
}

func collectProcessMetrics(pid int) {
	if NoOp() {
		return
	}

	var procMem gosigar.ProcMem
	if err := procMem.Get(pid); err != nil {
		logger.Warn("failed to get process memory", "err", err)
	} else {
		metricProcResident().Set(int64(procMem.Resident))
		metricProcSize().Set(int64(procMem.Size))
	}

	var sysMem gosigar.Mem
	if err := sysMem.Get(); err != nil {
		logger.Warn("failed to get system memory", "err", err)
	} else {
		metricSysMemUsed().Set(int64(sysMem.ActualUsed))
	}
}
