package system

import (
	"os"

	"github.com/shirou/gopsutil/v3/mem"
	"github.com/shirou/gopsutil/v3/process"
)

// MemoryStats is a point-in-time snapshot of host and process memory, served
// by the health endpoint.
type MemoryStats struct {
	TotalMB      uint64  `json:"total_mb"`
	AvailableMB  uint64  `json:"available_mb"`
	UsedPercent  float64 `json:"used_percent"`
	ProcessRSSMB uint64  `json:"process_rss_mb"`
}

// MemorySnapshot reads current memory usage. Errors degrade to zero values
// so the health endpoint never fails on them.
func MemorySnapshot() MemoryStats {
	var stats MemoryStats

	if vm, err := mem.VirtualMemory(); err == nil {
		stats.TotalMB = vm.Total / 1024 / 1024
		stats.AvailableMB = vm.Available / 1024 / 1024
		stats.UsedPercent = vm.UsedPercent
	}

	if proc, err := process.NewProcess(int32(os.Getpid())); err == nil {
		if mi, err := proc.MemoryInfo(); err == nil && mi != nil {
			stats.ProcessRSSMB = mi.RSS / 1024 / 1024
		}
	}

	return stats
}
