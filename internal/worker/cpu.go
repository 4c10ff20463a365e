package worker

import (
	"context"

	"github.com/shirou/gopsutil/cpu"
)

// cpuBelow samples overall CPU usage since the previous call. A failed sample
// counts as busy.
func cpuBelow(ctx context.Context, maxCPUUsage float64) (bool, float64) {
	usage, err := cpu.PercentWithContext(ctx, 0, false)
	if err != nil || len(usage) == 0 {
		return false, 0
	}
	return usage[0] <= maxCPUUsage, usage[0]
}
