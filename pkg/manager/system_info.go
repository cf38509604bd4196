package manager

import (
	"os"
	"runtime"

	"github.com/shirou/gopsutil/v4/disk"
	"github.com/shirou/gopsutil/v4/process"

	"github.com/filestruct/filestruct/internal/models"
)

// SystemResources returns resource usage for this process and the store's
// disk using gopsutil. Failures degrade to zero values rather than erroring
// out; the server-info endpoint stays available either way.
func (m *Manager) SystemResources() models.SystemResources {
	resources := models.SystemResources{CPUCount: runtime.NumCPU()}

	proc, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		m.logger.Warnf("Failed to get process info: %v", err)
		return resources
	}

	if cpuPercent, err := proc.CPUPercent(); err != nil {
		m.logger.Warnf("Failed to get CPU percent: %v", err)
	} else {
		resources.CPUPercent = cpuPercent
	}

	if memInfo, err := proc.MemoryInfo(); err != nil {
		m.logger.Warnf("Failed to get memory info: %v", err)
	} else {
		resources.MemoryRSS = memInfo.RSS
	}

	if memPercent, err := proc.MemoryPercent(); err != nil {
		m.logger.Warnf("Failed to get memory percent: %v", err)
	} else {
		resources.MemoryPercent = memPercent
	}

	if diskUsage, err := disk.Usage(m.store.Dir()); err != nil {
		m.logger.Warnf("Failed to get disk usage: %v", err)
	} else {
		resources.DiskTotal = diskUsage.Total
		resources.DiskUsed = diskUsage.Used
		resources.DiskPercent = diskUsage.UsedPercent
	}

	return resources
}
