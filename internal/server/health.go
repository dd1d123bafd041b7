package server

import (
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/disk"
	"github.com/shirou/gopsutil/v4/host"
	"github.com/shirou/gopsutil/v4/mem"
)

// HostStats is one sample of the machine serving the site.
type HostStats struct {
	Hostname    string    `json:"hostname"`
	OS          string    `json:"os"`
	UptimeSec   uint64    `json:"uptime_sec"`
	CPUUsage    float64   `json:"cpu_usage"`
	MemUsage    float64   `json:"mem_usage"`
	DiskUsage   float64   `json:"disk_usage"`
	Goroutines  int       `json:"goroutines"`
	CollectedAt time.Time `json:"collected_at"`
}

// collectHostStats samples host telemetry. Individual probes that fail are
// left at zero; the sample itself never fails.
func collectHostStats() HostStats {
	s := HostStats{
		OS:          detailedOS(),
		Goroutines:  runtime.NumGoroutine(),
		CollectedAt: time.Now().UTC(),
	}

	if h, err := os.Hostname(); err == nil {
		s.Hostname = h
	}
	if up, err := host.Uptime(); err == nil {
		s.UptimeSec = up
	}
	// interval 0 compares against the previous call instead of blocking
	if pcts, err := cpu.Percent(0, false); err == nil && len(pcts) > 0 {
		s.CPUUsage = pcts[0]
	}
	if vm, err := mem.VirtualMemory(); err == nil {
		s.MemUsage = vm.UsedPercent
	}
	if du, err := disk.Usage(rootPath()); err == nil {
		s.DiskUsage = du.UsedPercent
	}
	return s
}

// detailedOS returns a descriptive OS version string, or runtime.GOOS as fallback.
func detailedOS() string {
	info, err := host.Info()
	if err == nil && info.Platform != "" {
		if info.PlatformVersion != "" {
			return fmt.Sprintf("%s %s", info.Platform, info.PlatformVersion)
		}
		return info.Platform
	}
	return runtime.GOOS
}

func rootPath() string {
	if runtime.GOOS == "windows" {
		return `C:\`
	}
	return "/"
}
