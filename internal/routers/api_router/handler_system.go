package api_router

import (
	"os"
	"runtime"
	"time"

	pkgapp "github.com/haierkeys/fast-note-link-service/pkg/app"
	"github.com/haierkeys/fast-note-link-service/pkg/code"

	"github.com/gin-gonic/gin"
	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/host"
	"github.com/shirou/gopsutil/v4/load"
	"github.com/shirou/gopsutil/v4/mem"
	"github.com/shirou/gopsutil/v4/process"
)

// SystemInfo 系统与运行时信息
type SystemInfo struct {
	Runtime RuntimeInfo `json:"runtime"`
	CPU     CPUInfo     `json:"cpu"`
	Memory  MemoryInfo  `json:"memory"`
	Host    HostInfo    `json:"host"`
	Process ProcessInfo `json:"process"`
}

// RuntimeInfo Go 运行时信息
type RuntimeInfo struct {
	NumGoroutine int    `json:"numGoroutine"`
	MemAlloc     uint64 `json:"memAlloc"`
	MemSys       uint64 `json:"memSys"`
	HeapInuse    uint64 `json:"heapInuse"`
	NumGC        uint32 `json:"numGC"`
}

// CPUInfo CPU 信息
type CPUInfo struct {
	ModelName     string  `json:"modelName"`
	PhysicalCores int     `json:"physicalCores"`
	LogicalCores  int     `json:"logicalCores"`
	Load1         float64 `json:"load1"`
	Load5         float64 `json:"load5"`
	Load15        float64 `json:"load15"`
}

// MemoryInfo 内存信息
type MemoryInfo struct {
	Total       uint64  `json:"total"`
	Available   uint64  `json:"available"`
	Used        uint64  `json:"used"`
	UsedPercent float64 `json:"usedPercent"`
}

// HostInfo 主机信息
type HostInfo struct {
	Hostname      string `json:"hostname"`
	OS            string `json:"os"`
	Platform      string `json:"platform"`
	KernelVersion string `json:"kernelVersion"`
	Uptime        uint64 `json:"uptime"`
}

// ProcessInfo 进程信息
type ProcessInfo struct {
	PID           int32     `json:"pid"`
	StartTime     time.Time `json:"startTime"`
	MemoryPercent float32   `json:"memoryPercent"`
}

// System 输出系统与运行时信息，仅挂载在私有路由
// 各项采集失败时保留零值
// @Summary 系统信息
// @Tags 系统
// @Produce json
// @Success 200 {object} pkgapp.Res{data=SystemInfo} "成功"
// @Router /debug/system [get]
func System(c *gin.Context) {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	data := SystemInfo{
		Runtime: RuntimeInfo{
			NumGoroutine: runtime.NumGoroutine(),
			MemAlloc:     m.Alloc,
			MemSys:       m.Sys,
			HeapInuse:    m.HeapInuse,
			NumGC:        m.NumGC,
		},
	}

	if infos, err := cpu.InfoWithContext(c); err == nil && len(infos) > 0 {
		data.CPU.ModelName = infos[0].ModelName
	}
	data.CPU.PhysicalCores, _ = cpu.CountsWithContext(c, false)
	data.CPU.LogicalCores, _ = cpu.CountsWithContext(c, true)
	if avg, err := load.AvgWithContext(c); err == nil {
		data.CPU.Load1, data.CPU.Load5, data.CPU.Load15 = avg.Load1, avg.Load5, avg.Load15
	}

	if vm, err := mem.VirtualMemoryWithContext(c); err == nil {
		data.Memory = MemoryInfo{
			Total:       vm.Total,
			Available:   vm.Available,
			Used:        vm.Used,
			UsedPercent: vm.UsedPercent,
		}
	}

	if h, err := host.InfoWithContext(c); err == nil {
		data.Host = HostInfo{
			Hostname:      h.Hostname,
			OS:            h.OS,
			Platform:      h.Platform,
			KernelVersion: h.KernelVersion,
			Uptime:        h.Uptime,
		}
	}

	data.Process.PID = int32(os.Getpid())
	if p, err := process.NewProcessWithContext(c, data.Process.PID); err == nil {
		if ms, err := p.CreateTimeWithContext(c); err == nil {
			data.Process.StartTime = time.UnixMilli(ms)
		}
		data.Process.MemoryPercent, _ = p.MemoryPercentWithContext(c)
	}

	pkgapp.NewResponse(c).ToResponse(code.Success.WithData(data))
}
