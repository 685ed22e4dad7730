package server

import (
	"runtime"

	"github.com/dustin/go-humanize"
	"github.com/jpillora/velox"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
)

type stats struct {
	Set         bool    `json:"set"`
	CPU         float64 `json:"cpu"`
	MemoryUsed  int64   `json:"memoryUsed"`
	MemoryTotal int64   `json:"memoryTotal"`
	GoMemory    int64   `json:"goMemory"`
	GoRoutines  int     `json:"goRoutines"`
	// display strings, e.g. "1.2 GB / 8.0 GB"
	Memory   string `json:"memory"`
	GoMemStr string `json:"goMemStr"`
	//internal
	pusher velox.Pusher
}

func (s *stats) loadStats() {
	//count cpu cycles between last count
	if cpu, err := cpu.Percent(0, false); err == nil && len(cpu) > 0 {
		s.CPU = cpu[0]
	}
	//count memory usage
	if stat, err := mem.VirtualMemory(); err == nil {
		s.MemoryUsed = int64(stat.Used)
		s.MemoryTotal = int64(stat.Total)
		s.Memory = humanize.Bytes(stat.Used) + " / " + humanize.Bytes(stat.Total)
	}
	//count total bytes allocated by the go runtime
	memStats := runtime.MemStats{}
	runtime.ReadMemStats(&memStats)
	s.GoMemory = int64(memStats.Alloc)
	s.GoMemStr = humanize.Bytes(memStats.Alloc)
	//count current number of goroutines
	s.GoRoutines = runtime.NumGoroutine()
	//done
	s.Set = true
	if s.pusher != nil {
		s.pusher.Push()
	}
}
