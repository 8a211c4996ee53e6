package observability

import (
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/shirou/gopsutil/v3/process"
)

// ProcessStats — снимок потребления ресурсов процессом
type ProcessStats struct {
	Uptime     time.Duration
	CPUPercent float64
	HeapAlloc  uint64
	Sys        uint64
	NumGC      uint32
	Goroutines int
}

// ProcessMonitor собирает статистику текущего процесса
type ProcessMonitor struct {
	startTime time.Time
	proc      *process.Process
}

// NewProcessMonitor создаёт монитор для текущего процесса.
// Если gopsutil недоступен, CPU не заполняется, остальное продолжает работать.
func NewProcessMonitor() *ProcessMonitor {
	pm := &ProcessMonitor{startTime: time.Now()}
	if proc, err := process.NewProcess(int32(os.Getpid())); err == nil {
		pm.proc = proc
	}
	return pm
}

// Snapshot возвращает текущую статистику
func (pm *ProcessMonitor) Snapshot() ProcessStats {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	stats := ProcessStats{
		Uptime:     time.Since(pm.startTime),
		HeapAlloc:  m.HeapAlloc,
		Sys:        m.Sys,
		NumGC:      m.NumGC,
		Goroutines: runtime.NumGoroutine(),
	}
	if pm.proc != nil {
		if cpu, err := pm.proc.CPUPercent(); err == nil {
			stats.CPUPercent = cpu
		}
	}
	return stats
}

// String форматирует статистику для логов
func (s ProcessStats) String() string {
	return fmt.Sprintf("uptime=%s cpu=%.1f%% heap=%s sys=%s gc=%d goroutines=%d",
		s.Uptime.Round(time.Millisecond), s.CPUPercent,
		humanize.Bytes(s.HeapAlloc), humanize.Bytes(s.Sys), s.NumGC, s.Goroutines)
}
