package monitor

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/shirou/gopsutil/v3/process"

	"healthmonitor/internal/models"
)

// MemoryProbe reads the memory usage of the running process.
type MemoryProbe interface {
	Read(ctx context.Context) (models.MemoryUsage, error)
}

// ProcessMemoryProbe reports the resident set size from the OS and the heap
// in use from the Go runtime.
type ProcessMemoryProbe struct {
	pid int32

	// Collection functions for mocking
	getRSS      func(ctx context.Context, pid int32) (uint64, error)
	getHeapUsed func() uint64
	now         func() time.Time
}

// NewProcessMemoryProbe creates a probe for the current process.
func NewProcessMemoryProbe() *ProcessMemoryProbe {
	return &ProcessMemoryProbe{
		pid:         int32(os.Getpid()),
		getRSS:      processRSS,
		getHeapUsed: heapUsed,
		now:         time.Now,
	}
}

// Read implements MemoryProbe.
func (p *ProcessMemoryProbe) Read(ctx context.Context) (models.MemoryUsage, error) {
	rss, err := p.getRSS(ctx, p.pid)
	if err != nil {
		return models.MemoryUsage{}, err
	}
	return models.MemoryUsage{
		Timestamp:     p.now().UTC(),
		RSSBytes:      rss,
		HeapUsedBytes: p.getHeapUsed(),
	}, nil
}

func processRSS(ctx context.Context, pid int32) (uint64, error) {
	proc, err := process.NewProcessWithContext(ctx, pid)
	if err != nil {
		return 0, fmt.Errorf("open process %d: %w", pid, err)
	}
	info, err := proc.MemoryInfoWithContext(ctx)
	if err != nil {
		return 0, fmt.Errorf("read memory info: %w", err)
	}
	return info.RSS, nil
}

func heapUsed() uint64 {
	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)
	return ms.HeapAlloc
}
