package report

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"healthmonitor/internal/config"
	"healthmonitor/internal/metrics"
	"healthmonitor/internal/models"
)

const (
	bannerRule  = "================================="
	bannerTitle = "DevOps Simulator - Monitor v3.0"

	glyphOK   = "✓"
	glyphHigh = "⚠"

	// isoMillis matches the millisecond precision UTC timestamps of the check lines.
	isoMillis = "2006-01-02T15:04:05.000Z07:00"
)

// Section renders one part of a check burst.
type Section interface {
	Lines(check models.Check) []string
}

// SectionFunc adapts a function to Section.
type SectionFunc func(check models.Check) []string

// Lines calls f(check).
func (f SectionFunc) Lines(check models.Check) []string { return f(check) }

// DebugSection prints the static development diagnostics.
var DebugSection = SectionFunc(func(models.Check) []string {
	return []string{
		glyphOK + " Hot reload: Active",
		glyphOK + " Debug port: 9229",
		glyphOK + " Source maps: Enabled",
	}
})

// MetricsSection prints one timestamped line per simulated resource.
var MetricsSection = SectionFunc(func(c models.Check) []string {
	ts := c.Sample.Timestamp.UTC().Format(isoMillis)
	return []string{
		fmt.Sprintf("[%s] %s CPU usage: %.2f%%", ts, glyph(c.Sample.CPU, c.Threshold), c.Sample.CPU),
		fmt.Sprintf("[%s] %s Memory usage: %.2f%%", ts, glyph(c.Sample.Memory, c.Threshold), c.Sample.Memory),
		fmt.Sprintf("[%s] %s Disk space: %.2f%% used", ts, glyph(c.Sample.Disk, c.Threshold), c.Sample.Disk),
	}
})

// StatusSection prints the overall verdict.
var StatusSection = SectionFunc(func(c models.Check) []string {
	if c.Status == models.StatusWarning {
		return []string{"⚠️  System Status: WARNING - High resource usage"}
	}
	return []string{"✅ System Status: HEALTHY"}
})

// VerboseSection announces when the next check is due.
var VerboseSection = SectionFunc(func(c models.Check) []string {
	return []string{fmt.Sprintf("Next check in %dms", c.Interval.Milliseconds())}
})

// ConsoleSections selects the check sections enabled by cfg, in print order.
func ConsoleSections(cfg config.Config) []Section {
	sections := make([]Section, 0, 4)
	if cfg.DebugMode {
		sections = append(sections, DebugSection)
	}
	sections = append(sections, MetricsSection, StatusSection)
	if cfg.VerboseLogging {
		sections = append(sections, VerboseSection)
	}
	return sections
}

// Console writes human-readable bursts of lines. Bursts are written whole,
// so output from concurrent timers never interleaves.
type Console struct {
	mu       sync.Mutex
	out      io.Writer
	sections []Section
}

// NewConsole creates a console reporter writing the given sections to out.
func NewConsole(out io.Writer, sections ...Section) *Console {
	return &Console{out: out, sections: sections}
}

// Banner prints the startup banner.
func (c *Console) Banner(interval time.Duration) error {
	return c.write([]string{
		bannerRule,
		bannerTitle,
		bannerRule,
		fmt.Sprintf("Monitoring every %dms", interval.Milliseconds()),
	})
}

// ReportCheck implements Reporter.
func (c *Console) ReportCheck(check models.Check) error {
	var lines []string
	for _, s := range c.sections {
		lines = append(lines, s.Lines(check)...)
	}
	return c.write(lines)
}

// ReportMemory implements MemoryReporter.
func (c *Console) ReportMemory(usage models.MemoryUsage) error {
	return c.write([]string{
		"--- Memory Usage ---",
		fmt.Sprintf("RSS: %.2f MB", metrics.BytesToMB(usage.RSSBytes)),
		fmt.Sprintf("Heap Used: %.2f MB", metrics.BytesToMB(usage.HeapUsedBytes)),
	})
}

func (c *Console) write(lines []string) error {
	if len(lines) == 0 {
		return nil
	}
	var b strings.Builder
	for _, l := range lines {
		b.WriteString(l)
		b.WriteByte('\n')
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if _, err := io.WriteString(c.out, b.String()); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

func glyph(value, threshold float64) string {
	if value > threshold {
		return glyphHigh
	}
	return glyphOK
}
