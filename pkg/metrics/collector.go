// pkg/metrics/collector.go
package metrics

import (
	"context"
	"math"
	"sync"
	"time"

	"github.com/redpanda-data/benthos/v4/public/service"

	"github.com/twinfer/benthos-elapsed-timer/pkg/timer"
)

// Summary aggregates a series of measurements
type Summary struct {
	Count   int64   `json:"count"`
	TotalMs float64 `json:"total_ms"`
	MinMs   float64 `json:"min_ms"`
	MaxMs   float64 `json:"max_ms"`
}

// MeanMs returns the average measurement, or zero when empty
func (s Summary) MeanMs() float64 {
	if s.Count == 0 {
		return 0
	}
	return s.TotalMs / float64(s.Count)
}

func (s *Summary) add(ms float64) {
	if s.Count == 0 {
		s.MinMs = ms
		s.MaxMs = ms
	} else {
		s.MinMs = math.Min(s.MinMs, ms)
		s.MaxMs = math.Max(s.MaxMs, ms)
	}
	s.Count++
	s.TotalMs += ms
}

// Collector aggregates measurements delivered by scoped timers and
// periodically logs the summary. Observe is safe for concurrent use.
type Collector struct {
	name   string
	logger *service.Logger

	summary Summary
	mu      sync.Mutex

	// Reporting interval
	interval time.Duration
	stopCh   chan struct{}
	doneCh   chan struct{}
	stopOnce sync.Once
}

// NewCollector creates a new collector. The logger may be nil when Start is
// never called.
func NewCollector(name string, logger *service.Logger, interval time.Duration) *Collector {
	return &Collector{
		name:     name,
		logger:   logger,
		interval: interval,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

// Name returns the collector name
func (c *Collector) Name() string {
	return c.name
}

// Observe adds one measurement
func (c *Collector) Observe(ms float64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.summary.add(ms)
}

// Callback returns a timer callback feeding the collector
func (c *Collector) Callback() timer.Callback {
	return c.Observe
}

// Snapshot returns the current summary
func (c *Collector) Snapshot() Summary {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.summary
}

// Reset clears the summary and returns what it held
func (c *Collector) Reset() Summary {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := c.summary
	c.summary = Summary{}
	return s
}

// Start logs and resets the summary every interval until Stop is called or
// the context is done. It blocks.
func (c *Collector) Start(ctx context.Context) {
	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()
	defer close(c.doneCh)

	for {
		select {
		case <-ticker.C:
			c.report()
		case <-c.stopCh:
			return
		case <-ctx.Done():
			return
		}
	}
}

// Stop stops periodic reporting and waits for Start to return
func (c *Collector) Stop() {
	c.stopOnce.Do(func() {
		close(c.stopCh)
	})
	<-c.doneCh
}

func (c *Collector) report() {
	s := c.Reset()
	if s.Count == 0 || c.logger == nil {
		return
	}

	c.logger.Infof("Elapsed time summary for %s: count=%d mean=%.3fms min=%.3fms max=%.3fms",
		c.name, s.Count, s.MeanMs(), s.MinMs, s.MaxMs)
}
