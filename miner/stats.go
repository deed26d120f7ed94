package miner

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"
)

// Stats aggregates the attempt count and run clock shared by all workers.
// The counter is monotone and only ever reflects completed evaluations;
// workers fold whole batches into it rather than counting per candidate.
type Stats struct {
	attempts  atomic.Uint64
	startedAt time.Time
}

// NewStats starts the run clock.
func NewStats() *Stats {
	return &Stats{startedAt: time.Now()}
}

// Add records count completed candidate evaluations.
func (s *Stats) Add(count uint64) {
	s.attempts.Add(count)
}

// Attempts returns the total candidates evaluated so far.
func (s *Stats) Attempts() uint64 {
	return s.attempts.Load()
}

// Elapsed returns the wall-clock time since the run started.
func (s *Stats) Elapsed() time.Duration {
	return time.Since(s.startedAt)
}

// Print emits the periodic progress line. Nothing is printed within the
// first second so the rate is never computed over a zero interval.
func (s *Stats) Print() {
	secs := int64(s.Elapsed().Seconds())
	if secs <= 0 {
		return
	}
	attempts := s.Attempts()
	fmt.Printf("Attempts: %d, Time: %ds, Rate: %.2f addr/s\n",
		attempts, secs, float64(attempts)/float64(secs))
}

// reportClock decides which worker owns the next periodic stats line. The
// timestamp is guarded on its own so stats emission never contends with the
// match slot or the counter.
type reportClock struct {
	mu   sync.Mutex
	last time.Time
}

func newReportClock() *reportClock {
	return &reportClock{last: time.Now()}
}

// due reports whether interval has passed since the last emission and, when
// it has, resets the timestamp so exactly one caller claims the line.
// Missed or doubled-up emissions under contention are acceptable.
func (c *reportClock) due(interval time.Duration) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if time.Since(c.last) < interval {
		return false
	}
	c.last = time.Now()
	return true
}
