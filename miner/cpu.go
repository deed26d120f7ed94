package miner

import (
	"fmt"
	"sync"
	"time"

	"github.com/btcsuite/btcd/chaincfg"
)

const (
	// DefaultBatchSize is how many candidates a worker evaluates between
	// counter updates and termination checks. It bounds both the shared
	// state contention and the shutdown latency after a match.
	DefaultBatchSize = 1000

	// DefaultStatsInterval is how often the progress line is printed.
	DefaultStatsInterval = 5 * time.Second
)

// matchSlot is the cross-worker rendezvous for the race to first match. The
// first publish (or fatal failure) wins, every later write is a silent
// no-op, and a populated slot doubles as the termination signal.
type matchSlot struct {
	mu  sync.Mutex
	res *Result
	err error
}

// publish stores res if the slot is still empty and reports whether this
// caller won the race.
func (s *matchSlot) publish(res *Result) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.res != nil || s.err != nil {
		return false
	}
	s.res = res
	return true
}

// fail seals the slot with a fatal error unless a result or an earlier
// error got there first.
func (s *matchSlot) fail(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.res == nil && s.err == nil {
		s.err = err
	}
}

// sealed reports whether the search is over.
func (s *matchSlot) sealed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.res != nil || s.err != nil
}

// outcome returns the final slot contents once all workers have stopped.
func (s *matchSlot) outcome() (*Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.res, s.err
}

// CPUMiner runs the brute-force search across a fixed pool of goroutines.
// Workers never message each other; they coordinate only through the match
// slot, the shared counter, and the report clock, each guarded on its own.
type CPUMiner struct {
	numWorkers int
	batchSize  int
	interval   time.Duration
	params     *chaincfg.Params

	// newOracle builds the per-worker candidate source. Swapped out in
	// tests for scripted oracles.
	newOracle func() Oracle
}

// NewCPUMiner creates a miner with numWorkers search goroutines printing
// progress every statsInterval. The worker count is validated by Mine so a
// misconfigured run fails instead of silently doing nothing.
func NewCPUMiner(numWorkers int, statsInterval time.Duration) *CPUMiner {
	params := &chaincfg.MainNetParams
	return &CPUMiner{
		numWorkers: numWorkers,
		batchSize:  DefaultBatchSize,
		interval:   statsInterval,
		params:     params,
		newOracle:  func() Oracle { return NewKeyGen(params) },
	}
}

// NumWorkers returns the configured parallelism.
func (m *CPUMiner) NumWorkers() int {
	return m.numWorkers
}

// Mine searches until one worker publishes a match and every worker has
// observed it, then returns the unique result together with the run stats.
// It fails without searching when no workers are configured, and returns a
// fatal error when candidate generation breaks down.
func (m *CPUMiner) Mine(pattern Pattern) (*Result, *Stats, error) {
	if m.numWorkers <= 0 {
		return nil, nil, fmt.Errorf("miner: need at least one worker, got %d", m.numWorkers)
	}

	stats := NewStats()
	slot := &matchSlot{}
	clock := newReportClock()

	var wg sync.WaitGroup
	for id := 0; id < m.numWorkers; id++ {
		id := id
		wg.Add(1)
		go func() {
			defer wg.Done()
			m.worker(id, pattern, slot, stats, clock)
		}()
	}
	wg.Wait()

	res, err := slot.outcome()
	if err != nil {
		return nil, nil, err
	}
	return res, stats, nil
}

// worker is the per-goroutine search loop: evaluate one batch, publish on a
// match, fold the batch into the shared counter, emit the stats line when
// due, and re-check the termination signal. The once-per-batch check bounds
// shutdown latency to a single batch after the winning publish.
func (m *CPUMiner) worker(id int, pattern Pattern, slot *matchSlot, stats *Stats, clock *reportClock) {
	defer fmt.Printf("Worker %d finished\n", id)

	oracle := m.newOracle()

	for !slot.sealed() {
		evaluated := 0
		for i := 0; i < m.batchSize; i++ {
			cand, err := oracle.Next()
			if err != nil {
				stats.Add(uint64(evaluated))
				slot.fail(fmt.Errorf("worker %d: %w", id, err))
				return
			}
			matched := pattern.Matches(cand.Address)
			evaluated++
			if !matched {
				continue
			}

			res, err := NewResult(cand, m.params)
			if err != nil {
				stats.Add(uint64(evaluated))
				slot.fail(fmt.Errorf("worker %d: %w", id, err))
				return
			}
			// Losing the race here just means another worker already
			// won; the candidate is dropped without a trace.
			slot.publish(res)
			break
		}

		stats.Add(uint64(evaluated))

		if clock.due(m.interval) {
			stats.Print()
		}
	}
}
