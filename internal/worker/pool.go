// Package worker provides a worker pool for replaying move sequences in parallel.
package worker

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/lgbarn/chessboard-go/internal/chess"
)

// WorkItem is one move sequence to replay from a starting position.
type WorkItem struct {
	Index int      // Original index for tracking
	FEN   string   // Starting position
	Moves []string // Long algebraic moves, e.g. "e2e4", "e7e8q"
}

// ProcessResult is the outcome of replaying one WorkItem.
type ProcessResult struct {
	Index    int
	FEN      string        // Last position reached; empty if the start FEN was bad
	Plies    int           // Moves applied before finishing or failing
	Captured []chess.Piece // Pieces removed from the board, in move order
	Err      error
}

// ProcessFunc is the function signature for processing a work item.
type ProcessFunc func(item WorkItem) ProcessResult

// Pool manages a pool of workers for parallel replay.
type Pool struct {
	numWorkers  int
	bufferSize  int
	workChan    chan WorkItem
	resultChan  chan ProcessResult
	processFunc ProcessFunc
	wg          sync.WaitGroup
	stopFlag    int32 // Atomic flag for early termination
}

// PoolOption configures a Pool.
type PoolOption func(*Pool)

// WithWorkers sets the number of worker goroutines.
func WithWorkers(n int) PoolOption {
	return func(p *Pool) {
		if n >= 1 {
			p.numWorkers = n
		}
	}
}

// WithBufferSize sets the channel buffer size.
func WithBufferSize(size int) PoolOption {
	return func(p *Pool) {
		if size >= 1 {
			p.bufferSize = size
		}
	}
}

// NewPoolWithOptions creates a new worker pool using functional options.
// Default: 1 worker, buffer size of 10.
func NewPoolWithOptions(processFunc ProcessFunc, opts ...PoolOption) *Pool {
	p := &Pool{
		numWorkers:  1,
		bufferSize:  10,
		processFunc: processFunc,
	}
	for _, opt := range opts {
		opt(p)
	}
	// Create channels after options are applied
	p.workChan = make(chan WorkItem, p.bufferSize)
	p.resultChan = make(chan ProcessResult, p.bufferSize)
	return p
}

// Start starts the worker goroutines.
func (p *Pool) Start() {
	for i := 0; i < p.numWorkers; i++ {
		p.wg.Add(1)
		go p.worker()
	}
}

// worker processes items from the work channel until it is closed.
func (p *Pool) worker() {
	defer p.wg.Done()

	for item := range p.workChan {
		if p.IsStopped() {
			continue // Drain channel without processing
		}
		p.resultChan <- p.processFunc(item)
	}
}

// Submit submits a work item for processing.
// This may block if the work channel buffer is full.
func (p *Pool) Submit(item WorkItem) {
	p.workChan <- item
}

// Stop signals workers to stop processing new items.
// Items already in the channel will be drained but not processed.
func (p *Pool) Stop() {
	atomic.StoreInt32(&p.stopFlag, 1)
}

// IsStopped returns true if the pool has been stopped.
func (p *Pool) IsStopped() bool {
	return atomic.LoadInt32(&p.stopFlag) != 0
}

// Close closes the work channel and waits for all workers to finish.
// After calling Close, the result channel will be closed when all workers are done.
func (p *Pool) Close() {
	close(p.workChan)
	p.wg.Wait()
	close(p.resultChan)
}

// Results returns the result channel for reading processed results.
func (p *Pool) Results() <-chan ProcessResult {
	return p.resultChan
}

// NumWorkers returns the number of workers in the pool.
func (p *Pool) NumWorkers() int {
	return p.numWorkers
}

// ProcessAll starts the pool, feeds it items, closes it and returns the
// results indexed by WorkItem.Index, which must lie in [0, len(items)).
// A pool runs ProcessAll at most once and must not be started beforehand.
// When ctx is done the pool is stopped and unprocessed items get a result
// whose Err is ctx.Err().
func (p *Pool) ProcessAll(ctx context.Context, items []WorkItem) []ProcessResult {
	results := make([]ProcessResult, len(items))
	done := make([]bool, len(items))

	p.Start()
	go func() {
		defer p.Close()
		for _, item := range items {
			if ctx.Err() != nil {
				p.Stop()
				return
			}
			select {
			case <-ctx.Done():
				p.Stop()
				return
			case p.workChan <- item:
			}
		}
	}()

	stop := context.AfterFunc(ctx, p.Stop)
	defer stop()

	for r := range p.resultChan {
		if r.Index >= 0 && r.Index < len(results) {
			results[r.Index] = r
			done[r.Index] = true
		}
	}

	if err := ctx.Err(); err != nil {
		for i := range results {
			if !done[i] {
				results[i] = ProcessResult{Index: i, Err: err}
			}
		}
	}
	return results
}
