// Package replay plays lists of long-algebraic moves from a FEN position
// and reports the final position and the captured pieces. Batch fans many
// independent replays out over a worker pool.
package replay

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"github.com/lgbarn/chessboard-go/internal/chess"
	"github.com/lgbarn/chessboard-go/internal/engine"
	"github.com/lgbarn/chessboard-go/internal/errors"
	"github.com/lgbarn/chessboard-go/internal/hashing"
	"github.com/lgbarn/chessboard-go/internal/rules"
	"github.com/lgbarn/chessboard-go/internal/worker"
)

var log = slog.Default().With("package", "replay")

// Job is one move list to replay.
type Job struct {
	FEN   string
	Moves []string
}

// Result is the outcome of a replay.
type Result struct {
	FEN      string        // Final position
	Plies    int           // Moves applied
	Captured []chess.Piece // Pieces removed from the board, in move order
}

type options struct {
	rules      rules.Service
	workers    int
	bufferSize int
	samePly    bool
}

// Option configures Run and Batch.
type Option func(*options)

// WithRules checks every move against svc before applying it. Without it
// only the engine's own checks apply.
func WithRules(svc rules.Service) Option {
	return func(o *options) {
		o.rules = svc
	}
}

// WithWorkers sets how many replays Batch runs at once.
func WithWorkers(n int) Option {
	return func(o *options) {
		if n >= 1 {
			o.workers = n
		}
	}
}

// WithBufferSize sets the depth of Batch's work queue.
func WithBufferSize(n int) Option {
	return func(o *options) {
		if n >= 1 {
			o.bufferSize = n
		}
	}
}

// WithSamePlyDuplicates makes Batch and Stream report a duplicate only when
// both jobs reached the position after the same number of moves.
func WithSamePlyDuplicates() Option {
	return func(o *options) {
		o.samePly = true
	}
}

func buildOptions(opts []Option) options {
	o := options{workers: 1, bufferSize: 10}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Run applies moves in order starting from fen. Every move that reaches the
// last rank with a pawn must name its promotion piece ("e7e8q"); a bare
// promotion fails with ErrPromotionPending. On failure the error names the
// ply and the Result holds the position reached before it.
func Run(ctx context.Context, fen string, moves []string, opts ...Option) (Result, error) {
	o := buildOptions(opts)
	return run(ctx, fen, moves, &o)
}

func run(ctx context.Context, fen string, moves []string, o *options) (Result, error) {
	pos, err := engine.Parse(fen)
	if err != nil {
		return Result{}, err
	}

	res := Result{FEN: fen}
	for i, text := range moves {
		if err := ctx.Err(); err != nil {
			return res, err
		}

		move, err := engine.ParseMove(text)
		if err != nil {
			return res, errors.Wrapf(err, "ply %d", i+1)
		}
		if o.rules != nil {
			if err := checkLegal(ctx, o.rules, res.FEN, move); err != nil {
				return res, errors.Wrapf(err, "ply %d", i+1)
			}
		}

		applied, err := engine.Apply(pos, move)
		if err != nil {
			return res, errors.Wrapf(err, "ply %d", i+1)
		}
		if applied.PromotionRequired {
			return res, errors.Wrapf(&errors.MoveError{
				Err:    errors.ErrPromotionPending,
				From:   move.From.String(),
				To:     move.To.String(),
				Reason: "promotion piece missing",
			}, "ply %d", i+1)
		}

		pos = applied.Position
		res.FEN = engine.Serialize(pos)
		res.Plies++
		res.Captured = append(res.Captured, applied.Captured...)
	}
	return res, nil
}

func checkLegal(ctx context.Context, svc rules.Service, fen string, move chess.Move) error {
	legal, err := svc.LegalMoves(ctx, fen, move.From)
	if err != nil {
		return fmt.Errorf("%w: %v", errors.ErrRulesUnavailable, err)
	}
	if !slices.Contains(legal, move.To) {
		return &errors.MoveError{
			Err:    errors.ErrIllegalMove,
			From:   move.From.String(),
			To:     move.To.String(),
			Reason: "rejected by rules service",
		}
	}
	return nil
}

// BatchResult pairs a Batch or Stream job's outcome with its error.
type BatchResult struct {
	Result
	Err error

	// Index is the job's position in the input, counting from 0.
	Index int

	// DuplicateOf is the index of an earlier successful job that ended in
	// the same position, or -1. Clocks are not compared.
	DuplicateOf int
}

// processor replays work items under ctx with o.
func processor(ctx context.Context, o *options) worker.ProcessFunc {
	return func(item worker.WorkItem) worker.ProcessResult {
		res, err := run(ctx, item.FEN, item.Moves, o)
		return worker.ProcessResult{
			Index:    item.Index,
			FEN:      res.FEN,
			Plies:    res.Plies,
			Captured: res.Captured,
			Err:      err,
		}
	}
}

func newPool(ctx context.Context, o *options) *worker.Pool {
	return worker.NewPoolWithOptions(processor(ctx, o),
		worker.WithWorkers(o.workers),
		worker.WithBufferSize(o.bufferSize))
}

// duplicates marks results that end where an earlier one did.
type duplicates struct {
	detector *hashing.DuplicateDetector
}

func newDuplicates(o *options) *duplicates {
	return &duplicates{detector: hashing.NewDuplicateDetector(o.samePly)}
}

func (d *duplicates) result(r worker.ProcessResult) BatchResult {
	out := BatchResult{
		Result:      Result{FEN: r.FEN, Plies: r.Plies, Captured: r.Captured},
		Err:         r.Err,
		Index:       r.Index,
		DuplicateOf: -1,
	}
	if r.Err != nil {
		return out
	}
	final, err := engine.Parse(r.FEN)
	if err != nil {
		return out
	}
	if first, dup := d.detector.CheckAndAdd(final, r.Index, r.Plies); dup {
		out.DuplicateOf = first.Index
	}
	return out
}

// Batch replays jobs concurrently. The i-th result belongs to the i-th job,
// and DuplicateOf points at the lowest such index. Jobs not started before
// ctx is done fail with ctx.Err().
func Batch(ctx context.Context, jobs []Job, opts ...Option) []BatchResult {
	o := buildOptions(opts)

	items := make([]worker.WorkItem, len(jobs))
	for i, job := range jobs {
		items[i] = worker.WorkItem{Index: i, FEN: job.FEN, Moves: job.Moves}
	}

	pool := newPool(ctx, &o)
	processed := pool.ProcessAll(ctx, items)

	dups := newDuplicates(&o)
	results := make([]BatchResult, len(processed))
	failed := 0
	for i, r := range processed {
		results[i] = dups.result(r)
		if r.Err != nil {
			failed++
		}
	}
	log.Info("batch replay complete",
		"jobs", len(jobs),
		"failed", failed,
		"unique", dups.detector.UniqueCount(),
		"duplicates", dups.detector.DuplicateCount(),
		"workers", pool.NumWorkers())
	return results
}

// Stream replays jobs as they arrive and delivers each result as soon as it
// is ready, so results come in completion order; BatchResult.Index says
// which job each belongs to, and DuplicateOf points at an earlier delivered
// result. The returned channel is closed once jobs is closed and every job
// submitted has finished. When ctx is done no further jobs are taken and
// queued ones are dropped without a result. The caller must drain the
// returned channel.
func Stream(ctx context.Context, jobs <-chan Job, opts ...Option) <-chan BatchResult {
	o := buildOptions(opts)
	pool := newPool(ctx, &o)
	pool.Start()

	go func() {
		defer pool.Close()
		index := 0
		for {
			select {
			case <-ctx.Done():
				pool.Stop()
				return
			case job, ok := <-jobs:
				if !ok {
					return
				}
				pool.Submit(worker.WorkItem{Index: index, FEN: job.FEN, Moves: job.Moves})
				index++
			}
		}
	}()

	out := make(chan BatchResult, o.bufferSize)
	go func() {
		defer close(out)
		dups := newDuplicates(&o)
		delivered := 0
		for r := range pool.Results() {
			out <- dups.result(r)
			delivered++
		}
		log.Info("stream replay complete",
			"delivered", delivered,
			"duplicates", dups.detector.DuplicateCount(),
			"workers", pool.NumWorkers())
	}()
	return out
}
