package replay

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"testing"

	"github.com/lgbarn/chessboard-go/internal/chess"
	chesserrors "github.com/lgbarn/chessboard-go/internal/errors"
	"github.com/lgbarn/chessboard-go/internal/rules"
	"github.com/lgbarn/chessboard-go/internal/testutil"
)

var scholarsMate = []string{"e2e4", "e7e5", "f1c4", "b8c6", "d1h5", "g8f6", "h5f7"}

// failingRules is a rules service whose backend is down.
type failingRules struct{}

func (failingRules) LegalMoves(context.Context, string, chess.Square) ([]chess.Square, error) {
	return nil, fmt.Errorf("connection refused")
}

func (failingRules) Status(context.Context, string) (rules.Status, error) {
	return rules.Status{}, fmt.Errorf("connection refused")
}

func TestRun(t *testing.T) {
	tests := []struct {
		name         string
		fen          string
		moves        []string
		opts         []Option
		wantFEN      string
		wantPlies    int
		wantCaptured []chess.Piece
	}{
		{
			name:    "no moves",
			fen:     testutil.StartFEN,
			wantFEN: testutil.StartFEN,
		},
		{
			name:      "single move",
			fen:       testutil.StartFEN,
			moves:     []string{"e2e4"},
			wantFEN:   testutil.AfterE4FEN,
			wantPlies: 1,
		},
		{
			name:         "scholar's mate",
			fen:          testutil.StartFEN,
			moves:        scholarsMate,
			wantFEN:      testutil.ScholarsMateFEN,
			wantPlies:    7,
			wantCaptured: []chess.Piece{chess.B(chess.Pawn)},
		},
		{
			name:         "scholar's mate checked by rules",
			fen:          testutil.StartFEN,
			moves:        scholarsMate,
			opts:         []Option{WithRules(rules.NewNative())},
			wantFEN:      testutil.ScholarsMateFEN,
			wantPlies:    7,
			wantCaptured: []chess.Piece{chess.B(chess.Pawn)},
		},
		{
			name:      "promotion then king move",
			fen:       testutil.PromotionFEN,
			moves:     []string{"e7e8q", "a1b2"},
			wantFEN:   "4Q3/8/8/8/8/8/1k6/4K3 w - - 1 41",
			wantPlies: 2,
		},
		{
			name:      "engine alone accepts a geometric jump",
			fen:       testutil.StartFEN,
			moves:     []string{"e2e5"},
			wantFEN:   "rnbqkbnr/pppppppp/8/4P3/8/8/PPPP1PPP/RNBQKBNR b KQkq - 0 1",
			wantPlies: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Run(context.Background(), tt.fen, tt.moves, tt.opts...)
			testutil.AssertNoError(t, err)
			testutil.AssertEqual(t, got, Result{FEN: tt.wantFEN, Plies: tt.wantPlies, Captured: tt.wantCaptured})
		})
	}
}

func TestRun_Errors(t *testing.T) {
	tests := []struct {
		name      string
		fen       string
		moves     []string
		opts      []Option
		wantErr   error
		wantFEN   string
		wantPlies int
	}{
		{
			name:    "malformed FEN",
			fen:     "8/8/8 w - - 0 1",
			wantErr: chesserrors.ErrMalformedFEN,
		},
		{
			name:    "unreadable move",
			fen:     testutil.StartFEN,
			moves:   []string{"e2"},
			wantErr: chesserrors.ErrIllegalMove,
			wantFEN: testutil.StartFEN,
		},
		{
			name:      "second move from an empty square",
			fen:       testutil.StartFEN,
			moves:     []string{"e2e4", "e2e4"},
			wantErr:   chesserrors.ErrIllegalMove,
			wantFEN:   testutil.AfterE4FEN,
			wantPlies: 1,
		},
		{
			name:    "rules reject a geometric jump",
			fen:     testutil.StartFEN,
			moves:   []string{"e2e5"},
			opts:    []Option{WithRules(rules.NewNative())},
			wantErr: chesserrors.ErrIllegalMove,
			wantFEN: testutil.StartFEN,
		},
		{
			name:    "missing promotion piece",
			fen:     testutil.PromotionFEN,
			moves:   []string{"e7e8"},
			wantErr: chesserrors.ErrPromotionPending,
			wantFEN: testutil.PromotionFEN,
		},
		{
			name:    "rules service down",
			fen:     testutil.StartFEN,
			moves:   []string{"e2e4"},
			opts:    []Option{WithRules(failingRules{})},
			wantErr: chesserrors.ErrRulesUnavailable,
			wantFEN: testutil.StartFEN,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Run(context.Background(), tt.fen, tt.moves, tt.opts...)
			testutil.AssertErrorIs(t, err, tt.wantErr)
			testutil.AssertEqual(t, got.FEN, tt.wantFEN)
			testutil.AssertEqual(t, got.Plies, tt.wantPlies)
		})
	}
}

func TestRun_ErrorNamesPly(t *testing.T) {
	_, err := Run(context.Background(), testutil.StartFEN, []string{"e2e4", "e7e5", "e7e6"})
	testutil.AssertErrorIs(t, err, chesserrors.ErrIllegalMove)
	testutil.AssertContains(t, err.Error(), "ply 3")
}

func TestRun_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Run(ctx, testutil.StartFEN, scholarsMate)
	testutil.AssertTrue(t, errors.Is(err, context.Canceled), "got %v", err)
}

func TestBatch(t *testing.T) {
	jobs := []Job{
		{FEN: testutil.StartFEN, Moves: scholarsMate},
		{FEN: testutil.StartFEN, Moves: []string{"e2e4"}},
		{FEN: "bad", Moves: []string{"e2e4"}},
		{FEN: testutil.SicilianFEN, Moves: []string{"g1f3"}},
		{FEN: testutil.EnPassantFEN, Moves: []string{"f5e6"}},
	}

	results := Batch(context.Background(), jobs, WithWorkers(3), WithBufferSize(2), WithRules(rules.NewNative()))

	if len(results) != len(jobs) {
		t.Fatalf("results = %d; want %d", len(results), len(jobs))
	}

	testutil.AssertNoError(t, results[0].Err)
	testutil.AssertEqual(t, results[0].FEN, testutil.ScholarsMateFEN)
	testutil.AssertEqual(t, results[1].FEN, testutil.AfterE4FEN)
	testutil.AssertErrorIs(t, results[2].Err, chesserrors.ErrMalformedFEN)
	testutil.AssertEqual(t, results[3].FEN, "rnbqkbnr/pp1ppppp/8/2p5/4P3/5N2/PPPP1PPP/RNBQKB1R b KQkq - 1 2")
	testutil.AssertEqual(t, results[4].Captured, []chess.Piece{chess.B(chess.Pawn)})
	for i, r := range results {
		testutil.AssertEqual(t, r.DuplicateOf, -1, "job %d", i)
	}
}

// Jobs that reach the same position point back at the first one to get there.
func TestBatch_Duplicates(t *testing.T) {
	jobs := []Job{
		{FEN: testutil.StartFEN, Moves: []string{"e2e4", "e7e5", "g1f3", "b8c6"}},
		{FEN: testutil.StartFEN, Moves: []string{"g1f3", "e7e5", "e2e4", "b8c6"}},
		{FEN: testutil.StartFEN, Moves: []string{"g1f3", "g8f6", "f3g1", "f6g8"}},
		{FEN: testutil.StartFEN, Moves: []string{"e2e4", "e7e5", "g1f3", "b8c6", "x"}},
		{FEN: testutil.StartFEN},
		{FEN: testutil.StartFEN, Moves: []string{"e2e4", "e7e5", "g1f3", "b8c6"}},
	}

	results := Batch(context.Background(), jobs, WithWorkers(3))

	got := make([]int, len(results))
	for i, r := range results {
		got[i] = r.DuplicateOf
	}
	testutil.AssertEqual(t, got, []int{-1, 0, -1, -1, 2, 0})
	testutil.AssertError(t, results[3].Err)
}

// Batch results match one-at-a-time replays.
func TestBatch_MatchesRun(t *testing.T) {
	var jobs []Job
	for n := 0; n <= len(scholarsMate); n++ {
		jobs = append(jobs, Job{FEN: testutil.StartFEN, Moves: scholarsMate[:n]})
	}

	results := Batch(context.Background(), jobs, WithWorkers(4))
	for i, job := range jobs {
		want, err := Run(context.Background(), job.FEN, job.Moves)
		testutil.AssertNoError(t, err)
		testutil.AssertNoError(t, results[i].Err)
		testutil.AssertEqual(t, results[i].Result, want, "job %d", i)
	}
}

func TestBatch_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	jobs := make([]Job, 10)
	for i := range jobs {
		jobs[i] = Job{FEN: testutil.StartFEN, Moves: []string{"e2e4"}}
	}

	for i, r := range Batch(ctx, jobs, WithWorkers(2)) {
		testutil.AssertTrue(t, errors.Is(r.Err, context.Canceled), "job %d: got %v", i, r.Err)
	}
}

// Only jobs reaching the position after as many moves count as duplicates.
func TestBatch_SamePlyDuplicates(t *testing.T) {
	jobs := []Job{
		{FEN: testutil.StartFEN},
		{FEN: testutil.StartFEN, Moves: []string{"g1f3", "g8f6", "f3g1", "f6g8"}},
		{FEN: testutil.StartFEN},
	}

	results := Batch(context.Background(), jobs, WithWorkers(2), WithSamePlyDuplicates())

	testutil.AssertEqual(t, results[0].DuplicateOf, -1)
	testutil.AssertEqual(t, results[1].DuplicateOf, -1)
	testutil.AssertEqual(t, results[2].DuplicateOf, 0)
}

func feed(jobs ...Job) <-chan Job {
	ch := make(chan Job, len(jobs))
	for _, job := range jobs {
		ch <- job
	}
	close(ch)
	return ch
}

func collect(results <-chan BatchResult) []BatchResult {
	var out []BatchResult
	for r := range results {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Index < out[j].Index })
	return out
}

// Streamed results match one-at-a-time replays.
func TestStream(t *testing.T) {
	var jobs []Job
	for n := 0; n <= len(scholarsMate); n++ {
		jobs = append(jobs, Job{FEN: testutil.StartFEN, Moves: scholarsMate[:n]})
	}
	jobs = append(jobs, Job{FEN: "bad"})

	results := collect(Stream(context.Background(), feed(jobs...), WithWorkers(3), WithBufferSize(2)))

	if len(results) != len(jobs) {
		t.Fatalf("results = %d; want %d", len(results), len(jobs))
	}
	for i, job := range jobs {
		testutil.AssertEqual(t, results[i].Index, i)
		want, err := Run(context.Background(), job.FEN, job.Moves)
		if err != nil {
			testutil.AssertErrorIs(t, results[i].Err, chesserrors.ErrMalformedFEN)
			continue
		}
		testutil.AssertNoError(t, results[i].Err)
		testutil.AssertEqual(t, results[i].Result, want, "job %d", i)
	}
}

// One worker finishes jobs in order, so duplicates point back as in Batch.
func TestStream_Duplicates(t *testing.T) {
	jobs := feed(
		Job{FEN: testutil.StartFEN, Moves: []string{"e2e4", "e7e5", "g1f3", "b8c6"}},
		Job{FEN: testutil.StartFEN, Moves: []string{"g1f3", "e7e5", "e2e4", "b8c6"}},
		Job{FEN: testutil.StartFEN, Moves: []string{"g1f3", "g8f6", "f3g1", "f6g8"}},
		Job{FEN: testutil.StartFEN},
	)

	results := collect(Stream(context.Background(), jobs, WithWorkers(1)))

	got := make([]int, len(results))
	for i, r := range results {
		got[i] = r.DuplicateOf
	}
	testutil.AssertEqual(t, got, []int{-1, 0, -1, 2})
}

// A cancelled stream closes its results without waiting for more jobs.
func TestStream_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	jobs := make(chan Job)
	defer close(jobs)

	for r := range Stream(ctx, jobs, WithWorkers(2)) {
		testutil.AssertTrue(t, errors.Is(r.Err, context.Canceled), "job %d: got %v", r.Index, r.Err)
	}
}
