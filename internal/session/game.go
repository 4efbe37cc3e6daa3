// Package session hosts chess games: it keeps each game's current position,
// asks a rules service whether a move is legal before handing it to the
// engine, and keeps the capture ledger and undo history the engine leaves
// to its caller.
package session

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/lgbarn/chessboard-go/internal/chess"
	"github.com/lgbarn/chessboard-go/internal/engine"
	"github.com/lgbarn/chessboard-go/internal/errors"
	"github.com/lgbarn/chessboard-go/internal/rules"
)

var log = slog.Default().With("package", "session")

// MoveResult reports what a move or promotion did.
type MoveResult struct {
	FEN      string
	Captured []chess.Piece

	// The pawn reached the last rank without a promotion piece; call
	// Promote before the next move.
	PromotionRequired bool

	// Status of the side now to move. Not refreshed while a promotion is
	// pending. StatusErr is set when the rules service could not answer;
	// the move itself has been made.
	Status    rules.Status
	StatusErr error
}

// snapshot is everything Undo and Redo restore.
type snapshot struct {
	pos      chess.Position
	captured [2][]chess.Piece
}

// Game is one game session. It is safe for concurrent use.
type Game struct {
	id  string
	cfg config
	log *slog.Logger

	// mu is never held across a rules service call.
	mu       sync.Mutex
	pos      chess.Position
	captured [2][]chess.Piece // Indexed by the capturing colour
	history  []snapshot
	redo     []snapshot
	version  uint64 // Bumped on every change to pos
}

// NewGame starts a game from the configured position.
func NewGame(id string, opts ...Option) (*Game, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	pos, err := engine.Parse(cfg.startFEN)
	if err != nil {
		return nil, errors.Wrap(err, "start position")
	}

	return &Game{
		id:  id,
		cfg: cfg,
		log: cfg.logger.With("game", id),
		pos: pos,
	}, nil
}

// ID returns the game's identifier.
func (g *Game) ID() string {
	return g.id
}

// FEN returns the current position.
func (g *Game) FEN() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return engine.Serialize(g.pos)
}

// Position returns a copy of the current position, including any pending
// promotion, which FEN cannot express.
func (g *Game) Position() chess.Position {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.pos
}

// PromotionPending reports whether the game waits for Promote.
func (g *Game) PromotionPending() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.pos.PromotionPending
}

// Captured returns the pieces colour has captured, in order.
func (g *Game) Captured(colour chess.Colour) []chess.Piece {
	g.mu.Lock()
	defer g.mu.Unlock()
	return slices.Clone(g.captured[colour])
}

// Plies returns how many moves can be undone.
func (g *Game) Plies() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.history)
}

// LegalMoves asks the rules service for the destinations of the piece on from.
func (g *Game) LegalMoves(ctx context.Context, from chess.Square) ([]chess.Square, error) {
	g.mu.Lock()
	fen := engine.Serialize(g.pos)
	pending := g.pos.PromotionPending
	g.mu.Unlock()

	if pending {
		return nil, nil
	}
	ctx, cancel := context.WithTimeout(ctx, g.cfg.rulesTimeout)
	defer cancel()

	moves, err := g.cfg.rules.LegalMoves(ctx, fen, from)
	if err != nil {
		return nil, g.rulesError("legal moves", err)
	}
	return moves, nil
}

// Status asks the rules service about the side to move.
func (g *Game) Status(ctx context.Context) (rules.Status, error) {
	fen := g.FEN()
	return g.status(ctx, fen)
}

func (g *Game) status(ctx context.Context, fen string) (rules.Status, error) {
	ctx, cancel := context.WithTimeout(ctx, g.cfg.rulesTimeout)
	defer cancel()

	st, err := g.cfg.rules.Status(ctx, fen)
	if err != nil {
		return rules.Status{}, g.rulesError("status", err)
	}
	return st, nil
}

// Move plays from-to after the rules service confirms it. promotion may be
// chess.None, in which case a pawn reaching the last rank leaves the game
// waiting for Promote. Moving a piece to its own square changes nothing.
// If another call changes the game while the rules service is consulted,
// the move fails with ErrPositionChanged.
func (g *Game) Move(ctx context.Context, from, to chess.Square, promotion chess.PieceType) (MoveResult, error) {
	move := chess.Move{From: from, To: to, Promotion: promotion}

	g.mu.Lock()
	if g.pos.PromotionPending {
		square := g.pos.PromotionSquare
		g.mu.Unlock()
		return MoveResult{}, &errors.MoveError{
			Err:    errors.ErrPromotionPending,
			From:   from.String(),
			To:     to.String(),
			Reason: "promote the pawn on " + square.String() + " first",
		}
	}
	fen := engine.Serialize(g.pos)
	version := g.version
	g.mu.Unlock()

	if move.IsNull() {
		return MoveResult{FEN: fen}, nil
	}
	if err := g.checkLegal(ctx, fen, move); err != nil {
		return MoveResult{}, err
	}

	out, err := g.apply(version, move)
	if err != nil || out.PromotionRequired {
		return out, err
	}
	out.Status, out.StatusErr = g.status(ctx, out.FEN)
	return out, nil
}

// apply plays a checked move, provided the game is still at version.
func (g *Game) apply(version uint64, move chess.Move) (MoveResult, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.version != version {
		return MoveResult{}, &errors.MoveError{
			Err:    errors.ErrPositionChanged,
			From:   move.From.String(),
			To:     move.To.String(),
			Reason: "the game moved on while the move was checked",
		}
	}

	res, err := engine.Apply(g.pos, move)
	if err != nil {
		return MoveResult{}, err
	}

	mover := g.pos.ToMove
	g.push()
	g.pos = res.Position
	g.captured[mover] = append(g.captured[mover], res.Captured...)

	g.log.Info("move", "move", move.String(), "captured", len(res.Captured), "pending", res.PromotionRequired)

	return MoveResult{
		FEN:               engine.Serialize(g.pos),
		Captured:          res.Captured,
		PromotionRequired: res.PromotionRequired,
	}, nil
}

// Promote resolves a pending promotion. It is part of the pawn's move, so
// Undo takes back both together.
func (g *Game) Promote(ctx context.Context, kind chess.PieceType) (MoveResult, error) {
	g.mu.Lock()
	next, err := engine.CompletePromotion(g.pos, kind)
	if err != nil {
		g.mu.Unlock()
		return MoveResult{}, err
	}
	g.pos = next
	g.redo = nil
	g.version++
	fen := engine.Serialize(g.pos)
	g.mu.Unlock()

	g.log.Info("promotion", "piece", kind.String())

	out := MoveResult{FEN: fen}
	out.Status, out.StatusErr = g.status(ctx, fen)
	return out, nil
}

// Undo takes back the last move.
func (g *Game) Undo() error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if len(g.history) == 0 {
		return errors.ErrNothingToUndo
	}
	g.redo = append(g.redo, g.current())
	g.restore(g.history[len(g.history)-1])
	g.history = g.history[:len(g.history)-1]
	return nil
}

// Redo replays the last undone move.
func (g *Game) Redo() error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if len(g.redo) == 0 {
		return errors.ErrNothingToRedo
	}
	g.history = append(g.history, g.current())
	g.restore(g.redo[len(g.redo)-1])
	g.redo = g.redo[:len(g.redo)-1]
	return nil
}

// push records the current state before a move and drops the redo line.
func (g *Game) push() {
	g.history = append(g.history, g.current())
	g.redo = nil
	g.version++
}

func (g *Game) current() snapshot {
	return snapshot{
		pos:      g.pos,
		captured: [2][]chess.Piece{slices.Clone(g.captured[0]), slices.Clone(g.captured[1])},
	}
}

func (g *Game) restore(s snapshot) {
	g.pos = s.pos
	g.captured = s.captured
	g.version++
}

// checkLegal asks the rules service whether move is among the legal
// destinations of its origin.
func (g *Game) checkLegal(ctx context.Context, fen string, move chess.Move) error {
	ctx, cancel := context.WithTimeout(ctx, g.cfg.rulesTimeout)
	defer cancel()

	legal, err := g.cfg.rules.LegalMoves(ctx, fen, move.From)
	if err != nil {
		return g.rulesError("legal moves", err)
	}
	if !slices.Contains(legal, move.To) {
		return &errors.MoveError{
			Err:    errors.ErrIllegalMove,
			From:   move.From.String(),
			To:     move.To.String(),
			Reason: "not a legal move",
		}
	}
	return nil
}

func (g *Game) rulesError(call string, err error) error {
	g.log.Warn("rules service failed", "call", call, "error", err)
	return fmt.Errorf("%s: %w: %w", call, errors.ErrRulesUnavailable, err)
}
