package engine

import (
	"fmt"

	"github.com/lgbarn/chessboard-go/internal/chess"
	"github.com/lgbarn/chessboard-go/internal/errors"
)

// Result is the outcome of applying one move.
type Result struct {
	// Position after the move.
	Position chess.Position

	// Pieces removed from the board by this move, for the caller's
	// captured-piece ledger. At most one entry.
	Captured []chess.Piece

	// A pawn reached the last rank without a promotion piece. The turn has
	// not passed; call CompletePromotion before applying another move.
	PromotionRequired bool
}

// Apply plays move on pos and returns the next position. The input is not
// modified. Legality beyond origin ownership is the caller's job: Apply
// does not look for check.
//
// A move with From == To returns pos unchanged, without toggling the turn.
func Apply(pos chess.Position, move chess.Move) (Result, error) {
	if pos.PromotionPending {
		return Result{}, moveError(errors.ErrPromotionPending, move,
			fmt.Sprintf("pawn on %s awaits its promotion piece", pos.PromotionSquare))
	}
	if move.IsNull() {
		return Result{Position: pos}, nil
	}
	if err := validateMove(&pos, move); err != nil {
		return Result{}, err
	}

	from, to := move.From, move.To
	piece := pos.At(from)
	colour := piece.Colour()
	target := pos.At(to)

	next := pos
	var captured []chess.Piece

	// Ordinary capture.
	if target.IsEnemyOf(colour) {
		captured = append(captured, target)
		if target.Type() == chess.Rook {
			updateCastlingRightsForRook(&next, target.Colour(), to)
		}
	}

	if piece.Type() == chess.Pawn {
		if victim, ok := applyEnPassantCapture(&next, from, to); ok {
			captured = append(captured, victim)
		}
	}

	if isCastle(piece, from, to) {
		if err := relocateCastlingRook(&next, colour, from, to); err != nil {
			return Result{}, err
		}
	}

	placed, pending := promotedPiece(piece, to, move.Promotion)

	next.Clear(from)
	next.Set(to, placed)

	updateEnPassantTarget(&next, piece, from, to)

	switch piece.Type() {
	case chess.King:
		next.Castling.RevokeAll(colour)
	case chess.Rook:
		updateCastlingRightsForRook(&next, colour, from)
	}

	if piece.Type() == chess.Pawn || len(captured) > 0 {
		next.HalfmoveClock = 0
	} else {
		next.HalfmoveClock++
	}

	if pending {
		next.PromotionPending = true
		next.PromotionSquare = to
	} else {
		finishPly(&next, colour)
	}

	return Result{
		Position:          next,
		Captured:          captured,
		PromotionRequired: pending,
	}, nil
}

// validateMove checks everything Apply can check without rules knowledge.
// It runs before any change is made.
func validateMove(pos *chess.Position, move chess.Move) error {
	if !move.From.Valid() || !move.To.Valid() {
		return moveError(errors.ErrIllegalMove, move, "square off the board")
	}

	piece := pos.At(move.From)
	if piece.IsEmpty() {
		return moveError(errors.ErrIllegalMove, move, "origin is empty")
	}
	if piece.Colour() != pos.ToMove {
		return moveError(errors.ErrIllegalMove, move,
			fmt.Sprintf("origin holds a %s piece but %s is to move", piece.Colour(), pos.ToMove))
	}

	target := pos.At(move.To)
	if !target.IsEmpty() && target.Colour() == piece.Colour() {
		return moveError(errors.ErrIllegalMove, move, "destination holds a friendly piece")
	}
	if target.Type() == chess.King {
		return moveError(errors.ErrIllegalMove, move, "kings cannot be captured")
	}

	if piece.Type() == chess.Pawn && move.To.Row == chess.PromotionRow(piece.Colour()) &&
		move.Promotion != chess.None && !move.Promotion.IsPromotionTarget() {
		return moveError(errors.ErrIllegalMove, move,
			fmt.Sprintf("cannot promote to %s", move.Promotion))
	}
	return nil
}

// finishPly passes the turn, counting a full move after Black.
func finishPly(pos *chess.Position, mover chess.Colour) {
	if mover == chess.Black {
		pos.MoveNumber++
	}
	pos.ToMove = mover.Opposite()
}

func moveError(err error, move chess.Move, reason string) error {
	return &errors.MoveError{
		Err:    err,
		From:   move.From.String(),
		To:     move.To.String(),
		Reason: reason,
	}
}
