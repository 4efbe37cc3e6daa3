package rules

import (
	"context"

	"github.com/lgbarn/chessboard-go/internal/chess"
	"github.com/lgbarn/chessboard-go/internal/engine"
)

// Native filters the engine's pseudo-legal moves by playing each one on a
// copy of the position and rejecting those that leave the mover in check.
type Native struct{}

// NewNative returns the in-process rules service.
func NewNative() *Native {
	return &Native{}
}

// LegalMoves implements Service.
func (n *Native) LegalMoves(ctx context.Context, fen string, from chess.Square) ([]chess.Square, error) {
	pos, err := parse(ctx, fen)
	if err != nil {
		return nil, err
	}
	moves := legalFrom(pos, from)
	log.Debug("native legal moves", "from", from.String(), "count", len(moves))
	return sortSquares(moves), nil
}

// Status implements Service.
func (n *Native) Status(ctx context.Context, fen string) (Status, error) {
	pos, err := parse(ctx, fen)
	if err != nil {
		return Status{}, err
	}
	return nativeStatus(pos), nil
}

func nativeStatus(pos chess.Position) Status {
	inCheck := InCheck(pos, pos.ToMove)
	hasMoves := HasLegalMoves(pos)
	return Status{
		InCheck:   inCheck,
		Checkmate: inCheck && !hasMoves,
		Stalemate: !inCheck && !hasMoves,
	}
}

// HasLegalMoves returns true if the side to move has at least one legal move.
func HasLegalMoves(pos chess.Position) bool {
	for _, sq := range pos.Pieces(pos.ToMove) {
		if len(legalFrom(pos, sq)) > 0 {
			return true
		}
	}
	return false
}

// legalFrom returns the destinations from sq that do not leave the mover's
// king attacked. A castling king may not start in check or cross an
// attacked square.
func legalFrom(pos chess.Position, from chess.Square) []chess.Square {
	if !from.Valid() {
		return nil
	}
	piece := pos.At(from)
	if piece.IsEmpty() || piece.Colour() != pos.ToMove {
		return nil
	}
	colour := piece.Colour()

	var legal []chess.Square
	for _, to := range engine.MovesFrom(pos, from) {
		if pos.At(to).Type() == chess.King {
			continue
		}
		if piece.Type() == chess.King && engine.Abs(to.Col-from.Col) == 2 {
			passing := chess.Sq(from.Row, (from.Col+to.Col)/2)
			if InCheck(pos, colour) || Attacked(pos, passing, colour.Opposite()) {
				continue
			}
		}
		if tryMove(pos, from, to) {
			legal = append(legal, to)
		}
	}
	return legal
}

// tryMove plays the move on a copy and checks whether the mover's king is
// safe afterwards. Promotions are tried as a queen; the piece chosen does
// not change whether the king is exposed.
func tryMove(pos chess.Position, from, to chess.Square) bool {
	res, err := engine.Apply(pos, chess.Move{From: from, To: to, Promotion: chess.Queen})
	if err != nil {
		return false
	}
	return !InCheck(res.Position, pos.ToMove)
}
