package engine

import (
	"fmt"

	"github.com/lgbarn/chessboard-go/internal/chess"
	"github.com/lgbarn/chessboard-go/internal/errors"
)

// CompletePromotion resolves a pending promotion left by Apply: the pawn on
// the promotion square becomes kind and the turn passes. The clocks were
// already updated when the pawn moved.
func CompletePromotion(pos chess.Position, kind chess.PieceType) (chess.Position, error) {
	if !pos.PromotionPending {
		return chess.Position{}, &errors.MoveError{Err: errors.ErrNoPendingPromotion}
	}

	sq := pos.PromotionSquare
	pawn := pos.At(sq)
	if pawn.Type() != chess.Pawn || pawn.Colour() != pos.ToMove {
		return chess.Position{}, &errors.MoveError{
			Err:    errors.ErrIllegalMove,
			To:     sq.String(),
			Reason: "no pawn of the side to move on the promotion square",
		}
	}
	if !kind.IsPromotionTarget() {
		return chess.Position{}, &errors.MoveError{
			Err:    errors.ErrIllegalMove,
			To:     sq.String(),
			Reason: fmt.Sprintf("cannot promote to %s", kind),
		}
	}

	next := pos
	next.Set(sq, chess.NewPiece(pawn.Colour(), kind))
	next.PromotionPending = false
	next.PromotionSquare = chess.Square{}
	finishPly(&next, pawn.Colour())
	return next, nil
}
