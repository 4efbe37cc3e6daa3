package engine

import (
	"fmt"

	"github.com/lgbarn/chessboard-go/internal/chess"
	"github.com/lgbarn/chessboard-go/internal/errors"
)

// ParseMove reads long algebraic notation: origin and destination in
// file-rank form, optionally followed by a promotion letter ("e7e8q").
func ParseMove(text string) (chess.Move, error) {
	if len(text) != 4 && len(text) != 5 {
		return chess.Move{}, fmt.Errorf("move %q: want 4 or 5 characters: %w", text, errors.ErrIllegalMove)
	}

	from, err := chess.ParseSquare(text[0:2])
	if err != nil {
		return chess.Move{}, errors.Wrapf(err, "move %q", text)
	}
	to, err := chess.ParseSquare(text[2:4])
	if err != nil {
		return chess.Move{}, errors.Wrapf(err, "move %q", text)
	}

	move := chess.Move{From: from, To: to}
	if len(text) == 5 {
		promo, ok := chess.PieceFromFENChar(text[4])
		if !ok || !promo.Type().IsPromotionTarget() {
			return chess.Move{}, fmt.Errorf("move %q: bad promotion letter %q: %w", text, text[4], errors.ErrIllegalMove)
		}
		move.Promotion = promo.Type()
	}
	return move, nil
}

// ApplyText parses a long algebraic move and applies it.
func ApplyText(pos chess.Position, text string) (Result, error) {
	move, err := ParseMove(text)
	if err != nil {
		return Result{}, err
	}
	return Apply(pos, move)
}
