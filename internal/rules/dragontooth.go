package rules

import (
	"context"
	"fmt"

	"github.com/dylhunn/dragontoothmg"

	"github.com/lgbarn/chessboard-go/internal/chess"
	"github.com/lgbarn/chessboard-go/internal/engine"
	"github.com/lgbarn/chessboard-go/internal/errors"
)

// Dragontooth answers legality questions with the dragontoothmg bitboard
// move generator.
type Dragontooth struct{}

// NewDragontooth returns a rules service backed by dragontoothmg.
func NewDragontooth() *Dragontooth {
	return &Dragontooth{}
}

// board parses fen with the engine first and refuses positions without
// both kings: dragontoothmg panics on those.
func (d *Dragontooth) board(ctx context.Context, fen string) (dragontoothmg.Board, error) {
	pos, err := parse(ctx, fen)
	if err != nil {
		return dragontoothmg.Board{}, err
	}
	for _, colour := range []chess.Colour{chess.White, chess.Black} {
		if _, ok := pos.KingSquare(colour); !ok {
			return dragontoothmg.Board{}, fmt.Errorf("%w: dragontoothmg needs both kings, %s has none",
				errors.ErrRulesUnavailable, colour)
		}
	}
	return dragontoothmg.ParseFen(engine.Serialize(pos)), nil
}

// LegalMoves implements Service.
func (d *Dragontooth) LegalMoves(ctx context.Context, fen string, from chess.Square) ([]chess.Square, error) {
	if !from.Valid() {
		return nil, nil
	}
	b, err := d.board(ctx, fen)
	if err != nil {
		return nil, err
	}

	origin := squareIndex(from)
	var squares []chess.Square
	moves := b.GenerateLegalMoves()
	for i := range moves {
		if moves[i].From() != origin {
			continue
		}
		squares = append(squares, indexSquare(moves[i].To()))
	}
	log.Debug("dragontooth legal moves", "from", from.String(), "count", len(squares))
	return sortSquares(squares), nil
}

// Status implements Service.
func (d *Dragontooth) Status(ctx context.Context, fen string) (Status, error) {
	b, err := d.board(ctx, fen)
	if err != nil {
		return Status{}, err
	}

	inCheck := b.OurKingInCheck()
	noMoves := len(b.GenerateLegalMoves()) == 0
	return Status{
		InCheck:   inCheck,
		Checkmate: inCheck && noMoves,
		Stalemate: !inCheck && noMoves,
	}, nil
}

// dragontoothmg numbers squares from a1 = 0 to h8 = 63, rank by rank.
func squareIndex(sq chess.Square) uint8 {
	return uint8((chess.BoardSize-1-sq.Row)*chess.BoardSize + sq.Col)
}

func indexSquare(idx uint8) chess.Square {
	return chess.Sq(chess.BoardSize-1-int(idx)/chess.BoardSize, int(idx)%chess.BoardSize)
}
