// Package rules answers the legality questions the engine leaves open:
// which destinations keep the mover's king safe, and whether the side to
// move is in check, checkmated or stalemated.
//
// Three services implement the same interface. Native is built on the
// engine's own generator, Corentings delegates to corentings/chess and
// Dragontooth to the dragontoothmg bitboard generator.
package rules

import (
	"context"
	"log/slog"
	"sort"

	"github.com/lgbarn/chessboard-go/internal/chess"
	"github.com/lgbarn/chessboard-go/internal/engine"
)

var log = slog.Default().With("package", "rules")

// Status describes the side to move in a position.
type Status struct {
	InCheck   bool
	Checkmate bool
	Stalemate bool
}

// Service is a legal-move collaborator. Implementations must be safe for
// concurrent use and should return promptly once ctx is done.
type Service interface {
	// LegalMoves returns the fully-legal destinations of the piece on from,
	// ordered by row then column. A square that is empty or holds a piece
	// of the side not on move has none.
	LegalMoves(ctx context.Context, fen string, from chess.Square) ([]chess.Square, error)

	// Status reports check, checkmate and stalemate for the side to move.
	Status(ctx context.Context, fen string) (Status, error)
}

// parse validates fen with the engine codec so every service rejects the
// same records with the same error.
func parse(ctx context.Context, fen string) (chess.Position, error) {
	if err := ctx.Err(); err != nil {
		return chess.Position{}, err
	}
	return engine.Parse(fen)
}

// sortSquares orders squares by row then column and drops duplicates.
// Promotion moves reach the same square four times in some generators.
func sortSquares(squares []chess.Square) []chess.Square {
	if len(squares) == 0 {
		return nil
	}
	sort.Slice(squares, func(i, j int) bool {
		if squares[i].Row != squares[j].Row {
			return squares[i].Row < squares[j].Row
		}
		return squares[i].Col < squares[j].Col
	})
	out := squares[:1]
	for _, sq := range squares[1:] {
		if sq != out[len(out)-1] {
			out = append(out, sq)
		}
	}
	return out
}
