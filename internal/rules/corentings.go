package rules

import (
	"context"
	"fmt"

	corentings "github.com/corentings/chess/v2"

	"github.com/lgbarn/chessboard-go/internal/chess"
	"github.com/lgbarn/chessboard-go/internal/errors"
)

// Corentings answers legality questions with github.com/corentings/chess.
type Corentings struct{}

// NewCorentings returns a rules service backed by corentings/chess.
func NewCorentings() *Corentings {
	return &Corentings{}
}

func (c *Corentings) game(ctx context.Context, fen string) (chess.Position, *corentings.Game, error) {
	pos, err := parse(ctx, fen)
	if err != nil {
		return chess.Position{}, nil, err
	}
	opt, err := corentings.FEN(fen)
	if err != nil {
		log.Error("corentings rejected FEN", "error", err, "fen", fen)
		return chess.Position{}, nil, fmt.Errorf("%w: %v", errors.ErrRulesUnavailable, err)
	}
	return pos, corentings.NewGame(opt), nil
}

// LegalMoves implements Service.
func (c *Corentings) LegalMoves(ctx context.Context, fen string, from chess.Square) ([]chess.Square, error) {
	_, game, err := c.game(ctx, fen)
	if err != nil {
		return nil, err
	}

	origin := from.String()
	var squares []chess.Square
	moves := game.ValidMoves()
	for i := range moves {
		if moves[i].S1().String() != origin {
			continue
		}
		to, err := chess.ParseSquare(moves[i].S2().String())
		if err != nil {
			return nil, errors.Wrap(err, "corentings move destination")
		}
		squares = append(squares, to)
	}
	log.Debug("corentings legal moves", "from", origin, "count", len(squares))
	return sortSquares(squares), nil
}

// Status implements Service. The library reports how a game ended but not
// whether a live position is in check, so the in-check flag comes from the
// attack map.
func (c *Corentings) Status(ctx context.Context, fen string) (Status, error) {
	pos, game, err := c.game(ctx, fen)
	if err != nil {
		return Status{}, err
	}

	method := game.Method()
	status := Status{
		Checkmate: method == corentings.Checkmate,
		Stalemate: method == corentings.Stalemate,
	}
	status.InCheck = status.Checkmate || InCheck(pos, pos.ToMove)
	return status, nil
}
