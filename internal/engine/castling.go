package engine

import (
	"github.com/lgbarn/chessboard-go/internal/chess"
	"github.com/lgbarn/chessboard-go/internal/errors"
)

const (
	queensideRookCol = 0
	kingsideRookCol  = chess.BoardSize - 1
	kingHomeCol      = 4
)

// isCastle reports whether a king move is a castle: two columns along its row.
func isCastle(piece chess.Piece, from, to chess.Square) bool {
	return piece.Type() == chess.King && from.Row == to.Row && Abs(to.Col-from.Col) == 2
}

// castleRookSquares returns where the rook stands before and after a castle.
func castleRookSquares(from, to chess.Square) (rookFrom, rookTo chess.Square) {
	if to.Col > from.Col {
		return chess.Sq(from.Row, kingsideRookCol), chess.Sq(from.Row, to.Col-1)
	}
	return chess.Sq(from.Row, queensideRookCol), chess.Sq(from.Row, to.Col+1)
}

// relocateCastlingRook moves the castling rook next to the king's destination.
// The king itself is moved by the caller.
func relocateCastlingRook(pos *chess.Position, colour chess.Colour, from, to chess.Square) error {
	rookFrom, rookTo := castleRookSquares(from, to)
	rook := pos.At(rookFrom)
	if !rook.Is(colour, chess.Rook) {
		return moveError(errors.ErrIllegalMove, chess.Move{From: from, To: to}, "no rook to castle with on "+rookFrom.String())
	}

	pos.Clear(rookFrom)
	pos.Set(rookTo, rook)
	return nil
}

// updateCastlingRightsForRook removes a castling right when a rook of
// colour leaves or is captured on its home corner.
func updateCastlingRightsForRook(pos *chess.Position, colour chess.Colour, sq chess.Square) {
	if sq.Row != chess.HomeRow(colour) {
		return
	}
	switch sq.Col {
	case kingsideRookCol:
		pos.Castling.Revoke(colour, true)
	case queensideRookCol:
		pos.Castling.Revoke(colour, false)
	}
}

// castlingCandidates returns the castling destinations of a king on its
// home square whose rights are held and whose path to the rook is empty.
// Whether the king passes through check is not considered.
func castlingCandidates(pos *chess.Position, from chess.Square) []chess.Square {
	king := pos.At(from)
	colour := king.Colour()
	if king.Type() != chess.King || from != chess.Sq(chess.HomeRow(colour), kingHomeCol) {
		return nil
	}

	var squares []chess.Square
	for _, kingside := range []bool{true, false} {
		if !pos.Castling.Has(colour, kingside) {
			continue
		}
		rookCol, dir := queensideRookCol, -1
		if kingside {
			rookCol, dir = kingsideRookCol, 1
		}
		if !pos.At(chess.Sq(from.Row, rookCol)).Is(colour, chess.Rook) {
			continue
		}
		if !isRowClear(pos, from.Row, from.Col, rookCol) {
			continue
		}
		squares = append(squares, from.Offset(0, 2*dir))
	}
	return squares
}

// isRowClear checks that the squares strictly between two columns are empty.
func isRowClear(pos *chess.Position, row, fromCol, toCol int) bool {
	dir := sign(toCol - fromCol)
	for col := fromCol + dir; col != toCol; col += dir {
		if !pos.At(chess.Sq(row, col)).IsEmpty() {
			return false
		}
	}
	return true
}
