package engine

import "github.com/lgbarn/chessboard-go/internal/chess"

// Offsets are {row delta, column delta} pairs.
var (
	knightOffsets = [][2]int{{-2, -1}, {-2, 1}, {-1, -2}, {-1, 2}, {1, -2}, {1, 2}, {2, -1}, {2, 1}}
	kingOffsets   = [][2]int{{-1, -1}, {-1, 0}, {-1, 1}, {0, -1}, {0, 1}, {1, -1}, {1, 0}, {1, 1}}

	diagonalDirs = [][2]int{{-1, -1}, {-1, 1}, {1, -1}, {1, 1}}
	straightDirs = [][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}
)

// MovesFrom returns the pseudo-legal destinations of the piece on sq:
// squares it may reach by its movement pattern and the board's occupancy,
// without regard to whether its own king is left in check. An empty square
// yields no moves. The order is deterministic.
func MovesFrom(pos chess.Position, sq chess.Square) []chess.Square {
	if !sq.Valid() {
		return nil
	}
	piece := pos.At(sq)
	if piece.IsEmpty() {
		return nil
	}

	switch piece.Type() {
	case chess.Pawn:
		return pawnMoves(&pos, sq, piece.Colour())
	case chess.Knight:
		return jumpMoves(&pos, sq, piece.Colour(), knightOffsets)
	case chess.King:
		moves := jumpMoves(&pos, sq, piece.Colour(), kingOffsets)
		return append(moves, castlingCandidates(&pos, sq)...)
	case chess.Bishop:
		return slidingMoves(&pos, sq, piece.Colour(), diagonalDirs)
	case chess.Rook:
		return slidingMoves(&pos, sq, piece.Colour(), straightDirs)
	case chess.Queen:
		moves := slidingMoves(&pos, sq, piece.Colour(), diagonalDirs)
		return append(moves, slidingMoves(&pos, sq, piece.Colour(), straightDirs)...)
	}
	return nil
}

// PseudoLegalMoves returns every pseudo-legal move of the side to move,
// with one entry per promotion piece for pawns reaching the last rank.
func PseudoLegalMoves(pos chess.Position) []chess.Move {
	var moves []chess.Move
	for _, from := range pos.Pieces(pos.ToMove) {
		isPawn := pos.At(from).Type() == chess.Pawn
		for _, to := range MovesFrom(pos, from) {
			if isPawn && to.Row == chess.PromotionRow(pos.ToMove) {
				for _, kind := range []chess.PieceType{chess.Queen, chess.Rook, chess.Bishop, chess.Knight} {
					moves = append(moves, chess.Move{From: from, To: to, Promotion: kind})
				}
				continue
			}
			moves = append(moves, chess.Move{From: from, To: to})
		}
	}
	return moves
}

// pawnMoves generates forward advances, which need empty squares, and
// diagonal captures, which need an enemy piece or, for the side to move,
// the en passant target.
func pawnMoves(pos *chess.Position, from chess.Square, colour chess.Colour) []chess.Square {
	var moves []chess.Square
	dir := chess.Forward(colour)

	one := from.Offset(dir, 0)
	if one.Valid() && pos.At(one).IsEmpty() {
		moves = append(moves, one)
		two := from.Offset(2*dir, 0)
		if from.Row == chess.PawnStartRow(colour) && pos.At(two).IsEmpty() {
			moves = append(moves, two)
		}
	}

	epTarget, hasEP := pos.EnPassantTarget()
	for _, dc := range []int{-1, 1} {
		to := from.Offset(dir, dc)
		if !to.Valid() {
			continue
		}
		if pos.At(to).IsEnemyOf(colour) || (hasEP && colour == pos.ToMove && to == epTarget) {
			moves = append(moves, to)
		}
	}
	return moves
}

// jumpMoves applies a fixed offset table, keeping on-board squares not
// held by a friendly piece.
func jumpMoves(pos *chess.Position, from chess.Square, colour chess.Colour, offsets [][2]int) []chess.Square {
	var moves []chess.Square
	for _, offset := range offsets {
		to := from.Offset(offset[0], offset[1])
		if !to.Valid() {
			continue
		}
		target := pos.At(to)
		if target.IsEmpty() || target.Colour() != colour {
			moves = append(moves, to)
		}
	}
	return moves
}

// slidingMoves walks each direction until the edge or the first occupied
// square, which is included only when it holds an enemy piece.
func slidingMoves(pos *chess.Position, from chess.Square, colour chess.Colour, dirs [][2]int) []chess.Square {
	var moves []chess.Square
	for _, dir := range dirs {
		to := from.Offset(dir[0], dir[1])
		for to.Valid() {
			target := pos.At(to)
			if !target.IsEmpty() {
				if target.Colour() != colour {
					moves = append(moves, to)
				}
				break // Blocked
			}
			moves = append(moves, to)
			to = to.Offset(dir[0], dir[1])
		}
	}
	return moves
}
