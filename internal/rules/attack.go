package rules

import "github.com/lgbarn/chessboard-go/internal/chess"

var (
	knightJumps  = [][2]int{{-2, -1}, {-2, 1}, {-1, -2}, {-1, 2}, {1, -2}, {1, 2}, {2, -1}, {2, 1}}
	kingSteps    = [][2]int{{-1, -1}, {-1, 0}, {-1, 1}, {0, -1}, {0, 1}, {1, -1}, {1, 0}, {1, 1}}
	diagonalRays = [][2]int{{-1, -1}, {-1, 1}, {1, -1}, {1, 1}}
	straightRays = [][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}
)

// InCheck returns true if the given colour's king is attacked.
// A side without a king is never in check.
func InCheck(pos chess.Position, colour chess.Colour) bool {
	king, ok := pos.KingSquare(colour)
	if !ok {
		return false
	}
	return Attacked(pos, king, colour.Opposite())
}

// Attacked returns true if the square is attacked by the given colour.
// Occupancy of sq itself does not matter.
func Attacked(pos chess.Position, sq chess.Square, by chess.Colour) bool {
	// A pawn attacks diagonally forward, so look one row behind sq from
	// the attacker's point of view.
	for _, dc := range []int{-1, 1} {
		from := sq.Offset(-chess.Forward(by), dc)
		if from.Valid() && pos.At(from).Is(by, chess.Pawn) {
			return true
		}
	}

	if attackedByJump(&pos, sq, by, chess.Knight, knightJumps) ||
		attackedByJump(&pos, sq, by, chess.King, kingSteps) {
		return true
	}

	return attackedByRay(&pos, sq, by, diagonalRays, chess.Bishop) ||
		attackedByRay(&pos, sq, by, straightRays, chess.Rook)
}

func attackedByJump(pos *chess.Position, sq chess.Square, by chess.Colour, kind chess.PieceType, offsets [][2]int) bool {
	for _, offset := range offsets {
		from := sq.Offset(offset[0], offset[1])
		if from.Valid() && pos.At(from).Is(by, kind) {
			return true
		}
	}
	return false
}

// attackedByRay walks each ray to the first occupied square and reports
// whether it holds a slider of kind, or a queen.
func attackedByRay(pos *chess.Position, sq chess.Square, by chess.Colour, rays [][2]int, kind chess.PieceType) bool {
	for _, ray := range rays {
		from := sq.Offset(ray[0], ray[1])
		for from.Valid() {
			piece := pos.At(from)
			if !piece.IsEmpty() {
				if piece.Is(by, kind) || piece.Is(by, chess.Queen) {
					return true
				}
				break // Blocked
			}
			from = from.Offset(ray[0], ray[1])
		}
	}
	return false
}
