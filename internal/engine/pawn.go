package engine

import "github.com/lgbarn/chessboard-go/internal/chess"

// applyEnPassantCapture removes the pawn taken en passant, if this pawn
// move is one. The victim stands on the mover's origin row, in the
// destination column.
func applyEnPassantCapture(pos *chess.Position, from, to chess.Square) (chess.Piece, bool) {
	target, ok := pos.EnPassantTarget()
	if !ok || to != target || !pos.At(to).IsEmpty() {
		return chess.NoPiece, false
	}

	mover := pos.At(from).Colour()
	victimSq := chess.Sq(from.Row, to.Col)
	victim := pos.At(victimSq)
	if !victim.Is(mover.Opposite(), chess.Pawn) {
		return chess.NoPiece, false
	}

	pos.Clear(victimSq)
	return victim, true
}

// updateEnPassantTarget sets the target after a double step and clears it otherwise.
func updateEnPassantTarget(pos *chess.Position, piece chess.Piece, from, to chess.Square) {
	pos.EnPassant = false
	pos.EPSquare = chess.Square{}
	if piece.Type() == chess.Pawn && Abs(from.Row-to.Row) == 2 {
		pos.EnPassant = true
		pos.EPSquare = chess.Sq((from.Row+to.Row)/2, from.Col)
	}
}

// promotedPiece returns what lands on to. A pawn reaching the last rank
// becomes the requested piece; with no request it stays a pawn and the
// promotion is reported as pending.
func promotedPiece(piece chess.Piece, to chess.Square, promotion chess.PieceType) (chess.Piece, bool) {
	if piece.Type() != chess.Pawn || to.Row != chess.PromotionRow(piece.Colour()) {
		return piece, false
	}
	if promotion == chess.None {
		return piece, true
	}
	return chess.NewPiece(piece.Colour(), promotion), false
}
