package chess

// CastlingRights holds the four castling availabilities. Rights are only
// ever revoked by move application, never restored.
type CastlingRights struct {
	WhiteKingside  bool
	WhiteQueenside bool
	BlackKingside  bool
	BlackQueenside bool
}

// AllCastlingRights has every right set, as in the starting position.
var AllCastlingRights = CastlingRights{true, true, true, true}

// Any reports whether at least one right is held.
func (c CastlingRights) Any() bool {
	return c.WhiteKingside || c.WhiteQueenside || c.BlackKingside || c.BlackQueenside
}

// Has reports whether colour may still castle on the given side.
func (c CastlingRights) Has(colour Colour, kingside bool) bool {
	switch {
	case colour == White && kingside:
		return c.WhiteKingside
	case colour == White:
		return c.WhiteQueenside
	case kingside:
		return c.BlackKingside
	default:
		return c.BlackQueenside
	}
}

// Revoke clears the right of colour on the given side.
func (c *CastlingRights) Revoke(colour Colour, kingside bool) {
	switch {
	case colour == White && kingside:
		c.WhiteKingside = false
	case colour == White:
		c.WhiteQueenside = false
	case kingside:
		c.BlackKingside = false
	default:
		c.BlackQueenside = false
	}
}

// RevokeAll clears both rights of colour.
func (c *CastlingRights) RevokeAll(colour Colour) {
	c.Revoke(colour, true)
	c.Revoke(colour, false)
}

// Position is a complete game state. It is a value: copying a Position
// copies its board, so functions that take and return Positions never
// share mutable state with their caller.
type Position struct {
	// Board is indexed [row][col]; row 0 is rank 8.
	Board [BoardSize][BoardSize]Piece

	// Who has the next move.
	ToMove Colour

	Castling CastlingRights

	// Is en passant capture possible? If so EPSquare is the square a
	// capturing pawn would land on.
	EnPassant bool
	EPSquare  Square

	// The half-move clock since the last pawn move or capture.
	HalfmoveClock int

	// The current move number, incremented after Black moves.
	MoveNumber int

	// A pawn has reached the last rank and is waiting for its promotion
	// piece. No further move may be applied until it is resolved.
	PromotionPending bool
	PromotionSquare  Square
}

// NewPosition returns an empty board with White to move at move 1.
func NewPosition() Position {
	return Position{ToMove: White, MoveNumber: 1}
}

// At returns the piece on sq, or NoPiece when sq is off the board.
func (p *Position) At(sq Square) Piece {
	if !sq.Valid() {
		return NoPiece
	}
	return p.Board[sq.Row][sq.Col]
}

// Set places a piece on sq. Off-board squares are ignored.
func (p *Position) Set(sq Square, piece Piece) {
	if sq.Valid() {
		p.Board[sq.Row][sq.Col] = piece
	}
}

// Clear empties sq.
func (p *Position) Clear(sq Square) {
	p.Set(sq, NoPiece)
}

// KingSquare finds the king of colour. It returns false if there is none.
func (p *Position) KingSquare(colour Colour) (Square, bool) {
	king := NewPiece(colour, King)
	for row := 0; row < BoardSize; row++ {
		for col := 0; col < BoardSize; col++ {
			if p.Board[row][col] == king {
				return Square{Row: row, Col: col}, true
			}
		}
	}
	return Square{}, false
}

// EnPassantTarget returns the en passant square if one is set.
func (p *Position) EnPassantTarget() (Square, bool) {
	return p.EPSquare, p.EnPassant
}

// Pieces returns every occupied square of colour, row 0 first.
func (p *Position) Pieces(colour Colour) []Square {
	var squares []Square
	for row := 0; row < BoardSize; row++ {
		for col := 0; col < BoardSize; col++ {
			piece := p.Board[row][col]
			if !piece.IsEmpty() && piece.Colour() == colour {
				squares = append(squares, Square{Row: row, Col: col})
			}
		}
	}
	return squares
}
