package chess

// Move is a request to move the piece on From to To. Promotion names the
// piece a pawn becomes on the last rank; None leaves the choice pending.
type Move struct {
	From      Square
	To        Square
	Promotion PieceType
}

// String returns long algebraic notation such as "e2e4" or "e7e8q".
func (m Move) String() string {
	s := m.From.String() + m.To.String()
	if m.Promotion != None {
		s += string(m.Promotion.Letter() + 'a' - 'A')
	}
	return s
}

// IsNull reports whether the move leaves its piece where it is.
func (m Move) IsNull() bool {
	return m.From == m.To
}
