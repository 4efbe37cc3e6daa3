// Package chess provides the core chess data model: colours, pieces,
// squares and the Position aggregate shared by the codec, the move engine
// and the move generator.
package chess

// Colour represents the colour of a piece or player.
type Colour int

const (
	Black Colour = iota
	White
)

// String returns the string representation of a colour.
func (c Colour) String() string {
	if c == White {
		return "White"
	}
	return "Black"
}

// Opposite returns the opposite colour.
func (c Colour) Opposite() Colour {
	if c == White {
		return Black
	}
	return White
}

// PieceType represents the kind of a piece, independent of colour.
type PieceType int

const (
	None PieceType = iota
	King
	Queen
	Bishop
	Knight
	Rook
	Pawn
)

// String returns the string representation of a piece type.
func (t PieceType) String() string {
	names := []string{"None", "King", "Queen", "Bishop", "Knight", "Rook", "Pawn"}
	if t >= 0 && int(t) < len(names) {
		return names[t]
	}
	return "Unknown"
}

// Letter returns the upper-case FEN letter of a piece type, or '?' for None.
func (t PieceType) Letter() byte {
	letters := []byte{'?', 'K', 'Q', 'B', 'N', 'R', 'P'}
	if t >= 0 && int(t) < len(letters) {
		return letters[t]
	}
	return '?'
}

// IsPromotionTarget reports whether a pawn may promote to t.
func (t PieceType) IsPromotionTarget() bool {
	switch t {
	case Queen, Rook, Bishop, Knight:
		return true
	}
	return false
}

// Piece is a tagged value: either NoPiece, or a (colour, type) pair.
// The fields are unexported so that a coloured None cannot be built;
// use NewPiece.
type Piece struct {
	kind   PieceType
	colour Colour
}

// NoPiece is the empty square value.
var NoPiece = Piece{}

// NewPiece returns the piece of the given colour and type.
// NewPiece(c, None) is NoPiece for every c.
func NewPiece(colour Colour, kind PieceType) Piece {
	if kind == None {
		return NoPiece
	}
	return Piece{kind: kind, colour: colour}
}

// W creates a white piece.
func W(kind PieceType) Piece {
	return NewPiece(White, kind)
}

// B creates a black piece.
func B(kind PieceType) Piece {
	return NewPiece(Black, kind)
}

// Type returns the piece type; None for NoPiece.
func (p Piece) Type() PieceType {
	return p.kind
}

// Colour returns the piece colour. It is meaningless for NoPiece.
func (p Piece) Colour() Colour {
	return p.colour
}

// IsEmpty reports whether p is NoPiece.
func (p Piece) IsEmpty() bool {
	return p.kind == None
}

// Is reports whether p is a piece of the given colour and type.
func (p Piece) Is(colour Colour, kind PieceType) bool {
	return !p.IsEmpty() && p.kind == kind && p.colour == colour
}

// IsEnemyOf reports whether p is occupied by a piece of the opposite colour.
func (p Piece) IsEnemyOf(colour Colour) bool {
	return !p.IsEmpty() && p.colour != colour
}

// Equal reports whether two pieces are identical.
func (p Piece) Equal(other Piece) bool {
	return p == other
}

// FENChar returns the FEN letter: upper case for White, lower case for Black.
func (p Piece) FENChar() byte {
	letter := p.kind.Letter()
	if p.colour == Black && letter != '?' {
		letter += 'a' - 'A'
	}
	return letter
}

// PieceFromFENChar converts a FEN letter to a piece.
// It returns false for anything outside PNBRQKpnbrqk.
func PieceFromFENChar(c byte) (Piece, bool) {
	colour := White
	if c >= 'a' && c <= 'z' {
		colour = Black
		c -= 'a' - 'A'
	}
	var kind PieceType
	switch c {
	case 'K':
		kind = King
	case 'Q':
		kind = Queen
	case 'R':
		kind = Rook
	case 'B':
		kind = Bishop
	case 'N':
		kind = Knight
	case 'P':
		kind = Pawn
	default:
		return NoPiece, false
	}
	return NewPiece(colour, kind), true
}

// String returns a readable name such as "White Knight", or "None".
func (p Piece) String() string {
	if p.IsEmpty() {
		return "None"
	}
	return p.colour.String() + " " + p.kind.String()
}

// Board dimensions.
const (
	BoardSize = 8

	FileBase = 'a'
	RankBase = '1'
)

// Home rows in the internal convention: row 0 is FEN rank 8.
const (
	BlackHomeRow = 0
	WhiteHomeRow = BoardSize - 1
)

// HomeRow returns the back-rank row of a colour.
func HomeRow(colour Colour) int {
	if colour == White {
		return WhiteHomeRow
	}
	return BlackHomeRow
}

// PawnStartRow returns the row pawns of a colour start on.
func PawnStartRow(colour Colour) int {
	if colour == White {
		return WhiteHomeRow - 1
	}
	return BlackHomeRow + 1
}

// PromotionRow returns the row on which a pawn of the colour promotes.
func PromotionRow(colour Colour) int {
	return HomeRow(colour.Opposite())
}

// Forward returns the row delta of a pawn step: -1 for White, +1 for Black.
func Forward(colour Colour) int {
	if colour == White {
		return -1
	}
	return 1
}
