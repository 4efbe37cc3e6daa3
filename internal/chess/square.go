package chess

import (
	"fmt"

	"github.com/lgbarn/chessboard-go/internal/errors"
)

// Square is a board coordinate. Row 0 is rank 8, column 0 is file a.
type Square struct {
	Row int
	Col int
}

// Sq builds a square from row and column.
func Sq(row, col int) Square {
	return Square{Row: row, Col: col}
}

// Valid reports whether the square lies on the board.
func (s Square) Valid() bool {
	return s.Row >= 0 && s.Row < BoardSize && s.Col >= 0 && s.Col < BoardSize
}

// Offset returns the square dr rows and dc columns away. The result may be off the board.
func (s Square) Offset(dr, dc int) Square {
	return Square{Row: s.Row + dr, Col: s.Col + dc}
}

// File returns the file letter, 'a' to 'h'.
func (s Square) File() byte {
	return byte(FileBase + s.Col)
}

// Rank returns the rank digit, '1' to '8'.
func (s Square) Rank() byte {
	return byte(RankBase + BoardSize - 1 - s.Row)
}

// String returns the file-rank form, e.g. "e4". Off-board squares render as "-".
func (s Square) String() string {
	if !s.Valid() {
		return "-"
	}
	return string([]byte{s.File(), s.Rank()})
}

// ParseSquare converts file-rank text such as "e4" to a Square.
func ParseSquare(text string) (Square, error) {
	if len(text) != 2 {
		return Square{}, fmt.Errorf("%q: %w", text, errors.ErrInvalidSquare)
	}
	file, rank := text[0], text[1]
	if file < FileBase || file >= FileBase+BoardSize || rank < RankBase || rank >= RankBase+BoardSize {
		return Square{}, fmt.Errorf("%q: %w", text, errors.ErrInvalidSquare)
	}
	return Square{
		Row: BoardSize - 1 - int(rank-RankBase),
		Col: int(file - FileBase),
	}, nil
}

// MustParseSquare is ParseSquare for constant input; it panics on error.
func MustParseSquare(text string) Square {
	sq, err := ParseSquare(text)
	if err != nil {
		panic(err)
	}
	return sq
}

// AllSquares returns the 64 squares, row 0 first.
func AllSquares() []Square {
	squares := make([]Square, 0, BoardSize*BoardSize)
	for row := 0; row < BoardSize; row++ {
		for col := 0; col < BoardSize; col++ {
			squares = append(squares, Square{Row: row, Col: col})
		}
	}
	return squares
}
