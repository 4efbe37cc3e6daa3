package hashing

import "github.com/lgbarn/chessboard-go/internal/chess"

// Random keys, one per (colour, piece type, square) plus the side to move,
// each castling right and each en passant file. Generated once from a fixed
// seed so hashes are stable between runs.
var (
	pieceKeys    [2][7][chess.BoardSize * chess.BoardSize]uint64
	blackToMove  uint64
	castlingKeys [4]uint64
	epFileKeys   [chess.BoardSize]uint64
)

func init() {
	state := uint64(0x9E3779B97F4A7C15)
	next := func() uint64 {
		// splitmix64
		state += 0x9E3779B97F4A7C15
		z := state
		z = (z ^ (z >> 30)) * 0xBF58476D1CE4E5B9
		z = (z ^ (z >> 27)) * 0x94D049BB133111EB
		return z ^ (z >> 31)
	}

	for colour := range pieceKeys {
		for kind := range pieceKeys[colour] {
			for sq := range pieceKeys[colour][kind] {
				pieceKeys[colour][kind][sq] = next()
			}
		}
	}
	blackToMove = next()
	for i := range castlingKeys {
		castlingKeys[i] = next()
	}
	for i := range epFileKeys {
		epFileKeys[i] = next()
	}
}

// Hash returns the Zobrist hash of pos. Two positions hash alike when they
// agree on placement, side to move, castling rights and en passant square;
// the clocks and any pending promotion are not part of the key.
func Hash(pos chess.Position) uint64 {
	var h uint64
	for row := 0; row < chess.BoardSize; row++ {
		for col := 0; col < chess.BoardSize; col++ {
			piece := pos.Board[row][col]
			if piece.IsEmpty() {
				continue
			}
			h ^= pieceKeys[piece.Colour()][piece.Type()][row*chess.BoardSize+col]
		}
	}

	if pos.ToMove == chess.Black {
		h ^= blackToMove
	}

	rights := []bool{
		pos.Castling.WhiteKingside,
		pos.Castling.WhiteQueenside,
		pos.Castling.BlackKingside,
		pos.Castling.BlackQueenside,
	}
	for i, held := range rights {
		if held {
			h ^= castlingKeys[i]
		}
	}

	if ep, ok := pos.EnPassantTarget(); ok {
		h ^= epFileKeys[ep.Col]
	}
	return h
}
