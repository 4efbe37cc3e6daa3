// Package engine implements the chess position engine: the FEN codec,
// single-move application and pseudo-legal move generation. Every function
// takes Positions by value and returns new ones; nothing here keeps state.
package engine

import (
	"strconv"
	"strings"

	"github.com/lgbarn/chessboard-go/internal/chess"
	"github.com/lgbarn/chessboard-go/internal/errors"
)

// InitialFEN is the FEN string for the standard starting position.
const InitialFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

const fenFields = 6

// StartingPosition returns the standard starting position.
func StartingPosition() chess.Position {
	pos, err := Parse(InitialFEN)
	if err != nil {
		panic(err)
	}
	return pos
}

// Parse converts a FEN record to a Position. Only canonical records are
// accepted, the ones Serialize produces, so Serialize(Parse(s)) == s
// whenever Parse succeeds. Failures wrap errors.ErrMalformedFEN.
func Parse(fen string) (chess.Position, error) {
	parts := strings.Split(fen, " ")
	if len(parts) != fenFields {
		return chess.Position{}, &errors.FENError{
			Field: "record",
			Value: fen,
			Msg:   "want " + strconv.Itoa(fenFields) + " space-separated fields, got " + strconv.Itoa(len(parts)),
		}
	}

	pos := chess.NewPosition()

	if err := parsePiecePositions(&pos, parts[0]); err != nil {
		return chess.Position{}, err
	}
	if err := parseSideToMove(&pos, parts[1]); err != nil {
		return chess.Position{}, err
	}
	if err := parseCastlingRights(&pos, parts[2]); err != nil {
		return chess.Position{}, err
	}
	if err := parseEnPassant(&pos, parts[3]); err != nil {
		return chess.Position{}, err
	}
	if err := parseClocks(&pos, parts[4], parts[5]); err != nil {
		return chess.Position{}, err
	}

	return pos, nil
}

// parsePiecePositions parses the piece placement field of a FEN string.
func parsePiecePositions(pos *chess.Position, field string) error {
	ranks := strings.Split(field, "/")
	if len(ranks) != chess.BoardSize {
		return &errors.FENError{Field: "board", Value: field, Msg: "want 8 ranks"}
	}

	for row, rank := range ranks {
		col := 0
		lastWasDigit := false
		for i := 0; i < len(rank); i++ {
			c := rank[i]
			switch {
			case c >= '1' && c <= '8':
				// Adjacent digits are a non-canonical grouping of one run.
				if lastWasDigit {
					return &errors.FENError{Field: "board", Value: rank, Msg: "adjacent empty-square counts"}
				}
				col += int(c - '0')
				lastWasDigit = true
			default:
				piece, ok := chess.PieceFromFENChar(c)
				if !ok {
					return &errors.FENError{Field: "board", Value: string(c), Msg: "invalid piece character"}
				}
				if col < chess.BoardSize {
					pos.Board[row][col] = piece
				}
				col++
				lastWasDigit = false
			}
			if col > chess.BoardSize {
				break
			}
		}
		if col != chess.BoardSize {
			return &errors.FENError{Field: "board", Value: rank, Msg: "rank does not expand to 8 squares"}
		}
	}
	return nil
}

// parseSideToMove parses the side to move field.
func parseSideToMove(pos *chess.Position, field string) error {
	switch field {
	case "w":
		pos.ToMove = chess.White
	case "b":
		pos.ToMove = chess.Black
	default:
		return &errors.FENError{Field: "side", Value: field}
	}
	return nil
}

// castlingOrder is the fixed K, Q, k, q order of the castling field.
const castlingOrder = "KQkq"

// parseCastlingRights parses the castling availability field. Letters must
// appear at most once each and in KQkq order.
func parseCastlingRights(pos *chess.Position, field string) error {
	pos.Castling = chess.CastlingRights{}
	if field == "-" {
		return nil
	}
	if field == "" {
		return &errors.FENError{Field: "castling", Value: field, Msg: "empty"}
	}

	next := 0
	for i := 0; i < len(field); i++ {
		idx := strings.IndexByte(castlingOrder, field[i])
		if idx < 0 {
			return &errors.FENError{Field: "castling", Value: field, Msg: "invalid character"}
		}
		if idx < next {
			return &errors.FENError{Field: "castling", Value: field, Msg: "letters repeated or out of KQkq order"}
		}
		next = idx + 1

		switch field[i] {
		case 'K':
			pos.Castling.WhiteKingside = true
		case 'Q':
			pos.Castling.WhiteQueenside = true
		case 'k':
			pos.Castling.BlackKingside = true
		case 'q':
			pos.Castling.BlackQueenside = true
		}
	}
	return nil
}

// parseEnPassant parses the en passant target square field. The target
// must sit behind a pawn that just double-stepped: rank 3 with Black to
// move, rank 6 with White to move. The target is empty and the pawn stands
// in front of it. Run after the board is parsed.
func parseEnPassant(pos *chess.Position, field string) error {
	pos.EnPassant = false
	pos.EPSquare = chess.Square{}
	if field == "-" {
		return nil
	}

	sq, err := chess.ParseSquare(field)
	if err != nil {
		return &errors.FENError{Field: "en passant", Value: field, Msg: "not a square"}
	}
	mover := pos.ToMove.Opposite()
	wantRow := chess.PawnStartRow(mover) + chess.Forward(mover)
	if sq.Row != wantRow {
		return &errors.FENError{Field: "en passant", Value: field, Msg: "target not on the double-step rank"}
	}
	if !pos.At(sq).IsEmpty() {
		return &errors.FENError{Field: "en passant", Value: field, Msg: "target square is occupied"}
	}
	if !pos.At(sq.Offset(chess.Forward(mover), 0)).Is(mover, chess.Pawn) {
		return &errors.FENError{Field: "en passant", Value: field, Msg: "no pawn in front of the target"}
	}

	pos.EnPassant = true
	pos.EPSquare = sq
	return nil
}

// parseClocks parses the halfmove clock and fullmove number fields.
func parseClocks(pos *chess.Position, halfmove, fullmove string) error {
	n, err := parseCounter(halfmove)
	if err != nil {
		return &errors.FENError{Field: "halfmove", Value: halfmove, Msg: err.Error()}
	}
	pos.HalfmoveClock = n

	n, err = parseCounter(fullmove)
	if err != nil {
		return &errors.FENError{Field: "fullmove", Value: fullmove, Msg: err.Error()}
	}
	if n < 1 {
		return &errors.FENError{Field: "fullmove", Value: fullmove, Msg: "must be positive"}
	}
	pos.MoveNumber = n
	return nil
}

// parseCounter accepts a canonical non-negative decimal: digits only, no
// sign and no leading zero.
func parseCounter(text string) (int, error) {
	if text == "" {
		return 0, strconv.ErrSyntax
	}
	for i := 0; i < len(text); i++ {
		if text[i] < '0' || text[i] > '9' {
			return 0, strconv.ErrSyntax
		}
	}
	if len(text) > 1 && text[0] == '0' {
		return 0, strconv.ErrSyntax
	}
	return strconv.Atoi(text)
}

// Serialize converts a position to its canonical FEN string. A pending
// promotion is not representable in FEN and is not written.
func Serialize(pos chess.Position) string {
	var sb strings.Builder

	writePiecePositions(&sb, &pos)
	sb.WriteByte(' ')
	writeSideToMove(&sb, &pos)
	sb.WriteByte(' ')
	writeCastlingRights(&sb, &pos)
	sb.WriteByte(' ')
	writeEnPassant(&sb, &pos)
	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(pos.HalfmoveClock))
	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(pos.MoveNumber))

	return sb.String()
}

// writePiecePositions writes the piece placement to the builder.
func writePiecePositions(sb *strings.Builder, pos *chess.Position) {
	for row := 0; row < chess.BoardSize; row++ {
		emptyCount := 0
		for col := 0; col < chess.BoardSize; col++ {
			piece := pos.Board[row][col]
			if piece.IsEmpty() {
				emptyCount++
				continue
			}
			if emptyCount > 0 {
				sb.WriteByte(byte('0' + emptyCount))
				emptyCount = 0
			}
			sb.WriteByte(piece.FENChar())
		}
		if emptyCount > 0 {
			sb.WriteByte(byte('0' + emptyCount))
		}
		if row < chess.BoardSize-1 {
			sb.WriteByte('/')
		}
	}
}

// writeSideToMove writes the side to move to the builder.
func writeSideToMove(sb *strings.Builder, pos *chess.Position) {
	if pos.ToMove == chess.White {
		sb.WriteByte('w')
	} else {
		sb.WriteByte('b')
	}
}

// writeCastlingRights writes the castling availability to the builder.
func writeCastlingRights(sb *strings.Builder, pos *chess.Position) {
	if !pos.Castling.Any() {
		sb.WriteByte('-')
		return
	}
	if pos.Castling.WhiteKingside {
		sb.WriteByte('K')
	}
	if pos.Castling.WhiteQueenside {
		sb.WriteByte('Q')
	}
	if pos.Castling.BlackKingside {
		sb.WriteByte('k')
	}
	if pos.Castling.BlackQueenside {
		sb.WriteByte('q')
	}
}

// writeEnPassant writes the en passant target square to the builder.
func writeEnPassant(sb *strings.Builder, pos *chess.Position) {
	if pos.EnPassant {
		sb.WriteString(pos.EPSquare.String())
	} else {
		sb.WriteByte('-')
	}
}
