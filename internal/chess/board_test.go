package chess

import (
	"testing"
)

func TestNewPosition(t *testing.T) {
	p := NewPosition()

	t.Run("initial state", func(t *testing.T) {
		if p.ToMove != White {
			t.Errorf("ToMove = %v; want White", p.ToMove)
		}
		if p.MoveNumber != 1 {
			t.Errorf("MoveNumber = %d; want 1", p.MoveNumber)
		}
		if p.EnPassant {
			t.Error("EnPassant = true; want false")
		}
		if p.HalfmoveClock != 0 {
			t.Errorf("HalfmoveClock = %d; want 0", p.HalfmoveClock)
		}
		if p.Castling.Any() {
			t.Error("Castling.Any() = true; want false")
		}
	})

	t.Run("all squares empty", func(t *testing.T) {
		for _, sq := range AllSquares() {
			if got := p.At(sq); !got.IsEmpty() {
				t.Errorf("At(%s) = %v; want None", sq, got)
			}
		}
	})
}

func TestPosition_SetAt(t *testing.T) {
	p := NewPosition()
	e4 := MustParseSquare("e4")

	p.Set(e4, W(Knight))
	if got := p.At(e4); got != W(Knight) {
		t.Errorf("At(e4) = %v; want White Knight", got)
	}

	p.Clear(e4)
	if got := p.At(e4); !got.IsEmpty() {
		t.Errorf("At(e4) after Clear = %v; want None", got)
	}

	// Off-board access is harmless.
	off := Sq(8, 0)
	p.Set(off, W(Queen))
	if got := p.At(off); !got.IsEmpty() {
		t.Errorf("At(off board) = %v; want None", got)
	}
}

func TestPosition_CopyIsIndependent(t *testing.T) {
	p := NewPosition()
	p.Set(MustParseSquare("a1"), W(Rook))

	q := p
	q.Clear(MustParseSquare("a1"))

	if p.At(MustParseSquare("a1")) != W(Rook) {
		t.Error("modifying a copy changed the original board")
	}
}

func TestPosition_KingSquare(t *testing.T) {
	p := NewPosition()
	p.Set(MustParseSquare("g1"), W(King))
	p.Set(MustParseSquare("b8"), B(King))

	tests := []struct {
		colour Colour
		want   string
	}{
		{White, "g1"},
		{Black, "b8"},
	}
	for _, tt := range tests {
		t.Run(tt.colour.String(), func(t *testing.T) {
			sq, ok := p.KingSquare(tt.colour)
			if !ok {
				t.Fatal("KingSquare() found no king")
			}
			if sq.String() != tt.want {
				t.Errorf("KingSquare() = %s; want %s", sq, tt.want)
			}
		})
	}

	empty := NewPosition()
	if _, ok := empty.KingSquare(White); ok {
		t.Error("KingSquare() on empty board = true; want false")
	}
}

func TestPosition_Pieces(t *testing.T) {
	p := NewPosition()
	p.Set(MustParseSquare("a8"), B(Rook))
	p.Set(MustParseSquare("h1"), W(Rook))
	p.Set(MustParseSquare("d4"), W(Pawn))

	white := p.Pieces(White)
	if len(white) != 2 {
		t.Fatalf("len(Pieces(White)) = %d; want 2", len(white))
	}
	if white[0].String() != "d4" || white[1].String() != "h1" {
		t.Errorf("Pieces(White) = %v; want [d4 h1]", white)
	}
	if black := p.Pieces(Black); len(black) != 1 || black[0].String() != "a8" {
		t.Errorf("Pieces(Black) = %v; want [a8]", black)
	}
}

func TestCastlingRights(t *testing.T) {
	rights := AllCastlingRights
	if !rights.Any() {
		t.Fatal("AllCastlingRights.Any() = false")
	}

	rights.Revoke(White, true)
	if rights.Has(White, true) {
		t.Error("WhiteKingside still held after Revoke")
	}
	if !rights.Has(White, false) || !rights.Has(Black, true) || !rights.Has(Black, false) {
		t.Error("Revoke(White, kingside) cleared another right")
	}

	rights.RevokeAll(Black)
	if rights.BlackKingside || rights.BlackQueenside {
		t.Error("RevokeAll(Black) left a black right")
	}
	if !rights.WhiteQueenside {
		t.Error("RevokeAll(Black) cleared WhiteQueenside")
	}

	rights.Revoke(White, false)
	if rights.Any() {
		t.Error("Any() = true after revoking every right")
	}
}
