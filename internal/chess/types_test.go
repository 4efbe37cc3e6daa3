package chess

import "testing"

func TestColour(t *testing.T) {
	if White.Opposite() != Black || Black.Opposite() != White {
		t.Error("Opposite() is not an involution")
	}
	if White.String() != "White" || Black.String() != "Black" {
		t.Errorf("String() = %q, %q", White.String(), Black.String())
	}
}

func TestNewPiece_NoneHasNoColour(t *testing.T) {
	if NewPiece(White, None) != NoPiece {
		t.Error("NewPiece(White, None) != NoPiece")
	}
	if NewPiece(Black, None) != NoPiece {
		t.Error("NewPiece(Black, None) != NoPiece")
	}
	if !NoPiece.IsEmpty() {
		t.Error("NoPiece.IsEmpty() = false")
	}
}

func TestPiece_Accessors(t *testing.T) {
	p := B(Knight)
	if p.Type() != Knight {
		t.Errorf("Type() = %v; want Knight", p.Type())
	}
	if p.Colour() != Black {
		t.Errorf("Colour() = %v; want Black", p.Colour())
	}
	if !p.Is(Black, Knight) || p.Is(White, Knight) || p.Is(Black, Bishop) {
		t.Error("Is() gave a wrong answer")
	}
	if !p.IsEnemyOf(White) || p.IsEnemyOf(Black) || NoPiece.IsEnemyOf(White) {
		t.Error("IsEnemyOf() gave a wrong answer")
	}
	if !p.Equal(B(Knight)) || p.Equal(W(Knight)) {
		t.Error("Equal() gave a wrong answer")
	}
	if p.String() != "Black Knight" {
		t.Errorf("String() = %q", p.String())
	}
}

func TestPieceFromFENChar(t *testing.T) {
	for _, c := range []byte("PNBRQKpnbrqk") {
		p, ok := PieceFromFENChar(c)
		if !ok {
			t.Errorf("PieceFromFENChar(%c) rejected", c)
			continue
		}
		if got := p.FENChar(); got != c {
			t.Errorf("PieceFromFENChar(%c).FENChar() = %c", c, got)
		}
	}

	for _, c := range []byte("xX1 /-") {
		if _, ok := PieceFromFENChar(c); ok {
			t.Errorf("PieceFromFENChar(%q) accepted", c)
		}
	}
}

func TestPieceType_IsPromotionTarget(t *testing.T) {
	tests := []struct {
		kind PieceType
		want bool
	}{
		{None, false},
		{King, false},
		{Queen, true},
		{Bishop, true},
		{Knight, true},
		{Rook, true},
		{Pawn, false},
	}
	for _, tt := range tests {
		if got := tt.kind.IsPromotionTarget(); got != tt.want {
			t.Errorf("%v.IsPromotionTarget() = %v; want %v", tt.kind, got, tt.want)
		}
	}
}

func TestRowHelpers(t *testing.T) {
	if HomeRow(White) != 7 || HomeRow(Black) != 0 {
		t.Error("HomeRow() wrong")
	}
	if PawnStartRow(White) != 6 || PawnStartRow(Black) != 1 {
		t.Error("PawnStartRow() wrong")
	}
	if PromotionRow(White) != 0 || PromotionRow(Black) != 7 {
		t.Error("PromotionRow() wrong")
	}
	if Forward(White) != -1 || Forward(Black) != 1 {
		t.Error("Forward() wrong")
	}
}

func TestMove_String(t *testing.T) {
	tests := []struct {
		move Move
		want string
	}{
		{Move{From: MustParseSquare("e2"), To: MustParseSquare("e4")}, "e2e4"},
		{Move{From: MustParseSquare("e7"), To: MustParseSquare("e8"), Promotion: Queen}, "e7e8q"},
		{Move{From: MustParseSquare("b2"), To: MustParseSquare("a1"), Promotion: Knight}, "b2a1n"},
	}
	for _, tt := range tests {
		if got := tt.move.String(); got != tt.want {
			t.Errorf("String() = %q; want %q", got, tt.want)
		}
	}
	if !(Move{From: Sq(1, 1), To: Sq(1, 1)}).IsNull() {
		t.Error("IsNull() = false for from == to")
	}
}
