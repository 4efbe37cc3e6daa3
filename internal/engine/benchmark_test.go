package engine

import (
	"testing"

	"github.com/lgbarn/chessboard-go/internal/chess"
)

var benchFENs = map[string]string{
	"Initial":   "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1",
	"Midgame":   "r1bqkb1r/pppp1ppp/2n2n2/4p3/2B1P3/5N2/PPPP1PPP/RNBQK2R w KQkq - 4 4",
	"Endgame":   "8/5k2/8/8/8/8/5K2/4R3 w - - 0 1",
	"Complex":   "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
	"EnPassant": "rnbqkbnr/pppp1ppp/8/4pP2/8/8/PPPPP1PP/RNBQKBNR w KQkq e6 0 3",
	"Castling":  "r3k2r/pppppppp/8/8/8/8/PPPPPPPP/R3K2R w KQkq - 0 1",
}

func BenchmarkParse(b *testing.B) {
	for name, fen := range benchFENs {
		b.Run(name, func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				_, _ = Parse(fen)
			}
		})
	}
}

func BenchmarkSerialize(b *testing.B) {
	for name, fen := range benchFENs {
		b.Run(name, func(b *testing.B) {
			pos := mustParse(b, fen)
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				Serialize(pos)
			}
		})
	}
}

func BenchmarkFEN_RoundTrip(b *testing.B) {
	fen := benchFENs["Midgame"]
	for i := 0; i < b.N; i++ {
		pos, _ := Parse(fen)
		Serialize(pos)
	}
}

func BenchmarkApply(b *testing.B) {
	cases := []struct {
		name string
		fen  string
		move chess.Move
	}{
		{"PawnMove", benchFENs["Initial"], mv("e2", "e4")},
		{"PieceMove", benchFENs["Initial"], mv("g1", "f3")},
		{"Capture", benchFENs["Complex"], mv("e5", "f7")},
		{"EnPassant", benchFENs["EnPassant"], mv("f5", "e6")},
		{"Castle", benchFENs["Castling"], mv("e1", "g1")},
	}

	for _, tc := range cases {
		b.Run(tc.name, func(b *testing.B) {
			pos := mustParse(b, tc.fen)
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				_, _ = Apply(pos, tc.move)
			}
		})
	}
}

func BenchmarkMovesFrom(b *testing.B) {
	pos := mustParse(b, benchFENs["Complex"])
	squares := pos.Pieces(chess.White)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		for _, sq := range squares {
			MovesFrom(pos, sq)
		}
	}
}

func BenchmarkPseudoLegalMoves(b *testing.B) {
	for name, fen := range benchFENs {
		b.Run(name, func(b *testing.B) {
			pos := mustParse(b, fen)
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				PseudoLegalMoves(pos)
			}
		})
	}
}
