package rules

import (
	"testing"

	"github.com/benbeisheim/chessrules/internal/model"
)

func TestIsLegalShape(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		fen  string
		from string
		to   string
		want bool
	}{
		{name: "pawn single push", fen: model.StartingFEN, from: "e2", to: "e3", want: true},
		{name: "pawn double push", fen: model.StartingFEN, from: "e2", to: "e4", want: true},
		{name: "pawn triple push", fen: model.StartingFEN, from: "e2", to: "e5", want: false},
		{name: "pawn backwards", fen: "4k3/8/8/8/4P3/8/8/4K3 w - - 0 1", from: "e4", to: "e3", want: false},
		{name: "pawn double push off start row", fen: "4k3/8/8/8/8/4P3/8/4K3 w - - 0 1", from: "e3", to: "e5", want: false},
		{name: "pawn double push blocked midway", fen: "4k3/8/8/8/8/4n3/4P3/4K3 w - - 0 1", from: "e2", to: "e4", want: false},
		{name: "pawn double push blocked at target", fen: "4k3/8/8/8/4n3/8/4P3/4K3 w - - 0 1", from: "e2", to: "e4", want: false},
		{name: "pawn push onto piece", fen: "4k3/8/8/8/8/4n3/4P3/4K3 w - - 0 1", from: "e2", to: "e3", want: false},
		{name: "pawn diagonal capture", fen: "4k3/8/8/8/8/3n4/4P3/4K3 w - - 0 1", from: "e2", to: "d3", want: true},
		{name: "pawn diagonal to empty", fen: model.StartingFEN, from: "e2", to: "d3", want: false},
		{name: "black pawn moves down", fen: model.StartingFEN, from: "d7", to: "d5", want: true},
		{name: "knight jump over pieces", fen: model.StartingFEN, from: "g1", to: "f3", want: true},
		{name: "knight onto own piece", fen: model.StartingFEN, from: "g1", to: "e2", want: false},
		{name: "knight non L", fen: model.StartingFEN, from: "g1", to: "g3", want: false},
		{name: "rook blocked", fen: model.StartingFEN, from: "a1", to: "a3", want: false},
		{name: "rook open file", fen: "4k3/8/8/8/8/8/8/R3K3 w - - 0 1", from: "a1", to: "a8", want: true},
		{name: "rook capture first blocker", fen: "4k3/8/n7/8/8/8/8/R3K3 w - - 0 1", from: "a1", to: "a6", want: true},
		{name: "rook beyond first blocker", fen: "4k3/8/n7/8/8/8/8/R3K3 w - - 0 1", from: "a1", to: "a7", want: false},
		{name: "rook diagonal", fen: "4k3/8/8/8/8/8/8/R3K3 w - - 0 1", from: "a1", to: "b2", want: false},
		{name: "bishop diagonal", fen: "4k3/8/8/8/8/8/8/2B1K3 w - - 0 1", from: "c1", to: "h6", want: true},
		{name: "bishop blocked", fen: "4k3/8/8/8/8/8/3P4/2B1K3 w - - 0 1", from: "c1", to: "e3", want: false},
		{name: "bishop straight", fen: "4k3/8/8/8/8/8/8/2B1K3 w - - 0 1", from: "c1", to: "c4", want: false},
		{name: "queen as rook", fen: "4k3/8/8/8/8/8/8/3QK3 w - - 0 1", from: "d1", to: "d8", want: true},
		{name: "queen as bishop", fen: "4k3/8/8/8/8/8/8/3QK3 w - - 0 1", from: "d1", to: "h5", want: true},
		{name: "queen knight shape", fen: "4k3/8/8/8/8/8/8/3QK3 w - - 0 1", from: "d1", to: "e3", want: false},
		{name: "king step", fen: "4k3/8/8/8/8/8/8/4K3 w - - 0 1", from: "e1", to: "f2", want: true},
		{name: "king two squares", fen: "4k3/8/8/8/8/8/8/4K3 w - - 0 1", from: "e1", to: "g1", want: false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			b, _ := mustFEN(t, tt.fen)
			piece := b.Piece(mustPieceAt(t, b, tt.from))
			if got := IsLegalShape(b, piece, model.MustPosition(tt.to)); got != tt.want {
				t.Errorf("IsLegalShape(%s %s -> %s) = %v, want %v", piece.Type, tt.from, tt.to, got, tt.want)
			}
		})
	}
}

func TestIsLegalShapeOffBoard(t *testing.T) {
	t.Parallel()
	b := model.NewBoard()
	rook := b.Piece(mustPieceAt(t, b, "a1"))
	for _, to := range []model.Position{{X: -1, Y: 7}, {X: 0, Y: 8}, {X: 8, Y: 7}} {
		if IsLegalShape(b, rook, to) {
			t.Errorf("IsLegalShape accepted off-board destination %v", to)
		}
	}
}

func TestCanAttack(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name   string
		fen    string
		from   string
		target string
		want   bool
	}{
		{name: "pawn attacks empty diagonal", fen: model.StartingFEN, from: "e2", target: "d3", want: true},
		{name: "pawn does not attack ahead", fen: model.StartingFEN, from: "e2", target: "e3", want: false},
		{name: "black pawn attacks downwards", fen: model.StartingFEN, from: "e7", target: "f6", want: true},
		{name: "rook attacks king", fen: "4k3/8/8/8/8/8/8/R3K2r w - - 0 1", from: "h1", target: "e1", want: true},
		{name: "rook blocked", fen: "4k3/8/8/8/8/8/8/R3KB1r w - - 0 1", from: "h1", target: "e1", want: false},
		{name: "knight attacks", fen: "4k3/8/8/8/8/5n2/8/4K3 w - - 0 1", from: "f3", target: "e1", want: true},
		{name: "king attacks adjacent", fen: "8/8/8/8/8/8/3k4/4K3 w - - 0 1", from: "d2", target: "e1", want: true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			b, _ := mustFEN(t, tt.fen)
			piece := b.Piece(mustPieceAt(t, b, tt.from))
			if got := CanAttack(b, piece, model.MustPosition(tt.target)); got != tt.want {
				t.Errorf("CanAttack(%s -> %s) = %v, want %v", tt.from, tt.target, got, tt.want)
			}
		})
	}
}
