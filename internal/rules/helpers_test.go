package rules

import (
	"testing"

	"github.com/benbeisheim/chessrules/internal/model"
)

func mustFEN(t *testing.T, fen string) (*model.BoardState, model.Color) {
	t.Helper()
	pos, err := model.ParseFEN(fen)
	if err != nil {
		t.Fatalf("ParseFEN(%q): %v", fen, err)
	}
	return pos.Board, pos.Turn
}

func mustPieceAt(t *testing.T, b *model.BoardState, sq string) int {
	t.Helper()
	idx, ok := b.PieceAt(model.MustPosition(sq))
	if !ok {
		t.Fatalf("no piece on %s", sq)
	}
	return idx
}

func squares(ps []model.Position) []string {
	out := make([]string, 0, len(ps))
	for _, p := range ps {
		out = append(out, p.String())
	}
	return out
}
