package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/benbeisheim/chessrules/internal/model"
)

const kiwipete = "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1"

func TestPerft(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name  string
		fen   string
		depth int
		want  perftStats
	}{
		{name: "start d1", fen: model.StartingFEN, depth: 1, want: perftStats{nodes: 20}},
		{name: "start d2", fen: model.StartingFEN, depth: 2, want: perftStats{nodes: 400}},
		{name: "start d3", fen: model.StartingFEN, depth: 3, want: perftStats{nodes: 8902, captures: 34, checks: 12}},
		{name: "kiwipete d1", fen: kiwipete, depth: 1, want: perftStats{nodes: 48, captures: 8, castles: 2}},
		{name: "kiwipete d2", fen: kiwipete, depth: 2, want: perftStats{nodes: 2039, captures: 351, enPassants: 1, castles: 91, checks: 3}},
		{name: "position 3 d3", fen: "8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1", depth: 3, want: perftStats{nodes: 2812, captures: 209, enPassants: 2, checks: 267}},
		{name: "position 4 d2", fen: "r3k2r/Pppp1ppp/1b3nbN/nP6/BBP1P3/q4N2/Pp1P2PP/R2Q1RK1 w kq - 0 1", depth: 2, want: perftStats{nodes: 264, captures: 87, castles: 6, promotions: 48, checks: 10}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			pos, err := model.ParseFEN(tt.fen)
			if err != nil {
				t.Fatal(err)
			}
			var got perftStats
			perft(pos.Board, pos.Turn, tt.depth, &got)
			if diff := cmp.Diff(tt.want, got, cmp.AllowUnexported(perftStats{})); diff != "" {
				t.Errorf("perft mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestRunPerftOutput(t *testing.T) {
	t.Parallel()
	var out bytes.Buffer
	if err := runPerft(&out, model.StartingFEN, 3); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want 3:\n%s", len(lines), out.String())
	}
	if !strings.HasPrefix(lines[2], "d=3 nodes=8,902 cap=34") {
		t.Errorf("depth 3 line = %q", lines[2])
	}
}
