package rules

import (
	"testing"

	"github.com/benbeisheim/chessrules/internal/model"
	"github.com/google/go-cmp/cmp"
)

var boardCmp = cmp.AllowUnexported(model.BoardState{})

func TestSimulateRestoresBoard(t *testing.T) {
	t.Parallel()
	fens := []string{
		model.StartingFEN,
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
		"rnbqkbnr/ppp1pppp/8/3pP3/8/8/PPPP1PPP/RNBQKBNR w KQkq d6 0 3",
		"r3k2r/Pppp1ppp/1b3nbN/nP6/BBP1P3/q4N2/Pp1P2PP/R2Q1RK1 w kq - 0 1",
	}
	for _, fen := range fens {
		fen := fen
		t.Run(fen, func(t *testing.T) {
			t.Parallel()
			b, _ := mustFEN(t, fen)
			before := b.Clone()
			for i := range b.Pieces {
				for _, to := range Candidates(b, i) {
					if other, ok := b.PieceAt(to); ok && b.Piece(other).Color == b.Piece(i).Color {
						continue
					}
					Simulate(b, i, to, func() bool {
						return IsKingInCheck(b, model.White) || IsKingInCheck(b, model.Black)
					})
					if diff := cmp.Diff(before, b, boardCmp); diff != "" {
						t.Fatalf("simulating %s -> %s left the board changed (-before +after):\n%s", b.Piece(i).Position, to, diff)
					}
				}
			}
		})
	}
}

func TestSimulateShowsHypotheticalPosition(t *testing.T) {
	t.Parallel()
	b, _ := mustFEN(t, "rnbqkbnr/ppp1pppp/8/3pP3/8/8/PPPP1PPP/RNBQKBNR w KQkq d6 0 3")
	pawn := mustPieceAt(t, b, "e5")
	victim := mustPieceAt(t, b, "d5")

	Simulate(b, pawn, model.MustPosition("d6"), func() bool {
		if !b.Piece(victim).Captured {
			t.Error("en passant victim not captured during simulation")
		}
		if idx, ok := b.PieceAt(model.MustPosition("d6")); !ok || idx != pawn {
			t.Error("pawn not on d6 during simulation")
		}
		if _, ok := b.PieceAt(model.MustPosition("e5")); ok {
			t.Error("e5 still occupied during simulation")
		}
		return false
	})

	if b.Piece(victim).Captured {
		t.Error("victim still captured after simulation")
	}
	if got := b.Piece(pawn).Position.String(); got != "e5" {
		t.Errorf("pawn restored to %s, want e5", got)
	}
}

func TestSimulateRestoresKingCache(t *testing.T) {
	t.Parallel()
	b, _ := mustFEN(t, "4k3/8/8/8/8/8/8/4K3 w - - 0 1")
	king := mustPieceAt(t, b, "e1")
	Simulate(b, king, model.MustPosition("d2"), func() bool {
		if got := b.KingPosition(model.White).String(); got != "d2" {
			t.Errorf("king cache during simulation at %s, want d2", got)
		}
		return false
	})
	if got := b.KingPosition(model.White).String(); got != "e1" {
		t.Errorf("king cache after simulation at %s, want e1", got)
	}
	if err := b.CheckInvariants(); err != nil {
		t.Error(err)
	}
}

func TestSimulateRestoresOnPanic(t *testing.T) {
	t.Parallel()
	b, _ := mustFEN(t, "4k3/8/8/8/8/8/3q4/4K3 w - - 0 1")
	before := b.Clone()
	func() {
		defer func() {
			if recover() == nil {
				t.Error("probe panic was swallowed")
			}
		}()
		Simulate(b, mustPieceAt(t, b, "e1"), model.MustPosition("d2"), func() bool {
			panic("probe failed")
		})
	}()
	if diff := cmp.Diff(before, b, boardCmp); diff != "" {
		t.Errorf("board changed after a panicking probe (-before +after):\n%s", diff)
	}
}

func TestSimulateOntoFriendlyPiecePanics(t *testing.T) {
	t.Parallel()
	b := model.NewBoard()
	defer func() {
		if recover() == nil {
			t.Error("expected a panic when simulating onto a friendly piece")
		}
	}()
	Simulate(b, mustPieceAt(t, b, "d1"), model.MustPosition("d2"), func() bool { return false })
}

func TestPinnedPiece(t *testing.T) {
	t.Parallel()
	b, _ := mustFEN(t, "k3r3/8/8/8/8/8/4B3/4K3 w - - 0 1")
	bishop := mustPieceAt(t, b, "e2")
	if got := LegalDestinations(b, bishop); len(got) != 0 {
		t.Errorf("pinned bishop has destinations %v", squares(got))
	}
	king := mustPieceAt(t, b, "e1")
	want := []string{"d2", "f2", "d1", "f1"}
	if diff := cmp.Diff(want, squares(LegalDestinations(b, king))); diff != "" {
		t.Errorf("king destinations mismatch (-want +got):\n%s", diff)
	}
	if !WouldLeaveOwnKingInCheck(b, bishop, model.MustPosition("d3")) {
		t.Error("moving the pinned bishop must expose the king")
	}
	if WouldLeaveOwnKingInCheck(b, king, model.MustPosition("d1")) {
		t.Error("d1 is not attacked")
	}
}

func TestWouldGiveCheck(t *testing.T) {
	t.Parallel()
	b, _ := mustFEN(t, "4k3/8/8/8/8/8/8/R3K3 w - - 0 1")
	rook := mustPieceAt(t, b, "a1")
	if !WouldGiveCheck(b, rook, model.MustPosition("a8")) {
		t.Error("Ra8 should give check")
	}
	if WouldGiveCheck(b, rook, model.MustPosition("a7")) {
		t.Error("Ra7 does not give check")
	}
}
