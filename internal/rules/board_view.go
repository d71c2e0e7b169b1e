// Package rules decides chess move legality over a BoardView.
//
// All predicates are pure booleans. The only mutation they perform is the
// save/mutate/restore inside Simulate, which always leaves the board as it
// found it.
package rules

import (
	"github.com/benbeisheim/chessrules/internal/model"
	"golang.org/x/exp/constraints"
)

// BoardView is the part of the board the rules read and simulate against.
// *model.BoardState satisfies it.
type BoardView interface {
	Len() int
	Piece(idx int) model.Piece
	PieceAt(pos model.Position) (int, bool)
	KingPosition(c model.Color) model.Position
	LastMove() (model.LastMove, bool)

	Relocate(idx int, to model.Position)
	SetCaptured(idx int, captured bool)
}

// Board adds the mutators the execute step needs on top of BoardView.
type Board interface {
	BoardView
	MarkMoved(idx int)
	SetLastMove(m model.LastMove)
}

var (
	rookDirs   = []model.Position{{X: 1, Y: 0}, {X: -1, Y: 0}, {X: 0, Y: 1}, {X: 0, Y: -1}}
	bishopDirs = []model.Position{{X: 1, Y: 1}, {X: 1, Y: -1}, {X: -1, Y: 1}, {X: -1, Y: -1}}
	knightDirs = []model.Position{{X: 2, Y: 1}, {X: 2, Y: -1}, {X: -2, Y: 1}, {X: -2, Y: -1}, {X: 1, Y: 2}, {X: 1, Y: -2}, {X: -1, Y: 2}, {X: -1, Y: -2}}
	kingDirs   = []model.Position{{X: 1, Y: 0}, {X: -1, Y: 0}, {X: 0, Y: 1}, {X: 0, Y: -1}, {X: 1, Y: 1}, {X: 1, Y: -1}, {X: -1, Y: 1}, {X: -1, Y: -1}}
)

func abs[T constraints.Signed](x T) T {
	if x < 0 {
		return -x
	}
	return x
}

func sign(x int) int {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	}
	return 0
}

// occupant returns the live piece on pos, if any.
func occupant(b BoardView, pos model.Position) (model.Piece, int, bool) {
	idx, ok := b.PieceAt(pos)
	if !ok {
		return model.Piece{}, -1, false
	}
	return b.Piece(idx), idx, true
}

func isEmpty(b BoardView, pos model.Position) bool {
	_, ok := b.PieceAt(pos)
	return !ok
}

// emptyOrEnemy is the destination rule shared by every non-pawn piece.
func emptyOrEnemy(b BoardView, c model.Color, pos model.Position) bool {
	p, _, ok := occupant(b, pos)
	return !ok || p.Color != c
}
