package model

import (
	"fmt"
	"strings"
)

// BoardState owns the piece arena. The occupancy grid and the two king
// positions are derived from Pieces and every mutator keeps them in step.
type BoardState struct {
	Pieces            []Piece  `json:"pieces"`
	BlackKingPosition Position `json:"blackKingPosition"`
	WhiteKingPosition Position `json:"whiteKingPosition"`

	lastMove *LastMove
	// grid holds arena index+1 of the live piece on each square, 0 when empty.
	grid [8][8]int
}

var backRow = [8]PieceType{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}

// NewBoard returns the standard starting arrangement.
func NewBoard() *BoardState {
	board := &BoardState{}
	for x, t := range backRow {
		board.add(Piece{Type: t, Color: Black, Position: Position{X: x, Y: 0}})
	}
	for x := 0; x < 8; x++ {
		board.add(Piece{Type: Pawn, Color: Black, Position: Position{X: x, Y: 1}})
	}
	for x := 0; x < 8; x++ {
		board.add(Piece{Type: Pawn, Color: White, Position: Position{X: x, Y: 6}})
	}
	for x, t := range backRow {
		board.add(Piece{Type: t, Color: White, Position: Position{X: x, Y: 7}})
	}
	return board
}

func newEmptyBoard() *BoardState {
	return &BoardState{}
}

func (b *BoardState) add(p Piece) int {
	p.Slot = -1
	b.Pieces = append(b.Pieces, p)
	idx := len(b.Pieces) - 1
	b.place(idx)
	if p.Type == King {
		b.setKingPosition(p.Color, p.Position)
	}
	return idx
}

func (b *BoardState) place(idx int) {
	p := &b.Pieces[idx]
	if !p.Captured && p.Position.InBounds() {
		b.grid[p.Position.Y][p.Position.X] = idx + 1
	}
}

func (b *BoardState) lift(idx int) {
	p := &b.Pieces[idx]
	if p.Position.InBounds() && b.grid[p.Position.Y][p.Position.X] == idx+1 {
		b.grid[p.Position.Y][p.Position.X] = 0
	}
}

func (b *BoardState) setKingPosition(c Color, pos Position) {
	if c == White {
		b.WhiteKingPosition = pos
	} else {
		b.BlackKingPosition = pos
	}
}

func (b *BoardState) Len() int {
	return len(b.Pieces)
}

func (b *BoardState) Piece(idx int) Piece {
	return b.Pieces[idx]
}

// PieceAt returns the index of the live piece standing on pos.
func (b *BoardState) PieceAt(pos Position) (int, bool) {
	if !pos.InBounds() {
		return -1, false
	}
	n := b.grid[pos.Y][pos.X]
	return n - 1, n != 0
}

func (b *BoardState) KingPosition(c Color) Position {
	if c == White {
		return b.WhiteKingPosition
	}
	return b.BlackKingPosition
}

// Relocate moves a piece to pos. Moving a King moves its cached position too.
func (b *BoardState) Relocate(idx int, pos Position) {
	b.lift(idx)
	b.Pieces[idx].Position = pos
	b.place(idx)
	if p := b.Pieces[idx]; p.Type == King && !p.Captured {
		b.setKingPosition(p.Color, pos)
	}
}

// SetCaptured takes a piece off the grid or puts it back on its square.
func (b *BoardState) SetCaptured(idx int, captured bool) {
	if captured {
		b.lift(idx)
		b.Pieces[idx].Captured = true
		return
	}
	b.Pieces[idx].Captured = false
	b.place(idx)
}

func (b *BoardState) MarkMoved(idx int) {
	b.Pieces[idx].HasMoved = true
}

// SetType replaces a piece's kind in place, used for promotion.
func (b *BoardState) SetType(idx int, t PieceType) {
	b.Pieces[idx].Type = t
}

func (b *BoardState) SetSlot(idx int, slot int) {
	b.Pieces[idx].Slot = slot
}

func (b *BoardState) LastMove() (LastMove, bool) {
	if b.lastMove == nil {
		return LastMove{}, false
	}
	return *b.lastMove, true
}

func (b *BoardState) SetLastMove(m LastMove) {
	b.lastMove = &m
}

// King returns the arena index of the live king of color c.
func (b *BoardState) King(c Color) (int, bool) {
	for i, p := range b.Pieces {
		if p.Type == King && p.Color == c && !p.Captured {
			return i, true
		}
	}
	return -1, false
}

// Clone returns a deep copy of the board.
func (b *BoardState) Clone() *BoardState {
	c := *b
	c.Pieces = append([]Piece(nil), b.Pieces...)
	if b.lastMove != nil {
		lm := *b.lastMove
		c.lastMove = &lm
	}
	return &c
}

// CheckInvariants verifies that the grid and the king caches agree with the
// arena. A non-nil result means a bug in a mutator, never a bad move.
func (b *BoardState) CheckInvariants() error {
	var want [8][8]int
	for i, p := range b.Pieces {
		if p.Captured {
			continue
		}
		if !p.Position.InBounds() {
			return fmt.Errorf("live piece %d (%s) is off the board", i, p)
		}
		if prev := want[p.Position.Y][p.Position.X]; prev != 0 {
			return fmt.Errorf("pieces %d and %d share %s", prev-1, i, p.Position)
		}
		want[p.Position.Y][p.Position.X] = i + 1
	}
	if want != b.grid {
		return fmt.Errorf("occupancy grid diverged from piece positions")
	}
	for _, c := range []Color{White, Black} {
		idx, ok := b.King(c)
		if !ok {
			return fmt.Errorf("%s king missing", c)
		}
		if got := b.Pieces[idx].Position; got != b.KingPosition(c) {
			return fmt.Errorf("%s king cache at %s, king at %s", c, b.KingPosition(c), got)
		}
	}
	return nil
}

// Dump draws the board as text, rank 8 at the top.
func (b *BoardState) Dump() string {
	builder := strings.Builder{}
	for y := 0; y < 8; y++ {
		_, _ = builder.WriteString(fmt.Sprintf(" %d |", 8-y))
		for x := 0; x < 8; x++ {
			idx, ok := b.PieceAt(Position{X: x, Y: y})
			if !ok {
				_, _ = builder.WriteString(" . ")
				continue
			}
			_, _ = builder.WriteString(fmt.Sprintf(" %c ", fenSymbol(b.Pieces[idx])))
		}
		_, _ = builder.WriteString("\n")
	}
	_, _ = builder.WriteString("    ------------------------\n    ")
	for x := 0; x < 8; x++ {
		_, _ = builder.WriteString(fmt.Sprintf(" %c ", 'a'+x))
	}
	return builder.String()
}
