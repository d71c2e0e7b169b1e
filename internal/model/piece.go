package model

import (
	"errors"
	"fmt"
)

type PieceType string

const (
	King   PieceType = "king"
	Queen  PieceType = "queen"
	Rook   PieceType = "rook"
	Bishop PieceType = "bishop"
	Knight PieceType = "knight"
	Pawn   PieceType = "pawn"
)

// PromotionKinds are the piece types a pawn may become on the last row.
var PromotionKinds = []PieceType{Queen, Rook, Bishop, Knight}

func (p PieceType) getPieceNotation() string {
	switch p {
	case King:
		return "K"
	case Queen:
		return "Q"
	case Rook:
		return "R"
	case Bishop:
		return "B"
	case Knight:
		return "N"
	case Pawn:
		return ""
	}
	return ""
}

// Notation returns the SAN letter of the piece type, empty for pawns.
func (p PieceType) Notation() string {
	return p.getPieceNotation()
}

// Value is the material score awarded for capturing a piece of this type.
func (p PieceType) Value() int {
	switch p {
	case Pawn:
		return 1
	case Knight, Bishop:
		return 3
	case Rook:
		return 5
	case Queen:
		return 9
	}
	return 0
}

// CanPromoteTo reports whether a pawn may be replaced by p.
func (p PieceType) CanPromoteTo() bool {
	for _, k := range PromotionKinds {
		if p == k {
			return true
		}
	}
	return false
}

// ParsePromotion maps a promotion letter (q, r, b, n in either case) to its type.
func ParsePromotion(r byte) (PieceType, bool) {
	switch r | 0x20 {
	case 'q':
		return Queen, true
	case 'r':
		return Rook, true
	case 'b':
		return Bishop, true
	case 'n':
		return Knight, true
	}
	return "", false
}

type Color string

const (
	White Color = "white"
	Black Color = "black"
)

func (c Color) Opposite() Color {
	if c == White {
		return Black
	}
	return White
}

// Forward is the row delta of a pawn advance. Row 0 is Black's back row.
func (c Color) Forward() int {
	if c == White {
		return -1
	}
	return 1
}

func (c Color) PawnStartRow() int {
	if c == White {
		return 6
	}
	return 1
}

func (c Color) PromotionRow() int {
	if c == White {
		return 0
	}
	return 7
}

func (c Color) BackRow() int {
	if c == White {
		return 7
	}
	return 0
}

// Piece is addressed by its index in BoardState.Pieces; the index never
// changes for the life of a game, captured pieces included.
type Piece struct {
	Type     PieceType `json:"type"`
	Color    Color     `json:"color"`
	Position Position  `json:"position"`
	Captured bool      `json:"captured"`
	HasMoved bool      `json:"hasMoved"`
	// Slot is the side-panel slot of a captured piece, -1 while on the board.
	Slot int `json:"slot"`
}

func (p Piece) String() string {
	return fmt.Sprintf("%s %s@%s", p.Color, p.Type, p.Position)
}

var ErrInvalidSquare = errors.New("invalid square")

// Position is a board coordinate. X is the file (0 = a), Y is the row with
// 0 being rank 8, matching the on-screen top-down layout.
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func (p Position) InBounds() bool {
	return p.X >= 0 && p.X < 8 && p.Y >= 0 && p.Y < 8
}

func (p Position) Add(d Position) Position {
	return Position{X: p.X + d.X, Y: p.Y + d.Y}
}

func (p Position) getSquareNotation() string {
	return fmt.Sprintf("%c%d", p.X+97, 8-p.Y)
}

func (p Position) getFileNotation() string {
	return fmt.Sprintf("%c", p.X+97)
}

// File returns the file letter of the square.
func (p Position) File() string {
	return p.getFileNotation()
}

// Rank returns the rank digit of the square.
func (p Position) Rank() string {
	return fmt.Sprintf("%d", 8-p.Y)
}

func (p Position) String() string {
	if !p.InBounds() {
		return fmt.Sprintf("(%d,%d)", p.X, p.Y)
	}
	return p.getSquareNotation()
}

// ParsePosition parses algebraic square notation such as "e4".
func ParsePosition(s string) (Position, error) {
	if len(s) != 2 {
		return Position{}, fmt.Errorf("%w: %q", ErrInvalidSquare, s)
	}
	file, rank := s[0]|0x20, s[1]
	if file < 'a' || file > 'h' || rank < '1' || rank > '8' {
		return Position{}, fmt.Errorf("%w: %q", ErrInvalidSquare, s)
	}
	return Position{X: int(file - 'a'), Y: 8 - int(rank-'0')}, nil
}

// MustPosition is ParsePosition for literals known to be valid.
func MustPosition(s string) Position {
	p, err := ParsePosition(s)
	if err != nil {
		panic(err)
	}
	return p
}
