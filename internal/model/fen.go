package model

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

const StartingFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

var ErrInvalidFEN = errors.New("invalid FEN")

// FENPosition is a decoded FEN record.
type FENPosition struct {
	Board    *BoardState
	Turn     Color
	HalfMove int
	FullMove int
}

// ParseFEN decodes a six-field FEN string. Castling rights are expressed
// through HasMoved on the king and rooks, and the en passant field through
// a synthetic LastMove.
func ParseFEN(fen string) (FENPosition, error) {
	segments := strings.Fields(fen)
	if len(segments) != 6 {
		return FENPosition{}, fmt.Errorf("%w: incorrect number of segments", ErrInvalidFEN)
	}

	b := newEmptyBoard()
	rows := strings.Split(segments[0], "/")
	if len(rows) != 8 {
		return FENPosition{}, fmt.Errorf("%w: invalid board configuration", ErrInvalidFEN)
	}
	for y, row := range rows {
		x := 0
		for _, cell := range row {
			if unicode.IsDigit(cell) {
				skip := int(cell - '0')
				if skip == 0 || x+skip > 8 {
					return FENPosition{}, fmt.Errorf("%w: skip out of bounds", ErrInvalidFEN)
				}
				x += skip
				continue
			}
			t, c, ok := parseSymbol(cell)
			if !ok {
				return FENPosition{}, fmt.Errorf("%w: unknown symbol '%s'", ErrInvalidFEN, string(cell))
			}
			if x >= 8 {
				return FENPosition{}, fmt.Errorf("%w: row %d too long", ErrInvalidFEN, 8-y)
			}
			pos := Position{X: x, Y: y}
			b.add(Piece{Type: t, Color: c, Position: pos, HasMoved: t == Pawn && y != c.PawnStartRow()})
			x++
		}
		if x != 8 {
			return FENPosition{}, fmt.Errorf("%w: missing cells", ErrInvalidFEN)
		}
	}
	for _, c := range []Color{White, Black} {
		n := 0
		for _, p := range b.Pieces {
			if p.Type == King && p.Color == c {
				n++
			}
		}
		if n != 1 {
			return FENPosition{}, fmt.Errorf("%w: %s must have exactly one king", ErrInvalidFEN, c)
		}
	}

	var turn Color
	switch segments[1] {
	case "w":
		turn = White
	case "b":
		turn = Black
	default:
		return FENPosition{}, fmt.Errorf("%w: invalid turn", ErrInvalidFEN)
	}

	if err := applyCastlingRights(b, segments[2]); err != nil {
		return FENPosition{}, err
	}
	if err := applyEnPassant(b, segments[3], turn); err != nil {
		return FENPosition{}, err
	}

	half, err := strconv.Atoi(segments[4])
	if err != nil || half < 0 {
		return FENPosition{}, fmt.Errorf("%w: invalid halfmove clock", ErrInvalidFEN)
	}
	full, err := strconv.Atoi(segments[5])
	if err != nil || full < 1 {
		return FENPosition{}, fmt.Errorf("%w: invalid fullmove number", ErrInvalidFEN)
	}
	return FENPosition{Board: b, Turn: turn, HalfMove: half, FullMove: full}, nil
}

func parseSymbol(r rune) (PieceType, Color, bool) {
	c := White
	if unicode.IsLower(r) {
		c = Black
	}
	switch unicode.ToLower(r) {
	case 'p':
		return Pawn, c, true
	case 'n':
		return Knight, c, true
	case 'b':
		return Bishop, c, true
	case 'r':
		return Rook, c, true
	case 'q':
		return Queen, c, true
	case 'k':
		return King, c, true
	}
	return "", "", false
}

func fenSymbol(p Piece) rune {
	sym := 'P'
	if p.Type != Pawn {
		sym = rune(p.Type.getPieceNotation()[0])
	}
	if p.Color == Black {
		sym = unicode.ToLower(sym)
	}
	return sym
}

func applyCastlingRights(b *BoardState, field string) error {
	rights := map[rune]bool{}
	if field != "-" {
		if len(field) > 4 {
			return fmt.Errorf("%w: invalid castling rights", ErrInvalidFEN)
		}
		for _, r := range field {
			if !strings.ContainsRune("KQkq", r) || rights[r] {
				return fmt.Errorf("%w: invalid castling rights", ErrInvalidFEN)
			}
			rights[r] = true
		}
	}
	for _, c := range []Color{White, Black} {
		kingSide, queenSide := 'K', 'Q'
		if c == Black {
			kingSide, queenSide = 'k', 'q'
		}
		row := c.BackRow()
		kingIdx, _ := b.King(c)
		kingHome := b.Pieces[kingIdx].Position == Position{X: 4, Y: row}
		if !rights[kingSide] && !rights[queenSide] || !kingHome {
			if (rights[kingSide] || rights[queenSide]) && !kingHome {
				return fmt.Errorf("%w: %s castling without king on its square", ErrInvalidFEN, c)
			}
			b.MarkMoved(kingIdx)
		}
		for _, corner := range []struct {
			x     int
			right rune
		}{{7, kingSide}, {0, queenSide}} {
			idx, ok := b.PieceAt(Position{X: corner.x, Y: row})
			isRook := ok && b.Pieces[idx].Type == Rook && b.Pieces[idx].Color == c
			if rights[corner.right] && !isRook {
				return fmt.Errorf("%w: %s castling without rook in the corner", ErrInvalidFEN, c)
			}
			if isRook && !rights[corner.right] {
				b.MarkMoved(idx)
			}
		}
	}
	// Rooks away from their corners can never castle.
	for i, p := range b.Pieces {
		if p.Type == Rook && !(p.Position.Y == p.Color.BackRow() && (p.Position.X == 0 || p.Position.X == 7)) {
			b.MarkMoved(i)
		}
	}
	return nil
}

func applyEnPassant(b *BoardState, field string, turn Color) error {
	if field == "-" {
		return nil
	}
	target, err := ParsePosition(field)
	if err != nil {
		return fmt.Errorf("%w: invalid en passant square", ErrInvalidFEN)
	}
	pusher := turn.Opposite()
	// The target is the square the pawn skipped over.
	to := Position{X: target.X, Y: target.Y + pusher.Forward()}
	from := Position{X: target.X, Y: target.Y - pusher.Forward()}
	if from.Y != pusher.PawnStartRow() {
		return fmt.Errorf("%w: en passant square on wrong rank", ErrInvalidFEN)
	}
	idx, ok := b.PieceAt(to)
	if !ok || b.Pieces[idx].Type != Pawn || b.Pieces[idx].Color != pusher {
		return fmt.Errorf("%w: no pawn behind en passant square", ErrInvalidFEN)
	}
	b.SetLastMove(LastMove{Piece: idx, Type: Pawn, Color: pusher, From: from, To: to})
	return nil
}

// EncodeFEN writes b as FEN. Castling rights are derived from HasMoved and
// the en passant field from the last move.
func EncodeFEN(b *BoardState, turn Color, halfMove, fullMove int) string {
	builder := strings.Builder{}
	for y := 0; y < 8; y++ {
		empty := 0
		for x := 0; x < 8; x++ {
			idx, ok := b.PieceAt(Position{X: x, Y: y})
			if !ok {
				empty++
				continue
			}
			if empty > 0 {
				builder.WriteString(strconv.Itoa(empty))
				empty = 0
			}
			builder.WriteRune(fenSymbol(b.Pieces[idx]))
		}
		if empty > 0 {
			builder.WriteString(strconv.Itoa(empty))
		}
		if y < 7 {
			builder.WriteByte('/')
		}
	}

	side := "w"
	if turn == Black {
		side = "b"
	}

	castling := ""
	for _, c := range []Color{White, Black} {
		for _, corner := range []struct {
			x   int
			sym string
		}{{7, "K"}, {0, "Q"}} {
			if canStillCastle(b, c, corner.x) {
				if c == Black {
					castling += strings.ToLower(corner.sym)
				} else {
					castling += corner.sym
				}
			}
		}
	}
	if castling == "" {
		castling = "-"
	}

	ep := "-"
	if lm, ok := b.LastMove(); ok && lm.IsDoublePawnPush() {
		ep = Position{X: lm.To.X, Y: (lm.From.Y + lm.To.Y) / 2}.String()
	}

	return fmt.Sprintf("%s %s %s %s %d %d", builder.String(), side, castling, ep, halfMove, fullMove)
}

func canStillCastle(b *BoardState, c Color, rookX int) bool {
	kingIdx, ok := b.King(c)
	if !ok || b.Pieces[kingIdx].HasMoved {
		return false
	}
	idx, ok := b.PieceAt(Position{X: rookX, Y: c.BackRow()})
	if !ok {
		return false
	}
	rook := b.Pieces[idx]
	return rook.Type == Rook && rook.Color == c && !rook.HasMoved
}
