package rules

import "github.com/benbeisheim/chessrules/internal/model"

// Simulate plays the piece at idx onto to on the live board, runs probe
// against the resulting position and restores the board before returning.
// Whatever the piece would capture, an en passant victim included, is
// marked captured for the duration of probe.
func Simulate(b BoardView, idx int, to model.Position, probe func() bool) bool {
	piece := b.Piece(idx)
	from := piece.Position
	if other, ok := b.PieceAt(to); ok && other != idx && b.Piece(other).Color == piece.Color {
		panic("rules: simulating a move onto a friendly piece at " + to.String())
	}

	victim, hasVictim := captureTarget(b, piece, to)
	if hasVictim {
		b.SetCaptured(victim, true)
	}
	b.Relocate(idx, to)
	defer func() {
		b.Relocate(idx, from)
		if hasVictim {
			b.SetCaptured(victim, false)
		}
	}()

	return probe()
}

// WouldLeaveOwnKingInCheck reports whether moving the piece at idx to to
// leaves its own king attacked.
func WouldLeaveOwnKingInCheck(b BoardView, idx int, to model.Position) bool {
	c := b.Piece(idx).Color
	return Simulate(b, idx, to, func() bool {
		return IsKingInCheck(b, c)
	})
}

// WouldGiveCheck reports whether moving the piece at idx to to attacks the
// opposing king.
func WouldGiveCheck(b BoardView, idx int, to model.Position) bool {
	c := b.Piece(idx).Color.Opposite()
	return Simulate(b, idx, to, func() bool {
		return IsKingInCheck(b, c)
	})
}

// captureTarget returns the enemy piece a move onto to removes: the
// occupant of to, or the pawn taken en passant.
func captureTarget(b BoardView, piece model.Piece, to model.Position) (int, bool) {
	if p, idx, ok := occupant(b, to); ok {
		if p.Color == piece.Color {
			return -1, false
		}
		return idx, true
	}
	return enPassantVictim(b, piece, to)
}

// IsKingInCheck reports whether any live enemy piece attacks the king of c.
func IsKingInCheck(b BoardView, c model.Color) bool {
	return IsSquareAttacked(b, c.Opposite(), b.KingPosition(c))
}

// IsSquareAttacked reports whether any live piece of attacker attacks pos.
func IsSquareAttacked(b BoardView, attacker model.Color, pos model.Position) bool {
	for i := 0; i < b.Len(); i++ {
		p := b.Piece(i)
		if p.Captured || p.Color != attacker {
			continue
		}
		if CanAttack(b, p, pos) {
			return true
		}
	}
	return false
}
