package rules

import "github.com/benbeisheim/chessrules/internal/model"

// IsLegalShape reports whether piece may move from its own square to to by
// its movement pattern alone. It ignores whose turn it is, does not look at
// the mover's own king, and never accepts castling or en passant.
func IsLegalShape(b BoardView, piece model.Piece, to model.Position) bool {
	if !to.InBounds() || !piece.Position.InBounds() || to == piece.Position {
		return false
	}
	switch piece.Type {
	case model.Pawn:
		return isPawnMoveValid(b, piece, to)
	case model.Knight:
		return isKnightMoveValid(b, piece, to)
	case model.Bishop:
		return isBishopMoveValid(b, piece, to)
	case model.Rook:
		return isRookMoveValid(b, piece, to)
	case model.Queen:
		return isQueenMoveValid(b, piece, to)
	case model.King:
		return isKingStepValid(b, piece, to)
	}
	return false
}

// CanAttack reports whether piece, standing where it is, attacks target.
// Pawns attack their two forward diagonals whether or not anything stands
// there; everything else attacks exactly what it could move to.
func CanAttack(b BoardView, piece model.Piece, target model.Position) bool {
	if piece.Captured {
		return false
	}
	if piece.Type == model.Pawn {
		if !target.InBounds() {
			return false
		}
		dx, dy := target.X-piece.Position.X, target.Y-piece.Position.Y
		return dy == piece.Color.Forward() && abs(dx) == 1
	}
	return IsLegalShape(b, piece, target)
}

func isPawnMoveValid(b BoardView, piece model.Piece, to model.Position) bool {
	from := piece.Position
	dir := piece.Color.Forward()
	dx, dy := to.X-from.X, to.Y-from.Y

	switch {
	case dx == 0 && dy == dir:
		return isEmpty(b, to)
	case dx == 0 && dy == 2*dir:
		if from.Y != piece.Color.PawnStartRow() {
			return false
		}
		return isEmpty(b, model.Position{X: from.X, Y: from.Y + dir}) && isEmpty(b, to)
	case abs(dx) == 1 && dy == dir:
		p, _, ok := occupant(b, to)
		return ok && p.Color != piece.Color
	}
	return false
}

func isKnightMoveValid(b BoardView, piece model.Piece, to model.Position) bool {
	dx, dy := abs(to.X-piece.Position.X), abs(to.Y-piece.Position.Y)
	if !(dx == 2 && dy == 1 || dx == 1 && dy == 2) {
		return false
	}
	return emptyOrEnemy(b, piece.Color, to)
}

func isRookMoveValid(b BoardView, piece model.Piece, to model.Position) bool {
	from := piece.Position
	if from.X != to.X && from.Y != to.Y {
		return false
	}
	return isRayClear(b, from, to) && emptyOrEnemy(b, piece.Color, to)
}

func isBishopMoveValid(b BoardView, piece model.Piece, to model.Position) bool {
	from := piece.Position
	if abs(to.X-from.X) != abs(to.Y-from.Y) {
		return false
	}
	return isRayClear(b, from, to) && emptyOrEnemy(b, piece.Color, to)
}

func isQueenMoveValid(b BoardView, piece model.Piece, to model.Position) bool {
	return isRookMoveValid(b, piece, to) || isBishopMoveValid(b, piece, to)
}

func isKingStepValid(b BoardView, piece model.Piece, to model.Position) bool {
	dx, dy := abs(to.X-piece.Position.X), abs(to.Y-piece.Position.Y)
	if dx > 1 || dy > 1 {
		return false
	}
	return emptyOrEnemy(b, piece.Color, to)
}

// isRayClear checks the squares strictly between from and to, which must be
// on one rank, file or diagonal.
func isRayClear(b BoardView, from, to model.Position) bool {
	step := model.Position{X: sign(to.X - from.X), Y: sign(to.Y - from.Y)}
	for pos := from.Add(step); pos != to; pos = pos.Add(step) {
		if !isEmpty(b, pos) {
			return false
		}
	}
	return true
}
