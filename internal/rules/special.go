package rules

import "github.com/benbeisheim/chessrules/internal/model"

// IsEnPassant reports whether piece may capture en passant on to: a one
// square diagonal pawn step onto an empty square, right after an enemy pawn
// pushed two squares to the square beside it.
func IsEnPassant(b BoardView, piece model.Piece, to model.Position) bool {
	_, ok := enPassantVictim(b, piece, to)
	return ok
}

// enPassantVictim returns the arena index of the pawn an en passant move
// on to would remove.
func enPassantVictim(b BoardView, piece model.Piece, to model.Position) (int, bool) {
	if piece.Type != model.Pawn || !to.InBounds() {
		return -1, false
	}
	from := piece.Position
	if to.Y-from.Y != piece.Color.Forward() || abs(to.X-from.X) != 1 || !isEmpty(b, to) {
		return -1, false
	}
	lm, ok := b.LastMove()
	if !ok || !lm.IsDoublePawnPush() || lm.Color == piece.Color {
		return -1, false
	}
	// The pushed pawn must sit beside the capturer, on the file it lands on.
	if lm.To != (model.Position{X: to.X, Y: from.Y}) {
		return -1, false
	}
	idx, ok := b.PieceAt(lm.To)
	if !ok || idx != lm.Piece {
		return -1, false
	}
	return idx, true
}

// IsCastling reports whether the king at idx may castle by stepping to to.
func IsCastling(b BoardView, idx int, to model.Position) bool {
	_, ok := castlingRook(b, idx, to)
	return ok
}

// castlingRook validates a castling attempt and returns the rook's index.
func castlingRook(b BoardView, idx int, to model.Position) (int, bool) {
	king := b.Piece(idx)
	if king.Type != model.King || king.HasMoved || king.Captured {
		return -1, false
	}
	from := king.Position
	if to.Y != from.Y || abs(to.X-from.X) != 2 || !to.InBounds() {
		return -1, false
	}
	step := sign(to.X - from.X)
	rookX := 0
	if step > 0 {
		rookX = 7
	}
	rook, rookIdx, ok := occupant(b, model.Position{X: rookX, Y: from.Y})
	if !ok || rook.Type != model.Rook || rook.Color != king.Color || rook.HasMoved {
		return -1, false
	}
	for x := from.X + step; x != rookX; x += step {
		if !isEmpty(b, model.Position{X: x, Y: from.Y}) {
			return -1, false
		}
	}
	if IsKingInCheck(b, king.Color) {
		return -1, false
	}
	// Neither the square passed over nor the landing square may be attacked.
	for x := from.X + step; ; x += step {
		if WouldLeaveOwnKingInCheck(b, idx, model.Position{X: x, Y: from.Y}) {
			return -1, false
		}
		if x == to.X {
			break
		}
	}
	return rookIdx, true
}

// castleRookTarget is where the rook lands: beside the king, on the side it
// came from.
func castleRookTarget(kingTo model.Position, rookFrom model.Position) model.Position {
	return model.Position{X: kingTo.X - sign(rookFrom.X-kingTo.X), Y: kingTo.Y}
}
