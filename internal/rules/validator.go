package rules

import "github.com/benbeisheim/chessrules/internal/model"

// IsMoveLegal decides whether the piece at idx may move to to. It runs the
// shape check for the piece kind (en passant before the ordinary pawn rule,
// castling beside the king step) and then rejects moves that leave the
// mover's king attacked. It does not consider whose turn it is.
func IsMoveLegal(b BoardView, idx int, to model.Position) bool {
	if idx < 0 || idx >= b.Len() {
		return false
	}
	piece := b.Piece(idx)
	if piece.Captured || !to.InBounds() || to == piece.Position {
		return false
	}
	if other, _, ok := occupant(b, to); ok {
		// Nothing lands on a friendly piece, and kings are never captured.
		if other.Color == piece.Color || other.Type == model.King {
			return false
		}
	}

	switch piece.Type {
	case model.King:
		if isKingStepValid(b, piece, to) && !WouldLeaveOwnKingInCheck(b, idx, to) {
			return true
		}
		return IsCastling(b, idx, to)
	case model.Pawn:
		if !IsEnPassant(b, piece, to) && !isPawnMoveValid(b, piece, to) {
			return false
		}
	default:
		if !IsLegalShape(b, piece, to) {
			return false
		}
	}
	return !WouldLeaveOwnKingInCheck(b, idx, to)
}

// Execute applies a move already accepted by IsMoveLegal: captures, rook
// relocation for castling, removal of a pawn taken en passant, HasMoved
// flags and the last-move record. Turn, score and notation belong to the
// caller. A pawn reaching its last row is reported as PromotionPending and
// keeps its kind until the caller replaces it.
func Execute(b Board, idx int, to model.Position) model.Ply {
	piece := b.Piece(idx)
	from := piece.Position
	ply := model.Ply{
		Piece:         idx,
		Type:          piece.Type,
		Color:         piece.Color,
		From:          from,
		To:            to,
		CapturedPiece: -1,
	}

	var (
		rookIdx  int
		castling bool
	)
	if piece.Type == model.King && abs(to.X-from.X) == 2 {
		rookIdx, castling = castlingRook(b, idx, to)
	}
	if piece.Type == model.Pawn {
		_, ply.EnPassant = enPassantVictim(b, piece, to)
	}

	if victim, ok := captureTarget(b, piece, to); ok {
		b.SetCaptured(victim, true)
		ply.CapturedPiece = victim
	}
	b.Relocate(idx, to)
	b.MarkMoved(idx)

	if castling {
		rookFrom := b.Piece(rookIdx).Position
		rookTo := castleRookTarget(to, rookFrom)
		b.Relocate(rookIdx, rookTo)
		b.MarkMoved(rookIdx)
		ply.CastleRookMove = &model.CastleRookMove{Piece: rookIdx, From: rookFrom, To: rookTo}
	}

	if piece.Type == model.Pawn && to.Y == piece.Color.PromotionRow() {
		ply.PromotionPending = true
	}

	b.SetLastMove(model.LastMove{Piece: idx, Type: piece.Type, Color: piece.Color, From: from, To: to})
	return ply
}

// IsCheckmate reports whether the king of c is in check and no piece of c
// has a legal move. The search is exhaustive and stops at the first escape.
func IsCheckmate(b BoardView, c model.Color) bool {
	if !IsKingInCheck(b, c) {
		return false
	}
	return !hasLegalMove(b, c)
}

func hasLegalMove(b BoardView, c model.Color) bool {
	for i := 0; i < b.Len(); i++ {
		p := b.Piece(i)
		if p.Captured || p.Color != c {
			continue
		}
		for _, to := range Candidates(b, i) {
			if IsMoveLegal(b, i, to) {
				return true
			}
		}
	}
	return false
}
