package game

import (
	"fmt"

	"github.com/benbeisheim/chessrules/internal/model"
	"github.com/benbeisheim/chessrules/internal/rules"
)

// notation builds the SAN text of a move before it is executed. Promotion
// and check suffixes are added once they are known.
func (g *Game) notation(idx int, to model.Position) string {
	b := g.state.Board
	piece := b.Piece(idx)
	from := piece.Position

	if piece.Type == model.King && (to.X-from.X == 2 || from.X-to.X == 2) {
		if to.X > from.X {
			return "O-O"
		}
		return "O-O-O"
	}

	pieceNotationCapture := ""
	if _, ok := b.PieceAt(to); ok || (piece.Type == model.Pawn && rules.IsEnPassant(b, piece, to)) {
		pieceNotationCapture = "x"
	}
	if piece.Type == model.Pawn {
		pawnFileSpecifier := ""
		if from.X != to.X {
			pawnFileSpecifier = from.File()
		}
		return fmt.Sprintf("%s%s%s", pawnFileSpecifier, pieceNotationCapture, to)
	}
	return fmt.Sprintf("%s%s%s%s", piece.Type.Notation(), g.disambiguation(idx, to), pieceNotationCapture, to)
}

// disambiguation names the origin file, rank or square when another piece
// of the same kind could also reach to.
func (g *Game) disambiguation(idx int, to model.Position) string {
	b := g.state.Board
	piece := b.Piece(idx)
	ambiguous, sameFile, sameRank := false, false, false
	for i := 0; i < b.Len(); i++ {
		other := b.Piece(i)
		if i == idx || other.Captured || other.Type != piece.Type || other.Color != piece.Color {
			continue
		}
		if !rules.IsMoveLegal(b, i, to) {
			continue
		}
		ambiguous = true
		sameFile = sameFile || other.Position.X == piece.Position.X
		sameRank = sameRank || other.Position.Y == piece.Position.Y
	}
	switch {
	case !ambiguous:
		return ""
	case !sameFile:
		return piece.Position.File()
	case !sameRank:
		return piece.Position.Rank()
	}
	return piece.Position.String()
}
