package rules

import (
	"sort"

	"github.com/benbeisheim/chessrules/internal/model"
)

// Candidates enumerates the squares worth testing for the piece at idx:
// rays up to and including the first occupied square, jump and step
// offsets, pawn pushes and diagonals, and the two castling squares. The
// result still has to go through IsMoveLegal.
func Candidates(b BoardView, idx int) []model.Position {
	piece := b.Piece(idx)
	if piece.Captured {
		return nil
	}
	switch piece.Type {
	case model.Pawn:
		return pawnCandidates(piece)
	case model.Knight:
		return stepCandidates(piece, knightDirs)
	case model.Bishop:
		return rayCandidates(b, piece, bishopDirs)
	case model.Rook:
		return rayCandidates(b, piece, rookDirs)
	case model.Queen:
		return append(rayCandidates(b, piece, bishopDirs), rayCandidates(b, piece, rookDirs)...)
	case model.King:
		moves := stepCandidates(piece, kingDirs)
		if !piece.HasMoved {
			for _, dx := range []int{2, -2} {
				to := model.Position{X: piece.Position.X + dx, Y: piece.Position.Y}
				if to.InBounds() {
					moves = append(moves, to)
				}
			}
		}
		return moves
	}
	return nil
}

func pawnCandidates(piece model.Piece) []model.Position {
	moves := []model.Position{}
	dir := piece.Color.Forward()
	from := piece.Position
	for _, d := range []model.Position{{X: 0, Y: dir}, {X: 0, Y: 2 * dir}, {X: 1, Y: dir}, {X: -1, Y: dir}} {
		if to := from.Add(d); to.InBounds() {
			moves = append(moves, to)
		}
	}
	return moves
}

func stepCandidates(piece model.Piece, dirs []model.Position) []model.Position {
	moves := []model.Position{}
	for _, dir := range dirs {
		if to := piece.Position.Add(dir); to.InBounds() {
			moves = append(moves, to)
		}
	}
	return moves
}

func rayCandidates(b BoardView, piece model.Piece, dirs []model.Position) []model.Position {
	moves := []model.Position{}
	for _, dir := range dirs {
		for to := piece.Position.Add(dir); to.InBounds(); to = to.Add(dir) {
			moves = append(moves, to)
			if !isEmpty(b, to) {
				break
			}
		}
	}
	return moves
}

// LegalDestinations returns the candidates of the piece at idx that pass
// IsMoveLegal, ordered by row then file.
func LegalDestinations(b BoardView, idx int) []model.Position {
	legal := []model.Position{}
	for _, to := range Candidates(b, idx) {
		if IsMoveLegal(b, idx, to) {
			legal = append(legal, to)
		}
	}
	sort.Slice(legal, func(i, j int) bool {
		if legal[i].Y != legal[j].Y {
			return legal[i].Y < legal[j].Y
		}
		return legal[i].X < legal[j].X
	})
	return legal
}

// LegalMoves lists every legal move available to color c.
func LegalMoves(b BoardView, c model.Color) []model.SimpleMove {
	moves := []model.SimpleMove{}
	for i := 0; i < b.Len(); i++ {
		p := b.Piece(i)
		if p.Captured || p.Color != c {
			continue
		}
		for _, to := range LegalDestinations(b, i) {
			moves = append(moves, model.SimpleMove{From: p.Position, To: to})
		}
	}
	return moves
}
