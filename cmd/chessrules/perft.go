package main

import (
	"fmt"
	"io"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/benbeisheim/chessrules/internal/model"
	"github.com/benbeisheim/chessrules/internal/rules"
)

type perftStats struct {
	nodes, captures, enPassants, castles, promotions, checks uint64
}

type perftLeaf struct {
	board *model.BoardState
	ply   model.Ply
}

func runPerft(out io.Writer, fen string, maxDepth int) error {
	pos, err := model.ParseFEN(fen)
	if err != nil {
		return err
	}
	printer := message.NewPrinter(language.English)
	for depth := 1; depth <= maxDepth; depth++ {
		var stats perftStats
		start := time.Now()
		perft(pos.Board, pos.Turn, depth, &stats)
		elapsed := time.Since(start)
		_, err := printer.Fprintf(out, "d=%d nodes=%d cap=%d enp=%d cas=%d pro=%d chk=%d (%.3fs elapsed)\n",
			depth, stats.nodes, stats.captures, stats.enPassants, stats.castles, stats.promotions, stats.checks, elapsed.Seconds())
		if err != nil {
			return fmt.Errorf("write perft result: %w", err)
		}
	}
	return nil
}

// perft counts the leaves of the legal move tree below b. Each promotion
// counts once per kind the pawn can become.
func perft(b *model.BoardState, turn model.Color, depth int, stats *perftStats) {
	if depth == 0 {
		stats.nodes++
		return
	}
	for _, mv := range rules.LegalMoves(b, turn) {
		for _, leaf := range expandMove(b, mv) {
			if depth == 1 {
				if leaf.ply.IsCapture() {
					stats.captures++
				}
				if leaf.ply.EnPassant {
					stats.enPassants++
				}
				if leaf.ply.IsCastle() {
					stats.castles++
				}
				if leaf.ply.Promotion != "" {
					stats.promotions++
				}
				if rules.IsKingInCheck(leaf.board, turn.Opposite()) {
					stats.checks++
				}
			}
			perft(leaf.board, turn.Opposite(), depth-1, stats)
		}
	}
}

func expandMove(b *model.BoardState, mv model.SimpleMove) []perftLeaf {
	next := b.Clone()
	idx, _ := next.PieceAt(mv.From)
	ply := rules.Execute(next, idx, mv.To)
	if !ply.PromotionPending {
		return []perftLeaf{{board: next, ply: ply}}
	}
	leaves := make([]perftLeaf, 0, len(model.PromotionKinds))
	for _, kind := range model.PromotionKinds {
		promoted := next.Clone()
		promoted.SetType(idx, kind)
		p := ply
		p.Promotion = kind
		leaves = append(leaves, perftLeaf{board: promoted, ply: p})
	}
	return leaves
}
