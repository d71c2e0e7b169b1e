package game

import (
	"fmt"

	"github.com/apex/log"
	"github.com/benbeisheim/chessrules/internal/model"
	"github.com/benbeisheim/chessrules/internal/rules"
)

// MoveResult is the verdict on a move attempt. Everything but Accepted is
// zero for a rejected move, and the game state is unchanged.
type MoveResult struct {
	Accepted         bool
	Captured         *model.Piece
	PromotionPending bool
	Check            bool
	Checkmate        bool
	// Winner is set once the move ends the game.
	Winner model.Color
	Ply    model.Ply
}

// AttemptMove tries to play the piece at index piece from one square to
// another. Turn order, a pending promotion and a finished game all reject
// the move like any illegal one.
func (g *Game) AttemptMove(piece int, from, to model.Position) MoveResult {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.attemptMove(piece, from, to)
}

// Move plays whatever piece stands on from.
func (g *Game) Move(from, to model.Position) MoveResult {
	g.mu.Lock()
	defer g.mu.Unlock()

	idx, ok := g.state.Board.PieceAt(from)
	if !ok {
		g.reject(-1, from, to, "no piece at from square")
		return MoveResult{}
	}
	return g.attemptMove(idx, from, to)
}

// GetCandidateDestinations lists the squares AttemptMove would accept for
// the piece right now, ordered by row then file.
func (g *Game) GetCandidateDestinations(piece int) []model.Position {
	g.mu.Lock()
	defer g.mu.Unlock()

	if reason := g.checkMovable(piece); reason != "" {
		return []model.Position{}
	}
	return rules.LegalDestinations(g.state.Board, piece)
}

// Hint is a legal destination and whether moving there checks the
// opponent. A pawn reaching the last row is judged as a pawn.
type Hint struct {
	To    model.Position `json:"to"`
	Check bool           `json:"check"`
}

// Hints is GetCandidateDestinations with each square marked for check.
func (g *Game) Hints(piece int) []Hint {
	g.mu.Lock()
	defer g.mu.Unlock()

	hints := []Hint{}
	if reason := g.checkMovable(piece); reason != "" {
		return hints
	}
	for _, to := range rules.LegalDestinations(g.state.Board, piece) {
		hints = append(hints, Hint{To: to, Check: rules.WouldGiveCheck(g.state.Board, piece, to)})
	}
	return hints
}

// ResolvePromotion replaces the pawn waiting on square with kind and hands
// the turn to the opponent.
func (g *Game) ResolvePromotion(square model.Position, kind model.PieceType) (MoveResult, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.resolvePromotion(square, kind)
}

// MovePromoting plays the piece on from to to and, when the move promotes,
// resolves the promotion to kind in the same step. kind must be empty for
// a move that does not promote. A rejected move returns a zero result and
// no error.
func (g *Game) MovePromoting(from, to model.Position, kind model.PieceType) (MoveResult, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	idx, ok := g.state.Board.PieceAt(from)
	if !ok {
		g.reject(-1, from, to, "no piece at from square")
		return MoveResult{}, nil
	}
	if kind != "" {
		p := g.state.Board.Piece(idx)
		if p.Type != model.Pawn || to.Y != p.Color.PromotionRow() {
			return MoveResult{}, fmt.Errorf("%w: %s%s", ErrUnexpectedPromotion, from, to)
		}
		if !kind.CanPromoteTo() {
			return MoveResult{}, fmt.Errorf("%w: %q", ErrInvalidPromotionPiece, kind)
		}
	}

	res := g.attemptMove(idx, from, to)
	if !res.Accepted || !res.PromotionPending || kind == "" {
		return res, nil
	}
	resolved, err := g.resolvePromotion(to, kind)
	if err != nil {
		return res, err
	}
	resolved.Captured = res.Captured
	return resolved, nil
}

func (g *Game) resolvePromotion(square model.Position, kind model.PieceType) (MoveResult, error) {
	g.flagged()
	if g.state.Resolve != "" {
		return MoveResult{}, fmt.Errorf("%w: %s", ErrGameOver, g.state.Resolve)
	}
	pending := g.state.PendingPromotion
	if pending == nil {
		return MoveResult{}, ErrNoPendingPromotion
	}
	if pending.Square != square {
		return MoveResult{}, fmt.Errorf("%w: %s", ErrWrongPromotionSquare, square)
	}
	if !kind.CanPromoteTo() {
		return MoveResult{}, fmt.Errorf("%w: %q", ErrInvalidPromotionPiece, kind)
	}

	g.state.Board.SetType(pending.Piece, kind)
	ply := g.lastPly()
	ply.PromotionPending = false
	ply.Promotion = kind
	ply.Notation += "=" + kind.Notation()
	g.state.PendingPromotion = nil

	g.stopClock(pending.Color)
	g.finishTurn()
	g.mustHoldInvariants()

	ply = g.lastPly()
	g.logger.WithFields(log.Fields{
		"piece": pending.Piece,
		"to":    square.String(),
		"kind":  string(kind),
	}).Info("promotion resolved")
	return MoveResult{
		Accepted:  true,
		Check:     ply.Check,
		Checkmate: ply.Checkmate,
		Winner:    g.state.Winner,
		Ply:       *ply,
	}, nil
}

func (g *Game) attemptMove(idx int, from, to model.Position) MoveResult {
	if reason := g.checkMovable(idx); reason != "" {
		g.reject(idx, from, to, reason)
		return MoveResult{}
	}
	b := g.state.Board
	piece := b.Piece(idx)
	if piece.Position != from {
		g.reject(idx, from, to, "piece is not on from square")
		return MoveResult{}
	}
	if !rules.IsMoveLegal(b, idx, to) {
		g.reject(idx, from, to, "illegal move")
		return MoveResult{}
	}

	notation := g.notation(idx, to)
	ply := rules.Execute(b, idx, to)
	ply.Notation = notation

	result := MoveResult{Accepted: true, PromotionPending: ply.PromotionPending}
	if ply.IsCapture() {
		captured := g.recordCapture(ply.CapturedPiece, piece.Color)
		result.Captured = &captured
	}
	if piece.Type == model.Pawn || ply.IsCapture() {
		g.state.HalfMove = 0
	} else {
		g.state.HalfMove++
	}
	if piece.Color == model.Black {
		g.state.FullMove++
	}
	g.state.LastMove = &model.SimpleMove{From: from, To: to}
	g.appendPly(ply)

	// The mover's clock keeps running until the promotion is resolved.
	if ply.PromotionPending {
		g.state.PendingPromotion = &model.PendingPromotion{Square: to, Color: piece.Color, Piece: idx}
	} else {
		g.stopClock(piece.Color)
		g.finishTurn()
	}
	g.mustHoldInvariants()

	last := g.lastPly()
	result.Check = last.Check
	result.Checkmate = last.Checkmate
	result.Winner = g.state.Winner
	result.Ply = *last

	entry := g.logger.WithFields(log.Fields{
		"piece":    idx,
		"from":     from.String(),
		"to":       to.String(),
		"notation": last.Notation,
	})
	if ply.PromotionPending {
		entry.Info("promotion pending")
	} else {
		entry.Info("move committed")
	}
	return result
}

// checkMovable returns why the piece may not move now, or "". It
// adjudicates a fallen flag first.
func (g *Game) checkMovable(idx int) string {
	if g.flagged() {
		return "time expired"
	}
	switch {
	case g.state.Resolve != "":
		return "game is over"
	case g.state.PendingPromotion != nil:
		return "promotion pending"
	case idx < 0 || idx >= g.state.Board.Len():
		return "no such piece"
	}
	p := g.state.Board.Piece(idx)
	if p.Captured {
		return "piece is captured"
	}
	if p.Color != g.state.ToMove {
		return "not your turn"
	}
	return ""
}

func (g *Game) reject(idx int, from, to model.Position, reason string) {
	g.logger.WithFields(log.Fields{
		"piece":  idx,
		"from":   from.String(),
		"to":     to.String(),
		"reason": reason,
	}).Debug("move rejected")
}

// recordCapture files the victim under the capturing side, scores it and
// gives it the next free slot in its color's side-panel block.
func (g *Game) recordCapture(victim int, by model.Color) model.Piece {
	b := g.state.Board
	taken := &g.state.CapturedPieces.White
	score := &g.state.Scores.White
	if by == model.Black {
		taken = &g.state.CapturedPieces.Black
		score = &g.state.Scores.Black
	}
	b.SetSlot(victim, len(*taken))
	p := b.Piece(victim)
	*taken = append(*taken, p)
	*score += p.Type.Value()
	return p
}

func (g *Game) appendPly(ply model.Ply) {
	h := g.state.MoveHistory
	switch {
	case ply.Color == model.White:
		g.state.MoveHistory = append(h, model.Move{WhitePly: ply})
	case len(h) == 0 || h[len(h)-1].BlackPly != nil:
		// Black moved first, as in a game set up from a position.
		g.state.MoveHistory = append(h, model.Move{
			WhitePly: model.Ply{CapturedPiece: -1, Notation: "..."},
			BlackPly: &ply,
		})
	default:
		h[len(h)-1].BlackPly = &ply
	}
}

func (g *Game) lastPly() *model.Ply {
	last := &g.state.MoveHistory[len(g.state.MoveHistory)-1]
	if last.BlackPly != nil {
		return last.BlackPly
	}
	return &last.WhitePly
}

// finishTurn hands the move to the opponent and works out whether the move
// just recorded gave check or mate.
func (g *Game) finishTurn() {
	ply := g.lastPly()
	mover := ply.Color
	g.switchTurn()
	g.refreshStatus()

	ply.Check = g.state.IsCheck
	if g.state.Resolve == ResolveCheckmate {
		ply.Checkmate = true
		ply.Notation += "#"
	} else if ply.Check {
		ply.Notation += "+"
	}

	if clock := g.clockFor(g.state.ToMove); clock != nil && g.state.Resolve == "" {
		clock.Start()
	}
	if ply.Checkmate {
		g.logger.WithField("winner", string(mover)).Info("checkmate")
	}
}

// refreshStatus recomputes check and mate for the side to move.
func (g *Game) refreshStatus() {
	b := g.state.Board
	toMove := g.state.ToMove
	g.state.IsCheck = rules.IsKingInCheck(b, toMove)
	if g.state.IsCheck && rules.IsCheckmate(b, toMove) {
		g.state.Resolve = ResolveCheckmate
		g.state.Winner = toMove.Opposite()
	}
}

// flagged ends the game on time when the side to move has run out.
func (g *Game) flagged() bool {
	if g.state.Resolve != "" {
		return false
	}
	clock := g.clockFor(g.state.ToMove)
	if clock == nil || !clock.Expired() {
		return false
	}
	g.flagFall(g.state.ToMove)
	return true
}

func (g *Game) stopClock(c model.Color) {
	if clock := g.clockFor(c); clock != nil {
		clock.Stop()
	}
}

func (g *Game) flagFall(loser model.Color) {
	g.state.Resolve = ResolveTimeout
	g.state.Winner = loser.Opposite()
	for _, c := range []*Clock{g.whiteClock, g.blackClock} {
		c.Stop()
	}
	g.logger.WithField("winner", string(g.state.Winner)).Info("time expired")
}
