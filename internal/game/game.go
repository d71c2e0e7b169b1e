// Package game drives one chess game on top of the rules package: turn
// order, capture bookkeeping, pending promotion, move history and the
// check and checkmate flags shown to players.
package game

import (
	"fmt"
	"sync"
	"time"

	"github.com/apex/log"
	"github.com/benbeisheim/chessrules/internal/model"
	"github.com/google/uuid"
)

const (
	ResolveCheckmate = "checkmate"
	ResolveTimeout   = "timeout"
)

// The Game struct focuses on a single game's state. Every exported method
// takes the game lock, so a game may be shared between goroutines.
type Game struct {
	ID         string
	mu         sync.Mutex
	state      GameState
	geometry   model.Geometry
	logger     log.Interface
	whiteClock *Clock
	blackClock *Clock
}

type GameState struct {
	Board          *model.BoardState `json:"boardState"`
	ToMove         model.Color       `json:"toMove"`
	MoveHistory    []model.Move      `json:"moveHistory"`
	CapturedPieces CapturedPieces    `json:"capturedPieces"`
	Scores         Scores            `json:"scores"`
	IsCheck        bool              `json:"isCheck"`
	// Resolve is empty while the game is running.
	Resolve          string                  `json:"resolve"`
	Winner           model.Color             `json:"winner"`
	PendingPromotion *model.PendingPromotion `json:"pendingPromotion"`
	LastMove         *model.SimpleMove       `json:"lastMove"`
	HalfMove         int                     `json:"halfMove"`
	FullMove         int                     `json:"fullMove"`
}

// CapturedPieces lists the pieces each side has taken, in capture order.
type CapturedPieces struct {
	White []model.Piece `json:"white"`
	Black []model.Piece `json:"black"`
}

type Scores struct {
	White int `json:"white"`
	Black int `json:"black"`
}

type config struct {
	id       string
	fen      string
	geometry model.Geometry
	logger   log.Interface
	clock    time.Duration
	now      func() time.Time
}

type Option func(*config)

func WithID(id string) Option {
	return func(cfg *config) {
		cfg.id = id
	}
}

// WithFEN starts the game from a position instead of the initial setup.
func WithFEN(fen string) Option {
	return func(cfg *config) {
		cfg.fen = fen
	}
}

func WithGeometry(g model.Geometry) Option {
	return func(cfg *config) {
		cfg.geometry = g
	}
}

func WithLogger(l log.Interface) Option {
	return func(cfg *config) {
		cfg.logger = l
	}
}

// WithClock gives each side d of thinking time. A side whose time has run
// out loses on its next move attempt.
func WithClock(d time.Duration) Option {
	return func(cfg *config) {
		cfg.clock = d
	}
}

func withNow(now func() time.Time) Option {
	return func(cfg *config) {
		cfg.now = now
	}
}

func New(opts ...Option) (*Game, error) {
	cfg := &config{
		id:       uuid.New().String(),
		fen:      model.StartingFEN,
		geometry: model.DefaultGeometry(),
		logger:   log.Log,
		now:      time.Now,
	}
	for _, f := range opts {
		f(cfg)
	}

	pos, err := model.ParseFEN(cfg.fen)
	if err != nil {
		return nil, err
	}

	g := &Game{
		ID:       cfg.id,
		state:    newGameState(pos),
		geometry: cfg.geometry,
		logger:   cfg.logger.WithField("game", cfg.id),
	}
	if cfg.clock > 0 {
		g.whiteClock = newClock(cfg.clock, cfg.now)
		g.blackClock = newClock(cfg.clock, cfg.now)
	}
	g.refreshStatus()
	return g, nil
}

func newGameState(pos model.FENPosition) GameState {
	return GameState{
		Board:       pos.Board,
		ToMove:      pos.Turn,
		MoveHistory: make([]model.Move, 0),
		CapturedPieces: CapturedPieces{
			White: make([]model.Piece, 0),
			Black: make([]model.Piece, 0),
		},
		HalfMove: pos.HalfMove,
		FullMove: pos.FullMove,
	}
}

// Reset restores the initial arrangement with White to move, clears scores,
// captures and history, and rewinds the clocks.
func (g *Game) Reset() {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.state = newGameState(model.FENPosition{Board: model.NewBoard(), Turn: model.White, FullMove: 1})
	for _, c := range []*Clock{g.whiteClock, g.blackClock} {
		if c != nil {
			c.Reset()
		}
	}
	g.logger.Info("game reset")
}

// GetState returns a deep copy of the game state.
func (g *Game) GetState() GameState {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.state.clone()
}

func (g *Game) Board() *model.BoardState {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.state.Board.Clone()
}

func (g *Game) Turn() model.Color {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.state.ToMove
}

// Score is the material value c has captured so far.
func (g *Game) Score(c model.Color) int {
	g.mu.Lock()
	defer g.mu.Unlock()

	if c == model.White {
		return g.state.Scores.White
	}
	return g.state.Scores.Black
}

// Captured returns the pieces taken by c.
func (g *Game) Captured(c model.Color) []model.Piece {
	g.mu.Lock()
	defer g.mu.Unlock()

	if c == model.White {
		return append([]model.Piece(nil), g.state.CapturedPieces.White...)
	}
	return append([]model.Piece(nil), g.state.CapturedPieces.Black...)
}

func (g *Game) History() []model.Move {
	g.mu.Lock()
	defer g.mu.Unlock()

	return cloneHistory(g.state.MoveHistory)
}

func (g *Game) Geometry() model.Geometry {
	return g.geometry
}

// PieceAt returns the live piece on pos and its arena index.
func (g *Game) PieceAt(pos model.Position) (int, model.Piece, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()

	idx, ok := g.state.Board.PieceAt(pos)
	if !ok {
		return -1, model.Piece{}, false
	}
	return idx, g.state.Board.Piece(idx), true
}

// PanelPosition is where a captured piece is drawn in the side panel.
func (g *Game) PanelPosition(idx int) (model.Point, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if idx < 0 || idx >= g.state.Board.Len() {
		return model.Point{}, false
	}
	p := g.state.Board.Piece(idx)
	if !p.Captured || p.Slot < 0 {
		return model.Point{}, false
	}
	return g.geometry.PanelSlot(p.Color, p.Slot), true
}

// FEN encodes the current position.
func (g *Game) FEN() string {
	g.mu.Lock()
	defer g.mu.Unlock()

	return model.EncodeFEN(g.state.Board, g.state.ToMove, g.state.HalfMove, g.state.FullMove)
}

func (g *Game) IsOver() bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.state.Resolve != ""
}

// TimeLeft reports the remaining time of c, false when the game is untimed.
func (g *Game) TimeLeft(c model.Color) (time.Duration, bool) {
	clock := g.clockFor(c)
	if clock == nil {
		return 0, false
	}
	return clock.GetTimeLeft(), true
}

func (s GameState) clone() GameState {
	c := s
	c.Board = s.Board.Clone()
	c.MoveHistory = cloneHistory(s.MoveHistory)
	c.CapturedPieces = CapturedPieces{
		White: append([]model.Piece(nil), s.CapturedPieces.White...),
		Black: append([]model.Piece(nil), s.CapturedPieces.Black...),
	}
	if s.PendingPromotion != nil {
		p := *s.PendingPromotion
		c.PendingPromotion = &p
	}
	if s.LastMove != nil {
		m := *s.LastMove
		c.LastMove = &m
	}
	return c
}

func cloneHistory(h []model.Move) []model.Move {
	out := make([]model.Move, len(h))
	for i, m := range h {
		out[i] = m
		if m.BlackPly != nil {
			p := *m.BlackPly
			out[i].BlackPly = &p
		}
	}
	return out
}

func (g *Game) clockFor(c model.Color) *Clock {
	if c == model.White {
		return g.whiteClock
	}
	return g.blackClock
}

func (g *Game) switchTurn() {
	g.state.ToMove = g.state.ToMove.Opposite()
}

// mustHoldInvariants panics when the board caches diverge from the pieces.
// No sequence of legal moves can cause that.
func (g *Game) mustHoldInvariants() {
	if err := g.state.Board.CheckInvariants(); err != nil {
		g.logger.WithError(err).Error("board invariant violated")
		panic(fmt.Sprintf("game %s: %v", g.ID, err))
	}
}
